// Package backend serves the browser client that configures, runs and
// monitors recruitment pipeline runs.
package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ryand2626/recruitment-pipeline/internal/actors"
	"github.com/ryand2626/recruitment-pipeline/internal/config"
	"github.com/ryand2626/recruitment-pipeline/internal/pipeline"
	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

const size = 100

// Runnable is a unit of work that can be executed by the worker.
type Runnable interface {
	// Execute runs the work. It receives the API and the session for
	// progress/cancellation.
	Execute(api *PipelineAPI, session *UserSession)
}

// queuedRun is an item in the processing queue
type queuedRun struct {
	session *UserSession
	job     Runnable
}

// API Handler
type PipelineAPI struct {
	cfg     config.Config
	catalog []actors.Actor
	client  *trackerapi.Client
	logger  *zap.Logger

	sessions *SessionManager

	// queue so that only one pipeline run executes at a time
	jobQueue  chan queuedRun
	queueSize int

	// queueOrder tracks session IDs in enqueue order (protected by queueMu)
	queueMu    sync.Mutex
	queueOrder []string

	// queue SSE subscribers
	queueSubs   map[chan struct{}]struct{}
	queueSubsMu sync.Mutex
}

func NewPipelineAPI(cfg config.Config, logger *zap.Logger) (*PipelineAPI, error) {
	catalog, err := actors.LoadCatalog(cfg.Actors.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load actor catalog: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	api := &PipelineAPI{
		cfg:        cfg,
		catalog:    catalog,
		client:     config.NewTrackerClient(cfg),
		logger:     logger,
		sessions:   NewSessionManager(),
		queueSize:  size,
		jobQueue:   make(chan queuedRun, size),
		queueOrder: make([]string, 0, size),
		queueSubs:  make(map[chan struct{}]struct{}),
	}

	// Start single worker to process runs sequentially
	go func() {
		for queued := range api.jobQueue {
			api.queueMu.Lock()
			if len(api.queueOrder) > 0 && api.queueOrder[0] == queued.session.ID {
				// common fast path: pop front
				api.queueOrder = api.queueOrder[1:]
			} else {
				for i, id := range api.queueOrder {
					if id == queued.session.ID {
						api.queueOrder = append(api.queueOrder[:i], api.queueOrder[i+1:]...)
						break
					}
				}
			}
			api.broadcastQueueLocked()
			api.queueMu.Unlock()

			queued.job.Execute(api, queued.session)
		}
	}()

	// Cleanup stale sessions every hour
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			api.sessions.CleanupStale(24 * time.Hour)
		}
	}()

	return api, nil
}

// RunRequest holds the parameters for one pipeline run as the client
// submits them.
type RunRequest struct {
	ClientID            string                       `json:"client_id"`
	SourceText          string                       `json:"source_text"`
	TargetJobTitles     []string                     `json:"target_job_titles"`
	ConfidenceThreshold float64                      `json:"confidence_threshold"`
	ProcessingMode      string                       `json:"processing_mode"`
	PipelineStages      []string                     `json:"pipeline_stages"`
	SelectedActors      []string                     `json:"selected_actors"`
	RuntimeOverrides    map[string]map[string]string `json:"runtime_apify_overrides"`
	Location            string                       `json:"location"`
	MaxItems            int                          `json:"max_items"`
}

type runJob struct {
	params pipeline.Params
}

func (j runJob) Execute(api *PipelineAPI, session *UserSession) {
	api.executeRun(session, j.params)
}

// HandleRun starts a pipeline run for a client
func (api *PipelineAPI) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse request: %v", err), http.StatusBadRequest)
		return
	}
	if req.ClientID == "" {
		req.ClientID = uuid.New().String()
	}

	params, err := api.buildParams(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := api.sessions.CreateSession(req.ClientID)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	select {
	case api.jobQueue <- queuedRun{session: session, job: runJob{params: params}}:
		api.queueMu.Lock()
		api.queueOrder = append(api.queueOrder, session.ID)
		api.broadcastQueueLocked()
		api.queueMu.Unlock()
	default:
		api.sessions.RemoveSession(req.ClientID)
		http.Error(w, "Run queue is full", http.StatusServiceUnavailable)
		return
	}

	api.logger.Info("pipeline run queued",
		zap.String("session_id", session.ID),
		zap.Strings("stages", req.PipelineStages),
	)

	json.NewEncoder(w).Encode(map[string]string{
		"session_id": session.ID,
		"client_id":  req.ClientID,
	})
}

func (api *PipelineAPI) buildParams(req RunRequest) (pipeline.Params, error) {
	ids := req.SelectedActors
	if ids == nil {
		ids = api.cfg.Actors.Enabled
	}
	configs, err := actors.Select(api.catalog, ids, req.RuntimeOverrides)
	if err != nil {
		return pipeline.Params{}, err
	}

	stages := make([]pipeline.Stage, 0, len(req.PipelineStages))
	for _, s := range req.PipelineStages {
		stages = append(stages, pipeline.Stage(s))
	}

	location := req.Location
	if location == "" {
		location = api.cfg.Scrape.Location
	}
	maxItems := req.MaxItems
	if maxItems <= 0 {
		maxItems = api.cfg.Scrape.MaxItems
	}

	return pipeline.Params{
		SourceText:          req.SourceText,
		TargetTitles:        req.TargetJobTitles,
		ConfidenceThreshold: req.ConfidenceThreshold,
		Mode:                pipeline.Mode(req.ProcessingMode),
		Stages:              stages,
		Actors:              configs,
		Location:            location,
		MaxItems:            maxItems,
		Concurrency:         api.cfg.Scrape.ConcurrentRequests,
		RequestDelay:        time.Duration(api.cfg.Scrape.RequestDelayMillis) * time.Millisecond,
		Email:               api.cfg.Email,
	}, nil
}

// executeRun owns the session's progress channel: it is the only writer and
// closes it once the run has finished and the result is stored.
func (api *PipelineAPI) executeRun(session *UserSession, params pipeline.Params) {
	runner := &pipeline.Runner{
		Client:   api.client,
		Logger:   api.logger,
		Progress: session.Progress,
	}
	res, err := runner.Run(session.Ctx, params)
	if err != nil {
		api.logger.Warn("pipeline run ended with error",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}
	session.setResult(res)
	close(session.Progress)
}

// HandleProgress streams progress updates via SSE
func (api *PipelineAPI) HandleProgress(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	clientID := r.URL.Query().Get("client_id")

	var session *UserSession
	var ok bool
	if sessionID != "" {
		session, ok = api.sessions.GetSessionByID(sessionID)
	} else if clientID != "" {
		session, ok = api.sessions.GetSession(clientID)
	}

	if !ok || session == nil {
		http.Error(w, "No active session", http.StatusNotFound)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Listen for client disconnect via request context
	notify := r.Context().Done()

	for {
		select {
		case update, okCh := <-session.Progress:
			if !okCh {
				// run finished and closed the channel
				return
			}
			data, _ := json.Marshal(update)
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()

			if update.Type == "complete" || update.Type == "error" {
				return
			}
		case <-notify:
			// client disconnected
			return
		}
	}
}

// HandleResult returns the finished run's result
func (api *PipelineAPI) HandleResult(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id required", http.StatusBadRequest)
		return
	}

	session, ok := api.sessions.GetSessionByID(sessionID)
	if !ok {
		http.Error(w, "No active session", http.StatusNotFound)
		return
	}

	res, done := session.Result()
	if !done {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status": "running"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// HandleCancel allows clients to cancel their run
func (api *PipelineAPI) HandleCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	clientID := r.URL.Query().Get("client_id")

	// Prefer session_id (server-generated session identifier)
	if sessionID != "" {
		if session, ok := api.sessions.GetSessionByID(sessionID); ok {
			api.removeQueuedSession(session.ID)
			api.sessions.RemoveBySessionID(sessionID)
			json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
			return
		}
		http.Error(w, "No active session", http.StatusNotFound)
		return
	}

	if clientID == "" {
		http.Error(w, "client_id or session_id required", http.StatusBadRequest)
		return
	}

	if session, ok := api.sessions.GetSession(clientID); ok {
		api.removeQueuedSession(session.ID)
	}
	api.sessions.RemoveSession(clientID)
	json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
}
