package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ryand2626/recruitment-pipeline/internal/actors"
	"github.com/ryand2626/recruitment-pipeline/internal/outreach"
	"github.com/ryand2626/recruitment-pipeline/internal/titles"
	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

// Runner executes pipeline runs against the tracker service.
type Runner struct {
	Client   *trackerapi.Client
	Logger   *zap.Logger
	Progress chan ProgressUpdate
}

func (r *Runner) baseLogger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

// Run executes the selected stages in their canonical order. The returned
// Result is always usable, partial output included; err is non-nil when the
// run ends in error status.
func (r *Runner) Run(ctx context.Context, p Params) (Result, error) {
	p.normalize()

	res := Result{
		RunID:      uuid.New().String(),
		Status:     StatusSuccess,
		OutputJSON: make(map[string]any),
	}

	logger, buf := newRunLogger(r.baseLogger())
	logger = logger.With(zap.String("run_id", res.RunID))

	if err := p.Validate(); err != nil {
		logger.Error("invalid run parameters", zap.Error(err))
		res.Status = StatusError
		res.Message = fmt.Sprintf("Invalid run parameters: %v", err)
		res.Logs = buf.String()
		r.emit("error", res.Message, nil)
		return res, err
	}

	r.emit("info", "pipeline run starting", map[string]any{"run_id": res.RunID})
	logger.Info("pipeline run starting",
		zap.Strings("stages", stageNames(p.Stages)),
		zap.String("mode", string(p.Mode)),
		zap.Bool("use_apify", p.UseApify()),
	)

	expanded := titles.Expand(p.TargetTitles)
	logger.Info("expanded target titles",
		zap.Int("seeds", len(p.TargetTitles)),
		zap.Int("expanded", len(expanded)),
	)

	res.OutputJSON["expanded_titles"] = expanded
	res.OutputJSON["params"] = map[string]any{
		"confidence_threshold": p.ConfidenceThreshold,
		"processing_mode":      string(p.Mode),
		"pipeline_stages":      stageNames(p.Stages),
		"use_apify":            p.UseApify(),
		"scraping_settings": map[string]any{
			"concurrentRequests": p.Concurrency,
			"requestDelay":       p.RequestDelay.Milliseconds(),
		},
	}

	// Stages are independent against the tracker, so one failure does not
	// stop the rest; the run still reports error status at the end.
	var failed []string
	var firstErr error
	for _, stage := range AllStages() {
		if !p.HasStage(stage) {
			continue
		}
		var err error
		switch stage {
		case StageScrape:
			err = r.runScrape(ctx, logger, p, expanded, &res)
		case StageEnrich:
			err = r.runEnrich(ctx, logger, p, expanded, &res)
		case StageOutreach:
			err = r.runOutreach(ctx, logger, p, &res)
		}
		if err != nil {
			logger.Error("stage failed", zap.String("stage", string(stage)), zap.Error(err))
			r.emit("error", fmt.Sprintf("%s stage failed: %v", stage, err), nil)
			failed = append(failed, string(stage))
			if firstErr == nil {
				firstErr = fmt.Errorf("%s stage: %w", stage, err)
			}
			continue
		}
		r.emit("progress", fmt.Sprintf("%s stage completed", stage), nil)
	}

	if len(failed) > 0 {
		res.Status = StatusError
		res.Message = fmt.Sprintf("Pipeline run %s finished with failed stages: %s", shortID(res.RunID), strings.Join(failed, ", "))
	} else {
		res.Message = fmt.Sprintf("Pipeline run %s completed successfully", shortID(res.RunID))
	}
	logger.Info("pipeline run finished", zap.String("status", res.Status))
	r.emit("complete", res.Message, map[string]any{"status": res.Status})

	res.Logs = buf.String()
	return res, firstErr
}

func (r *Runner) runScrape(ctx context.Context, logger *zap.Logger, p Params, expanded []string, res *Result) error {
	maxItems := p.Mode.MaxItems(p.MaxItems)
	logger.Info("scrape stage starting",
		zap.String("location", p.Location),
		zap.Int("max_items", maxItems),
	)

	payloads := make([]map[string]any, 0, len(p.Actors))
	for _, cfg := range p.Actors {
		payloads = append(payloads, map[string]any{
			"actorId": cfg.ActorID,
			"input":   actors.BuildPayload(cfg, expanded, "", p.Location),
		})
		logger.Info("prepared actor payload", zap.String("actor", cfg.ActorID))
	}

	req := trackerapi.ScrapeRequest{Location: p.Location, MaxItems: maxItems}
	scrapeOut := map[string]any{
		"request":        req,
		"actor_payloads": payloads,
	}
	res.OutputJSON["scrape"] = scrapeOut

	if err := r.Client.TriggerScrape(ctx, req); err != nil {
		return err
	}
	scrapeOut["accepted"] = true
	logger.Info("scrape run accepted", zap.String("location", req.Location), zap.Int("max_items", req.MaxItems))
	return nil
}

func (r *Runner) runEnrich(ctx context.Context, logger *zap.Logger, p Params, expanded []string, res *Result) error {
	jobs, err := r.Client.ListJobs(ctx, trackerapi.JobsQuery{Limit: 1000})
	if err != nil {
		return err
	}
	logger.Info("fetched jobs for enrichment", zap.Int("jobs", len(jobs)))

	tmpl := contactQueryTemplate(p.Actors)
	matched := 0
	table := make([]map[string]any, 0, len(jobs))
	var queries []string
	for _, job := range jobs {
		row := map[string]any{
			"job_id":       job.ID,
			"company":      job.Company,
			"title":        job.Title,
			"location":     job.Location,
			"source":       string(job.Source),
			"email_status": string(job.EmailStatus),
			"collected_at": job.CollectedAt,
		}
		if canonical, ok := titles.Suggest(job.Title); ok {
			row["canonical_title"] = canonical
		}
		if titleMatches(job.Title, expanded) {
			matched++
			row["title_matched"] = true
			if tmpl != "" {
				queries = append(queries, actors.RenderQuery(tmpl, job.Title, job.Company, job.Location))
			}
		}
		table = append(table, row)
	}

	logger.Info("enrichment finished",
		zap.Int("matched", matched),
		zap.Int("contact_queries", len(queries)),
	)

	res.OutputTable = table
	enrichOut := map[string]any{
		"total":   len(jobs),
		"matched": matched,
		"metrics": outreach.Summarize(jobs),
	}
	if len(queries) > 0 {
		enrichOut["contact_queries"] = queries
	}
	res.OutputJSON["enrich"] = enrichOut
	return nil
}

func (r *Runner) runOutreach(ctx context.Context, logger *zap.Logger, p Params, res *Result) error {
	queued, err := r.Client.ListJobs(ctx, trackerapi.JobsQuery{Limit: 1000, EmailStatus: trackerapi.EmailStatusQueued})
	if err != nil {
		return err
	}
	if len(queued) == 0 {
		logger.Info("outreach stage found no queued jobs")
		res.OutputJSON["outreach"] = map[string]any{"queued": 0}
		return nil
	}

	req, err := outreach.BuildBatch(queued, p.Email)
	if err != nil {
		return err
	}
	logger.Info("personalized outreach batch built",
		zap.Int("jobs", len(queued)),
		zap.String("tone", p.Email.Tone),
	)

	resp, err := r.Client.TriggerOutreach(ctx, req)
	if err != nil {
		return err
	}
	logger.Info("outreach batch handed to delivery worker", zap.Int("jobs", len(queued)))

	res.OutputJSON["outreach"] = map[string]any{
		"queued":   len(queued),
		"job_ids":  req.JobIDs,
		"response": resp,
	}
	return nil
}

// contactQueryTemplate finds the query template of the first selected actor
// that carries one.
func contactQueryTemplate(configs []actors.Config) string {
	for _, cfg := range configs {
		if tmpl, ok := cfg.Inputs["queries"].(string); ok {
			return tmpl
		}
	}
	return ""
}

func titleMatches(title string, expanded []string) bool {
	for _, t := range expanded {
		if strings.EqualFold(title, t) {
			return true
		}
	}
	return false
}

func stageNames(stages []Stage) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = string(s)
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
