package outreach

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

func TestQueueJobs(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		mu.Lock()
		seen = append(seen, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	queued, err := QueueJobs(context.Background(), trackerapi.NewClient(srv.URL), []string{"j-1", "j-2", "j-3"})
	require.NoError(t, err)
	assert.Equal(t, 3, queued)
	assert.Equal(t, []string{"/api/jobs/j-1", "/api/jobs/j-2", "/api/jobs/j-3"}, seen)
}

func TestQueueJobsPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/jobs/j-bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	queued, err := QueueJobs(context.Background(), trackerapi.NewClient(srv.URL), []string{"j-1", "j-bad", "j-3"})
	require.Error(t, err)
	assert.Equal(t, 2, queued)
	assert.Contains(t, err.Error(), "j-bad")
}

func TestSenderSend(t *testing.T) {
	var mu sync.Mutex
	received := make(map[string]trackerapi.OutreachRequest)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/trigger/outreach", r.URL.Path)

		var req trackerapi.OutreachRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.JobIDs, 1)

		mu.Lock()
		received[req.JobIDs[0]] = req
		mu.Unlock()

		_, _ = w.Write([]byte(`{"status":"queued"}`))
	}))
	defer srv.Close()

	jobs := []trackerapi.Job{
		{ID: "j-1", Company: "Acme Capital", Title: "M&A Analyst", Location: "London"},
		{ID: "j-2", Company: "Beta Partners", Title: "IB Analyst", Location: "New York"},
		{ID: "j-3", Company: "Gamma Advisors", Title: "M&A Director", Location: "London"},
	}

	s := &Sender{
		Client:      trackerapi.NewClient(srv.URL),
		Config:      testConfig,
		Concurrency: 2,
	}
	results := s.Send(context.Background(), jobs)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.Err, r.JobID)
	}
	assert.Equal(t, 0, Failed(results))

	require.Len(t, received, 3)
	for _, job := range jobs {
		req, ok := received[job.ID]
		require.True(t, ok, job.ID)
		require.Len(t, req.PersonalizedEmails, 1)
		assert.Equal(t, job.ID, req.PersonalizedEmails[0].JobID)
		assert.Contains(t, req.PersonalizedEmails[0].EmailTemplate.EmailBody, job.Company)
		assert.Equal(t, testConfig, req.EmailConfig)
	}
}

func TestSenderSendPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req trackerapi.OutreachRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.JobIDs) == 1 && req.JobIDs[0] == "j-2" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"smtp relay down"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"queued"}`))
	}))
	defer srv.Close()

	jobs := []trackerapi.Job{
		{ID: "j-1", Company: "Acme Capital", Title: "M&A Analyst"},
		{ID: "j-2", Company: "Beta Partners", Title: "IB Analyst"},
	}

	s := &Sender{Client: trackerapi.NewClient(srv.URL), Config: testConfig}
	results := s.Send(context.Background(), jobs)

	require.Len(t, results, 2)
	assert.Equal(t, 1, Failed(results))

	byID := make(map[string]SendResult)
	for _, r := range results {
		byID[r.JobID] = r
	}
	assert.NoError(t, byID["j-1"].Err)
	require.Error(t, byID["j-2"].Err)
	assert.Contains(t, byID["j-2"].Err.Error(), "smtp relay down")
}

func TestSenderSendEmpty(t *testing.T) {
	s := &Sender{Client: trackerapi.NewClient("http://127.0.0.1:0"), Config: testConfig}
	assert.Nil(t, s.Send(context.Background(), nil))
}
