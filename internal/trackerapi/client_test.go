package trackerapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/jobs", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "queued", r.URL.Query().Get("email_status"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs":[
			{"id":"j-1","company":"Acme Capital","title":"M&A Analyst","location":"London","source":"LinkedIn","contact_email":"jane@acme.example","email_status":"queued"},
			{"id":"j-2","company":"Beta Partners","title":"Investment Banking Associate","location":"New York","source":"Indeed","email_status":"queued"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	jobs, err := c.ListJobs(context.Background(), JobsQuery{Limit: 50, EmailStatus: EmailStatusQueued})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "j-1", jobs[0].ID)
	assert.Equal(t, "Acme Capital", jobs[0].Company)
	assert.Equal(t, SourceLinkedIn, jobs[0].Source)
	assert.Equal(t, EmailStatusQueued, jobs[0].EmailStatus)
	assert.Equal(t, "jane@acme.example", jobs[0].ContactEmail)
	assert.Equal(t, "Investment Banking Associate", jobs[1].Title)
}

func TestListJobsNoFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"jobs":[]}`))
	}))
	defer srv.Close()

	jobs, err := NewClient(srv.URL).ListJobs(context.Background(), JobsQuery{})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestListJobsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database unavailable"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListJobs(context.Background(), JobsQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestUpdateEmailStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/jobs/j-7", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"email_status": "queued"}, body)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdateEmailStatus(context.Background(), "j-7", EmailStatusQueued)
	require.NoError(t, err)
}

func TestUpdateEmailStatusValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	assert.Error(t, c.UpdateEmailStatus(context.Background(), "", EmailStatusQueued))
	assert.Error(t, c.UpdateEmailStatus(context.Background(), "j-1", EmailStatus("bogus")))
}

func TestUpdateEmailStatusNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdateEmailStatus(context.Background(), "gone", EmailStatusSent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTriggerScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/trigger/scrape", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "London, United Kingdom", body["location"])
		assert.Equal(t, float64(50), body["maxItems"])

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).TriggerScrape(context.Background(), ScrapeRequest{
		Location: "London, United Kingdom",
		MaxItems: 50,
	})
	require.NoError(t, err)
}

func TestTriggerScrapeEmptyLocation(t *testing.T) {
	err := NewClient("http://127.0.0.1:0").TriggerScrape(context.Background(), ScrapeRequest{MaxItems: 10})
	assert.Error(t, err)
}

func TestTriggerOutreach(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/trigger/outreach", r.URL.Path)

		var body OutreachRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"j-1"}, body.JobIDs)
		assert.Equal(t, "Harper & Co", body.EmailConfig.FirmName)
		require.Len(t, body.PersonalizedEmails, 1)
		assert.Equal(t, "j-1", body.PersonalizedEmails[0].JobID)
		assert.NotEmpty(t, body.PersonalizedEmails[0].EmailTemplate.SubjectLines)

		_, _ = w.Write([]byte(`{"status":"queued","queued":1}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).TriggerOutreach(context.Background(), OutreachRequest{
		JobIDs: []string{"j-1"},
		EmailConfig: EmailConfig{
			FirmName:    "Harper & Co",
			SenderName:  "Alex Harper",
			SenderEmail: "alex@harper.example",
			Tone:        "Professional",
		},
		PersonalizedEmails: []PersonalizedEmail{{
			JobID: "j-1",
			Job:   Job{ID: "j-1", Company: "Acme Capital", Title: "M&A Analyst"},
			EmailTemplate: EmailTemplate{
				SubjectLines: []string{"Candidates for your M&A Analyst search"},
				EmailBody:    "Hello...",
			},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "queued", resp["status"])
}

func TestTriggerOutreachNoJobs(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:0").TriggerOutreach(context.Background(), OutreachRequest{})
	assert.Error(t, err)
}

func TestJobsQueryToValues(t *testing.T) {
	tests := []struct {
		name  string
		query JobsQuery
		want  string
	}{
		{"empty", JobsQuery{}, ""},
		{"limit only", JobsQuery{Limit: 25}, "limit=25"},
		{"status only", JobsQuery{EmailStatus: EmailStatusNew}, "email_status=new"},
		{"both", JobsQuery{Limit: 100, EmailStatus: EmailStatusSent}, "email_status=sent&limit=100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.ToValues().Encode())
		})
	}
}

func TestEmailStatusValid(t *testing.T) {
	for _, s := range []EmailStatus{EmailStatusNew, EmailStatusQueued, EmailStatusSent, EmailStatusReplied} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, EmailStatus("opened").Valid())
	assert.False(t, EmailStatus("").Valid())
}
