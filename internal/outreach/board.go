package outreach

import (
	"strings"

	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

// Metrics summarizes the outreach funnel across a set of tracked jobs.
type Metrics struct {
	Total   int
	New     int
	Queued  int
	Sent    int
	Replied int

	Opened   int
	Clicked  int
	Positive int

	Companies int
	Locations int
}

// ResponseRate is replies as a percentage of sent emails.
func (m Metrics) ResponseRate() float64 {
	if m.Sent == 0 {
		return 0
	}
	return float64(m.Replied) / float64(m.Sent) * 100
}

// OpenRate is opened emails as a percentage of sent emails.
func (m Metrics) OpenRate() float64 {
	if m.Sent == 0 {
		return 0
	}
	return float64(m.Opened) / float64(m.Sent) * 100
}

// Summarize computes funnel metrics over a job list.
func Summarize(jobs []trackerapi.Job) Metrics {
	m := Metrics{Total: len(jobs)}
	companies := make(map[string]struct{})
	locations := make(map[string]struct{})

	for _, job := range jobs {
		switch job.EmailStatus {
		case trackerapi.EmailStatusNew:
			m.New++
		case trackerapi.EmailStatusQueued:
			m.Queued++
		case trackerapi.EmailStatusSent:
			m.Sent++
		case trackerapi.EmailStatusReplied:
			m.Replied++
		}
		if job.EmailOpenedAt != "" {
			m.Opened++
		}
		if job.EmailClickedAt != "" {
			m.Clicked++
		}
		if job.ReplySentiment == "positive" {
			m.Positive++
		}
		if job.Company != "" {
			companies[job.Company] = struct{}{}
		}
		if job.Location != "" {
			locations[job.Location] = struct{}{}
		}
	}
	m.Companies = len(companies)
	m.Locations = len(locations)
	return m
}

// Filter narrows a job list the way the board tabs do. Company, Title and
// Location match as case-insensitive substrings, Source and Status match
// exactly, and empty fields do not filter.
type Filter struct {
	Company  string
	Title    string
	Location string
	Source   trackerapi.Source
	Status   trackerapi.EmailStatus
}

// Apply returns the jobs passing every set filter field, in input order.
func (f Filter) Apply(jobs []trackerapi.Job) []trackerapi.Job {
	out := make([]trackerapi.Job, 0, len(jobs))
	for _, job := range jobs {
		if !f.matches(job) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func (f Filter) matches(job trackerapi.Job) bool {
	if f.Company != "" && !containsFold(job.Company, f.Company) {
		return false
	}
	if f.Title != "" && !containsFold(job.Title, f.Title) {
		return false
	}
	if f.Location != "" && !containsFold(job.Location, f.Location) {
		return false
	}
	if f.Source != "" && job.Source != f.Source {
		return false
	}
	if f.Status != "" && job.EmailStatus != f.Status {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
