package trackerapi

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// EmailStatus tracks where a job sits in the outreach lifecycle.
type EmailStatus string

const (
	EmailStatusNew     EmailStatus = "new"
	EmailStatusQueued  EmailStatus = "queued"
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusReplied EmailStatus = "replied"
)

// Valid reports whether s is one of the lifecycle statuses the service
// accepts.
func (s EmailStatus) Valid() bool {
	switch s {
	case EmailStatusNew, EmailStatusQueued, EmailStatusSent, EmailStatusReplied:
		return true
	}
	return false
}

// Source identifies which scraping channel collected a job.
type Source string

const (
	SourceLinkedIn Source = "LinkedIn"
	SourceIndeed   Source = "Indeed"
	SourceApify    Source = "Apify"
)

// Job is one scraped job posting as the tracker service stores it.
// Timestamps stay strings: the service owns their format and we only ever
// display them.
type Job struct {
	ID             string      `json:"id"`
	Company        string      `json:"company"`
	Title          string      `json:"title"`
	Location       string      `json:"location"`
	Source         Source      `json:"source"`
	ContactEmail   string      `json:"contact_email,omitempty"`
	CollectedAt    string      `json:"collected_at,omitempty"`
	EmailStatus    EmailStatus `json:"email_status,omitempty"`
	EmailSentAt    string      `json:"email_sent_at,omitempty"`
	EmailOpenedAt  string      `json:"email_opened_at,omitempty"`
	EmailClickedAt string      `json:"email_clicked_at,omitempty"`
	EmailRepliedAt string      `json:"email_replied_at,omitempty"`
	ReplySentiment string      `json:"reply_sentiment,omitempty"`
}

// JobsQuery are the filters the jobs endpoint evaluates server-side. Finer
// filtering (company, title, source) happens client-side on the result.
type JobsQuery struct {
	Limit       int         `url:"limit,omitempty"`
	EmailStatus EmailStatus `url:"email_status,omitempty"`
}

// ScrapeRequest is the body for the scrape trigger. Field names are part of
// the service contract, maxItems included.
type ScrapeRequest struct {
	Location string `json:"location"`
	MaxItems int    `json:"maxItems"`
}

// EmailConfig carries the sender identity and tone for an outreach batch.
type EmailConfig struct {
	FirmName    string `json:"firm_name"`
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Tone        string `json:"tone"`
}

// EmailTemplate is the rendered subject/body material for one job.
type EmailTemplate struct {
	SubjectLines []string `json:"subject_lines"`
	EmailBody    string   `json:"email_body"`
}

// PersonalizedEmail pairs a job with the template rendered for it.
type PersonalizedEmail struct {
	JobID         string        `json:"job_id"`
	Job           Job           `json:"job"`
	EmailTemplate EmailTemplate `json:"email_template"`
}

// OutreachRequest is the body for the outreach trigger.
type OutreachRequest struct {
	JobIDs             []string            `json:"job_ids"`
	EmailConfig        EmailConfig         `json:"email_config"`
	PersonalizedEmails []PersonalizedEmail `json:"personalized_emails"`
}

// ToValues converts JobsQuery to url.Values for the request.
func (q JobsQuery) ToValues() url.Values {
	v := url.Values{}
	rv := reflect.ValueOf(q)
	rt := reflect.TypeOf(q)

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag := sf.Tag.Get("url")
		if tag == "" {
			continue
		}
		parts := strings.Split(tag, ",")
		name := parts[0]
		omitempty := false
		for _, p := range parts[1:] {
			if p == "omitempty" {
				omitempty = true
			}
		}
		fv := rv.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}
		v.Add(name, strings.TrimSpace(fmt.Sprintf("%v", fv.Interface())))
	}
	return v
}
