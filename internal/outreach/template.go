// Package outreach builds personalized recruitment emails and drives the
// board-style view of the outreach funnel. Delivery itself stays with the
// tracker service; this package prepares batches and hands them over.
package outreach

import (
	"fmt"
	"strings"

	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

// Tone selects one of the built-in email voice presets.
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneFriendly     Tone = "Friendly"
	ToneDirect       Tone = "Direct"
)

// Valid reports whether t names a known preset.
func (t Tone) Valid() bool {
	_, ok := tonePresets[t]
	return ok
}

// Tones lists the available presets in display order.
func Tones() []Tone {
	return []Tone{ToneProfessional, ToneFriendly, ToneDirect}
}

type preset struct {
	subjects []string
	body     string
}

var tonePresets = map[Tone]preset{
	ToneProfessional: {
		subjects: []string{
			"Candidates for your {title} search",
			"Experienced {title} candidates for {company}",
		},
		body: `Hello,

I noticed {company} is hiring for a {title} role in {location}. {firm_name} works with a pool of vetted candidates in this space, and several match this profile closely.

Would you be open to a short call this week to see whether one of them fits?

Kind regards,
{sender_name}
{firm_name}`,
	},
	ToneFriendly: {
		subjects: []string{
			"Great {title} candidates for the {company} team",
			"Help filling your {title} role?",
		},
		body: `Hi there,

Saw that {company} is looking for a {title} in {location}. We work with some great people in exactly this space at {firm_name}, and a few of them would jump at this role.

Happy to share a couple of profiles if useful. Worth a quick chat?

Best,
{sender_name}`,
	},
	ToneDirect: {
		subjects: []string{
			"{title} candidates available now",
			"{title} shortlist for {company}",
		},
		body: `Hello,

{firm_name} has pre-screened {title} candidates available for {company} in {location}. If the role is still open, I can send over profiles today.

{sender_name}`,
	},
}

// BuildPersonalized renders the tone preset for one job. An empty tone falls
// back to Professional.
func BuildPersonalized(job trackerapi.Job, cfg trackerapi.EmailConfig) (trackerapi.PersonalizedEmail, error) {
	tone := Tone(cfg.Tone)
	if cfg.Tone == "" {
		tone = ToneProfessional
	}
	p, ok := tonePresets[tone]
	if !ok {
		return trackerapi.PersonalizedEmail{}, fmt.Errorf("unknown email tone %q", cfg.Tone)
	}

	r := strings.NewReplacer(
		"{title}", job.Title,
		"{company}", job.Company,
		"{location}", job.Location,
		"{firm_name}", cfg.FirmName,
		"{sender_name}", cfg.SenderName,
	)
	subjects := make([]string, len(p.subjects))
	for i, s := range p.subjects {
		subjects[i] = r.Replace(s)
	}

	return trackerapi.PersonalizedEmail{
		JobID: job.ID,
		Job:   job,
		EmailTemplate: trackerapi.EmailTemplate{
			SubjectLines: subjects,
			EmailBody:    r.Replace(p.body),
		},
	}, nil
}

// BuildBatch renders one personalized email per job and assembles the full
// outreach request for the tracker service.
func BuildBatch(jobs []trackerapi.Job, cfg trackerapi.EmailConfig) (trackerapi.OutreachRequest, error) {
	req := trackerapi.OutreachRequest{
		JobIDs:             make([]string, 0, len(jobs)),
		EmailConfig:        cfg,
		PersonalizedEmails: make([]trackerapi.PersonalizedEmail, 0, len(jobs)),
	}
	for _, job := range jobs {
		pe, err := BuildPersonalized(job, cfg)
		if err != nil {
			return trackerapi.OutreachRequest{}, fmt.Errorf("job %s: %w", job.ID, err)
		}
		req.JobIDs = append(req.JobIDs, job.ID)
		req.PersonalizedEmails = append(req.PersonalizedEmails, pe)
	}
	return req, nil
}
