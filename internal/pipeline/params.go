// Package pipeline orchestrates scrape, enrich and outreach runs against the
// tracker service and formats their results for display.
package pipeline

import (
	"fmt"
	"time"

	"github.com/ryand2626/recruitment-pipeline/internal/actors"
	"github.com/ryand2626/recruitment-pipeline/internal/outreach"
	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

// Stage names one phase of a run.
type Stage string

const (
	StageScrape   Stage = "scrape"
	StageEnrich   Stage = "enrich"
	StageOutreach Stage = "outreach"
)

// AllStages lists the stages in their execution order.
func AllStages() []Stage {
	return []Stage{StageScrape, StageEnrich, StageOutreach}
}

func validStage(s Stage) bool {
	switch s {
	case StageScrape, StageEnrich, StageOutreach:
		return true
	}
	return false
}

// Mode controls how aggressively the scrape stage collects.
type Mode string

const (
	ModeFast     Mode = "Fast"
	ModeBalanced Mode = "Balanced"
	ModeThorough Mode = "Thorough"
)

// MaxItems scales the configured collection budget for one scraping run:
// Fast halves it, Thorough doubles it.
func (m Mode) MaxItems(base int) int {
	switch m {
	case ModeFast:
		if base < 2 {
			return 1
		}
		return base / 2
	case ModeThorough:
		return base * 2
	default:
		return base
	}
}

func validMode(m Mode) bool {
	switch m {
	case ModeFast, ModeBalanced, ModeThorough:
		return true
	}
	return false
}

// Params configures one pipeline run.
type Params struct {
	SourceText          string
	TargetTitles        []string
	ConfidenceThreshold float64
	Mode                Mode
	Stages              []Stage
	Actors              []actors.Config

	Location     string
	MaxItems     int
	Concurrency  int
	RequestDelay time.Duration

	Email trackerapi.EmailConfig
}

// UseApify reports whether the run has actors configured.
func (p Params) UseApify() bool {
	return len(p.Actors) > 0
}

// HasStage reports whether the run includes the stage.
func (p Params) HasStage(s Stage) bool {
	for _, stage := range p.Stages {
		if stage == s {
			return true
		}
	}
	return false
}

// Validate checks p before a run starts.
func (p Params) Validate() error {
	if len(p.TargetTitles) == 0 {
		return fmt.Errorf("no target job titles")
	}
	if p.ConfidenceThreshold < 0 || p.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold %.2f out of range [0, 1]", p.ConfidenceThreshold)
	}
	if p.Mode != "" && !validMode(p.Mode) {
		return fmt.Errorf("unknown processing mode %q", p.Mode)
	}
	if len(p.Stages) == 0 {
		return fmt.Errorf("no pipeline stages selected")
	}
	for _, s := range p.Stages {
		if !validStage(s) {
			return fmt.Errorf("unknown pipeline stage %q", s)
		}
	}
	if p.HasStage(StageScrape) && p.Location == "" {
		return fmt.Errorf("scrape stage needs a location")
	}
	if p.HasStage(StageOutreach) {
		if p.Email.FirmName == "" || p.Email.SenderName == "" || p.Email.SenderEmail == "" {
			return fmt.Errorf("outreach stage needs firm_name, sender_name and sender_email")
		}
		if p.Email.Tone != "" && !outreach.Tone(p.Email.Tone).Valid() {
			return fmt.Errorf("unknown email tone %q", p.Email.Tone)
		}
	}
	return nil
}

// normalize fills the defaults a zero value leaves open.
func (p *Params) normalize() {
	if p.Mode == "" {
		p.Mode = ModeBalanced
	}
	if p.MaxItems <= 0 {
		p.MaxItems = 50
	}
	if p.Concurrency <= 0 {
		p.Concurrency = 5
	}
}
