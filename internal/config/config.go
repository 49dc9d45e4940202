// Package config loads the pipeline's INI configuration.
package config

import (
	"fmt"
	"time"

	"gopkg.in/ini.v1"

	"github.com/ryand2626/recruitment-pipeline/internal/outreach"
	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

// Tracker configures the connection to the job-tracking service.
type Tracker struct {
	BaseURL        string
	TimeoutSeconds int
	RateLimit      int
	RateBurst      int
}

// Scrape configures scraping runs.
type Scrape struct {
	Location           string
	MaxItems           int
	ConcurrentRequests int
	RequestDelayMillis int
}

// Actors configures actor selection for scraping runs.
type Actors struct {
	CatalogPath string
	Enabled     []string
}

type Config struct {
	Tracker Tracker
	Email   trackerapi.EmailConfig
	Scrape  Scrape
	Actors  Actors
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tracker: Tracker{
			TimeoutSeconds: 30,
			RateLimit:      5,
			RateBurst:      5,
		},
		Email: trackerapi.EmailConfig{
			Tone: string(outreach.ToneProfessional),
		},
		Scrape: Scrape{
			Location:           "United States",
			MaxItems:           50,
			ConcurrentRequests: 5,
			RequestDelayMillis: 1000,
		},
	}
}

// Load reads an INI configuration file. Keys the file leaves unset keep
// their defaults.
func Load(path string) (Config, error) {
	c := Default()
	f, err := ini.Load(path)
	if err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}

	tracker := f.Section("tracker")
	c.Tracker.BaseURL = tracker.Key("base_url").MustString(c.Tracker.BaseURL)
	c.Tracker.TimeoutSeconds = tracker.Key("timeout_seconds").MustInt(c.Tracker.TimeoutSeconds)
	c.Tracker.RateLimit = tracker.Key("rate_limit").MustInt(c.Tracker.RateLimit)
	c.Tracker.RateBurst = tracker.Key("rate_burst").MustInt(c.Tracker.RateBurst)

	email := f.Section("email")
	c.Email.FirmName = email.Key("firm_name").MustString(c.Email.FirmName)
	c.Email.SenderName = email.Key("sender_name").MustString(c.Email.SenderName)
	c.Email.SenderEmail = email.Key("sender_email").MustString(c.Email.SenderEmail)
	c.Email.Tone = email.Key("tone").MustString(c.Email.Tone)

	scrape := f.Section("scrape")
	c.Scrape.Location = scrape.Key("location").MustString(c.Scrape.Location)
	c.Scrape.MaxItems = scrape.Key("max_items").MustInt(c.Scrape.MaxItems)
	c.Scrape.ConcurrentRequests = scrape.Key("concurrent_requests").MustInt(c.Scrape.ConcurrentRequests)
	c.Scrape.RequestDelayMillis = scrape.Key("request_delay_ms").MustInt(c.Scrape.RequestDelayMillis)

	actors := f.Section("actors")
	c.Actors.CatalogPath = actors.Key("catalog").MustString(c.Actors.CatalogPath)
	if key := actors.Key("enabled"); key.String() != "" {
		c.Actors.Enabled = key.Strings(",")
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks value ranges. Email identity fields may stay empty here;
// commands that send email check them separately.
func (c Config) Validate() error {
	if c.Tracker.TimeoutSeconds <= 0 {
		return fmt.Errorf("tracker timeout must be positive, got %d", c.Tracker.TimeoutSeconds)
	}
	if c.Tracker.RateLimit <= 0 || c.Tracker.RateBurst <= 0 {
		return fmt.Errorf("tracker rate limit and burst must be positive")
	}
	if c.Scrape.MaxItems <= 0 {
		return fmt.Errorf("scrape max_items must be positive, got %d", c.Scrape.MaxItems)
	}
	if c.Scrape.ConcurrentRequests <= 0 {
		return fmt.Errorf("scrape concurrent_requests must be positive, got %d", c.Scrape.ConcurrentRequests)
	}
	if c.Scrape.RequestDelayMillis < 0 {
		return fmt.Errorf("scrape request_delay_ms must not be negative, got %d", c.Scrape.RequestDelayMillis)
	}
	if c.Email.Tone != "" && !outreach.Tone(c.Email.Tone).Valid() {
		return fmt.Errorf("unknown email tone %q", c.Email.Tone)
	}
	return nil
}

// NewTrackerClient builds a tracker client from the configuration.
func NewTrackerClient(c Config) *trackerapi.Client {
	client := trackerapi.NewClient(c.Tracker.BaseURL)
	client.SetTimeout(time.Duration(c.Tracker.TimeoutSeconds) * time.Second)
	client.SetRateLimit(c.Tracker.RateLimit, c.Tracker.RateBurst)
	return client
}
