package trackerapi

import (
	"context"
	"fmt"
	"net/http"
)

// TriggerScrape asks the tracker service to start a scraping run for a
// location. The service answers 200 or 202 once the run is accepted; results
// land in the jobs store asynchronously.
func (c *Client) TriggerScrape(ctx context.Context, req ScrapeRequest) error {
	if req.Location == "" {
		return fmt.Errorf("scrape location is empty")
	}
	if err := c.doCheck(ctx, http.MethodPost, "/trigger/scrape", nil, req); err != nil {
		return fmt.Errorf("trigger scrape: %w", err)
	}
	return nil
}

// TriggerOutreach hands a personalized email batch to the service's delivery
// worker. The response body belongs to the service and is returned untouched.
func (c *Client) TriggerOutreach(ctx context.Context, req OutreachRequest) (map[string]any, error) {
	if len(req.JobIDs) == 0 {
		return nil, fmt.Errorf("no job ids in outreach request")
	}
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/trigger/outreach", nil, req, &out); err != nil {
		return nil, fmt.Errorf("trigger outreach: %w", err)
	}
	return out, nil
}
