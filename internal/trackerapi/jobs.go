package trackerapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type jobsResponse struct {
	Jobs []Job `json:"jobs"`
}

// ListJobs fetches jobs from the tracker, filtered server-side by the query.
func (c *Client) ListJobs(ctx context.Context, q JobsQuery) ([]Job, error) {
	var resp jobsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/jobs", q.ToValues(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return resp.Jobs, nil
}

// UpdateEmailStatus moves one job to a new outreach lifecycle status.
func (c *Client) UpdateEmailStatus(ctx context.Context, jobID string, status EmailStatus) error {
	if jobID == "" {
		return fmt.Errorf("job id is empty")
	}
	if !status.Valid() {
		return fmt.Errorf("invalid email status %q", status)
	}
	body := struct {
		EmailStatus EmailStatus `json:"email_status"`
	}{EmailStatus: status}

	endpoint := "/api/jobs/" + url.PathEscape(jobID)
	if err := c.doJSON(ctx, http.MethodPut, endpoint, nil, body, nil); err != nil {
		return fmt.Errorf("update job %s: %w", jobID, err)
	}
	return nil
}
