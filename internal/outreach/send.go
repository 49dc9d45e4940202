package outreach

import (
	"context"
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

const defaultConcurrency = 5

// QueueJobs moves jobs into the outreach queue one status update at a time.
// Failures do not stop the batch; the count of queued jobs is returned along
// with an error naming the jobs that failed.
func QueueJobs(ctx context.Context, client *trackerapi.Client, jobIDs []string) (int, error) {
	var failed []string
	var firstErr error
	for _, id := range jobIDs {
		if err := client.UpdateEmailStatus(ctx, id, trackerapi.EmailStatusQueued); err != nil {
			failed = append(failed, id)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(failed) > 0 {
		return len(jobIDs) - len(failed), fmt.Errorf("queueing failed for %s: %w", strings.Join(failed, ", "), firstErr)
	}
	return len(jobIDs), nil
}

// Sender delivers personalized batches through the tracker service, one
// outreach trigger per job the way the board sends them.
type Sender struct {
	Client      *trackerapi.Client
	Config      trackerapi.EmailConfig
	Concurrency int

	// ShowProgress renders a terminal progress bar while sending.
	ShowProgress bool
}

// SendResult records the outcome for one job.
type SendResult struct {
	JobID   string
	Company string
	Err     error
}

// Send builds a personalized email for every job and hands each to the
// tracker's outreach worker. Failures are collected per job rather than
// aborting the batch.
func (s *Sender) Send(ctx context.Context, jobs []trackerapi.Job) []SendResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var bar *progressbar.ProgressBar
	if s.ShowProgress {
		bar = progressbar.Default(int64(len(jobs)), "sending")
	}

	results := make([]SendResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = SendResult{
				JobID:   job.ID,
				Company: job.Company,
				Err:     s.sendOne(ctx, job),
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Sender) sendOne(ctx context.Context, job trackerapi.Job) error {
	pe, err := BuildPersonalized(job, s.Config)
	if err != nil {
		return err
	}
	_, err = s.Client.TriggerOutreach(ctx, trackerapi.OutreachRequest{
		JobIDs:             []string{job.ID},
		EmailConfig:        s.Config,
		PersonalizedEmails: []trackerapi.PersonalizedEmail{pe},
	})
	return err
}

// Failed counts the results carrying an error.
func Failed(results []SendResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
