/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryand2626/recruitment-pipeline/internal/config"
	"github.com/ryand2626/recruitment-pipeline/internal/outreach"
	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

var (
	jobsStatus   string
	jobsCompany  string
	jobsTitle    string
	jobsLocation string
	jobsSource   string
	jobsLimit    int
)

// jobsCmd represents the jobs command
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and manage tracked jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked jobs with optional filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJobsList()
	},
}

var jobsQueueCmd = &cobra.Command{
	Use:   "queue <job-id> [job-id ...]",
	Short: "Queue jobs for outreach",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJobsQueue(args)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsQueueCmd)

	jobsListCmd.Flags().StringVar(&jobsStatus, "status", "", "filter by email status (new, queued, sent, replied)")
	jobsListCmd.Flags().StringVar(&jobsCompany, "company", "", "filter by company substring")
	jobsListCmd.Flags().StringVar(&jobsTitle, "title", "", "filter by title substring")
	jobsListCmd.Flags().StringVar(&jobsLocation, "location", "", "filter by location substring")
	jobsListCmd.Flags().StringVar(&jobsSource, "source", "", "filter by source (LinkedIn, Indeed, Apify)")
	jobsListCmd.Flags().IntVar(&jobsLimit, "limit", 1000, "max jobs to fetch")
}

func runJobsList() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := config.NewTrackerClient(cfg)
	ctx := context.Background()

	jobs, err := client.ListJobs(ctx, trackerapi.JobsQuery{
		Limit:       jobsLimit,
		EmailStatus: trackerapi.EmailStatus(jobsStatus),
	})
	if err != nil {
		return err
	}

	filter := outreach.Filter{
		Company:  jobsCompany,
		Title:    jobsTitle,
		Location: jobsLocation,
		Source:   trackerapi.Source(jobsSource),
	}
	filtered := filter.Apply(jobs)

	fmt.Printf("Got %d jobs.\n", len(filtered))
	for _, job := range filtered {
		status := job.EmailStatus
		if status == "" {
			status = trackerapi.EmailStatusNew
		}
		fmt.Printf("%-8s  %-10s  %-25s  %-30s  %s\n",
			shortJobID(job.ID), status, job.Company, job.Title, job.Location)
	}
	return nil
}

func runJobsQueue(jobIDs []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := config.NewTrackerClient(cfg)
	ctx := context.Background()

	fmt.Printf("Queueing %d jobs for outreach.\n", len(jobIDs))

	queued, err := outreach.QueueJobs(ctx, client, jobIDs)
	fmt.Printf("Queued %d jobs.\n", queued)
	return err
}
