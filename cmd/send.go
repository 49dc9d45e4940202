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
	sendTone        string
	sendConcurrency int
	sendDryRun      bool
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send outreach emails for all queued jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend()
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendTone, "tone", "", "email tone (Professional, Friendly, Direct)")
	sendCmd.Flags().IntVar(&sendConcurrency, "concurrency", 5, "concurrent sends")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "preview emails without sending")
}

func runSend() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if sendTone != "" {
		cfg.Email.Tone = sendTone
	}
	if !outreach.Tone(cfg.Email.Tone).Valid() {
		return fmt.Errorf("unknown email tone %q", cfg.Email.Tone)
	}

	client := config.NewTrackerClient(cfg)
	ctx := context.Background()

	fmt.Println("--- Fetching Queued Jobs ---")

	jobs, err := client.ListJobs(ctx, trackerapi.JobsQuery{
		Limit:       1000,
		EmailStatus: trackerapi.EmailStatusQueued,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Got %d queued jobs.\n", len(jobs))
	if len(jobs) == 0 {
		return nil
	}

	if sendDryRun {
		fmt.Println("--- Preview ---")
		for _, job := range jobs {
			email, err := outreach.BuildPersonalized(job, cfg.Email)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s): %s\n", job.Company, shortJobID(job.ID), email.EmailTemplate.SubjectLines[0])
		}
		return nil
	}

	fmt.Println("--- Sending Outreach ---")

	sender := outreach.Sender{
		Client:       client,
		Config:       cfg.Email,
		Concurrency:  sendConcurrency,
		ShowProgress: true,
	}
	results := sender.Send(ctx, jobs)
	failed := outreach.Failed(results)

	fmt.Printf("\nSent %d emails, %d failed.\n", len(results)-failed, failed)
	if failed > 0 {
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("  %s (%s): %v\n", shortJobID(r.JobID), r.Company, r.Err)
			}
		}
		return fmt.Errorf("%d of %d sends failed", failed, len(results))
	}
	return nil
}
