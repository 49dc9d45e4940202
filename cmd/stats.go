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

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "A brief description of your command",
	Long: `A longer description that spans multiple lines and likely contains examples
and usage of using your command. For example:

Cobra is a CLI library for Go that empowers applications.
This application is a tool to generate the needed files
to quickly create a Cobra application.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := config.NewTrackerClient(cfg)
	ctx := context.Background()

	jobs, err := client.ListJobs(ctx, trackerapi.JobsQuery{Limit: 1000})
	if err != nil {
		return err
	}

	m := outreach.Summarize(jobs)

	fmt.Println("--- Outreach Stats ---")
	fmt.Printf("Total jobs:     %d\n", m.Total)
	fmt.Printf("New:            %d\n", m.New)
	fmt.Printf("Queued:         %d\n", m.Queued)
	fmt.Printf("Sent:           %d\n", m.Sent)
	fmt.Printf("Replied:        %d\n", m.Replied)
	fmt.Printf("Opened:         %d\n", m.Opened)
	fmt.Printf("Clicked:        %d\n", m.Clicked)
	fmt.Printf("Positive:       %d\n", m.Positive)
	fmt.Printf("Response rate:  %.1f%%\n", m.ResponseRate())
	fmt.Printf("Open rate:      %.1f%%\n", m.OpenRate())
	fmt.Printf("Companies:      %d\n", m.Companies)
	fmt.Printf("Locations:      %d\n", m.Locations)
	return nil
}
