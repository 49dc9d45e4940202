/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryand2626/recruitment-pipeline/internal/config"
	"github.com/ryand2626/recruitment-pipeline/internal/pipeline"
	"github.com/ryand2626/recruitment-pipeline/internal/trackerapi"
)

var (
	scrapeLocation string
	scrapeMaxItems int
	scrapeMode     string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "A brief description of your command",
	Long: `A longer description that spans multiple lines and likely contains examples
and usage of using your command. For example:

Cobra is a CLI library for Go that empowers applications.
This application is a tool to generate the needed files
to quickly create a Cobra application.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape()
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&scrapeLocation, "location", "", "location to scrape (defaults to config)")
	scrapeCmd.Flags().IntVar(&scrapeMaxItems, "max-items", 0, "max postings to scrape (defaults to config)")
	scrapeCmd.Flags().StringVar(&scrapeMode, "mode", "Balanced", "processing mode (Fast, Balanced, Thorough)")
}

func runScrape() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := config.NewTrackerClient(cfg)
	ctx := context.Background()

	loc := scrapeLocation
	if loc == "" {
		loc = cfg.Scrape.Location
	}
	items := scrapeMaxItems
	if items <= 0 {
		items = cfg.Scrape.MaxItems
	}
	items = pipeline.Mode(scrapeMode).MaxItems(items)

	fmt.Println("--- Triggering Scrape ---")

	req := trackerapi.ScrapeRequest{Location: loc, MaxItems: items}
	if err := client.TriggerScrape(ctx, req); err != nil {
		return fmt.Errorf("trigger scrape: %w", err)
	}

	fmt.Printf("Scrape accepted for %q (up to %d postings).\n", loc, items)
	return nil
}
