package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ryand2626/recruitment-pipeline/internal/actors"
	"github.com/ryand2626/recruitment-pipeline/internal/config"
	"github.com/ryand2626/recruitment-pipeline/internal/pipeline"
	"github.com/ryand2626/recruitment-pipeline/internal/titlefile"
)

var (
	cfgFile string
	verbose bool

	flagTitles    []string
	titleFile     string
	sourceText    string
	stageNames    []string
	modeName      string
	threshold     float64
	location      string
	maxItems      int
	actorIDs      []string
	overrideSpecs []string
	jsonOut       bool
)

var rootCmd = &cobra.Command{
	Use:   "recruitment-pipeline",
	Short: "Job outreach pipeline for boutique recruitment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgFile,
		"config",
		"c",
		"",
		"path to config file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"enable debug logging",
	)

	rootCmd.Flags().StringSliceVarP(&flagTitles, "title", "t", nil, "target job title (repeatable)")
	rootCmd.Flags().StringVarP(&titleFile, "file", "f", "", "path to a .txt or .csv file of job titles")
	rootCmd.Flags().StringVar(&sourceText, "source-text", "", "free-form context for the run")
	rootCmd.Flags().StringSliceVar(&stageNames, "stages", []string{"scrape", "enrich", "outreach"}, "pipeline stages to run")
	rootCmd.Flags().StringVar(&modeName, "mode", "Balanced", "processing mode (Fast, Balanced, Thorough)")
	rootCmd.Flags().Float64Var(&threshold, "threshold", 0.75, "confidence threshold between 0 and 1")
	rootCmd.Flags().StringVar(&location, "location", "", "location to scrape (defaults to config)")
	rootCmd.Flags().IntVar(&maxItems, "max-items", 0, "max postings to scrape (defaults to config)")
	rootCmd.Flags().StringSliceVar(&actorIDs, "actor", nil, "actor ID to run (repeatable, defaults to config)")
	rootCmd.Flags().StringArrayVar(&overrideSpecs, "set", nil, "actor input override as actor:key=value (repeatable)")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "print the full result as JSON")
}

func runPipeline() error {
	seeds, err := collectTitles(flagTitles, titleFile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(zapcore.WarnLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	catalog, err := actors.LoadCatalog(cfg.Actors.CatalogPath)
	if err != nil {
		return fmt.Errorf("load actor catalog: %w", err)
	}

	overrides, err := parseOverrides(overrideSpecs)
	if err != nil {
		return err
	}

	ids := actorIDs
	if len(ids) == 0 {
		ids = cfg.Actors.Enabled
	}
	configs, err := actors.Select(catalog, ids, overrides)
	if err != nil {
		return err
	}

	stages := make([]pipeline.Stage, 0, len(stageNames))
	for _, s := range stageNames {
		stages = append(stages, pipeline.Stage(s))
	}

	loc := location
	if loc == "" {
		loc = cfg.Scrape.Location
	}
	items := maxItems
	if items <= 0 {
		items = cfg.Scrape.MaxItems
	}

	params := pipeline.Params{
		SourceText:          sourceText,
		TargetTitles:        seeds,
		ConfidenceThreshold: threshold,
		Mode:                pipeline.Mode(modeName),
		Stages:              stages,
		Actors:              configs,
		Location:            loc,
		MaxItems:            items,
		Concurrency:         cfg.Scrape.ConcurrentRequests,
		RequestDelay:        time.Duration(cfg.Scrape.RequestDelayMillis) * time.Millisecond,
		Email:               cfg.Email,
	}

	fmt.Printf("Got %d target job titles.\n", len(seeds))
	fmt.Println("--- Running Pipeline ---")

	progress := make(chan pipeline.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			fmt.Printf("[%s] %s\n", update.Type, update.Message)
		}
	}()

	runner := &pipeline.Runner{
		Client:   config.NewTrackerClient(cfg),
		Logger:   logger,
		Progress: progress,
	}
	res, runErr := runner.Run(context.Background(), params)
	close(progress)
	<-done

	fmt.Println("--- Run Result ---")

	if jsonOut {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
		return runErr
	}

	fmt.Println(res.Message)
	for _, row := range res.OutputTable {
		fmt.Printf("%v | %v | %v | %v | %v\n",
			shortJobID(fmt.Sprintf("%v", row["job_id"])),
			row["company"], row["title"], row["location"], row["email_status"])
	}
	return runErr
}

func loadConfig() (config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func collectTitles(seeds []string, path string) ([]string, error) {
	out := append([]string(nil), seeds...)
	if path != "" {
		fromFile, err := titlefile.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("parse title file: %w", err)
		}
		out = append(out, fromFile...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no job titles given (use --title or --file)")
	}
	return out, nil
}

func parseOverrides(specs []string) (map[string]map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]map[string]string)
	for _, spec := range specs {
		actor, rest, ok := strings.Cut(spec, ":")
		key, value, ok2 := strings.Cut(rest, "=")
		if !ok || !ok2 || actor == "" || key == "" {
			return nil, fmt.Errorf("invalid override %q (want actor:key=value)", spec)
		}
		if overrides[actor] == nil {
			overrides[actor] = make(map[string]string)
		}
		overrides[actor][key] = value
	}
	return overrides, nil
}

func shortJobID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
