/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/ryand2626/recruitment-pipeline/web"
	"github.com/ryand2626/recruitment-pipeline/web/backend"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web dashboard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":7860", "address to listen on")
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(zapcore.InfoLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	api, err := backend.NewPipelineAPI(cfg, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	web.HandleBack(mux, api)
	web.RunServer(mux, serveAddr, logger)
	return nil
}
