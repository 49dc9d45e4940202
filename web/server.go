package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ryand2626/recruitment-pipeline/web/backend"
)

// HandleBack registers the JSON/SSE API routes on mux.
func HandleBack(mux *http.ServeMux, api *backend.PipelineAPI) {
	mux.HandleFunc("/api/run", api.HandleRun)
	mux.HandleFunc("/api/progress", api.HandleProgress)
	mux.HandleFunc("/api/result", api.HandleResult)
	mux.HandleFunc("/api/cancel", api.HandleCancel)
	mux.HandleFunc("/api/queue", api.HandleQueue)
}

// RunServer serves mux on addr until interrupted, then shuts down gracefully.
func RunServer(mux *http.ServeMux, addr string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
