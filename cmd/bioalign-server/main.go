// Command bioalign-server provides a REST API for alignment and folding.
//
// Usage:
//
//	bioalign-server [options]
//
// Options:
//
//	-port        Port to listen on (default: 8080)
//	-host        Host to bind to (default: localhost)
//	-log-level   debug, info, warn or error (default: info)
//	-log-format  text or json (default: text)
//	-max-paths   Maximum optimal paths per request (default: 10000)
//
// Every option can also be set through a BIOALIGN_* environment variable;
// flags win over the environment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aria-lang/bioalign-go/api/handlers"
	"github.com/aria-lang/bioalign-go/api/middleware"
	"github.com/aria-lang/bioalign-go/internal/config"
	"github.com/aria-lang/bioalign-go/internal/engine"
	"github.com/aria-lang/bioalign-go/internal/logging"
)

func main() {
	cfg := config.Default()
	if err := cfg.FromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(cfg, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shut down", slog.String("error", err.Error()))
			os.Exit(1)
		}
		close(done)
	}()

	logger.Info("bioalign API server starting", slog.String("addr", "http://"+cfg.Addr()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen", slog.String("addr", cfg.Addr()), slog.String("error", err.Error()))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

func newRouter(cfg *config.Config, logger *slog.Logger) http.Handler {
	svc := engine.NewService(logger, engine.Limits{
		MaxPaths:          cfg.MaxPaths,
		MaxSequenceLength: cfg.MaxSequenceLength,
	})
	h := handlers.New(svc, handlers.Defaults{
		Matrix:    cfg.Matrix,
		Gap:       cfg.Gap,
		GapOpen:   cfg.GapOpen,
		GapExtend: cfg.GapExtend,
		Loop:      cfg.Loop,
	})

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", h.Register)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(homePage))
	})

	return r
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>bioalign API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>bioalign API</h1>
    <p>Optimal global alignment and RNA secondary structure prediction.</p>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/align/global</code>
        <p>Needleman-Wunsch alignment with a linear gap cost.</p>
        <pre>{"sequences": ["AGTC", "ATC"], "gap": -2}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/align/affine</code>
        <p>Gotoh alignment with affine gap costs.</p>
        <pre>{"sequences": ["HEAGAWGHEE", "PAWHEAE"], "matrix": "blosum62", "open": -10, "extend": -1}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/align/three</code>
        <p>Needleman-Wunsch alignment of three sequences.</p>
        <pre>{"sequences": ["ACGT", "AGT", "ACT"], "gap": -1}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/fold/nussinov</code>
        <p>Nussinov maximum base-pairing structure.</p>
        <pre>{"sequence": "GGGAAAUCC", "loop": 3}</pre>
    </div>
</body>
</html>`
