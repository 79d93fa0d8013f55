// Package server boots and runs the HTTP application: configuration,
// Mongo, Redis, storage, the WebSocket hub, the middleware chain, the
// API routes and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pehnava/pehnava/app/routes"
	"github.com/pehnava/pehnava/config"
	"github.com/pehnava/pehnava/pkg/cache"
	"github.com/pehnava/pehnava/pkg/database"
	"github.com/pehnava/pehnava/pkg/logger"
	"github.com/pehnava/pehnava/pkg/metrics"
	"github.com/pehnava/pehnava/pkg/middleware"
	"github.com/pehnava/pehnava/pkg/reqid"
	"github.com/pehnava/pehnava/pkg/router"
	"github.com/pehnava/pehnava/pkg/storage"
	"github.com/pehnava/pehnava/pkg/ws"
)

// Run boots the application and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(ctx); err != nil {
			logger.Warn("mongo disconnect", "error", err)
		}
	}()

	// Redis is optional: without it the product list is just uncached.
	if err := cache.Connect(); err != nil {
		logger.Warn("running without cache", "error", err)
	}

	storage.Connect()

	// Optional: mirror logs into Mongo for the ops dashboard.
	if config.Get("LOG_MONGO", "false") == "true" {
		mh, err := logger.NewMongoHandler(config.MongoURI(), config.MongoDatabase(), "logs")
		if err != nil {
			logger.Warn("mongo log handler disabled", "error", err)
		} else {
			logger.Attach(mh)
			defer mh.Close()
		}
	}

	hub := ws.NewHub()
	go hub.Run()

	r := NewRouter(hub)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// NewRouter assembles the middleware chain and the API routes. Split
// out from Run so the CLI can list routes without starting a server.
func NewRouter(hub *ws.Hub) *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	routes.RegisterAPI(r, hub)
	return r
}
