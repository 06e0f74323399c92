package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"jobly/features/company"
	"jobly/features/job"
	"jobly/features/stats"
	"jobly/internal/auth"
	"jobly/internal/config"
	"jobly/internal/events"
	"jobly/internal/middleware"
)

type App struct {
	Handler   http.Handler
	Jobs      *job.Service
	Companies *company.Service

	port int
}

func New(
	cfg *config.Config,
	db *sql.DB,
	pub events.Publisher,
	logger *slog.Logger,
) (*App, error) {
	if db == nil {
		return nil, errors.New("app: nil database")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET", config.ErrMissingRequired)
	}

	emitter := events.NewEmitter(pub, logger)

	// Feature: Job
	jobRepo := job.NewPostgresRepo(db)
	jobService := job.NewService(jobRepo, emitter)
	jobHandler := job.NewHandler(jobService)

	// Feature: Company
	companyRepo := company.NewPostgresRepo(db)
	companyService := company.NewService(companyRepo, jobRepo, emitter)
	companyHandler := company.NewHandler(companyService)

	// Feature: Stats
	statsHandler := stats.NewHandler(jobRepo, companyRepo)

	// Middleware: CORS
	enableCORS := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PATCH, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}
	route := func(h http.HandlerFunc) http.Handler {
		return middleware.CorrelationID(enableCORS(h))
	}

	// Routes
	mux := http.NewServeMux()

	mux.Handle("POST /jobs", route(auth.RequireAdmin(jobHandler.Create)))
	mux.Handle("GET /jobs", route(jobHandler.List))
	mux.Handle("GET /jobs/{id}", route(jobHandler.Get))
	mux.Handle("PATCH /jobs/{id}", route(auth.RequireAdmin(jobHandler.Update)))
	mux.Handle("DELETE /jobs/{id}", route(auth.RequireAdmin(jobHandler.Delete)))

	mux.Handle("POST /companies", route(auth.RequireAdmin(companyHandler.Create)))
	mux.Handle("GET /companies", route(companyHandler.List))
	mux.Handle("GET /companies/{handle}", route(companyHandler.Get))
	mux.Handle("PATCH /companies/{handle}", route(auth.RequireAdmin(companyHandler.Update)))
	mux.Handle("DELETE /companies/{handle}", route(auth.RequireAdmin(companyHandler.Delete)))

	mux.Handle("GET /stats", route(statsHandler.GetStats))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	authority := auth.NewJWTAuthority(cfg.JWTSecret, cfg.TokenTTL())

	return &App{
		Handler:   auth.Authenticate(authority)(mux),
		Jobs:      jobService,
		Companies: companyService,
		port:      cfg.ServerPort,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.port),
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
