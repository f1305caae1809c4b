package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"pathways/internal/assist"
	"pathways/internal/audit"
	auditpg "pathways/internal/audit/store/postgres"
	"pathways/internal/forms"
	"pathways/internal/journey/handler"
	"pathways/internal/journey/service"
	"pathways/internal/journey/store"
	"pathways/internal/lookup"
	"pathways/internal/platform/config"
	"pathways/internal/platform/httpserver"
	"pathways/internal/platform/jwt"
	"pathways/internal/platform/logger"
	"pathways/internal/platform/metrics"
	"pathways/internal/platform/middleware"
	platformredis "pathways/internal/platform/redis"
	"pathways/internal/vault"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.ParseLevel(os.Getenv("PATHWAYS_LOG_LEVEL")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	vaultStore, err := vault.New(cfg.ArtifactsDir, log)
	if err != nil {
		return err
	}

	var ledgerOpts []audit.Option
	ledgerOpts = append(ledgerOpts, audit.WithConsentTTL(cfg.ConsentTTLDays))
	if cfg.DatabaseURL != "" {
		sink, err := auditpg.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.EnsureSchema(ctx); err != nil {
			return err
		}
		ledgerOpts = append(ledgerOpts, audit.WithSink(sink))
		log.Info("audit mirror enabled")
	}
	ledger, err := audit.NewLedger(cfg.ArtifactsDir, log, ledgerOpts...)
	if err != nil {
		return err
	}

	var journeyStore store.Store = store.NewInMemory()
	if cfg.RedisURL != "" {
		client, err := platformredis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		journeyStore = store.NewRedis(client, 0)
		log.Info("redis journey store enabled")
	}

	registry := forms.NewRegistry(cfg.FormsDir)
	svc := service.New(journeyStore, registry, vaultStore, ledger, m, log, cfg.ArtifactTTLDays)

	retriever, err := lookup.NewRetriever(cfg.DatasetsDir, log)
	if err != nil {
		return err
	}
	assistSvc := assist.New(retriever, log)

	var validator *jwt.Validator
	if cfg.JWTSigningKey != "" {
		validator = jwt.NewValidator(cfg.JWTSigningKey)
		log.Info("bearer auth enabled")
	}

	router := chi.NewRouter()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Timeout(cfg.RequestTimeout),
		middleware.ContentTypeJSON,
		middleware.Latency(m),
	)
	router.Method("GET", "/metrics", m.Handler())
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, log))
		handler.New(svc, ledger, vaultStore, log).Register(r)
		assist.NewHandler(assistSvc, log).Register(r)
	})

	return httpserver.New(cfg.Addr, router, log).Run(ctx, cfg.ShutdownTimeout)
}
