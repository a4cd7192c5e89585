package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"custodia/internal/audit"
	audithandler "custodia/internal/audit/handler"
	"custodia/internal/authz"
	"custodia/internal/cases"
	caseshandler "custodia/internal/cases/handler"
	"custodia/internal/evidence"
	evidencehandler "custodia/internal/evidence/handler"
	"custodia/internal/identity"
	"custodia/internal/platform/blob"
	"custodia/internal/platform/config"
	"custodia/internal/platform/httpserver"
	"custodia/internal/platform/logger"
	"custodia/internal/platform/metrics"
	mw "custodia/internal/platform/middleware"
	"custodia/internal/platform/postgres"
	redisplatform "custodia/internal/platform/redis"
	"custodia/internal/report"
	reporthandler "custodia/internal/report/handler"
	"custodia/internal/transfer"
	transferhandler "custodia/internal/transfer/handler"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		return err
	}

	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		log.Info("redis not configured, public listings served uncached")
	}

	blobs, err := blob.NewS3(ctx, cfg.Blob)
	if err != nil {
		return err
	}

	m := metrics.New()
	gate := authz.NewGate()
	txRunner := postgres.NewTxRunner(db)

	peopleStore := identity.NewPostgres(db)
	directory := identity.NewDirectory(peopleStore)
	tokens := identity.NewTokenService(cfg.JWTSigningKey)

	auditStore := audit.NewPostgres(db)
	evidenceStore := evidence.NewPostgres(db)
	storageStore := evidence.NewPostgresStorage(db)
	caseStore := cases.NewPostgres(db)
	transferStore := transfer.NewPostgres(db)
	reportStore := report.NewPostgres(db)

	listingCache := evidence.NewListingCache(redisClient, cfg.PublicListingTTL)

	evidenceSvc := evidence.NewService(evidenceStore, storageStore, auditStore,
		blobs, listingCache, txRunner, m, log)
	caseSvc := cases.NewService(caseStore, evidenceStore, log)
	transferSvc := transfer.NewService(transferStore, evidenceStore, auditStore,
		txRunner, m, log)
	reportSvc := report.NewService(reportStore, peopleStore, evidenceStore, blobs, log)

	evidenceH := evidencehandler.New(evidenceSvc, directory, gate, log)
	caseH := caseshandler.New(caseSvc, directory, gate, log)
	transferH := transferhandler.New(transferSvc, directory, gate, log)
	reportH := reporthandler.New(reportSvc, gate, log)
	auditH := audithandler.New(auditStore, gate, log)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Recovery(log))
	r.Use(mw.Logger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public surface: no token required, the gate still sees RolePublic.
	r.Group(func(pr chi.Router) {
		evidenceH.RegisterPublic(pr)
		caseH.RegisterPublic(pr)
		transferH.RegisterPublic(pr)
		reportH.RegisterPublic(pr)
	})

	// Authenticated surface.
	r.Group(func(ar chi.Router) {
		ar.Use(mw.RequireAuth(tokens, log))
		evidenceH.Register(ar)
		caseH.Register(ar)
		transferH.Register(ar)
		reportH.Register(ar)
		auditH.Register(ar)
	})

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting custodia", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
