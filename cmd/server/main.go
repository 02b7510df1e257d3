package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"sotcredit/internal/claims"
	claimports "sotcredit/internal/claims/ports"
	"sotcredit/internal/eligibility"
	"sotcredit/internal/eligibility/handler"
	"sotcredit/internal/eligibility/ports"
	eligibilitymetrics "sotcredit/internal/eligibility/metrics"
	"sotcredit/internal/platform/config"
	"sotcredit/internal/platform/httpserver"
	"sotcredit/internal/platform/logger"
	"sotcredit/internal/platform/metrics"
	platformredis "sotcredit/internal/platform/redis"
	"sotcredit/internal/records"
	"sotcredit/internal/upstream/ces"
	"sotcredit/internal/upstream/crm"
	"sotcredit/internal/upstream/gateway"
	"sotcredit/pkg/platform/httputil"
	"sotcredit/pkg/platform/middleware/metadata"
	"sotcredit/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	eligMetrics := eligibilitymetrics.New()

	auditor, err := buildAudit(sigCtx, cfg.Audit, log)
	if err != nil {
		return err
	}
	defer auditor.close()

	cache, err := platformredis.New(sigCtx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("crm cache: %w", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	service, err := buildService(cfg, log, eligMetrics, auditor.port, cache)
	if err != nil {
		return err
	}

	mode, err := eligibility.ParseMode(cfg.Engine.Mode)
	if err != nil {
		return fmt.Errorf("ADJUDICATION_MODE: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metadata.RequestMetadata)
	r.Use(requesttime.Middleware)
	r.Use(metrics.New().Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if cache != nil {
			if err := cache.Health(req.Context()); err != nil {
				log.WarnContext(req.Context(), "crm cache unhealthy", "error", err)
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", metrics.Handler())
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
		handler.New(service, mode, log).Register(r)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "not_found", ErrorDescription: "route not found"})
	})

	srv := httpserver.New(cfg.Server.Addr, r, cfg.Server.RequestTimeout)

	g, ctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		log.Info("starting sotcredit", "addr", cfg.Server.Addr, "mode", string(mode), "audit_sink", cfg.Audit.Sink)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if auditor.relay != nil {
		g.Go(func() error {
			if err := auditor.relay(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("audit relay: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildService(cfg config.Config, log *slog.Logger, m *eligibilitymetrics.Metrics, auditor ports.AuditPort, cache *platformredis.Client) (*eligibility.Service, error) {
	crmGateway, err := gateway.New(gateway.Config{
		Name:         "crm",
		BaseURL:      cfg.Upstream.GatewayURL,
		ClientID:     cfg.Upstream.CRM.ClientID,
		ClientSecret: cfg.Upstream.CRM.ClientSecret,
		Timeout:      cfg.Upstream.Timeout,
	}, gateway.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("crm gateway: %w", err)
	}
	cesGateway, err := gateway.New(gateway.Config{
		Name:         "ces",
		BaseURL:      cfg.Upstream.CESGatewayURL,
		ClientID:     cfg.Upstream.CES.ClientID,
		ClientSecret: cfg.Upstream.CES.ClientSecret,
		Timeout:      cfg.Upstream.Timeout,
	}, gateway.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("ces gateway: %w", err)
	}

	crmClient, err := crm.New(crmGateway)
	if err != nil {
		return nil, err
	}
	var crmPort claimports.CRMPort = crmClient
	if cache != nil {
		crmPort, err = crm.NewCached(crmClient, cache.Client, cfg.Cache.TTL, crm.WithCacheLogger(log))
		if err != nil {
			return nil, err
		}
	}
	cesClient, err := ces.New(cesGateway)
	if err != nil {
		return nil, err
	}

	resolver, err := claims.NewResolver(crmPort, claims.WithLogger(log))
	if err != nil {
		return nil, err
	}
	fetcher, err := records.NewFetcher(cesClient,
		records.WithLogger(log),
		records.WithLatencyObserver(m),
	)
	if err != nil {
		return nil, err
	}
	engine, err := eligibility.NewEngine(fetcher, eligibility.Config{
		HoldWindow:      cfg.Engine.HoldWindow,
		MaxClaimAgeDays: cfg.Engine.MaxClaimAgeDays,
		Workers:         cfg.Engine.Workers,
	}, eligibility.WithEngineLogger(log))
	if err != nil {
		return nil, err
	}
	return eligibility.New(resolver, engine,
		eligibility.WithLogger(log),
		eligibility.WithMetrics(m),
		eligibility.WithAuditor(auditor),
	)
}
