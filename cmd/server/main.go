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
	"time"

	"golang.org/x/sync/errgroup"

	"govos/internal/issuance"
	issuancemetrics "govos/internal/issuance/metrics"
	jwttoken "govos/internal/jwt_token"
	"govos/internal/platform/config"
	"govos/internal/platform/health"
	"govos/internal/platform/logger"
	"govos/internal/platform/metrics"
	"govos/internal/platform/middleware"
	"govos/internal/platform/tracer"
	"govos/internal/ratelimit"
	ratelimitmetrics "govos/internal/ratelimit/metrics"
	"govos/internal/scenario"
	scenariometrics "govos/internal/scenario/metrics"
	"govos/internal/scenario/provider"
	sessionhandler "govos/internal/session/handler"
	sessionmetrics "govos/internal/session/metrics"
	sessionservice "govos/internal/session/service"
	sessionstore "govos/internal/session/store"
	"govos/internal/session/workers/cleanup"
	httptransport "govos/internal/transport/http"
	"govos/pkg/validation"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Game logic lives in the internal packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing govos",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"scenario_provider", cfg.Scenario.Provider,
	)

	model, err := provider.New(ctx, cfg.Scenario)
	if err != nil {
		return err
	}
	trace := tracer.NewOTel("govos")

	director := scenario.NewDirector(model,
		scenario.WithLogger(log),
		scenario.WithMetrics(scenariometrics.New()),
		scenario.WithTracer(trace),
		scenario.WithTimeout(cfg.Scenario.Timeout),
		scenario.WithSeed(uint64(cfg.Scenario.Seed)),
	)
	clerk := issuance.New(
		issuance.WithLogger(log),
		issuance.WithMetrics(issuancemetrics.New()),
		issuance.WithTracer(trace),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "govos", cfg.TokenTTL)
	jwtService.SetEnv(cfg.Environment)
	requireSession := middleware.RequireSession(jwttoken.NewJWTServiceAdapter(jwtService), log)

	sessMetrics := sessionmetrics.New()
	store := sessionstore.New()
	sessions := sessionservice.New(store, clerk, director, director, jwtService,
		sessionservice.WithLogger(log),
		sessionservice.WithMetrics(sessMetrics),
		sessionservice.WithGenerationTimeout(cfg.Scenario.Timeout),
	)

	reaper, err := cleanup.New(store,
		cleanup.WithIdleTTL(cfg.Sessions.IdleTTL),
		cleanup.WithCleanupInterval(cfg.Sessions.CleanupInterval),
		cleanup.WithCleanupLogger(log),
		cleanup.WithCleanupMetrics(sessMetrics),
	)
	if err != nil {
		return fmt.Errorf("session cleanup: %w", err)
	}

	proxies, err := cfg.RateLimit.Proxies()
	if err != nil {
		return err
	}
	limiter := ratelimit.NewLimiter(map[ratelimit.Class]ratelimit.Limit{
		ratelimit.ClassSessionCreate: {Requests: cfg.RateLimit.SessionsPerWindow, Window: cfg.RateLimit.Window},
		ratelimit.ClassModelCall:     {Requests: cfg.RateLimit.ModelCallsPerWindow, Window: cfg.RateLimit.Window},
	}, ratelimit.WithLogger(log))
	limitMiddleware := ratelimit.NewMiddleware(limiter, log,
		ratelimit.WithTrustedProxies(proxies),
		ratelimit.WithMetrics(ratelimitmetrics.New()),
	)

	healthHandler := health.New(cfg.Environment, director.Provider())
	healthHandler.SetSessionCounter(store.Count)
	healthHandler.RegisterCheck("scenario_model", director.Check)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        metrics.New(),
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   validation.MaxBodySize,
		ExposeMetrics:  true,
	},
		healthHandler,
		sessionhandler.New(sessions, requireSession, log, sessionhandler.WithLimiter(limitMiddleware)),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return reaper.Start(gctx)
	})
	g.Go(func() error {
		return limiter.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
