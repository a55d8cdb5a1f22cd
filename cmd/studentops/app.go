package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/studentops/apiclient"
	"github.com/jonwraymond/studentops/auth"
	"github.com/jonwraymond/studentops/config"
	"github.com/jonwraymond/studentops/health"
	"github.com/jonwraymond/studentops/observe"
	"github.com/jonwraymond/studentops/server"
	"github.com/jonwraymond/studentops/students"
)

// app holds the components built from one Config.
type app struct {
	cfg      *config.Config
	observer observe.Observer
	logger   observe.Logger
	students *students.Service
	health   *health.Aggregator
	authn    auth.Authenticator
	metrics  http.Handler
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	obs, err := observe.NewObserver(ctx, cfg.ObserveConfig())
	if err != nil {
		return nil, fmt.Errorf("observability: %w", err)
	}
	logger := obs.Logger()

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("observability: %w", err), obs.Shutdown(ctx))
	}

	client, err := apiclient.NewClient(cfg.ClientConfig(), apiclient.NewExecutor(apiclient.ExecutorConfig{
		Service:     "api",
		MaxInFlight: cfg.API.MaxInFlight,
		Middleware:  mw,
	}))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("api client: %w", err), obs.Shutdown(ctx))
	}

	agg := health.NewAggregator(health.AggregatorConfig{
		Timeout:  cfg.API.ProbeTimeout + time.Second,
		Parallel: true,
		Logger:   logger.With(observe.F("component", "health")),
	})
	agg.Register("webapp", health.NewLocalChecker())
	agg.Register("api", health.NewProbeChecker(client, health.ProbeConfig{
		Name:    "api",
		Timeout: cfg.API.ProbeTimeout,
	}))

	a := &app{
		cfg:      cfg,
		observer: obs,
		logger:   logger,
		students: students.NewService(client, students.WithLogger(logger.With(observe.F("component", "students")))),
		health:   agg,
	}

	if settings := cfg.AuthSettings(); settings.Enabled() {
		a.authn, err = auth.New(settings)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("auth: %w", err), obs.Shutdown(ctx))
		}
	}

	if cfg.Telemetry.MetricsExporter == "prometheus" {
		a.metrics = promhttp.Handler()
	}

	logger.Info(ctx, "configuration loaded",
		observe.F("api_url", cfg.API.URL),
		observe.F("username", cfg.API.Username),
		observe.F("version", cfg.App.Version),
		observe.F("auth_enabled", a.authn != nil),
	)
	return a, nil
}

func (a *app) serverConfig() server.Config {
	return server.Config{
		Port:    a.cfg.App.Port,
		Debug:   a.cfg.App.Debug,
		Title:   a.cfg.App.Title,
		Version: a.cfg.App.Version,
		// Responses wait on at most one student API call.
		WriteTimeout: a.cfg.API.Timeout + 5*time.Second,
	}
}

func (a *app) serverDeps() server.Deps {
	return server.Deps{
		Students: a.students,
		Health:   a.health,
		Logger:   a.logger,
		Auth:     a.authn,
		Metrics:  a.metrics,
	}
}

// close flushes telemetry. Errors are logged, not returned.
func (a *app) close(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.observer.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn(shutdownCtx, "telemetry shutdown failed", observe.F("error", err))
	}
	_ = a.logger.Sync()
}
