package action

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/exporter-toolkit/web"
	"github.com/promhippie/teamcity_exporter/pkg/config"
	"github.com/promhippie/teamcity_exporter/pkg/exporter"
	"github.com/promhippie/teamcity_exporter/pkg/internal/storage"
	"github.com/promhippie/teamcity_exporter/pkg/internal/teamcity"
	"github.com/promhippie/teamcity_exporter/pkg/middleware"
	"github.com/promhippie/teamcity_exporter/pkg/version"
)

// Server handles the server sub-command.
func Server(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("launching teamcity exporter",
		"version", version.String,
		"revision", version.Revision,
		"date", version.Date,
		"go", version.Go,
	)

	client, err := newClient(cfg, logger)

	if err != nil {
		return err
	}

	mux, err := handler(cfg, logger, client)

	if err != nil {
		return err
	}

	var gr run.Group

	{
		server := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: cfg.Server.Timeout,
		}

		gr.Add(func() error {
			logger.Info("starting metrics server",
				"address", cfg.Server.Addr,
			)

			return web.ListenAndServe(
				server,
				&web.FlagConfig{
					WebListenAddresses: sliceP([]string{cfg.Server.Addr}),
					WebSystemdSocket:   boolP(false),
					WebConfigFile:      stringP(cfg.Server.Web),
				},
				logger,
			)
		}, func(reason error) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logger.Error("failed to shutdown metrics server gracefully",
					"err", err,
				)

				return
			}

			logger.Info("metrics server shutdown gracefully",
				"reason", reason,
			)
		})
	}

	{
		stop := make(chan os.Signal, 1)

		gr.Add(func() error {
			signal.Notify(stop, os.Interrupt)

			<-stop

			return nil
		}, func(_ error) {
			close(stop)
		})
	}

	return gr.Run()
}

// newClient assembles a TeamCity client from the configuration, with the
// credentials resolved through the secret DSN support.
func newClient(cfg *config.Config, logger *slog.Logger) (*teamcity.Client, error) {
	username, err := config.Value(cfg.Target.Username)

	if err != nil {
		logger.Error("failed to load username",
			"err", err,
		)

		return nil, err
	}

	password, err := config.Value(cfg.Target.Password)

	if err != nil {
		logger.Error("failed to load password",
			"err", err,
		)

		return nil, err
	}

	client, err := teamcity.NewClient(
		teamcity.WithHost(cfg.Target.Host),
		teamcity.WithPort(cfg.Target.Port),
		teamcity.WithUsername(username),
		teamcity.WithPassword(password),
		teamcity.WithTimeout(cfg.Target.Timeout),
	)

	if err != nil {
		logger.Error("failed to initialize client",
			"host", cfg.Target.Host,
			"err", err,
		)

		return nil, err
	}

	return client, nil
}

func handler(cfg *config.Config, logger *slog.Logger, client *teamcity.Client) (*chi.Mux, error) {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	requestFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamcity_request_failures_total",
			Help: "Total number of failed requests to the TeamCity API per collector",
		},
		[]string{"collector"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "teamcity_request_duration_seconds",
			Help: "Duration of requests to the TeamCity API per collector",
		},
		[]string{"collector"},
	)

	registry.MustRegister(requestFailures)
	registry.MustRegister(requestDuration)

	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer(logger))
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Timeout)
	mux.Use(middleware.Cache)

	if cfg.Server.Pprof {
		mux.Mount("/debug", middleware.Profiler())
	}

	if cfg.Collector.Server {
		logger.Debug("server collector registered")

		registry.MustRegister(exporter.NewServerCollector(
			logger,
			client,
			requestFailures,
			requestDuration,
			cfg.Target,
		))
	}

	if cfg.Collector.Agents {
		logger.Debug("agent collector registered")

		registry.MustRegister(exporter.NewAgentCollector(
			logger,
			client,
			requestFailures,
			requestDuration,
			cfg.Target,
		))
	}

	if cfg.Collector.Builds {
		logger.Debug("build collector registered",
			"database", cfg.Collector.Database,
		)

		db, err := storage.NewSQLite(cfg.Collector.Database, logger)

		if err != nil {
			logger.Error("failed to open collector database",
				"database", cfg.Collector.Database,
				"err", err,
			)

			return nil, fmt.Errorf("failed to open collector database: %w", err)
		}

		registry.MustRegister(exporter.NewBuildCollector(
			logger,
			client,
			storage.NewBuildTypeRepo(db, logger),
			requestFailures,
			requestDuration,
			cfg.Target,
		))
	}

	reg := promhttp.HandlerFor(
		registry,
		promhttp.HandlerOpts{
			ErrorLog: promLogger{logger},
		},
	)

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.Server.Path, http.StatusMovedPermanently)
	})

	mux.Route("/", func(root chi.Router) {
		root.Get(cfg.Server.Path, func(w http.ResponseWriter, r *http.Request) {
			reg.ServeHTTP(w, r)
		})

		root.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)

			_, _ = io.WriteString(w, http.StatusText(http.StatusOK))
		})

		root.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)

			_, _ = io.WriteString(w, http.StatusText(http.StatusOK))
		})
	})

	return mux, nil
}
