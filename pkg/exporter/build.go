package exporter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/promhippie/teamcity_exporter/pkg/config"
	"github.com/promhippie/teamcity_exporter/pkg/internal/storage"
	"github.com/promhippie/teamcity_exporter/pkg/internal/teamcity"
)

// BuildCollector collects the latest build per build configuration. The
// set of tracked build configurations is reconciled into the database on
// every cycle, together with the newest build id seen per configuration.
type BuildCollector struct {
	client   *teamcity.Client
	repo     *storage.BuildTypeRepo
	logger   *slog.Logger
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	config   config.Target

	Status *prometheus.Desc
	LastID *prometheus.Desc
}

// NewBuildCollector returns a new BuildCollector.
func NewBuildCollector(logger *slog.Logger, client *teamcity.Client, repo *storage.BuildTypeRepo, failures *prometheus.CounterVec, duration *prometheus.HistogramVec, cfg config.Target) *BuildCollector {
	if failures != nil {
		failures.WithLabelValues("build").Add(0)
	}

	return &BuildCollector{
		client:   client,
		repo:     repo,
		logger:   logger.With("collector", "build"),
		failures: failures,
		duration: duration,
		config:   cfg,

		Status: prometheus.NewDesc(
			"teamcity_build_status",
			"1 for the current status of the latest build, the status label carries the actual state",
			[]string{"build_type", "number", "status"},
			nil,
		),
		LastID: prometheus.NewDesc(
			"teamcity_build_last_id",
			"ID of the latest build per build configuration",
			[]string{"build_type"},
			nil,
		),
	}
}

// Metrics simply returns the list metric descriptors for generating a documentation.
func (c *BuildCollector) Metrics() []*prometheus.Desc {
	return []*prometheus.Desc{
		c.Status,
		c.LastID,
	}
}

// Describe sends the super-set of all possible descriptors of metrics collected by this Collector.
func (c *BuildCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, metric := range c.Metrics() {
		ch <- metric
	}
}

// Collect is called by the Prometheus registry when collecting metrics.
func (c *BuildCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	now := time.Now()
	buildTypes, err := c.client.BuildTypes.All(ctx)
	c.duration.WithLabelValues("build").Observe(time.Since(now).Seconds())

	if err != nil {
		c.logger.Error("failed to fetch build types",
			"err", err,
		)

		c.failures.WithLabelValues("build").Inc()
		return
	}

	ids := make([]string, 0, len(buildTypes.BuildType))
	for _, bt := range buildTypes.BuildType {
		ids = append(ids, bt.ID)
	}

	if err := c.repo.Sync(ids); err != nil {
		c.logger.Error("failed to sync build types",
			"err", err,
		)

		c.failures.WithLabelValues("build").Inc()
		return
	}

	tracked, err := c.repo.ListEnabled()

	if err != nil {
		c.logger.Error("failed to list tracked build types",
			"err", err,
		)

		c.failures.WithLabelValues("build").Inc()
		return
	}

	for _, bt := range tracked {
		builds, err := c.client.Builds.ByBuildType(ctx, teamcity.BuildTypeID(bt.ID), nil, 0, 1)

		if err != nil {
			c.logger.Warn("failed to fetch builds",
				"build_type", bt.ID,
				"err", err,
			)

			c.failures.WithLabelValues("build").Inc()
			continue
		}

		if len(builds.Build) == 0 {
			continue
		}

		latest := builds.Build[0]

		ch <- prometheus.MustNewConstMetric(
			c.Status,
			prometheus.GaugeValue,
			1.0,
			bt.ID,
			latest.Number,
			strings.ToLower(latest.Status),
		)

		ch <- prometheus.MustNewConstMetric(
			c.LastID,
			prometheus.GaugeValue,
			float64(latest.ID),
			bt.ID,
		)

		if latest.ID > bt.LastSeenBuild {
			if err := c.repo.UpdateLastSeen(bt.ID, latest.ID); err != nil {
				c.logger.Warn("failed to update last seen build",
					"build_type", bt.ID,
					"err", err,
				)
			}
		}
	}
}
