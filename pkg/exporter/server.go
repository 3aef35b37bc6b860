package exporter

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/promhippie/teamcity_exporter/pkg/config"
	"github.com/promhippie/teamcity_exporter/pkg/internal/teamcity"
)

// ServerCollector collects metrics about the server instance.
type ServerCollector struct {
	client   *teamcity.Client
	logger   *slog.Logger
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	config   config.Target

	Info      *prometheus.Desc
	StartTime *prometheus.Desc
	BuildDate *prometheus.Desc
}

// NewServerCollector returns a new ServerCollector.
func NewServerCollector(logger *slog.Logger, client *teamcity.Client, failures *prometheus.CounterVec, duration *prometheus.HistogramVec, cfg config.Target) *ServerCollector {
	if failures != nil {
		failures.WithLabelValues("server").Add(0)
	}

	return &ServerCollector{
		client:   client,
		logger:   logger.With("collector", "server"),
		failures: failures,
		duration: duration,
		config:   cfg,

		Info: prometheus.NewDesc(
			"teamcity_server_info",
			"Static information about the server, 1 if the server could be reached",
			[]string{"version", "version_major", "version_minor", "build_number", "internal_id"},
			nil,
		),
		StartTime: prometheus.NewDesc(
			"teamcity_server_start_time_seconds",
			"Unix timestamp of the server start time",
			nil,
			nil,
		),
		BuildDate: prometheus.NewDesc(
			"teamcity_server_build_date_seconds",
			"Unix timestamp of the server build date",
			nil,
			nil,
		),
	}
}

// Metrics simply returns the list metric descriptors for generating a documentation.
func (c *ServerCollector) Metrics() []*prometheus.Desc {
	return []*prometheus.Desc{
		c.Info,
		c.StartTime,
		c.BuildDate,
	}
}

// Describe sends the super-set of all possible descriptors of metrics collected by this Collector.
func (c *ServerCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, metric := range c.Metrics() {
		ch <- metric
	}
}

// Collect is called by the Prometheus registry when collecting metrics.
func (c *ServerCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	now := time.Now()
	info, err := c.client.Server.Info(ctx)
	c.duration.WithLabelValues("server").Observe(time.Since(now).Seconds())

	if err != nil {
		c.logger.Error("failed to fetch server info",
			"err", err,
		)

		c.failures.WithLabelValues("server").Inc()
		return
	}

	ch <- prometheus.MustNewConstMetric(
		c.Info,
		prometheus.GaugeValue,
		1.0,
		info.Version,
		strconv.Itoa(info.VersionMajor),
		strconv.Itoa(info.VersionMinor),
		info.BuildNumber,
		info.InternalID,
	)

	if !info.StartTime.IsZero() {
		ch <- prometheus.MustNewConstMetric(
			c.StartTime,
			prometheus.GaugeValue,
			float64(info.StartTime.Unix()),
		)
	}

	if !info.BuildDate.IsZero() {
		ch <- prometheus.MustNewConstMetric(
			c.BuildDate,
			prometheus.GaugeValue,
			float64(info.BuildDate.Unix()),
		)
	}
}
