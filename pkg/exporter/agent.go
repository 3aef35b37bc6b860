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

// AgentCollector collects metrics about the build agents.
type AgentCollector struct {
	client   *teamcity.Client
	logger   *slog.Logger
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	config   config.Target

	Connected  *prometheus.Desc
	Enabled    *prometheus.Desc
	Authorized *prometheus.Desc
	UpToDate   *prometheus.Desc
}

// NewAgentCollector returns a new AgentCollector.
func NewAgentCollector(logger *slog.Logger, client *teamcity.Client, failures *prometheus.CounterVec, duration *prometheus.HistogramVec, cfg config.Target) *AgentCollector {
	if failures != nil {
		failures.WithLabelValues("agent").Add(0)
	}

	labels := []string{"id", "name"}
	return &AgentCollector{
		client:   client,
		logger:   logger.With("collector", "agent"),
		failures: failures,
		duration: duration,
		config:   cfg,

		Connected: prometheus.NewDesc(
			"teamcity_agent_connected",
			"1 if the agent is connected, 0 otherwise",
			labels,
			nil,
		),
		Enabled: prometheus.NewDesc(
			"teamcity_agent_enabled",
			"1 if the agent is enabled, 0 otherwise",
			labels,
			nil,
		),
		Authorized: prometheus.NewDesc(
			"teamcity_agent_authorized",
			"1 if the agent is authorized, 0 otherwise",
			labels,
			nil,
		),
		UpToDate: prometheus.NewDesc(
			"teamcity_agent_uptodate",
			"1 if the agent is up to date, 0 otherwise",
			labels,
			nil,
		),
	}
}

// Metrics simply returns the list metric descriptors for generating a documentation.
func (c *AgentCollector) Metrics() []*prometheus.Desc {
	return []*prometheus.Desc{
		c.Connected,
		c.Enabled,
		c.Authorized,
		c.UpToDate,
	}
}

// Describe sends the super-set of all possible descriptors of metrics collected by this Collector.
func (c *AgentCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, metric := range c.Metrics() {
		ch <- metric
	}
}

// Collect is called by the Prometheus registry when collecting metrics.
func (c *AgentCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	now := time.Now()
	agents, err := c.client.Agents.All(ctx)
	c.duration.WithLabelValues("agent").Observe(time.Since(now).Seconds())

	if err != nil {
		c.logger.Error("failed to fetch agents",
			"err", err,
		)

		c.failures.WithLabelValues("agent").Inc()
		return
	}

	for _, agent := range agents.Agent {
		labels := []string{
			strconv.FormatInt(agent.ID, 10),
			agent.Name,
		}

		ch <- prometheus.MustNewConstMetric(
			c.Connected,
			prometheus.GaugeValue,
			boolToFloat64(agent.Connected),
			labels...,
		)

		ch <- prometheus.MustNewConstMetric(
			c.Enabled,
			prometheus.GaugeValue,
			boolToFloat64(agent.Enabled),
			labels...,
		)

		ch <- prometheus.MustNewConstMetric(
			c.Authorized,
			prometheus.GaugeValue,
			boolToFloat64(agent.Authorized),
			labels...,
		)

		ch <- prometheus.MustNewConstMetric(
			c.UpToDate,
			prometheus.GaugeValue,
			boolToFloat64(agent.UpToDate),
			labels...,
		)
	}
}

func boolToFloat64(val bool) float64 {
	if val {
		return 1.0
	}

	return 0.0
}
