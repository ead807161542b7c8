package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/snowdex/snowdex/pkg/observability"
)

const prometheusNamespace = "snowdex"

// metrics backs the observability hooks with prometheus collectors.
// Each Server carries its own registry, so tests can build servers
// side by side without duplicate-registration panics.
type metrics struct {
	fetchTotal   *prometheus.CounterVec
	fetchSeconds prometheus.Histogram
	parseSkipped prometheus.Counter

	cacheEvents     *prometheus.CounterVec
	refreshTotal    *prometheus.CounterVec
	refreshSeconds  prometheus.Histogram
	catalogPackages prometheus.Gauge

	querySeconds prometheus.Histogram
	queryMatches prometheus.Histogram

	requestTotal   *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
}

var (
	_ observability.FetchHooks = (*metrics)(nil)
	_ observability.CacheHooks = (*metrics)(nil)
	_ observability.QueryHooks = (*metrics)(nil)
)

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "fetch_total",
			Help:      "Upstream listing fetches by outcome.",
		}, []string{"outcome"}),
		fetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: prometheusNamespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of upstream listing fetches.",
		}),
		parseSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "parse_skipped_rows_total",
			Help:      "Malformed listing rows dropped during parsing.",
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "cache_events_total",
			Help:      "Catalog cache reads by event (hit, miss, stale).",
		}, []string{"event"}),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "refresh_total",
			Help:      "Catalog refresh attempts by outcome.",
		}, []string{"outcome"}),
		refreshSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: prometheusNamespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of catalog refreshes.",
		}),
		catalogPackages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      "catalog_packages",
			Help:      "Packages in the current catalog snapshot.",
		}),
		querySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: prometheusNamespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of catalog queries.",
		}),
		queryMatches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: prometheusNamespace,
			Name:      "query_matches",
			Help:      "Match counts of catalog queries.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status.",
		}, []string{"method", "route", "status"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prometheusNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by method and route.",
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.fetchTotal, m.fetchSeconds, m.parseSkipped,
		m.cacheEvents, m.refreshTotal, m.refreshSeconds, m.catalogPackages,
		m.querySeconds, m.queryMatches,
		m.requestTotal, m.requestSeconds,
	)
	return m
}

// OnFetchStart implements observability.FetchHooks.
func (m *metrics) OnFetchStart(context.Context, string) {}

// OnFetchComplete implements observability.FetchHooks.
func (m *metrics) OnFetchComplete(_ context.Context, _ string, _ int, _ int, duration time.Duration, err error) {
	m.fetchTotal.WithLabelValues(outcome(err)).Inc()
	m.fetchSeconds.Observe(duration.Seconds())
}

// OnParseComplete implements observability.FetchHooks.
func (m *metrics) OnParseComplete(_ context.Context, _ int, skipped int, err error) {
	if err == nil {
		m.parseSkipped.Add(float64(skipped))
	}
}

// OnHit implements observability.CacheHooks.
func (m *metrics) OnHit(context.Context) {
	m.cacheEvents.WithLabelValues("hit").Inc()
}

// OnMiss implements observability.CacheHooks.
func (m *metrics) OnMiss(context.Context) {
	m.cacheEvents.WithLabelValues("miss").Inc()
}

// OnRefresh implements observability.CacheHooks.
func (m *metrics) OnRefresh(_ context.Context, packages int, duration time.Duration, err error) {
	m.refreshTotal.WithLabelValues(outcome(err)).Inc()
	m.refreshSeconds.Observe(duration.Seconds())
	if err == nil {
		m.catalogPackages.Set(float64(packages))
	}
}

// OnStaleServe implements observability.CacheHooks.
func (m *metrics) OnStaleServe(context.Context, time.Duration) {
	m.cacheEvents.WithLabelValues("stale").Inc()
}

// OnQuery implements observability.QueryHooks.
func (m *metrics) OnQuery(_ context.Context, matches int, duration time.Duration) {
	m.querySeconds.Observe(duration.Seconds())
	m.queryMatches.Observe(float64(matches))
}

// observeRequest records one served HTTP request.
func (m *metrics) observeRequest(method, route string, status int, duration time.Duration) {
	m.requestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
