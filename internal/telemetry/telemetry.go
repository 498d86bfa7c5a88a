// Package telemetry exposes the simulation's operational metrics.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the simulation feeds. Construct one per
// process and hand its hooks to the components that produce the numbers.
type Metrics struct {
	registry *prometheus.Registry

	tickDuration prometheus.Histogram
	dispatched   *prometheus.CounterVec
	sent         prometheus.Counter
	battles      prometheus.Counter
}

// New creates the collector set. sessions and queueDepth are sampled on
// scrape, so the caller passes closures over the live structures.
func New(sessions func() int, queueDepth func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ibh_tick_duration_seconds",
			Help:    "Wall time spent per simulation tick.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ibh_messages_dispatched_total",
			Help: "Inbound messages dispatched, by result.",
		}, []string{"result"}),
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ibh_messages_sent_total",
			Help: "Outbound messages handed to transports.",
		}),
		battles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ibh_battles_resolved_total",
			Help: "Encounters resolved by the battle system.",
		}),
	}

	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "ibh_sessions",
			Help: "Live connections.",
		}, func() float64 { return float64(sessions()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "ibh_inbound_queue_depth",
			Help: "Approximate inbound queue length.",
		}, func() float64 { return float64(queueDepth()) }),
		m.tickDuration,
		m.dispatched,
		m.sent,
		m.battles,
	)

	return m
}

// Handler serves the scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveTick records one tick's duration.
func (m *Metrics) ObserveTick(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
}

// CountDispatch records one dispatched message by result.
func (m *Metrics) CountDispatch(result string) {
	m.dispatched.WithLabelValues(result).Inc()
}

// CountSent records outbound deliveries.
func (m *Metrics) CountSent(n int) {
	m.sent.Add(float64(n))
}

// CountBattleResolved records one resolved encounter.
func (m *Metrics) CountBattleResolved() {
	m.battles.Inc()
}
