// Package metrics exposes store activity as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"aceguard-demo/store"
)

// Collector counts store events. It is a store.Observer.
type Collector struct {
	events        *prometheus.CounterVec
	findingsAdded prometheus.Counter
	claimedFines  prometheus.Counter
	openGaps      prometheus.Gauge
}

// NewCollector creates the metrics and registers them with reg
func NewCollector(namespace string, reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_events_total",
			Help:      "Store state changes by event type",
		}, []string{"type"}),
		findingsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_added_total",
			Help:      "Findings added by completed scans",
		}),
		claimedFines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claimed_fines_eur_total",
			Help:      "Sum of fines claimed in filed insurance claims",
		}),
		openGaps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_gaps",
			Help:      "Compliance gaps not yet completed",
		}),
	}

	for _, collector := range []prometheus.Collector{c.events, c.findingsAdded, c.claimedFines, c.openGaps} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return c, nil
}

// Notify updates the metrics for a store event
func (c *Collector) Notify(e store.Event) {
	c.events.WithLabelValues(string(e.Type)).Inc()

	switch e.Type {
	case store.EventScanCompleted:
		c.findingsAdded.Add(float64(e.Findings))
	case store.EventClaimFiled:
		c.claimedFines.Add(e.FineEUR)
	case store.EventRepositoryAdding:
		// gap counts are not carried by this event
		return
	}
	c.openGaps.Set(float64(e.OpenGaps))
}

// Seed sets the gauges from the current store state
func (c *Collector) Seed(s *store.Store) {
	c.openGaps.Set(float64(s.Gaps().Open()))
}
