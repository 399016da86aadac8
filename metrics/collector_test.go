package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"aceguard-demo/seed"
	"aceguard-demo/store"
)

func TestCollector_Notify(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector("aceguard", reg)
	if err != nil {
		t.Fatal(err)
	}

	c.Notify(store.Event{Type: store.EventRepositoryAdding, Repository: "acme/web"})
	c.Notify(store.Event{Type: store.EventScanCompleted, Findings: 6, Gaps: 8, OpenGaps: 9})
	c.Notify(store.Event{Type: store.EventGapMoved, OpenGaps: 8})
	c.Notify(store.Event{Type: store.EventClaimFiled, FineEUR: 120000, OpenGaps: 8})

	err = testutil.CollectAndCompare(c.events, strings.NewReader(`
		# HELP aceguard_store_events_total Store state changes by event type
		# TYPE aceguard_store_events_total counter
		aceguard_store_events_total{type="claim.filed"} 1
		aceguard_store_events_total{type="gap.moved"} 1
		aceguard_store_events_total{type="repository.adding"} 1
		aceguard_store_events_total{type="scan.completed"} 1
	`))
	if err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(c.findingsAdded); got != 6 {
		t.Errorf("findings_added_total = %v, want 6", got)
	}
	if got := testutil.ToFloat64(c.claimedFines); got != 120000 {
		t.Errorf("claimed_fines_eur_total = %v, want 120000", got)
	}
	if got := testutil.ToFloat64(c.openGaps); got != 8 {
		t.Errorf("open_gaps = %v, want 8", got)
	}
}

func TestCollector_AddingEventKeepsGauge(t *testing.T) {
	c, err := NewCollector("aceguard", prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	c.Notify(store.Event{Type: store.EventGapMoved, OpenGaps: 3})
	c.Notify(store.Event{Type: store.EventRepositoryAdding})

	if got := testutil.ToFloat64(c.openGaps); got != 3 {
		t.Errorf("open_gaps = %v, want 3", got)
	}
}

func TestCollector_ObservesStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector("aceguard", reg)
	if err != nil {
		t.Fatal(err)
	}
	s := store.New(seed.Initial(), seed.Demo(), store.WithObserver(c))
	c.Seed(s)

	if got := testutil.ToFloat64(c.openGaps); got != 1 {
		t.Errorf("seeded open_gaps = %v, want 1", got)
	}

	s.RunScan(seed.DemoRepositoryName)

	if got := testutil.ToFloat64(c.findingsAdded); got != 6 {
		t.Errorf("findings_added_total = %v, want 6", got)
	}
	if got := testutil.ToFloat64(c.openGaps); got != 9 {
		t.Errorf("open_gaps after scan = %v, want 9", got)
	}
}

func TestNewCollector_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCollector("aceguard", reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCollector("aceguard", reg); err == nil {
		t.Error("expected error registering the same metrics twice")
	}
}
