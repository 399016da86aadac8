package store

import (
	"time"

	"aceguard-demo/models"

	"github.com/google/uuid"
)

// EventType identifies the kind of state change
type EventType string

const (
	EventRepositoryAdding EventType = "repository.adding"
	EventRepositoryAdded  EventType = "repository.added"
	EventScanCompleted    EventType = "scan.completed"
	EventGapMoved         EventType = "gap.moved"
	EventClaimFiled       EventType = "claim.filed"
	EventReset            EventType = "store.reset"
)

// Event describes a committed state change
type Event struct {
	ID         string           `json:"id"`
	Type       EventType        `json:"type"`
	Repository string           `json:"repository,omitempty"`
	GapID      string           `json:"gap_id,omitempty"`
	Status     models.GapStatus `json:"status,omitempty"`
	ClaimID    string           `json:"claim_id,omitempty"`
	FineEUR    float64          `json:"fine_eur,omitempty"`
	Findings   int              `json:"findings,omitempty"`
	Gaps       int              `json:"gaps,omitempty"`
	HighRisk   int              `json:"high_risk,omitempty"`
	OpenGaps   int              `json:"open_gaps"`
	At         time.Time        `json:"at"`
}

// Observer receives events after the change is visible to readers
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

func newEvent(t EventType, at time.Time) Event {
	return Event{ID: uuid.NewString(), Type: t, At: at}
}
