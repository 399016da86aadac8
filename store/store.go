package store

import (
	"fmt"
	"sync"
	"time"

	"aceguard-demo/models"

	"github.com/sirupsen/logrus"
)

const (
	DefaultAddDelay    = 2500 * time.Millisecond
	DefaultTrendWindow = 12
)

// ScanResult summarises the effect of a RunScan call
type ScanResult struct {
	Repository  string            `json:"repository"`
	Found       bool              `json:"found"`
	NewFindings int               `json:"new_findings"`
	NewGaps     int               `json:"new_gaps"`
	HighRisk    int               `json:"high_risk"`
	ScannedAt   time.Time         `json:"scanned_at"`
	TrendPoint  models.TrendPoint `json:"trend_point"`
}

// Store is the in-memory state of one demo session.
// All mutations are serialized behind mu; readers receive deep copies.
type Store struct {
	mu      sync.RWMutex
	state   Snapshot
	initial Snapshot
	demo    DemoPayload
	adding  bool

	now         func() time.Time
	addDelay    time.Duration
	trendWindow int
	log         logrus.FieldLogger
	observers   []Observer
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for scan timestamps and trend weeks
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithAddDelay sets the simulated connection delay of AddRepository.
// A zero or negative delay completes the add before AddRepository returns.
func WithAddDelay(d time.Duration) Option {
	return func(s *Store) { s.addDelay = d }
}

func WithTrendWindow(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.trendWindow = n
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// WithObserver registers an observer for state change events
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, o) }
}

// New creates a store holding a copy of seed. ResetAll restores that copy.
func New(seed Snapshot, demo DemoPayload, opts ...Option) *Store {
	s := &Store{
		initial:     seed.Clone(),
		state:       seed.Clone(),
		demo:        demo,
		now:         time.Now,
		addDelay:    DefaultAddDelay,
		trendWindow: DefaultTrendWindow,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.demo.Repository.LastScan = nil
	s.demo.Findings = cloneFindings(demo.Findings)
	s.demo.Gaps = append([]models.Gap(nil), demo.Gaps...)
	return s
}

// AddObserver registers an observer after construction
func (s *Store) AddObserver(o Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// DemoRepositoryName returns the name of the repository AddRepository inserts
func (s *Store) DemoRepositoryName() string {
	return s.demo.Repository.Name
}

// AddRepository starts the simulated connection of the demo repository.
// It returns started=false when the repository already exists or an add is
// pending. Otherwise the returned channel is closed once the repository has
// been inserted at the front of the list and the pending flag cleared.
func (s *Store) AddRepository() (<-chan struct{}, bool) {
	name := s.demo.Repository.Name

	s.mu.Lock()
	if s.adding || s.indexOf(name) >= 0 {
		s.mu.Unlock()
		s.log.WithField("repository", name).Debug("add repository skipped")
		return nil, false
	}
	s.adding = true
	ev := newEvent(EventRepositoryAdding, s.now())
	ev.Repository = name
	observers := s.observers
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"repository": name,
		"delay":      s.addDelay,
	}).Info("connecting repository")
	notify(observers, ev)

	done := make(chan struct{})
	if s.addDelay <= 0 {
		s.completeAdd(done)
		return done, true
	}
	time.AfterFunc(s.addDelay, func() { s.completeAdd(done) })
	return done, true
}

func (s *Store) completeAdd(done chan struct{}) {
	defer close(done)

	name := s.demo.Repository.Name
	s.mu.Lock()
	inserted := false
	if s.indexOf(name) < 0 {
		repo := s.demo.Repository
		s.state.Repositories = append([]models.Repository{repo}, s.state.Repositories...)
		inserted = true
	}
	s.adding = false
	ev := newEvent(EventRepositoryAdded, s.now())
	ev.Repository = name
	ev.OpenGaps = s.state.Gaps.Open()
	observers := s.observers
	s.mu.Unlock()

	if !inserted {
		return
	}
	s.log.WithField("repository", name).Info("repository connected")
	notify(observers, ev)
}

// IsAddingRepository reports whether an AddRepository call is pending
func (s *Store) IsAddingRepository() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adding
}

// RunScan applies the demo scan bundle. Findings and gaps are inserted even
// when name does not match a repository.
func (s *Store) RunScan(name string) ScanResult {
	now := s.now()

	s.mu.Lock()
	idx := s.indexOf(name)
	if idx >= 0 {
		s.state.Repositories[idx].IsScanning = true
	}

	findings := s.freshFindings()
	s.state.Findings = append(findings, s.state.Findings...)

	gaps := s.freshGaps()
	s.state.Gaps.Pending = append(s.state.Gaps.Pending, gaps...)

	highRisk := models.CountHighRisk(findings)
	if idx >= 0 {
		ts := now
		repo := &s.state.Repositories[idx]
		repo.HighRisk = highRisk
		repo.LastScan = &ts
		repo.IsScanning = false
	}

	point := models.TrendPoint{
		Week:  s.trendWeek(now),
		Count: models.CountHighRiskOpen(s.state.Findings),
	}
	s.state.Trend = append(s.state.Trend, point)
	if over := len(s.state.Trend) - s.trendWindow; over > 0 {
		s.state.Trend = append([]models.TrendPoint(nil), s.state.Trend[over:]...)
	}

	ev := newEvent(EventScanCompleted, now)
	ev.Repository = name
	ev.Findings = len(findings)
	ev.Gaps = len(gaps)
	ev.HighRisk = highRisk
	ev.OpenGaps = s.state.Gaps.Open()
	observers := s.observers
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"repository":   name,
		"known":        idx >= 0,
		"new_findings": len(findings),
		"new_gaps":     len(gaps),
		"high_risk":    highRisk,
	}).Info("scan completed")
	notify(observers, ev)

	return ScanResult{
		Repository:  name,
		Found:       idx >= 0,
		NewFindings: len(findings),
		NewGaps:     len(gaps),
		HighRisk:    highRisk,
		ScannedAt:   now,
		TrendPoint:  point,
	}
}

// UpdateGapStatus moves a gap to the end of the lane for status.
// Unknown ids and invalid statuses leave the board untouched and return false.
func (s *Store) UpdateGapStatus(id string, status models.GapStatus) bool {
	if !status.Valid() {
		s.log.WithFields(logrus.Fields{"gap_id": id, "status": status}).Debug("invalid gap status ignored")
		return false
	}

	s.mu.Lock()
	gap, from, ok := s.state.Gaps.Find(id)
	if !ok {
		s.mu.Unlock()
		s.log.WithField("gap_id", id).Debug("gap not found")
		return false
	}

	src := s.state.Gaps.Lane(from)
	kept := make([]models.Gap, 0, len(*src))
	for _, g := range *src {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	*src = kept

	gap.Status = status
	dst := s.state.Gaps.Lane(status)
	*dst = append(*dst, gap)

	ev := newEvent(EventGapMoved, s.now())
	ev.Repository = gap.Repo
	ev.GapID = id
	ev.Status = status
	ev.OpenGaps = s.state.Gaps.Open()
	observers := s.observers
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"gap_id": id,
		"from":   from,
		"to":     status,
	}).Info("gap moved")
	notify(observers, ev)
	return true
}

// AddClaim prepends c to the claims ledger. The caller validates and assigns the id.
func (s *Store) AddClaim(c models.Claim) {
	s.mu.Lock()
	s.state.Claims = append([]models.Claim{c}, s.state.Claims...)
	ev := newEvent(EventClaimFiled, s.now())
	ev.Repository = c.Repo
	ev.ClaimID = c.ClaimID
	ev.FineEUR = c.FineEUR
	ev.OpenGaps = s.state.Gaps.Open()
	observers := s.observers
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"claim_id":   c.ClaimID,
		"repository": c.Repo,
		"fine_eur":   c.FineEUR,
	}).Info("claim filed")
	notify(observers, ev)
}

// GetRepository looks a repository up by name
func (s *Store) GetRepository(name string) (models.Repository, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(name)
	if idx < 0 {
		return models.Repository{}, false
	}
	return cloneRepositories(s.state.Repositories[idx : idx+1])[0], true
}

// ResetAll restores every collection to the seed snapshot in one step.
// A pending AddRepository still completes afterwards.
func (s *Store) ResetAll() {
	s.mu.Lock()
	s.state = s.initial.Clone()
	ev := newEvent(EventReset, s.now())
	ev.OpenGaps = s.state.Gaps.Open()
	observers := s.observers
	s.mu.Unlock()

	s.log.Info("demo state reset")
	notify(observers, ev)
}

// Snapshot returns a consistent copy of all collections
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Repositories() []models.Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRepositories(s.state.Repositories)
}

func (s *Store) Findings() []models.Finding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFindings(s.state.Findings)
}

// FindFinding looks a finding up by id
func (s *Store) FindFinding(id string) (models.Finding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.state.Findings {
		if f.ID == id {
			return f.Clone(), true
		}
	}
	return models.Finding{}, false
}

func (s *Store) Gaps() models.GapBoard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Gaps.Clone()
}

func (s *Store) Claims() []models.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Claim{}, s.state.Claims...)
}

func (s *Store) Trend() []models.TrendPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TrendPoint{}, s.state.Trend...)
}

// AddDelay returns the configured simulated connection delay
func (s *Store) AddDelay() time.Duration { return s.addDelay }

// TrendWindow returns the maximum number of retained trend points
func (s *Store) TrendWindow() int { return s.trendWindow }

// indexOf must be called with mu held
func (s *Store) indexOf(name string) int {
	for i, r := range s.state.Repositories {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// freshFindings copies the demo findings, suffixing ids already in the store
func (s *Store) freshFindings() []models.Finding {
	taken := make(map[string]bool, len(s.state.Findings))
	for _, f := range s.state.Findings {
		taken[f.ID] = true
	}
	out := cloneFindings(s.demo.Findings)
	for i := range out {
		out[i].ID = uniqueID(out[i].ID, taken)
	}
	return out
}

// freshGaps copies the demo gaps as pending, suffixing ids already on the board
func (s *Store) freshGaps() []models.Gap {
	taken := make(map[string]bool, s.state.Gaps.Total())
	for _, lane := range [][]models.Gap{s.state.Gaps.Pending, s.state.Gaps.InProgress, s.state.Gaps.Completed} {
		for _, g := range lane {
			taken[g.ID] = true
		}
	}
	out := make([]models.Gap, len(s.demo.Gaps))
	for i, g := range s.demo.Gaps {
		g.ID = uniqueID(g.ID, taken)
		g.Status = models.GapStatusPending
		out[i] = g
	}
	return out
}

// trendWeek returns the Monday of now's week, never earlier than the last point
func (s *Store) trendWeek(now time.Time) string {
	week := WeekStart(now).Format(DateLayout)
	if n := len(s.state.Trend); n > 0 && s.state.Trend[n-1].Week > week {
		return s.state.Trend[n-1].Week
	}
	return week
}

// DateLayout is the calendar date format used for weeks, deadlines and claims
const DateLayout = "2006-01-02"

// WeekStart truncates t to midnight UTC of the Monday of its week
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, time.UTC)
}

func uniqueID(id string, taken map[string]bool) string {
	candidate := id
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	taken[candidate] = true
	return candidate
}

func notify(observers []Observer, ev Event) {
	for _, o := range observers {
		o.Notify(ev)
	}
}
