package models

// GapStatus is the lane a gap sits in on the mitigation board
type GapStatus string

const (
	GapStatusPending    GapStatus = "pending"
	GapStatusInProgress GapStatus = "inProgress"
	GapStatusCompleted  GapStatus = "completed"
)

// Valid reports whether s is one of the three board lanes
func (s GapStatus) Valid() bool {
	switch s {
	case GapStatusPending, GapStatusInProgress, GapStatusCompleted:
		return true
	}
	return false
}

// Gap is a compliance gap with a remediation deadline and owner
type Gap struct {
	ID             string    `json:"id"`
	Repo           string    `json:"repo"`
	Component      string    `json:"component"`
	Gap            string    `json:"gap"`
	Deadline       string    `json:"deadline"`
	Owner          string    `json:"owner"`
	Status         GapStatus `json:"status"`
	NextSteps      string    `json:"next_steps,omitempty"`
	Implementation string    `json:"implementation,omitempty"`
}

// GapBoard holds gaps partitioned by status. Each gap appears in exactly one lane.
type GapBoard struct {
	Pending    []Gap `json:"pending"`
	InProgress []Gap `json:"inProgress"`
	Completed  []Gap `json:"completed"`
}

// Lane returns a pointer to the collection for status, or nil for an unknown status
func (b *GapBoard) Lane(status GapStatus) *[]Gap {
	switch status {
	case GapStatusPending:
		return &b.Pending
	case GapStatusInProgress:
		return &b.InProgress
	case GapStatusCompleted:
		return &b.Completed
	}
	return nil
}

// Find locates a gap by id and reports the lane it is in
func (b *GapBoard) Find(id string) (Gap, GapStatus, bool) {
	for _, status := range []GapStatus{GapStatusPending, GapStatusInProgress, GapStatusCompleted} {
		for _, g := range *b.Lane(status) {
			if g.ID == id {
				return g, status, true
			}
		}
	}
	return Gap{}, "", false
}

// Open returns the number of gaps that are pending or in progress
func (b GapBoard) Open() int {
	return len(b.Pending) + len(b.InProgress)
}

// Total returns the number of gaps across all lanes
func (b GapBoard) Total() int {
	return len(b.Pending) + len(b.InProgress) + len(b.Completed)
}

// Clone returns a deep copy of the board
func (b GapBoard) Clone() GapBoard {
	return GapBoard{
		Pending:    cloneGaps(b.Pending),
		InProgress: cloneGaps(b.InProgress),
		Completed:  cloneGaps(b.Completed),
	}
}

func cloneGaps(gaps []Gap) []Gap {
	out := make([]Gap, len(gaps))
	copy(out, gaps)
	return out
}
