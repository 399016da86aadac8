package store

import "aceguard-demo/models"

// Snapshot is a point-in-time copy of every collection held by the store
type Snapshot struct {
	Repositories []models.Repository `json:"repositories"`
	Findings     []models.Finding    `json:"findings"`
	Gaps         models.GapBoard     `json:"gaps"`
	Claims       []models.Claim      `json:"claims"`
	Trend        []models.TrendPoint `json:"trend"`
}

// Clone returns a deep copy of the snapshot. Nil collections become empty ones.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Repositories: cloneRepositories(s.Repositories),
		Findings:     cloneFindings(s.Findings),
		Gaps:         s.Gaps.Clone(),
		Claims:       append([]models.Claim{}, s.Claims...),
		Trend:        append([]models.TrendPoint{}, s.Trend...),
	}
}

// DemoPayload is the fixed data introduced by the connect and scan flows
type DemoPayload struct {
	Repository models.Repository
	Findings   []models.Finding
	Gaps       []models.Gap
}

func cloneRepositories(repos []models.Repository) []models.Repository {
	out := make([]models.Repository, len(repos))
	for i, r := range repos {
		if r.LastScan != nil {
			ts := *r.LastScan
			r.LastScan = &ts
		}
		out[i] = r
	}
	return out
}

func cloneFindings(findings []models.Finding) []models.Finding {
	out := make([]models.Finding, len(findings))
	for i, f := range findings {
		out[i] = f.Clone()
	}
	return out
}
