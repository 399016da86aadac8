package models

// ClaimStatus is the lifecycle state of an insurance claim
type ClaimStatus string

const (
	ClaimStatusOpen        ClaimStatus = "Open"
	ClaimStatusUnderReview ClaimStatus = "Under Review"
	ClaimStatusPaid        ClaimStatus = "Paid"
	ClaimStatusRejected    ClaimStatus = "Rejected"
)

// InReview reports whether the claim still awaits a decision
func (s ClaimStatus) InReview() bool {
	return s == ClaimStatusOpen || s == ClaimStatusUnderReview
}

// Claim is an insurance claim filed against a regulatory fine
type Claim struct {
	ClaimID   string      `json:"claim_id"`
	Repo      string      `json:"repo"`
	FineEUR   float64     `json:"fine_eur"`
	Status    ClaimStatus `json:"status"`
	Submitted string      `json:"submitted"`
}

// TrendPoint is one weekly sample of the high-risk open finding count
type TrendPoint struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}
