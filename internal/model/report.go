package model

import "github.com/shopspring/decimal"

// Total is a labelled amount, used for leaderboards.
type Total struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// PersonalSummary holds the per-donor view of the aggregate table.
type PersonalSummary struct {
	Donor       string           `json:"donor"`
	Year        int              `json:"year"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	ProjectNum  int              `json:"project_num"`
	RoundsNum   int              `json:"rounds_num"`
	TopRounds   []Total          `json:"top_rounds"`
	TopProjects []Total          `json:"top_projects"`
	Projects    []Total          `json:"-"` // every funded project, first-seen order
	Records     []DonationRecord `json:"-"`
}

// RecommendationEntry is one project suggested from the peer cluster.
type RecommendationEntry struct {
	ProjectTitle string          `json:"project"`
	SocialHandle string          `json:"social_handle,omitempty"`
	URL          string          `json:"url"`
	TotalAmount  decimal.Decimal `json:"amount"`
	VoteCount    int             `json:"votes"`
}

// Recommendations are the two parallel rankings derived from a peer cluster.
type Recommendations struct {
	PeerCount int                   `json:"peer_count"`
	ByAmount  []RecommendationEntry `json:"by_amount"`
	ByVotes   []RecommendationEntry `json:"by_votes"`
}

// ChartNode is a node of the round → project sunburst hierarchy.
type ChartNode struct {
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Children []ChartNode     `json:"children,omitempty"`
}

// Report is everything produced for one address lookup.
type Report struct {
	Summary         PersonalSummary `json:"summary"`
	Chart           ChartNode       `json:"chart"`
	Recommendations Recommendations `json:"recommendations"`
}
