package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a single raw donation event from the donations relation.
type Donation struct {
	DonorAddress string
	RoundID      string
	ProjectID    string
	AmountUSD    decimal.Decimal
	Timestamp    time.Time
}

// Round is a row of the rounds relation.
type Round struct {
	ID        string
	Name      string
	StartTime time.Time
}

// Project is a row of the projects relation.
type Project struct {
	ID           string
	Title        string
	SocialHandle string // empty when the project has none
}

// Relations bundles the three upstream relations the aggregation joins.
type Relations struct {
	Donations []Donation
	Rounds    []Round
	Projects  []Project
}

// RoundStartMonthFormat renders a round start as "January 2023".
const RoundStartMonthFormat = "January 2006"

// DonationRecord is one aggregated row: the summed, rounded amount a donor
// gave to a project within one (round name, round start month) pair.
type DonationRecord struct {
	DonorAddress    string
	RoundName       string
	RoundStartMonth string
	ProjectTitle    string
	SocialHandle    string
	AmountUSD       decimal.Decimal
}

// RoundLabel returns the composite round label, e.g. "GG18 (August 2023)".
// Recurring rounds reuse names across periods, so the start month is part
// of the identity.
func (r DonationRecord) RoundLabel() string {
	return r.RoundName + " (" + r.RoundStartMonth + ")"
}
