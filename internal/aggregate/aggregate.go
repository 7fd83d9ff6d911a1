// Package aggregate joins the donation relations and sums them per
// (donor, round, round start month, project) for one calendar year.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantsscope/wrapped/internal/model"
)

// Key identifies one aggregated row.
type Key struct {
	Donor           string
	RoundName       string
	RoundStartMonth string
	ProjectTitle    string
}

// YearBounds returns the half-open UTC interval [start, end) of year.
func YearBounds(year int) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// InYear reports whether t falls in the UTC calendar year.
func InYear(t time.Time, year int) bool {
	start, end := YearBounds(year)
	return !t.Before(start) && t.Before(end)
}

// RoundStartMonth formats a round start time as "January 2023" in UTC.
func RoundStartMonth(t time.Time) string {
	return t.UTC().Format(model.RoundStartMonthFormat)
}

// RoundAmount rounds a summed amount to whole currency units, half away
// from zero (0.5 -> 1, 2.5 -> 3). Amounts are non-negative, so this is
// round-half-up.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Aggregate joins donations to rounds and projects, keeps donations
// timestamped within year and sums them per Key. Donations whose round or
// project is unknown are dropped. Rows come out in the order their group
// was first seen; an empty result is not an error.
func Aggregate(rel model.Relations, year int) []model.DonationRecord {
	idx := NewIndex(rel.Rounds, rel.Projects)

	type group struct {
		handle string
		sum    decimal.Decimal
	}
	groups := make(map[Key]*group)
	var order []Key

	for _, d := range rel.Donations {
		if !InYear(d.Timestamp, year) {
			continue
		}
		round, ok := idx.Round(d.RoundID)
		if !ok {
			continue
		}
		project, ok := idx.Project(d.ProjectID)
		if !ok {
			continue
		}

		k := Key{
			Donor:           d.DonorAddress,
			RoundName:       round.Name,
			RoundStartMonth: RoundStartMonth(round.StartTime),
			ProjectTitle:    project.Title,
		}
		g, seen := groups[k]
		if !seen {
			g = &group{sum: decimal.Zero}
			groups[k] = g
			order = append(order, k)
		}
		g.sum = g.sum.Add(d.AmountUSD)
		// Same rule as MAX() in the SQL engines.
		if project.SocialHandle > g.handle {
			g.handle = project.SocialHandle
		}
	}

	records := make([]model.DonationRecord, 0, len(order))
	for _, k := range order {
		g := groups[k]
		records = append(records, model.DonationRecord{
			DonorAddress:    k.Donor,
			RoundName:       k.RoundName,
			RoundStartMonth: k.RoundStartMonth,
			ProjectTitle:    k.ProjectTitle,
			SocialHandle:    g.handle,
			AmountUSD:       RoundAmount(g.sum),
		})
	}
	return records
}
