// Package summary derives one donor's yearly view from the aggregate table.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/grantsscope/wrapped/internal/address"
	apperrors "github.com/grantsscope/wrapped/internal/errors"
	"github.com/grantsscope/wrapped/internal/model"
)

// DefaultTop is the leaderboard size used when none is configured.
const DefaultTop = 5

// ChartRoot labels the root of the sunburst hierarchy.
const ChartRoot = "All rounds"

// Build filters records to donor (compared lowercase) and derives counts,
// the total and the top-N round and project leaderboards. An empty filter
// result is NO_RECORDS_FOUND.
func Build(records []model.DonationRecord, donor string, year, topN int) (model.PersonalSummary, error) {
	if topN <= 0 {
		topN = DefaultTop
	}
	donor = address.Normalize(donor)

	var rows []model.DonationRecord
	for _, r := range records {
		if r.DonorAddress == donor {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return model.PersonalSummary{}, apperrors.New(apperrors.CodeNoRecords, "no donations for "+donor)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.AmountUSD)
	}
	rounds := Totals(rows, model.DonationRecord.RoundLabel)
	projects := Totals(rows, func(r model.DonationRecord) string { return r.ProjectTitle })

	return model.PersonalSummary{
		Donor:       donor,
		Year:        year,
		TotalAmount: total,
		ProjectNum:  len(projects),
		RoundsNum:   len(rounds),
		TopRounds:   Top(rounds, topN),
		TopProjects: Top(projects, topN),
		Projects:    projects,
		Records:     rows,
	}, nil
}

// Totals sums amounts per label, in the order labels first appear.
func Totals(rows []model.DonationRecord, label func(model.DonationRecord) string) []model.Total {
	pos := make(map[string]int)
	var out []model.Total
	for _, r := range rows {
		l := label(r)
		i, ok := pos[l]
		if !ok {
			i = len(out)
			pos[l] = i
			out = append(out, model.Total{Label: l, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(r.AmountUSD)
	}
	return out
}

// Top returns the n largest totals, descending. Ties keep input order.
func Top(totals []model.Total, n int) []model.Total {
	sorted := make([]model.Total, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Chart builds the round -> project hierarchy of the donor's rows.
func Chart(s model.PersonalSummary) model.ChartNode {
	root := model.ChartNode{Label: ChartRoot, Amount: s.TotalAmount}
	pos := make(map[string]int)
	for _, r := range s.Records {
		l := r.RoundLabel()
		i, ok := pos[l]
		if !ok {
			i = len(root.Children)
			pos[l] = i
			root.Children = append(root.Children, model.ChartNode{Label: l, Amount: decimal.Zero})
		}
		round := &root.Children[i]
		round.Amount = round.Amount.Add(r.AmountUSD)
		round.Children = append(round.Children, model.ChartNode{Label: r.ProjectTitle, Amount: r.AmountUSD})
	}
	return root
}
