// Package recommend suggests projects funded by donors who share the
// target donor's favourite projects.
package recommend

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/grantsscope/wrapped/internal/model"
)

const (
	// DefaultLimit is the size of each ranking when none is configured.
	DefaultLimit = 10
	// DefaultBaseURL prefixes project social handles.
	DefaultBaseURL = "https://twitter.com/"
)

// Options tune the rankings.
type Options struct {
	Limit   int
	BaseURL string
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	return o
}

type groupKey struct {
	title  string
	handle string
}

// Recommend ranks projects that peers funded and the donor did not.
//
// Peers are the other donors with a row on any of the donor's top projects.
// Their rows on projects the donor ever funded are discarded; the rest are
// grouped by (title, handle) and ranked by summed amount and by row count.
// Ties keep the order groups first appear in records. No peers is not an
// error: both rankings are empty.
func Recommend(records []model.DonationRecord, s model.PersonalSummary, opts Options) model.Recommendations {
	opts = opts.withDefaults()

	top := titleSet(s.TopProjects)
	funded := titleSet(s.Projects)

	peers := make(map[string]bool)
	for _, r := range records {
		if r.DonorAddress != s.Donor && top[r.ProjectTitle] {
			peers[r.DonorAddress] = true
		}
	}

	var entries []model.RecommendationEntry
	pos := make(map[groupKey]int)
	for _, r := range records {
		if !peers[r.DonorAddress] || funded[r.ProjectTitle] {
			continue
		}
		k := groupKey{title: r.ProjectTitle, handle: r.SocialHandle}
		i, ok := pos[k]
		if !ok {
			i = len(entries)
			pos[k] = i
			entries = append(entries, model.RecommendationEntry{
				ProjectTitle: r.ProjectTitle,
				SocialHandle: r.SocialHandle,
				URL:          opts.BaseURL + r.SocialHandle,
				TotalAmount:  decimal.Zero,
			})
		}
		entries[i].TotalAmount = entries[i].TotalAmount.Add(r.AmountUSD)
		entries[i].VoteCount++
	}

	byAmount := ranked(entries, func(a, b model.RecommendationEntry) bool {
		return a.TotalAmount.GreaterThan(b.TotalAmount)
	}, opts.Limit)
	byVotes := ranked(entries, func(a, b model.RecommendationEntry) bool {
		return a.VoteCount > b.VoteCount
	}, opts.Limit)

	return model.Recommendations{
		PeerCount: len(peers),
		ByAmount:  byAmount,
		ByVotes:   byVotes,
	}
}

func ranked(entries []model.RecommendationEntry, less func(a, b model.RecommendationEntry) bool, limit int) []model.RecommendationEntry {
	out := make([]model.RecommendationEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func titleSet(totals []model.Total) map[string]bool {
	set := make(map[string]bool, len(totals))
	for _, t := range totals {
		set[t.Label] = true
	}
	return set
}
