package recommend

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantsscope/wrapped/internal/aggregate"
	"github.com/grantsscope/wrapped/internal/dataset"
	"github.com/grantsscope/wrapped/internal/model"
	"github.com/grantsscope/wrapped/internal/summary"
)

const (
	donorD = "0x1111111111111111111111111111111111111111"
	donorP = "0x2222222222222222222222222222222222222222"
	donorQ = "0x3333333333333333333333333333333333333333"
)

func rec(donor, project, handle string, amount int64) model.DonationRecord {
	return model.DonationRecord{
		DonorAddress:    donor,
		RoundName:       "Q1",
		RoundStartMonth: "January 2023",
		ProjectTitle:    project,
		SocialHandle:    handle,
		AmountUSD:       decimal.NewFromInt(amount),
	}
}

func titles(entries []model.RecommendationEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ProjectTitle
	}
	return out
}

func build(t *testing.T, records []model.DonationRecord, donor string) model.PersonalSummary {
	t.Helper()
	s, err := summary.Build(records, donor, 2023, 5)
	require.NoError(t, err)
	return s
}

func TestRecommend_SharedProject(t *testing.T) {
	records := []model.DonationRecord{
		rec(donorD, "A", "a", 100),
		rec(donorD, "B", "b", 50),
		rec(donorP, "A", "a", 10),
		rec(donorP, "C", "c", 25),
		rec(donorP, "B", "b", 5),
	}

	got := Recommend(records, build(t, records, donorD), Options{})

	assert.Equal(t, 1, got.PeerCount)
	require.Len(t, got.ByAmount, 1)
	require.Len(t, got.ByVotes, 1)
	assert.Equal(t, "C", got.ByAmount[0].ProjectTitle)
	assert.True(t, got.ByAmount[0].TotalAmount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 1, got.ByVotes[0].VoteCount)
	assert.Equal(t, "https://twitter.com/c", got.ByAmount[0].URL)
}

func TestRecommend_ExcludesEveryFundedProject(t *testing.T) {
	// D funds six projects, so F is outside the top five but still funded.
	records := []model.DonationRecord{
		rec(donorD, "A", "", 60),
		rec(donorD, "B", "", 50),
		rec(donorD, "C", "", 40),
		rec(donorD, "D", "", 30),
		rec(donorD, "E", "", 20),
		rec(donorD, "F", "", 1),
		rec(donorP, "A", "", 5),
		rec(donorP, "F", "", 500),
		rec(donorP, "G", "", 2),
	}
	s := build(t, records, donorD)
	require.Len(t, s.TopProjects, 5)

	got := Recommend(records, s, Options{})
	funded := titleSet(s.Projects)
	for _, e := range append(got.ByAmount, got.ByVotes...) {
		assert.False(t, funded[e.ProjectTitle], "%s is already funded", e.ProjectTitle)
	}
	assert.Equal(t, []string{"G"}, titles(got.ByAmount))
}

func TestRecommend_NoPeers(t *testing.T) {
	records := []model.DonationRecord{
		rec(donorD, "A", "a", 100),
		rec(donorP, "Z", "z", 10),
	}
	got := Recommend(records, build(t, records, donorD), Options{})
	assert.Zero(t, got.PeerCount)
	assert.Empty(t, got.ByAmount)
	assert.Empty(t, got.ByVotes)
}

func TestRecommend_PeersOnlyShareFundedProjects(t *testing.T) {
	records := []model.DonationRecord{
		rec(donorD, "A", "a", 100),
		rec(donorD, "B", "b", 1),
		rec(donorP, "A", "a", 10),
		rec(donorP, "B", "b", 10),
	}
	got := Recommend(records, build(t, records, donorD), Options{})
	assert.Equal(t, 1, got.PeerCount)
	assert.Empty(t, got.ByAmount)
	assert.Empty(t, got.ByVotes)
}

func TestRecommend_Testdata(t *testing.T) {
	rel, err := dataset.LoadSnapshot("../../testdata/snapshot")
	require.NoError(t, err)
	records := aggregate.Aggregate(rel, 2023)

	got := Recommend(records, build(t, records, donorD), Options{})

	assert.Equal(t, 2, got.PeerCount)
	assert.Equal(t, []string{"Delta", "Gamma"}, titles(got.ByAmount))
	assert.Equal(t, []string{"Gamma", "Delta"}, titles(got.ByVotes))

	gamma := got.ByVotes[0]
	assert.Equal(t, 2, gamma.VoteCount)
	assert.True(t, gamma.TotalAmount.Equal(decimal.NewFromInt(29)))
	assert.Equal(t, "https://twitter.com/", gamma.URL, "missing handle leaves the bare base URL")

	delta := got.ByAmount[0]
	assert.True(t, delta.TotalAmount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "https://twitter.com/delta_h", delta.URL)
}

func TestRecommend_LimitAndTies(t *testing.T) {
	records := []model.DonationRecord{rec(donorD, "A", "", 1)}
	for i := 0; i < 15; i++ {
		records = append(records, rec(donorP, fmt.Sprintf("P%02d", i), "", 3))
	}
	records = append(records, rec(donorP, "A", "", 1), rec(donorQ, "A", "", 1), rec(donorQ, "P14", "", 3))

	got := Recommend(records, build(t, records, donorD), Options{Limit: 3, BaseURL: "https://x.com/"})
	assert.Equal(t, 2, got.PeerCount)
	assert.Equal(t, []string{"P14", "P00", "P01"}, titles(got.ByAmount))
	assert.Equal(t, []string{"P14", "P00", "P01"}, titles(got.ByVotes))
	assert.Equal(t, "https://x.com/", got.ByAmount[0].URL)

	all := Recommend(records, build(t, records, donorD), Options{})
	assert.Len(t, all.ByAmount, DefaultLimit)
}

func TestRecommend_SameTitleDifferentHandles(t *testing.T) {
	records := []model.DonationRecord{
		rec(donorD, "A", "", 10),
		rec(donorP, "A", "", 1),
		rec(donorP, "C", "c1", 4),
		rec(donorP, "C", "c2", 5),
	}
	got := Recommend(records, build(t, records, donorD), Options{})
	require.Len(t, got.ByAmount, 2)
	assert.Equal(t, "c2", got.ByAmount[0].SocialHandle)
	assert.Equal(t, "c1", got.ByAmount[1].SocialHandle)
}
