package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantsscope/wrapped/internal/engine"
	"github.com/grantsscope/wrapped/internal/model"
)

type staticSource model.Relations

func (s staticSource) Relations(context.Context) (model.Relations, error) {
	return model.Relations(s), nil
}

func key(r model.DonationRecord) string {
	return r.DonorAddress + "|" + r.RoundLabel() + "|" + r.ProjectTitle
}

func TestEngine_AgreesWithMemory(t *testing.T) {
	src := engine.SnapshotSource{Dir: "../../../testdata/snapshot"}

	want, err := (&engine.Memory{Source: src}).Aggregate(context.Background(), 2023)
	require.NoError(t, err)

	e := &Engine{Source: src}
	got, err := e.Aggregate(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, got, len(want))

	byKey := make(map[string]model.DonationRecord, len(got))
	for _, r := range got {
		byKey[key(r)] = r
	}
	for _, w := range want {
		g, ok := byKey[key(w)]
		require.True(t, ok, "missing %s", key(w))
		assert.True(t, w.AmountUSD.Equal(g.AmountUSD), "%s: memory %s, sqlite %s", key(w), w.AmountUSD, g.AmountUSD)
		assert.Equal(t, w.SocialHandle, g.SocialHandle, key(w))
	}
}

func TestEngine_OrderedByGroupKeys(t *testing.T) {
	e := &Engine{Source: engine.SnapshotSource{Dir: "../../../testdata/snapshot"}}
	got, err := e.Aggregate(context.Background(), 2023)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	assert.Equal(t, "0x1111111111111111111111111111111111111111", got[0].DonorAddress)
	assert.Equal(t, "Alpha", got[0].ProjectTitle)
	assert.Equal(t, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd", got[len(got)-1].DonorAddress)
}

func TestEngine_YearBoundary(t *testing.T) {
	at := func(s string) time.Time {
		v, _ := time.Parse(time.RFC3339, s)
		return v
	}
	src := staticSource{
		Rounds:   []model.Round{{ID: "r", Name: "Winter", StartTime: at("2023-12-01T00:00:00Z")}},
		Projects: []model.Project{{ID: "a", Title: "A"}},
		Donations: []model.Donation{
			{DonorAddress: "0x1", RoundID: "r", ProjectID: "a", AmountUSD: decimal.NewFromInt(10), Timestamp: at("2023-12-31T23:59:59Z")},
			{DonorAddress: "0x1", RoundID: "r", ProjectID: "a", AmountUSD: decimal.NewFromInt(99), Timestamp: at("2024-01-01T00:00:00Z")},
		},
	}

	got, err := (&Engine{Source: src}).Aggregate(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].AmountUSD.Equal(decimal.NewFromInt(10)), "got %s", got[0].AmountUSD)
	assert.Equal(t, "December 2023", got[0].RoundStartMonth)
}

func TestEngine_EmptyResult(t *testing.T) {
	e := &Engine{Source: engine.SnapshotSource{Dir: "../../../testdata/snapshot"}}
	got, err := e.Aggregate(context.Background(), 2010)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "sqlite", e.Name())
}
