// Package engine runs the donation aggregation on one of several backends.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/grantsscope/wrapped/internal/aggregate"
	"github.com/grantsscope/wrapped/internal/dataset"
	apperrors "github.com/grantsscope/wrapped/internal/errors"
	"github.com/grantsscope/wrapped/internal/model"
)

// Engine produces the aggregate donation table for one target year.
type Engine interface {
	Aggregate(ctx context.Context, year int) ([]model.DonationRecord, error)
	Name() string
}

// Source supplies the three raw relations.
type Source interface {
	Relations(ctx context.Context) (model.Relations, error)
}

// SnapshotSource reads relations from a local snapshot directory on every call.
type SnapshotSource struct {
	Dir string
}

// Relations loads the snapshot.
func (s SnapshotSource) Relations(ctx context.Context) (model.Relations, error) {
	if err := ctx.Err(); err != nil {
		return model.Relations{}, err
	}
	if s.Dir == "" {
		return model.Relations{}, fmt.Errorf("snapshot directory is not configured")
	}
	return dataset.LoadSnapshot(s.Dir)
}

// Memory aggregates in Go over relations from a Source.
type Memory struct {
	Source Source
}

// Name returns the engine name.
func (m *Memory) Name() string { return "memory" }

// Aggregate loads the relations and aggregates them.
func (m *Memory) Aggregate(ctx context.Context, year int) ([]model.DonationRecord, error) {
	rel, err := m.Source.Relations(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading relations: %w", err)
	}
	return aggregate.Aggregate(rel, year), nil
}

// Registry holds named engines.
type Registry struct {
	engines map[string]Engine
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

// Register adds an engine. Panics on duplicate name.
func (r *Registry) Register(e Engine) {
	key := strings.ToLower(e.Name())
	if _, ok := r.engines[key]; ok {
		panic("duplicate engine: " + key)
	}
	r.engines[key] = e
}

// Get returns the engine for name, or nil.
func (r *Registry) Get(name string) Engine {
	return r.engines[strings.ToLower(name)]
}

// Lookup is Get with an UNKNOWN_ENGINE error for unregistered names.
func (r *Registry) Lookup(name string) (Engine, error) {
	e := r.Get(name)
	if e == nil {
		return nil, apperrors.New(apperrors.CodeUnknownEngine,
			fmt.Sprintf("unknown engine %q (available: %s)", name, strings.Join(r.Names(), ", ")))
	}
	return e, nil
}

// Names returns registered engine names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for n := range r.engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
