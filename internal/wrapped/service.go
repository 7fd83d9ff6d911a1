// Package wrapped assembles the yearly donor report: validate the address,
// aggregate the donations, summarize and recommend.
package wrapped

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/grantsscope/wrapped/internal/address"
	"github.com/grantsscope/wrapped/internal/engine"
	apperrors "github.com/grantsscope/wrapped/internal/errors"
	"github.com/grantsscope/wrapped/internal/model"
	"github.com/grantsscope/wrapped/internal/recommend"
	"github.com/grantsscope/wrapped/internal/summary"
)

// Options tune a Service.
type Options struct {
	Year      int
	TopN      int
	Recommend recommend.Options
}

// Service builds reports. It holds no per-request state; every Lookup
// recomputes the aggregate table.
type Service struct {
	engine engine.Engine
	opts   Options
	log    zerolog.Logger
}

// NewService creates a Service over eng.
func NewService(eng engine.Engine, opts Options, log zerolog.Logger) *Service {
	if opts.TopN <= 0 {
		opts.TopN = summary.DefaultTop
	}
	return &Service{engine: eng, opts: opts, log: log}
}

// Year returns the target year.
func (s *Service) Year() int { return s.opts.Year }

// Lookup builds the report for addr. Every error carries a domain code;
// failures that are not already classified become INTERNAL. No partial
// report is returned with an error.
func (s *Service) Lookup(ctx context.Context, addr string) (model.Report, error) {
	if !address.Valid(addr) {
		return model.Report{}, apperrors.New(apperrors.CodeInvalidAddress, "invalid address "+addr)
	}
	log := s.log.With().Str("donor", address.Normalize(addr)).Int("year", s.opts.Year).Logger()

	log.Debug().Str("engine", s.engine.Name()).Msg("aggregating donations")
	records, err := s.engine.Aggregate(ctx, s.opts.Year)
	if err != nil {
		return model.Report{}, classify(err)
	}
	log.Debug().Int("rows", len(records)).Msg("aggregate ready")

	sum, err := summary.Build(records, addr, s.opts.Year, s.opts.TopN)
	if err != nil {
		return model.Report{}, classify(err)
	}

	recs := recommend.Recommend(records, sum, s.opts.Recommend)
	log.Debug().
		Int("projects", sum.ProjectNum).
		Int("peers", recs.PeerCount).
		Msg("report built")

	return model.Report{
		Summary:         sum,
		Chart:           summary.Chart(sum),
		Recommendations: recs,
	}, nil
}

func classify(err error) error {
	var e *apperrors.Error
	if errors.As(err, &e) {
		return err
	}
	return apperrors.Wrap(apperrors.CodeInternal, "building report", err)
}
