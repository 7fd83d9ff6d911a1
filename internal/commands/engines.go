package commands

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/grantsscope/wrapped/internal/config"
	"github.com/grantsscope/wrapped/internal/dataset"
	"github.com/grantsscope/wrapped/internal/engine"
	"github.com/grantsscope/wrapped/internal/engine/duckdb"
	"github.com/grantsscope/wrapped/internal/engine/sqlite"
	"github.com/grantsscope/wrapped/internal/logging"
	"github.com/grantsscope/wrapped/internal/recommend"
	"github.com/grantsscope/wrapped/internal/wrapped"
)

func newRegistry(cfg *config.Config, log zerolog.Logger) *engine.Registry {
	snapshot := engine.SnapshotSource{Dir: cfg.Dataset.SnapshotDir}
	resolver := dataset.NewResolver(
		cfg.Dataset.PointerURL,
		cfg.Dataset.GatewayTemplate,
		cfg.Dataset.GatewayURL,
		cfg.Dataset.FetchTimeout,
	)

	reg := engine.NewRegistry()
	reg.Register(&engine.Memory{Source: snapshot})
	reg.Register(&sqlite.Engine{Source: snapshot})
	reg.Register(&duckdb.Engine{Locator: resolver, Log: log})
	return reg
}

// setup resolves the config and builds the logger and report service.
func setup(configPath string) (*config.Config, zerolog.Logger, *wrapped.Service, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	log := logging.New(cfg.Log.Env)

	eng, err := newRegistry(cfg, log).Lookup(cfg.Dataset.Engine)
	if err != nil {
		return nil, log, nil, fmt.Errorf("selecting engine: %w", err)
	}

	svc := wrapped.NewService(eng, wrapped.Options{
		Year: cfg.Report.Year,
		TopN: cfg.Report.TopN,
		Recommend: recommend.Options{
			Limit:   cfg.Report.RecommendationLimit,
			BaseURL: cfg.Report.SocialBaseURL,
		},
	}, log)
	return cfg, log, svc, nil
}
