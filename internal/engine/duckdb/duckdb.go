// Package duckdb runs the donation aggregation in DuckDB directly over the
// published parquet relations.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/rs/zerolog"

	"github.com/grantsscope/wrapped/internal/aggregate"
	"github.com/grantsscope/wrapped/internal/engine"
	apperrors "github.com/grantsscope/wrapped/internal/errors"
	"github.com/grantsscope/wrapped/internal/model"
)

// Parquet file names under the dataset base URL (allo/v1).
const (
	DonationsFile = "allo_donations.parquet"
	RoundsFile    = "allo_rounds.parquet"
	ProjectsFile  = "allo_projects.parquet"
)

const boundLayout = "2006-01-02 15:04:05"

const aggregateSQL = `
SELECT lower(d.donor_address) AS donor,
       r.round_metadata_name,
       strftime(CAST(r.donations_start_time AS TIMESTAMP), '%%Y-%%m') AS round_month,
       p.title,
       COALESCE(MAX(p.project_twitter), ''),
       CAST(SUM(d.amount_in_usd) AS DOUBLE)
FROM read_parquet(%s) AS d
JOIN read_parquet(%s) AS r ON d.round_id = r.id
JOIN read_parquet(%s) AS p ON d.project_id = p.id
WHERE CAST(d."timestamp" AS TIMESTAMP) >= CAST(? AS TIMESTAMP)
  AND CAST(d."timestamp" AS TIMESTAMP) < CAST(? AS TIMESTAMP)
GROUP BY donor, r.round_metadata_name, round_month, p.title
ORDER BY donor, r.round_metadata_name, round_month, p.title
`

// Locator resolves the dataset base URL (or local directory).
type Locator interface {
	BaseURL(ctx context.Context) (string, error)
}

// Engine aggregates with an embedded DuckDB. Each call opens a fresh
// in-memory database.
type Engine struct {
	Locator Locator
	Log     zerolog.Logger
}

// Name returns the engine name.
func (e *Engine) Name() string { return "duckdb" }

// Aggregate resolves the dataset location and runs the grouped query.
func (e *Engine) Aggregate(ctx context.Context, year int) ([]model.DonationRecord, error) {
	base, err := e.Locator.BaseURL(ctx)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("duckdb connection: %w", err)
	}
	defer conn.Close()

	remote := isRemote(base)
	if remote {
		for _, stmt := range []string{"INSTALL httpfs", "LOAD httpfs"} {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				e.Log.Warn().Err(err).Str("stmt", stmt).Msg("duckdb extension setup failed")
			}
		}
	}
	if _, err := conn.ExecContext(ctx, "SET TimeZone = 'UTC'"); err != nil {
		e.Log.Debug().Err(err).Msg("duckdb timezone not set")
	}

	query := fmt.Sprintf(aggregateSQL,
		quote(join(base, DonationsFile)),
		quote(join(base, RoundsFile)),
		quote(join(base, ProjectsFile)),
	)
	start, end := aggregate.YearBounds(year)

	e.Log.Debug().Str("base", base).Int("year", year).Msg("duckdb aggregate")
	rows, err := conn.QueryContext(ctx, query, start.Format(boundLayout), end.Format(boundLayout))
	if err != nil {
		return nil, classify(err, remote)
	}
	defer rows.Close()

	records, err := engine.ScanRecords(rows)
	if err != nil {
		return nil, classify(err, remote)
	}
	return records, nil
}

// classify maps query failures onto the error taxonomy: binder errors mean
// the upstream columns drifted from allo/v1; anything else against a remote
// location means the files could not be retrieved.
func classify(err error, remote bool) error {
	switch {
	case strings.Contains(err.Error(), "Binder Error"):
		return apperrors.Wrap(apperrors.CodeSchemaMismatch, "querying parquet relations", err)
	case remote:
		return apperrors.Wrap(apperrors.CodeUpstreamFetch, "querying parquet relations", err)
	default:
		return fmt.Errorf("querying parquet relations: %w", err)
	}
}

func isRemote(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") || strings.HasPrefix(base, "s3://")
}

func join(base, file string) string {
	return strings.TrimRight(base, "/") + "/" + file
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
