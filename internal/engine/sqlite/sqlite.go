// Package sqlite runs the donation aggregation in an in-memory SQLite
// database loaded from a relation source.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/grantsscope/wrapped/internal/aggregate"
	"github.com/grantsscope/wrapped/internal/engine"
	"github.com/grantsscope/wrapped/internal/model"
)

const schemaSQL = `
CREATE TABLE donations (
    donor_address TEXT NOT NULL,
    round_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    amount_in_usd REAL NOT NULL,
    ts INTEGER NOT NULL
);
CREATE TABLE rounds (
    id TEXT NOT NULL,
    round_metadata_name TEXT NOT NULL,
    donations_start_time TEXT NOT NULL
);
CREATE TABLE projects (
    id TEXT NOT NULL,
    title TEXT NOT NULL,
    project_twitter TEXT NOT NULL
);
`

const aggregateSQL = `
SELECT d.donor_address,
       r.round_metadata_name,
       strftime('%Y-%m', r.donations_start_time) AS round_month,
       p.title,
       COALESCE(MAX(p.project_twitter), ''),
       SUM(d.amount_in_usd)
FROM donations d
JOIN rounds r ON d.round_id = r.id
JOIN projects p ON d.project_id = p.id
WHERE d.ts >= ? AND d.ts < ?
GROUP BY d.donor_address, r.round_metadata_name, round_month, p.title
ORDER BY d.donor_address, r.round_metadata_name, round_month, p.title
`

// Engine aggregates with SQLite. Each call opens a fresh in-memory database.
type Engine struct {
	Source engine.Source
}

// Name returns the engine name.
func (e *Engine) Name() string { return "sqlite" }

// Aggregate loads the relations into SQLite and runs the grouped query.
func (e *Engine) Aggregate(ctx context.Context, year int) ([]model.DonationRecord, error) {
	rel, err := e.Source.Relations(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading relations: %w", err)
	}

	db, err := open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := load(ctx, db, rel); err != nil {
		return nil, err
	}

	start, end := aggregate.YearBounds(year)
	rows, err := db.QueryContext(ctx, aggregateSQL, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("query aggregate: %w", err)
	}
	defer rows.Close()

	return engine.ScanRecords(rows)
}

func open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

func load(ctx context.Context, db *sql.DB, rel model.Relations) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, d := range rel.Donations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO donations (donor_address, round_id, project_id, amount_in_usd, ts) VALUES (?, ?, ?, ?, ?)`,
			d.DonorAddress, d.RoundID, d.ProjectID, d.AmountUSD.InexactFloat64(), d.Timestamp.Unix(),
		); err != nil {
			return fmt.Errorf("insert donation %d: %w", i, err)
		}
	}
	for i, r := range rel.Rounds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rounds (id, round_metadata_name, donations_start_time) VALUES (?, ?, ?)`,
			r.ID, r.Name, r.StartTime.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert round %d: %w", i, err)
		}
	}
	for i, p := range rel.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, title, project_twitter) VALUES (?, ?, ?)`,
			p.ID, p.Title, p.SocialHandle,
		); err != nil {
			return fmt.Errorf("insert project %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}
