package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantsscope/wrapped/internal/aggregate"
	"github.com/grantsscope/wrapped/internal/model"
)

// MonthKeyFormat is the strftime('%Y-%m') layout SQL engines group by.
const MonthKeyFormat = "2006-01"

// SQLRow is one grouped row as returned by a SQL engine, before rounding.
type SQLRow struct {
	Donor        string
	RoundName    string
	MonthKey     string // "2023-08"
	ProjectTitle string
	SocialHandle string
	Sum          float64
}

// Record converts a SQL row into a DonationRecord, applying the same
// rounding rule as the in-memory aggregation.
func (r SQLRow) Record() (model.DonationRecord, error) {
	month, err := time.Parse(MonthKeyFormat, r.MonthKey)
	if err != nil {
		return model.DonationRecord{}, fmt.Errorf("parsing round month %q: %w", r.MonthKey, err)
	}
	return model.DonationRecord{
		DonorAddress:    r.Donor,
		RoundName:       r.RoundName,
		RoundStartMonth: month.Format(model.RoundStartMonthFormat),
		ProjectTitle:    r.ProjectTitle,
		SocialHandle:    r.SocialHandle,
		AmountUSD:       aggregate.RoundAmount(decimal.NewFromFloat(r.Sum)),
	}, nil
}

// Scanner is satisfied by *sql.Rows.
type Scanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// ScanRecords reads (donor, round, month key, title, handle, sum) rows.
func ScanRecords(rows Scanner) ([]model.DonationRecord, error) {
	records := []model.DonationRecord{}
	for i := 0; rows.Next(); i++ {
		var row SQLRow
		if err := rows.Scan(&row.Donor, &row.RoundName, &row.MonthKey, &row.ProjectTitle, &row.SocialHandle, &row.Sum); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", i, err)
		}
		rec, err := row.Record()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return records, nil
}
