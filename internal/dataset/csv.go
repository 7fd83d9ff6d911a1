package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/grantsscope/wrapped/internal/errors"
	"github.com/grantsscope/wrapped/internal/model"
)

// Headers of the pinned allo/v1 snapshot schema.
const (
	DonationsHeader = "donor_address,round_id,project_id,amount_in_usd,timestamp"
	RoundsHeader    = "id,round_metadata_name,donations_start_time"
	ProjectsHeader  = "id,title,project_twitter"
)

const (
	timeFormat = time.RFC3339

	donationFields = 5
	colDonor       = 0
	colRoundID     = 1
	colProjectID   = 2
	colAmount      = 3
	colTimestamp   = 4

	colRoundKey  = 0
	colRoundName = 1
	colStart     = 2

	colProjectKey = 0
	colTitle      = 1
	colTwitter    = 2
)

// ReadDonations reads donations.csv.
func ReadDonations(r io.Reader) ([]model.Donation, error) {
	records, err := readTable(r, "donations", DonationsHeader)
	if err != nil {
		return nil, err
	}
	var donations []model.Donation
	for i, rec := range records {
		d, err := UnmarshalDonation(rec)
		if err != nil {
			return nil, schemaErr("donations", fmt.Errorf("row %d: %w", i+2, err))
		}
		donations = append(donations, d)
	}
	return donations, nil
}

// ReadRounds reads rounds.csv.
func ReadRounds(r io.Reader) ([]model.Round, error) {
	records, err := readTable(r, "rounds", RoundsHeader)
	if err != nil {
		return nil, err
	}
	var rounds []model.Round
	for i, rec := range records {
		start, err := time.Parse(timeFormat, rec[colStart])
		if err != nil {
			return nil, schemaErr("rounds", fmt.Errorf("row %d: parsing donations_start_time %q: %w", i+2, rec[colStart], err))
		}
		rounds = append(rounds, model.Round{
			ID:        rec[colRoundKey],
			Name:      rec[colRoundName],
			StartTime: start.UTC(),
		})
	}
	return rounds, nil
}

// ReadProjects reads projects.csv.
func ReadProjects(r io.Reader) ([]model.Project, error) {
	records, err := readTable(r, "projects", ProjectsHeader)
	if err != nil {
		return nil, err
	}
	var projects []model.Project
	for _, rec := range records {
		projects = append(projects, model.Project{
			ID:           rec[colProjectKey],
			Title:        rec[colTitle],
			SocialHandle: rec[colTwitter],
		})
	}
	return projects, nil
}

// WriteDonations writes donations.csv (including header).
func WriteDonations(w io.Writer, donations []model.Donation) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(DonationsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, d := range donations {
		if err := cw.Write(MarshalDonation(d)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteRounds writes rounds.csv (including header).
func WriteRounds(w io.Writer, rounds []model.Round) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(RoundsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rounds {
		row := []string{r.ID, r.Name, r.StartTime.UTC().Format(timeFormat)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteProjects writes projects.csv (including header).
func WriteProjects(w io.Writer, projects []model.Project) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ProjectsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range projects {
		if err := cw.Write([]string{p.ID, p.Title, p.SocialHandle}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalDonation converts a Donation to a CSV row.
func MarshalDonation(d model.Donation) []string {
	row := make([]string, donationFields)
	row[colDonor] = d.DonorAddress
	row[colRoundID] = d.RoundID
	row[colProjectID] = d.ProjectID
	row[colAmount] = d.AmountUSD.String()
	row[colTimestamp] = d.Timestamp.UTC().Format(timeFormat)
	return row
}

// UnmarshalDonation converts a CSV row to a Donation. Donor addresses are
// stored lowercase.
func UnmarshalDonation(record []string) (model.Donation, error) {
	if len(record) != donationFields {
		return model.Donation{}, fmt.Errorf("expected %d fields, got %d", donationFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Donation{}, fmt.Errorf("parsing amount_in_usd %q: %w", record[colAmount], err)
	}

	ts, err := time.Parse(timeFormat, record[colTimestamp])
	if err != nil {
		return model.Donation{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return model.Donation{
		DonorAddress: strings.ToLower(record[colDonor]),
		RoundID:      record[colRoundID],
		ProjectID:    record[colProjectID],
		AmountUSD:    amount,
		Timestamp:    ts.UTC(),
	}, nil
}

// readTable reads all rows, checks the header against want and returns the
// data rows. An empty input is a table with no rows.
func readTable(r io.Reader, table, want string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = strings.Count(want, ",") + 1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, schemaErr(table, fmt.Errorf("reading CSV: %w", err))
	}
	if len(records) == 0 {
		return nil, nil
	}
	if got := strings.Join(records[0], ","); got != want {
		return nil, schemaErr(table, fmt.Errorf("header %q, want %q", got, want))
	}
	return records[1:], nil
}

func schemaErr(table string, cause error) error {
	return apperrors.Wrap(apperrors.CodeSchemaMismatch, "reading "+table, cause)
}
