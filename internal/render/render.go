// Package render writes a Report as text for terminals or as JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/grantsscope/wrapped/internal/model"
)

// Formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders report in format.
func Write(w io.Writer, format string, report model.Report) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return Text(w, report)
	case FormatJSON:
		return JSON(w, report)
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, report model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Dollars formats a whole-unit amount with thousands separators: "$1,234".
func Dollars(d decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("$%d", d.IntPart())
}

// Text writes the summary, leaderboards, contribution tree and
// recommendations.
func Text(w io.Writer, report model.Report) error {
	s := report.Summary
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Congratulations! In %d, you have contributed %s to %d projects in %d rounds!\n",
		s.Year, Dollars(s.TotalAmount), s.ProjectNum, s.RoundsNum)

	fmt.Fprintln(tw, "\nYour top rounds:")
	writeTotals(tw, s.TopRounds)
	fmt.Fprintln(tw, "\nYour top projects:")
	writeTotals(tw, s.TopProjects)

	fmt.Fprintf(tw, "\nYour %d contribution burst:\n", s.Year)
	for _, round := range report.Chart.Children {
		fmt.Fprintf(tw, "  %s\t%s\n", round.Label, Dollars(round.Amount))
		for _, project := range round.Children {
			fmt.Fprintf(tw, "    %s\t%s\n", project.Label, Dollars(project.Amount))
		}
	}

	r := report.Recommendations
	fmt.Fprintf(tw, "\n%d Recommendations\n", s.Year+1)
	fmt.Fprintf(tw, "A total of %d unique voters also supported the top projects you contributed to in %d.\n", r.PeerCount, s.Year)
	if len(r.ByAmount) == 0 && len(r.ByVotes) == 0 {
		fmt.Fprintln(tw, "No other projects to suggest yet.")
		return tw.Flush()
	}

	fmt.Fprintln(tw, "\nSorted by contribution amount:")
	for _, e := range r.ByAmount {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.ProjectTitle, Dollars(e.TotalAmount), e.URL)
	}
	fmt.Fprintln(tw, "\nSorted by number of votes:")
	for _, e := range r.ByVotes {
		fmt.Fprintf(tw, "  %s\t%d votes\t%s\n", e.ProjectTitle, e.VoteCount, e.URL)
	}
	return tw.Flush()
}

func writeTotals(w io.Writer, totals []model.Total) {
	for i, t := range totals {
		fmt.Fprintf(w, "  %d. %s\t%s\n", i+1, t.Label, Dollars(t.Amount))
	}
}
