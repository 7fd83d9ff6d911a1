package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/grantsscope/wrapped/internal/model"
)

// Snapshot file names inside a snapshot directory.
const (
	DonationsFile = "donations.csv"
	RoundsFile    = "rounds.csv"
	ProjectsFile  = "projects.csv"
)

// LoadSnapshot reads the three relations from dir.
func LoadSnapshot(dir string) (model.Relations, error) {
	var rel model.Relations

	donations, err := readFile(filepath.Join(dir, DonationsFile), ReadDonations)
	if err != nil {
		return rel, err
	}
	rounds, err := readFile(filepath.Join(dir, RoundsFile), ReadRounds)
	if err != nil {
		return rel, err
	}
	projects, err := readFile(filepath.Join(dir, ProjectsFile), ReadProjects)
	if err != nil {
		return rel, err
	}

	rel.Donations = donations
	rel.Rounds = rounds
	rel.Projects = projects
	return rel, nil
}

// SaveSnapshot writes the three relations to dir, creating it if needed.
func SaveSnapshot(dir string, rel model.Relations) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	if err := writeFile(filepath.Join(dir, DonationsFile), func(w io.Writer) error {
		return WriteDonations(w, rel.Donations)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, RoundsFile), func(w io.Writer) error {
		return WriteRounds(w, rel.Rounds)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, ProjectsFile), func(w io.Writer) error {
		return WriteProjects(w, rel.Projects)
	})
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
