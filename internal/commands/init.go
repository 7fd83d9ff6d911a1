package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/grantsscope/wrapped/internal/config"
)

func newInitCommand() *cobra.Command {
	var engineName string
	var snapshotDir string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default wrapped.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			path, err := runInit(absDir, engineName, snapshotDir, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&engineName, "engine", "duckdb", "aggregation engine (memory, sqlite, duckdb)")
	cmd.Flags().StringVar(&snapshotDir, "snapshot", "", "local CSV snapshot directory for the memory and sqlite engines")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(dir, engineName, snapshotDir string, force bool) (string, error) {
	cfg := config.Default()
	cfg.Dataset.Engine = engineName
	cfg.Dataset.SnapshotDir = snapshotDir

	if _, err := newRegistry(cfg, zerolog.Nop()).Lookup(engineName); err != nil {
		return "", err
	}
	if !strings.EqualFold(engineName, "duckdb") && snapshotDir == "" {
		return "", fmt.Errorf("engine %s needs --snapshot", engineName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	if err := config.Save(path, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
