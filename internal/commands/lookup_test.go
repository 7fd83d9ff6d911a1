package commands_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantsscope/wrapped/internal/config"
)

const donorD = "0x1111111111111111111111111111111111111111"

func writeConfig(t *testing.T, engineName string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Dataset.Engine = engineName
	cfg.Dataset.SnapshotDir = snapshotDir(t)
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestLookup_Text(t *testing.T) {
	for _, name := range []string{"memory", "sqlite"} {
		t.Run(name, func(t *testing.T) {
			out, err := runWrapped(t, "lookup", "--config", writeConfig(t, name), donorD)
			require.NoError(t, err)
			assert.Contains(t, out, "you have contributed $150 to 2 projects in 1 rounds!")
			assert.Contains(t, out, "https://twitter.com/delta_h")
		})
	}
}

func TestLookup_JSON(t *testing.T) {
	out, err := runWrapped(t, "lookup", "--config", writeConfig(t, "memory"), "--format", "json", donorD)
	require.NoError(t, err)

	var got struct {
		Summary struct {
			Donor       string `json:"donor"`
			TotalAmount string `json:"total_amount"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, donorD, got.Summary.Donor)
	assert.Equal(t, "150", got.Summary.TotalAmount)
}

func TestLookup_Errors(t *testing.T) {
	cfgPath := writeConfig(t, "memory")

	tests := []struct {
		name string
		addr string
		want string
	}{
		{"invalid", "0x12", "INVALID_ADDRESS_FORMAT"},
		{"no records", "0x9999999999999999999999999999999999999999", "NO_RECORDS_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runWrapped(t, "lookup", "--config", cfgPath, tt.addr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLookup_EnvSelectsEngine(t *testing.T) {
	t.Setenv("WRAPPED_ENGINE", "oracle")
	_, err := runWrapped(t, "lookup", "--config", writeConfig(t, "memory"), donorD)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestLookup_RequiresAddress(t *testing.T) {
	_, err := runWrapped(t, "lookup")
	require.Error(t, err)
}
