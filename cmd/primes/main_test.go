package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkilfoyle/Primes/internal/config"
)

// A zero-list file made of comments and blank lines loads as an empty slice;
// run must reject it instead of indexing into it.
func TestRunRejectsEmptyZeroList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zeros.txt")
	require.NoError(t, os.WriteFile(path, []byte("# zeros of zeta on the critical line\n\n# none recorded\n"), 0o644))

	cfg := &config.Config{
		Estimate: config.EstimateConfig{
			Xs:        []float64{10},
			ZeroTerms: 10,
			MaxN:      30,
			Tail:      "constant",
			ZerosFile: path,
		},
		Output: config.OutputConfig{
			Directory:      dir,
			FilenamePrefix: "primes",
			LogLevel:       "error",
		},
	}
	require.NoError(t, cfg.Validate())

	err := run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no zeros")
}
