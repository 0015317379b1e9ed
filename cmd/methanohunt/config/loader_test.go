package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathIn(dir string) func() (string, error) {
	return func() (string, error) {
		return filepath.Join(dir, "methanohunt.yaml"), nil
	}
}

func TestLoadInternal_CreatesDefaultOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadInternal(pathIn(dir)))

	assert.Equal(t, DefaultConfig(), Global)
	if _, err := os.Stat(filepath.Join(dir, "methanohunt.yaml")); err != nil {
		t.Errorf("default config file was not created: %v", err)
	}
}

func TestLoadInternal_ReadsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	yaml := "database: /data/custom_db.tsv\noutput:\n  precision: 4\n  chart: false\nrun:\n  concurrency: 2\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "methanohunt.yaml"), []byte(yaml), 0644))

	require.NoError(t, loadInternal(pathIn(dir)))
	assert.Equal(t, "/data/custom_db.tsv", Global.Database)
	assert.Equal(t, 4, Global.Output.Precision)
	assert.False(t, Global.Output.Chart)
	assert.Equal(t, 2, Global.Run.Concurrency)
	assert.Equal(t, "debug", Global.Logging.Level)
}

func TestLoadInternal_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "methanohunt.yaml"),
		[]byte("database: other_db.tsv\n"), 0644))

	require.NoError(t, loadInternal(pathIn(dir)))
	assert.Equal(t, "other_db.tsv", Global.Database)
	assert.Equal(t, DefaultConfig().Run.Concurrency, Global.Run.Concurrency)
}

func TestLoadInternal_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"precision out of range", "database: db.tsv\noutput:\n  precision: 12\n"},
		{"zero concurrency", "database: db.tsv\nrun:\n  concurrency: 0\n"},
		{"bad log level", "database: db.tsv\nlogging:\n  level: loud\n"},
		{"empty database", "database: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "methanohunt.yaml"), []byte(tt.yaml), 0644))
			assert.Error(t, loadInternal(pathIn(dir)))
		})
	}
}

func TestLoadInternal_RejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "methanohunt.yaml"),
		[]byte("database: [unclosed\n"), 0644))
	assert.Error(t, loadInternal(pathIn(dir)))
}

func TestDefaultConfig_IsValid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadInternal(pathIn(dir)))
	// Creating then re-reading the default must round-trip losslessly.
	Global = MethanohuntConfig{}
	require.NoError(t, loadInternal(pathIn(dir)))
	assert.Equal(t, DefaultConfig(), Global)
}
