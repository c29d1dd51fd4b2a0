package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{"port": 9090, "model": "gemini-2.5-flash", "temperature": 0.7}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000}
	assert.Error(t, cfg.Validate())
}

func TestValidate_TemperatureRange(t *testing.T) {
	cfg := &Config{Temperature: 3.5}
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingDataset(t *testing.T) {
	cfg := &Config{Dataset: filepath.Join(t.TempDir(), "nope.csv")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset file not found")
}

func TestValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9090}
	merged := cfg.MergeWithDefaults(Config{
		Port:        8080,
		Dataset:     "data/skills.csv",
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	})

	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, "data/skills.csv", merged.Dataset)
	assert.Equal(t, "gemini-2.5-flash", merged.Model)
	assert.Equal(t, 0.7, merged.Temperature)
}
