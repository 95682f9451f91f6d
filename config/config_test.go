package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "test_config.yaml")
	configContent := `
log_level: -4
log_format: json
genre: mpb
browser:
  driver: static
  page_load_timeout: 90s
output:
  file: mpb.jsonl
  append: true
selectors:
  artist:
    members: 'th:contains("Members") + td a'
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "mpb", cfg.Genre)
	assert.Equal(t, "static", cfg.Browser.Driver)
	assert.Equal(t, 90*time.Second, cfg.Browser.PageLoadTimeout.Std())
	assert.Equal(t, 60*time.Second, cfg.Browser.ElementTimeout.Std(), "unset keys keep defaults")
	assert.Equal(t, "mpb.jsonl", cfg.Output.File)
	assert.True(t, cfg.Output.Append)
	assert.Equal(t, "local", cfg.Output.Type)
	assert.Equal(t, `th:contains("Members") + td a`, cfg.Selectors.Artist.Members)
	assert.Equal(t, "h1.MuiTypography-root", cfg.Selectors.Artist.Name)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "config.toml")
	configContent := `
genre = "jazz"

[browser]
driver = "rod"
headless = false
element_timeout = "30s"

[output]
type = "gcs"

[output.gcs]
bucket = "crawls"
prefix = "discogs"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, "jazz", cfg.Genre)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 30*time.Second, cfg.Browser.ElementTimeout.Std())
	assert.Equal(t, 120*time.Second, cfg.Browser.PageLoadTimeout.Std())
	assert.Equal(t, "gcs", cfg.Output.Type)
	assert.Equal(t, "crawls", cfg.Output.GCS.Bucket)
	assert.Equal(t, "discogs", cfg.Output.GCS.Prefix)
	assert.NoError(t, cfg.Validate())
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("config.yaml")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("non_existent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "invalid_config.yaml")
	configContent := `
log_level: -4
genre: rock
invalid_yaml: [this is not valid yaml
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidDuration(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("browser:\n  element_timeout: soon\n"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Browser.Driver = "selenium" }},
		{"unknown output", func(c *Config) { c.Output.Type = "s3" }},
		{"gcs without bucket", func(c *Config) { c.Output.Type = "gcs" }},
		{"empty output file", func(c *Config) { c.Output.File = "" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
		{"search url without genre", func(c *Config) { c.Site.SearchURL = "https://www.discogs.com/search" }},
		{"zero timeout", func(c *Config) { c.Browser.ElementTimeout = 0 }},
		{"empty selector", func(c *Config) { c.Selectors.Release.TrackTime = " " }},
		{"slot without position", func(c *Config) { c.Selectors.Search.Slot = "#search_results > li a" }},
	}

	assert.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestResolveExplicit(t *testing.T) {
	assert.Equal(t, "/etc/discogs.yaml", Resolve("/etc/discogs.yaml"))

	cfg, path, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, path, "missing.yaml")
}
