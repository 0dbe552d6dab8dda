package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://ats.example.com/api"
token = "secret"
timeout_seconds = 5

[display]
show_activity = true
column_width = 32

[filters]
city = "Recife"
min_score = 70

[journal]
path = "off"

[theme]
accent = "#ff00ff"

[theme.stage_colors]
offer = "#123456"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ats.example.com/api", cfg.ResolvedBaseURL())
	assert.Equal(t, "secret", cfg.ResolvedToken())
	assert.Equal(t, 5*time.Second, cfg.ResolvedTimeout())
	assert.True(t, cfg.ResolvedShowActivity())
	assert.Equal(t, 32, cfg.ResolvedColumnWidth())
	assert.Equal(t, "Recife", cfg.Filters.City)
	assert.Equal(t, 70, cfg.Filters.MinScore)
	assert.Empty(t, cfg.ResolvedJournalPath(), `path = "off" disables the journal`)

	theme := cfg.ResolvedTheme()
	assert.Equal(t, "#ff00ff", theme.Accent)
	assert.Equal(t, DefaultTheme().FG, theme.FG, "unset fields fall back to defaults")
	assert.Equal(t, "#123456", theme.StageColors["offer"])
	assert.Equal(t, DefaultStageColors()["hired"], theme.StageColors["hired"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidToml(t *testing.T) {
	path := writeConfig(t, `api = not valid`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, "http://localhost:8000/api", cfg.ResolvedBaseURL())
	assert.Equal(t, 15*time.Second, cfg.ResolvedTimeout())
	assert.False(t, cfg.ResolvedShowActivity())
	assert.Equal(t, 28, cfg.ResolvedColumnWidth())
	assert.NotEmpty(t, cfg.ResolvedJournalPath())
}

func TestResolvedColumnWidthClampsOutOfRange(t *testing.T) {
	cfg := Config{Display: DisplayConfig{ColumnWidth: 500}}
	assert.Equal(t, 28, cfg.ResolvedColumnWidth())

	cfg.Display.ColumnWidth = 4
	assert.Equal(t, 28, cfg.ResolvedColumnWidth())
}

func TestResolvedTokenPrefersEnv(t *testing.T) {
	t.Setenv("TALENTBOARD_TOKEN", "env-token")
	cfg := Config{API: APIConfig{Token: "file-token"}}
	assert.Equal(t, "env-token", cfg.ResolvedToken())

	t.Setenv("TALENTBOARD_TOKEN", "")
	assert.Equal(t, "file-token", cfg.ResolvedToken())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Config{
		API:     APIConfig{BaseURL: "https://ats.example.com/api", Token: "secret"},
		Filters: FilterConfig{City: "Recife", MinScore: 70, HasMustHave: true},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API, loaded.API)
	assert.Equal(t, cfg.Filters, loaded.Filters)
}

func TestJournalPathTildeExpansion(t *testing.T) {
	path := writeConfig(t, `
[journal]
path = "~/state/journal.db"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "state", "journal.db"), cfg.ResolvedJournalPath())
}
