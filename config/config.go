package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	API     APIConfig     `toml:"api"`
	Theme   ThemeConfig   `toml:"theme"`
	Display DisplayConfig `toml:"display"`
	Filters FilterConfig  `toml:"filters"`
	Journal JournalConfig `toml:"journal"`
}

type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
}

type DisplayConfig struct {
	ShowActivity *bool `toml:"show_activity,omitempty"`
	ColumnWidth  int   `toml:"column_width,omitempty"` // characters, default 28
}

// FilterConfig holds default board filters applied on startup. The
// recognized options are fixed; the server does the actual filtering.
type FilterConfig struct {
	City        string `toml:"city,omitempty"`
	MinScore    int    `toml:"min_score,omitempty"`
	HasMustHave bool   `toml:"has_must_have,omitempty"`
}

type JournalConfig struct {
	Path string `toml:"path,omitempty"`
}

type ThemeConfig struct {
	BG          string `toml:"bg,omitempty"`
	FG          string `toml:"fg,omitempty"`
	Accent      string `toml:"accent,omitempty"`
	Muted       string `toml:"muted,omitempty"`
	Dim         string `toml:"dim,omitempty"`
	ColumnTitle string `toml:"column_title,omitempty"`
	CardTitle   string `toml:"card_title,omitempty"`
	ScoreHigh   string `toml:"score_high,omitempty"`
	ScoreMid    string `toml:"score_mid,omitempty"`
	ScoreLow    string `toml:"score_low,omitempty"`
	StatusBarBG string `toml:"status_bar_bg,omitempty"`
	StatusBarFG string `toml:"status_bar_fg,omitempty"`
	Error       string `toml:"error,omitempty"`
	Success     string `toml:"success,omitempty"`
	Warning     string `toml:"warning,omitempty"`
	CursorBG    string `toml:"cursor_bg,omitempty"`
	GrabbedBG   string `toml:"grabbed_bg,omitempty"`
	PendingFG   string `toml:"pending_fg,omitempty"`

	// Per-stage column accent colors, keyed by stage identifier.
	StageColors map[string]string `toml:"stage_colors,omitempty"`
}

// DefaultConfigPath returns ~/.config/talentboard/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "talentboard", "config.toml")
}

func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if p := cfg.Journal.Path; strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Journal.Path = filepath.Join(home, p[2:])
		}
	}

	return cfg, nil
}

// Save writes the config back to a TOML file, so filters applied in the UI
// survive a restart. The env-var token never ends up in the file; only a
// token that was already configured there is written back.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolvedToken returns the configured token, with the TALENTBOARD_TOKEN
// environment variable taking precedence so the token can stay out of the
// config file.
func (c Config) ResolvedToken() string {
	if env := os.Getenv("TALENTBOARD_TOKEN"); env != "" {
		return env
	}
	return c.API.Token
}

// ResolvedBaseURL returns the configured base URL or the local dev default.
func (c Config) ResolvedBaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return "http://localhost:8000/api"
}

// ResolvedTimeout returns the transition timeout, default 15s.
func (c Config) ResolvedTimeout() time.Duration {
	if c.API.TimeoutSeconds > 0 {
		return time.Duration(c.API.TimeoutSeconds) * time.Second
	}
	return 15 * time.Second
}

// ResolvedShowActivity returns the configured show_activity or false.
func (c Config) ResolvedShowActivity() bool {
	if c.Display.ShowActivity != nil {
		return *c.Display.ShowActivity
	}
	return false
}

// ResolvedColumnWidth returns the configured column width or 28.
func (c Config) ResolvedColumnWidth() int {
	if c.Display.ColumnWidth >= 16 && c.Display.ColumnWidth <= 60 {
		return c.Display.ColumnWidth
	}
	return 28
}

// ResolvedJournalPath returns the journal path, defaulting next to the
// config file. "off" disables the journal entirely.
func (c Config) ResolvedJournalPath() string {
	if c.Journal.Path != "" {
		if c.Journal.Path == "off" {
			return ""
		}
		return c.Journal.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "talentboard.db"
	}
	return filepath.Join(home, ".config", "talentboard", "journal.db")
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		BG:          "#101010",
		FG:          "#ffffff",
		Accent:      "#99ffe4",
		Muted:       "#505050",
		Dim:         "#a0a0a0",
		ColumnTitle: "#ffffff",
		CardTitle:   "#ffffff",
		ScoreHigh:   "#99ffe4",
		ScoreMid:    "#ffc799",
		ScoreLow:    "#ff8080",
		StatusBarBG: "#1a1a1a",
		StatusBarFG: "#a0a0a0",
		Error:       "#ff8080",
		Success:     "#99ffe4",
		Warning:     "#ffc799",
		CursorBG:    "#2a2a2a",
		GrabbedBG:   "#1a2520",
		PendingFG:   "#505050",
	}
}

// DefaultStageColors returns the stage → accent color map for both
// pipelines.
func DefaultStageColors() map[string]string {
	return map[string]string{
		"submitted":           "#a0a0a0",
		"screening":           "#6699ff",
		"recruiter_interview": "#ffc799",
		"shortlisted":         "#cc99ff",
		"client_interview":    "#ffc799",
		"offer":               "#ff99cc",
		"hired":               "#99ffe4",
		"rejected":            "#ff8080",
		"withdrawn":           "#505050",

		"cadastro":      "#a0a0a0",
		"triagem":       "#6699ff",
		"entrevistas":   "#ffc799",
		"selecao":       "#cc99ff",
		"envio_cliente": "#ff99cc",
		"contratacao":   "#99ffe4",
	}
}

// ResolvedTheme merges config theme with defaults for any unset fields.
func (c Config) ResolvedTheme() ThemeConfig {
	d := DefaultTheme()
	t := ThemeConfig{
		BG:          pick(c.Theme.BG, d.BG),
		FG:          pick(c.Theme.FG, d.FG),
		Accent:      pick(c.Theme.Accent, d.Accent),
		Muted:       pick(c.Theme.Muted, d.Muted),
		Dim:         pick(c.Theme.Dim, d.Dim),
		ColumnTitle: pick(c.Theme.ColumnTitle, d.ColumnTitle),
		CardTitle:   pick(c.Theme.CardTitle, d.CardTitle),
		ScoreHigh:   pick(c.Theme.ScoreHigh, d.ScoreHigh),
		ScoreMid:    pick(c.Theme.ScoreMid, d.ScoreMid),
		ScoreLow:    pick(c.Theme.ScoreLow, d.ScoreLow),
		StatusBarBG: pick(c.Theme.StatusBarBG, d.StatusBarBG),
		StatusBarFG: pick(c.Theme.StatusBarFG, d.StatusBarFG),
		Error:       pick(c.Theme.Error, d.Error),
		Success:     pick(c.Theme.Success, d.Success),
		Warning:     pick(c.Theme.Warning, d.Warning),
		CursorBG:    pick(c.Theme.CursorBG, d.CursorBG),
		GrabbedBG:   pick(c.Theme.GrabbedBG, d.GrabbedBG),
		PendingFG:   pick(c.Theme.PendingFG, d.PendingFG),
	}

	// Merge stage colors: defaults first, then config overrides per-key
	t.StageColors = DefaultStageColors()
	for k, v := range c.Theme.StageColors {
		t.StageColors[k] = v
	}

	return t
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
