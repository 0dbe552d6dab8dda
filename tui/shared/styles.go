package shared

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rafael/talentboard/config"
)

var (
	// Board header
	BoardTitleStyle  lipgloss.Style
	BoardClientStyle lipgloss.Style

	// Columns
	ColumnTitleStyle         lipgloss.Style
	ColumnCountStyle         lipgloss.Style
	ColumnBorderStyle        lipgloss.Style
	ColumnBorderActiveStyle  lipgloss.Style
	ColumnBorderedTargetTint lipgloss.Style
	EmptyColumnStyle         lipgloss.Style

	// Cards
	CardTitleStyle lipgloss.Style
	CardMetaStyle  lipgloss.Style
	CardNoteStyle  lipgloss.Style
	CursorStyle    lipgloss.Style
	GrabbedStyle   lipgloss.Style
	PendingStyle   lipgloss.Style
	BadgeStyle     lipgloss.Style

	// Score badges
	ScoreHighStyle lipgloss.Style
	ScoreMidStyle  lipgloss.Style
	ScoreLowStyle  lipgloss.Style

	// Per-stage accents, keyed by stage identifier
	StageAccentStyles   map[string]lipgloss.Style
	StageAccentFallback lipgloss.Style

	// Status bar
	StatusBarStyle lipgloss.Style

	// Help styles
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	HelpOverlayStyle lipgloss.Style

	// Modal overlays
	ModalOverlayStyle lipgloss.Style
	ModalTitleStyle   lipgloss.Style

	// Activity pane
	ActivityBorderStyle lipgloss.Style
	ActivityTimeStyle   lipgloss.Style

	// Error view
	ErrorStyle lipgloss.Style

	// Spinner
	SpinnerStyle lipgloss.Style

	// Feedback
	FeedbackSuccessStyle lipgloss.Style
	FeedbackWarningStyle lipgloss.Style
	FeedbackErrorStyle   lipgloss.Style
	FeedbackInfoStyle    lipgloss.Style
)

// InitStyles configures all styles from a resolved theme.
func InitStyles(theme config.ThemeConfig) {
	BoardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.FG))

	BoardClientStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	ColumnTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColumnTitle))

	ColumnCountStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	ColumnBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(0, 1)

	ColumnBorderActiveStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1)

	ColumnBorderedTargetTint = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(theme.Warning)).
		Padding(0, 1)

	EmptyColumnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Italic(true)

	CardTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.CardTitle))

	CardMetaStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	CardNoteStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted))

	CursorStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.CursorBG))

	GrabbedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.GrabbedBG)).
		Bold(true)

	PendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.PendingFG))

	BadgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	ScoreHighStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ScoreHigh))

	ScoreMidStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ScoreMid))

	ScoreLowStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ScoreLow))

	StageAccentStyles = make(map[string]lipgloss.Style, len(theme.StageColors))
	for stage, color := range theme.StageColors {
		StageAccentStyles[stage] = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
	}
	StageAccentFallback = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.FG))

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarFG)).
		Background(lipgloss.Color(theme.StatusBarBG)).
		Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(1, 2)

	ModalOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.FG))

	ActivityBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(0, 1)

	ActivityTimeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Warning))

	FeedbackSuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Success))

	FeedbackWarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Warning))

	FeedbackErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))

	FeedbackInfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))
}

// ScoreStyle picks the badge style for a candidate score. 80+ is strong,
// 60+ acceptable, anything lower weak.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return ScoreHighStyle
	case score >= 60:
		return ScoreMidStyle
	default:
		return ScoreLowStyle
	}
}

// StageAccent returns the accent style for a stage identifier.
func StageAccent(stage string) lipgloss.Style {
	if s, ok := StageAccentStyles[stage]; ok {
		return s
	}
	return StageAccentFallback
}
