package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/commitgate/commitgate/internal/analysis"
	"github.com/commitgate/commitgate/internal/model"
)

// styles paints the text report when stdout is a terminal and degrades to
// plain text otherwise, so hook and CI output stays grep-able.
type styles struct {
	enabled bool

	red    lipgloss.Style
	green  lipgloss.Style
	yellow lipgloss.Style
	blue   lipgloss.Style
	orange lipgloss.Style
	dimmed lipgloss.Style
	strong lipgloss.Style
}

func newStyles() styles {
	return styles{
		enabled: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		red:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")),
		green:   lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")),
		yellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")),
		blue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd")),
		orange:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c")),
		dimmed:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		strong:  lipgloss.NewStyle().Bold(true),
	}
}

func (s styles) paint(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// statusStyle maps a report status to its color.
func (s styles) statusStyle(status string) lipgloss.Style {
	switch status {
	case "excellent":
		return s.green
	case "good":
		return s.blue
	case "warning":
		return s.yellow
	case "poor":
		return s.orange
	default:
		return s.red
	}
}

// scoreLine renders the overall verdict, colored by status.
func (s styles) scoreLine(rep *analysis.Report) string {
	text := fmt.Sprintf("%.1f/%d %s", rep.OverallScore, rep.MaxScore, rep.Status)
	return s.paint(s.statusStyle(rep.Status).Bold(true), text)
}

// bar renders a ten-cell score bar, colored like the status the score
// would earn on its own.
func (s styles) bar(score, max int) string {
	pct := 0.0
	if max > 0 {
		pct = float64(score) / float64(max) * 100
	}
	filled := int(pct / 10)
	b := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	status := model.StatusForScore(pct)
	return s.paint(s.statusStyle(status.String()), b)
}

func (s styles) issue(text string) string      { return s.paint(s.red, "! "+text) }
func (s styles) warning(text string) string    { return s.paint(s.yellow, "* "+text) }
func (s styles) suggestion(text string) string { return s.paint(s.dimmed, "- "+text) }
func (s styles) dim(text string) string        { return s.paint(s.dimmed, text) }
func (s styles) bold(text string) string       { return s.paint(s.strong, text) }
func (s styles) ok(text string) string         { return s.paint(s.green, text) }
