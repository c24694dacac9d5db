// Package tui implements the Bubble Tea report browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/commitgate/commitgate/internal/analysis"
	"github.com/commitgate/commitgate/internal/diff"
	"github.com/commitgate/commitgate/internal/model"
)

type viewMode int

const (
	viewReport viewMode = iota
	viewFiles
)

// Model is the top-level Bubble Tea model for commitgate.
type Model struct {
	diffSet *diff.DiffSet
	report  *analysis.Report
	risky   map[string]bool

	// UI state
	width  int
	height int
	view   viewMode

	// File list
	fileIndex int // currently selected file

	// Scroll position within the active view
	scrollOffset int

	// Rendered lines for the current file
	lines []renderedLine

	// Prebuilt report page
	reportLines []string

	// Help
	showHelp bool
}

// New creates a TUI model from a parsed diff set and its evaluation report.
func New(ds *diff.DiffSet, rep *analysis.Report) Model {
	if ds == nil {
		ds = &diff.DiffSet{}
	}
	m := Model{
		diffSet:     ds,
		report:      rep,
		risky:       analysis.RiskyFiles(ds),
		reportLines: buildReportLines(rep),
	}
	m.updateLines()
	return m
}

func (m *Model) updateLines() {
	if len(m.diffSet.Files) == 0 {
		m.lines = nil
		return
	}
	m.lines = renderFile(m.diffSet.Files[m.fileIndex])
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Toggle):
			if m.view == viewReport {
				m.view = viewFiles
			} else {
				m.view = viewReport
			}
			m.scrollOffset = 0

		case key.Matches(msg, keys.Down):
			if m.scrollOffset < m.maxScroll() {
				m.scrollOffset++
			}

		case key.Matches(msg, keys.Up):
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}

		case key.Matches(msg, keys.NextFile):
			if m.view == viewFiles && m.fileIndex < len(m.diffSet.Files)-1 {
				m.fileIndex++
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.PrevFile):
			if m.view == viewFiles && m.fileIndex > 0 {
				m.fileIndex--
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.NextHunk):
			if m.view == viewFiles {
				m.jumpToNextHunk()
			}

		case key.Matches(msg, keys.PrevHunk):
			if m.view == viewFiles {
				m.jumpToPrevHunk()
			}

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	return m, nil
}

func (m Model) maxScroll() int {
	n := len(m.lines)
	if m.view == viewReport {
		n = len(m.reportLines)
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

func (m *Model) jumpToNextHunk() {
	for i := m.scrollOffset + 1; i < len(m.lines); i++ {
		if m.lines[i].IsHunk {
			m.scrollOffset = i
			return
		}
	}
}

func (m *Model) jumpToPrevHunk() {
	for i := m.scrollOffset - 1; i >= 0; i-- {
		if m.lines[i].IsHunk {
			m.scrollOffset = i
			return
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var main string
	if m.view == viewReport {
		main = m.renderReportView()
	} else {
		main = m.renderFilesView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

// buildReportLines renders the report page once; its content never
// changes while the program runs.
func buildReportLines(rep *analysis.Report) []string {
	var lines []string

	status := model.StatusForScore(rep.OverallScore)
	banner := lipgloss.NewStyle().Foreground(statusColor(status)).Bold(true).
		Render(fmt.Sprintf("%.1f/%d %s", rep.OverallScore, rep.MaxScore, rep.Status))
	lines = append(lines, reportTitleStyle.Render("Commit Evaluation"), "", banner, "")

	for _, name := range analysis.AnalyzerOrder() {
		r := rep.Details[name]
		row := fmt.Sprintf("%s %s %3d", analyzerNameStyle.Width(8).Render(name), scoreBar(r.Score, r.MaxScore), r.Score)
		lines = append(lines, row)
	}

	sum := rep.Summary
	if len(sum.Issues) > 0 {
		lines = append(lines, "", sectionIssueStyle.Render("Issues"))
		for _, s := range sum.Issues {
			lines = append(lines, findingStyle.Render("  ! "+s))
		}
	}
	if len(sum.Warnings) > 0 {
		lines = append(lines, "", sectionWarningStyle.Render("Warnings"))
		for _, s := range sum.Warnings {
			lines = append(lines, findingStyle.Render("  * "+s))
		}
	}
	if len(sum.Suggestions) > 0 {
		lines = append(lines, "", sectionSuggestionStyle.Render("Suggestions"))
		for _, s := range sum.Suggestions {
			lines = append(lines, findingStyle.Render("  - "+s))
		}
	}
	if len(sum.Issues)+len(sum.Warnings)+len(sum.Suggestions) == 0 {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(colorGreen).Render("No findings."))
	}

	return lines
}

func (m Model) renderReportView() string {
	innerHeight := m.height - 4 // status bar + borders
	if innerHeight < 1 {
		innerHeight = 1
	}

	end := m.scrollOffset + innerHeight
	if end > len(m.reportLines) {
		end = len(m.reportLines)
	}
	start := m.scrollOffset
	if start > end {
		start = end
	}

	content := strings.Join(m.reportLines[start:end], "\n")
	return diffViewStyle.Width(m.width - 2).Height(innerHeight).Render(content)
}

func (m Model) renderFilesView() string {
	fileListWidth := m.fileListWidth()
	diffWidth := m.width - fileListWidth - 1 // -1 for gap

	fileList := m.renderFileList(fileListWidth, m.height-2)
	diffView := m.renderDiffView(diffWidth, m.height-2)

	return lipgloss.JoinHorizontal(lipgloss.Top, fileList, " ", diffView)
}

func (m Model) fileListWidth() int {
	// Based on the longest filename, capped at a third of the screen
	maxLen := 20
	for _, f := range m.diffSet.Files {
		name := f.DisplayName()
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	w := maxLen + 14 // status letter + marker + stats
	if w > m.width/3 {
		w = m.width / 3
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderFileList(width, height int) string {
	var b strings.Builder

	for i, f := range m.diffSet.Files {
		name := f.DisplayName()

		maxName := width - 14
		if maxName < 8 {
			maxName = 8
		}
		if len(name) > maxName {
			name = "…" + name[len(name)-maxName+1:]
		}

		line := fmt.Sprintf("%s %-*s +%d -%d", f.Status.Letter(), maxName, name, f.Additions, f.Deletions)

		var style lipgloss.Style
		switch {
		case i == m.fileIndex:
			style = fileItemSelectedStyle
		case f.Status == model.StatusAdded:
			style = fileItemNewStyle
		case f.Status == model.StatusDeleted:
			style = fileItemDeletedStyle
		default:
			style = fileItemStyle
		}

		b.WriteString(style.Width(width - 6).Render(line))
		if m.risky[f.Path] {
			b.WriteString(riskMarkerStyle.Render(" !"))
		}
		if i < len(m.diffSet.Files)-1 {
			b.WriteByte('\n')
		}
	}

	innerHeight := height - 2 // borders
	return fileListStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderDiffView(width, height int) string {
	if len(m.diffSet.Files) == 0 {
		return diffViewStyle.Width(width).Height(height - 2).Render("No changes")
	}

	f := m.diffSet.Files[m.fileIndex]
	innerWidth := width - 4 // borders + padding
	innerHeight := height - 2

	header := fileHeaderStyle.Render(f.DisplayName())

	visibleLines := innerHeight - 2 // header takes some space
	if visibleLines < 1 {
		visibleLines = 1
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	if len(m.lines) == 0 {
		b.WriteString(helpBarStyle.Render("(no text changes)"))
	}

	end := m.scrollOffset + visibleLines
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(styleLine(m.lines[i], innerWidth))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	return diffViewStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderStatusBar() string {
	nFiles, added, deleted := m.diffSet.Stats()

	var left string
	if m.view == viewReport {
		left = " Report"
	} else {
		left = fmt.Sprintf(" File %d/%d", m.fileIndex+1, nFiles)
		if len(m.lines) > 0 {
			left += fmt.Sprintf("  Line %d/%d", m.scrollOffset+1, len(m.lines))
		}
	}

	right := fmt.Sprintf("+%d -%d  %.1f %s  ? help ", added, deleted, m.report.OverallScore, m.report.Status)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(fileHeaderStyle.Render("commitgate — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"↑/k", "Scroll up"},
		{"↓/j", "Scroll down"},
		{"v", "Toggle report/files view"},
		{"n/Tab", "Next file"},
		{"N/S-Tab", "Previous file"},
		{"]", "Next hunk"},
		{"[", "Previous hunk"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

// Run starts the TUI report browser.
func Run(ds *diff.DiffSet, rep *analysis.Report) error {
	m := New(ds, rep)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
