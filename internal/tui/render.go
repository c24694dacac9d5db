package tui

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/charmbracelet/lipgloss"

	"github.com/commitgate/commitgate/internal/diff"
	"github.com/commitgate/commitgate/internal/model"
)

// renderedLine is a single line of diff output ready for display.
type renderedLine struct {
	OldNum  int // 0 means not applicable (add-only)
	NewNum  int // 0 means not applicable (delete-only)
	Op      gitdiff.LineOp
	Content string // raw text content (no trailing newline)
	IsHunk  bool   // true if this is a hunk header

	// Syntax highlighting spans (nil = no highlighting)
	Spans []diff.Span
}

// renderFile produces renderedLines for a file's diff fragments.
func renderFile(f *diff.FileChange) []renderedLine {
	var lines []renderedLine

	// Collect all content lines for syntax highlighting
	var contentLines []string
	for _, frag := range f.Fragments {
		for _, line := range frag.Lines {
			contentLines = append(contentLines, strings.TrimRight(line.Line, "\n\r"))
		}
	}

	// Highlight all content lines at once
	highlighted := diff.Highlight(f.Path, contentLines)
	hlIdx := 0

	for i, frag := range f.Fragments {
		lines = append(lines, renderedLine{
			IsHunk:  true,
			Content: formatHunkHeader(frag),
		})

		oldLine := int(frag.OldPosition)
		newLine := int(frag.NewPosition)

		for _, line := range frag.Lines {
			rl := renderedLine{
				Op:      line.Op,
				Content: strings.TrimRight(line.Line, "\n\r"),
			}

			if hlIdx < len(highlighted) {
				rl.Spans = highlighted[hlIdx]
				hlIdx++
			}

			switch line.Op {
			case gitdiff.OpContext:
				rl.OldNum = oldLine
				rl.NewNum = newLine
				oldLine++
				newLine++
			case gitdiff.OpDelete:
				rl.OldNum = oldLine
				oldLine++
			case gitdiff.OpAdd:
				rl.NewNum = newLine
				newLine++
			}

			lines = append(lines, rl)
		}

		// Blank separator between hunks (but not after the last)
		if i < len(f.Fragments)-1 {
			lines = append(lines, renderedLine{Content: ""})
		}
	}

	return lines
}

func formatHunkHeader(frag *gitdiff.TextFragment) string {
	old := fmt.Sprintf("-%d", frag.OldPosition)
	if frag.OldLines != 1 {
		old += fmt.Sprintf(",%d", frag.OldLines)
	}
	new := fmt.Sprintf("+%d", frag.NewPosition)
	if frag.NewLines != 1 {
		new += fmt.Sprintf(",%d", frag.NewLines)
	}

	header := fmt.Sprintf("@@ %s %s @@", old, new)
	if frag.Comment != "" {
		header += " " + frag.Comment
	}
	return header
}

// renderSpans renders line content with syntax coloring. Chroma colors
// apply only to context lines so added and removed lines keep their
// green/red diff coloring.
func renderSpans(rl renderedLine, prefix string) string {
	if len(rl.Spans) == 0 {
		return prefix + rl.Content
	}

	var b strings.Builder
	b.WriteString(prefix)

	for _, sp := range rl.Spans {
		if sp.Color != "" && rl.Op == gitdiff.OpContext {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(sp.Color)).Render(sp.Text))
		} else {
			b.WriteString(sp.Text)
		}
	}

	return b.String()
}

// styleLine applies styling to a rendered line in the diff pane.
func styleLine(rl renderedLine, width int) string {
	if rl.IsHunk {
		return hunkHeaderStyle.Width(width).Render(rl.Content)
	}

	var oldNum, newNum string
	if rl.OldNum > 0 {
		oldNum = fmt.Sprintf("%4d", rl.OldNum)
	} else {
		oldNum = "    "
	}
	if rl.NewNum > 0 {
		newNum = fmt.Sprintf("%4d", rl.NewNum)
	} else {
		newNum = "    "
	}

	lineNums := lineNumberStyle.Render(oldNum) + " " + lineNumberStyle.Render(newNum)

	var prefix string
	var style func(string) string

	switch rl.Op {
	case gitdiff.OpAdd:
		prefix = "+"
		style = func(s string) string { return addedLineStyle.Render(s) }
	case gitdiff.OpDelete:
		prefix = "-"
		style = func(s string) string { return deletedLineStyle.Render(s) }
	default:
		prefix = " "
		style = nil // context lines get syntax highlighting instead
	}

	var content string
	if style == nil {
		content = renderSpans(rl, prefix)
	} else {
		content = style(prefix + rl.Content)
	}

	// Truncate long lines
	maxContent := width - 12
	if maxContent > 0 && lipgloss.Width(content) > maxContent {
		content = truncate(prefix+rl.Content, maxContent)
		if style != nil {
			content = style(content)
		}
	}

	return lineNums + " " + content
}

// scoreBar renders a ten-cell score bar colored by the score's status.
func scoreBar(score, max int) string {
	pct := 0.0
	if max > 0 {
		pct = float64(score) / float64(max) * 100
	}
	filled := int(pct / 10)
	if filled > 10 {
		filled = 10
	}

	barStyle := lipgloss.NewStyle().Foreground(statusColor(model.StatusForScore(pct)))
	dimStyle := lipgloss.NewStyle().Foreground(colorDim)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", 10-filled))
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}
