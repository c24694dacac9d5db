package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/commitgate/commitgate/internal/analysis"
	"github.com/commitgate/commitgate/internal/config"
	"github.com/commitgate/commitgate/internal/diff"
)

const testDiff = `diff --git a/main.go b/main.go
index abc1234..def5678 100644
--- a/main.go
+++ b/main.go
@@ -1,5 +1,6 @@
 package main

 func main() {
-	println("hello")
+	println("hello world")
+	println("goodbye")
 }
diff --git a/util.go b/util.go
new file mode 100644
--- /dev/null
+++ b/util.go
@@ -0,0 +1,5 @@
+package main
+
+func add(a, b int) int {
+	return a + b
+}
`

const twoHunkDiff = `diff --git a/big.go b/big.go
index 1111111..2222222 100644
--- a/big.go
+++ b/big.go
@@ -1,4 +1,5 @@
 package big

 const Size = 1
+const Extra = 2
 var x = 0
@@ -10,3 +11,4 @@
 func Grow() int {
 	return Size
+	return Extra
 }
`

const envTestDiff = `diff --git a/.env b/.env
new file mode 100644
--- /dev/null
+++ b/.env
@@ -0,0 +1 @@
+API_KEY=abc123def456
`

func setupModel(t *testing.T) Model {
	t.Helper()
	return setupModelWith(t, testDiff, "feat: add goodbye output")
}

func setupModelWith(t *testing.T, raw, message string) Model {
	t.Helper()
	ds, err := diff.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	rep := analysis.Evaluate(message, ds, config.Default())
	m := New(ds, rep)
	// Simulate window size
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func keyPress(t *testing.T, m Model, r rune) Model {
	t.Helper()
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return newM.(Model)
}

func TestModelInit(t *testing.T) {
	m := setupModel(t)

	if m.view != viewReport {
		t.Error("expected report view by default")
	}
	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0, got %d", m.fileIndex)
	}
	if len(m.lines) == 0 {
		t.Error("expected lines to be rendered")
	}
	if len(m.reportLines) == 0 {
		t.Error("expected report lines to be built")
	}
	if m.report == nil {
		t.Error("expected report to be set")
	}
}

func TestViewToggle(t *testing.T) {
	m := setupModel(t)

	m = keyPress(t, m, 'v')
	if m.view != viewFiles {
		t.Error("expected files view after toggle")
	}

	m = keyPress(t, m, 'v')
	if m.view != viewReport {
		t.Error("expected report view after second toggle")
	}
}

func TestToggleResetsScroll(t *testing.T) {
	m := setupModel(t)

	m = keyPress(t, m, 'j')
	if m.scrollOffset != 1 {
		t.Fatalf("expected scrollOffset 1, got %d", m.scrollOffset)
	}

	m = keyPress(t, m, 'v')
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 after view toggle, got %d", m.scrollOffset)
	}
}

func TestFileNavigation(t *testing.T) {
	m := setupModel(t)
	m = keyPress(t, m, 'v') // file navigation lives in the files view

	m = keyPress(t, m, 'n')
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 after next, got %d", m.fileIndex)
	}

	// Moving past the last file stays put.
	m = keyPress(t, m, 'n')
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 at end, got %d", m.fileIndex)
	}

	m = keyPress(t, m, 'N')
	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0 after prev, got %d", m.fileIndex)
	}
}

func TestFileNavigationOnlyInFilesView(t *testing.T) {
	m := setupModel(t)

	m = keyPress(t, m, 'n')
	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex to stay 0 in report view, got %d", m.fileIndex)
	}
}

func TestScrolling(t *testing.T) {
	m := setupModel(t)
	m = keyPress(t, m, 'v')

	m = keyPress(t, m, 'j')
	if m.scrollOffset != 1 {
		t.Errorf("expected scrollOffset 1, got %d", m.scrollOffset)
	}

	m = keyPress(t, m, 'k')
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0, got %d", m.scrollOffset)
	}

	// Can't scroll above 0
	m = keyPress(t, m, 'k')
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 at top, got %d", m.scrollOffset)
	}
}

func TestHunkNavigation(t *testing.T) {
	m := setupModelWith(t, twoHunkDiff, "refactor: grow sizes")
	m = keyPress(t, m, 'v')

	if len(m.lines) == 0 || !m.lines[0].IsHunk {
		t.Fatal("expected first rendered line to be a hunk header")
	}

	m = keyPress(t, m, ']')
	if m.scrollOffset == 0 || !m.lines[m.scrollOffset].IsHunk {
		t.Errorf("expected jump to second hunk, got offset %d", m.scrollOffset)
	}

	m = keyPress(t, m, '[')
	if m.scrollOffset != 0 {
		t.Errorf("expected jump back to first hunk, got offset %d", m.scrollOffset)
	}
}

func TestReportViewRenders(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	if !strings.Contains(view, "Commit Evaluation") {
		t.Error("expected view to contain the report title")
	}
	if !strings.Contains(view, m.report.Status) {
		t.Errorf("expected view to contain status %q", m.report.Status)
	}
	if !strings.Contains(view, "message") || !strings.Contains(view, "risk") {
		t.Error("expected view to list analyzer names")
	}
}

func TestFilesViewRenders(t *testing.T) {
	m := setupModel(t)
	m = keyPress(t, m, 'v')

	view := m.View()
	if !strings.Contains(view, "main.go") {
		t.Error("expected view to contain 'main.go'")
	}
	if !strings.Contains(view, "hello") {
		t.Error("expected view to contain diff content")
	}
}

func TestRiskMarker(t *testing.T) {
	m := setupModelWith(t, envTestDiff, "chore: add environment file")

	if !m.risky[".env"] {
		t.Error("expected .env to be marked risky")
	}

	m = keyPress(t, m, 'v')
	view := m.View()
	if !strings.Contains(view, ".env") {
		t.Error("expected view to list .env")
	}
}

func TestHelpToggle(t *testing.T) {
	m := setupModel(t)

	m = keyPress(t, m, '?')
	if !m.showHelp {
		t.Error("expected help to be shown")
	}

	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("expected help view to contain shortcuts")
	}

	m = keyPress(t, m, '?')
	if m.showHelp {
		t.Error("expected help hidden after second toggle")
	}
}
