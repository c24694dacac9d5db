package analysis

import (
	"strings"
	"testing"

	"github.com/commitgate/commitgate/internal/config"
)

func msgCfg() config.MessageConfig {
	return config.Default().Message
}

func TestMessageWellFormed(t *testing.T) {
	res := AnalyzeMessage("feat: add login", msgCfg())

	if res.Score != res.MaxScore {
		t.Errorf("expected full score, got %d/%d: %v %v", res.Score, res.MaxScore, res.Issues, res.Warnings)
	}
	if len(res.Issues) != 0 || len(res.Warnings) != 0 {
		t.Errorf("expected no issues or warnings, got %v / %v", res.Issues, res.Warnings)
	}
}

func TestMessageEmpty(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\n"} {
		res := AnalyzeMessage(msg, msgCfg())
		if res.Score != 0 {
			t.Errorf("empty message %q: expected score 0, got %d", msg, res.Score)
		}
		if len(res.Issues) != 1 || !containsCI(res.Issues[0], "no commit message") {
			t.Errorf("empty message %q: expected single missing-message issue, got %v", msg, res.Issues)
		}
	}
}

func TestMessageNotConventional(t *testing.T) {
	res := AnalyzeMessage("Added some stuff to the login page", msgCfg())

	if len(res.Issues) != 0 {
		t.Errorf("format miss must be a warning, not an issue: %v", res.Issues)
	}
	found := false
	for _, w := range res.Warnings {
		if containsCI(w, "conventional") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected conventional format warning, got %v", res.Warnings)
	}
}

func TestMessageUnknownType(t *testing.T) {
	res := AnalyzeMessage("wip: fiddling with the cache", msgCfg())

	hasUnknown, hasFormat := false, false
	for _, w := range res.Warnings {
		if containsCI(w, "unknown commit type") {
			hasUnknown = true
		}
		if containsCI(w, "conventional") {
			hasFormat = true
		}
	}
	if !hasUnknown {
		t.Errorf("expected unknown type warning, got %v", res.Warnings)
	}
	if hasFormat {
		t.Errorf("shape matched, format warning must not fire: %v", res.Warnings)
	}
}

func TestMessageSubjectLength(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		want    string
		finding string
	}{
		{"over warn length", "fix: " + strings.Repeat("x", 85), "too long", "warning"},
		{"over soft length", "feat: " + strings.Repeat("y", 54), "consider shortening", "suggestion"},
		{"very short", "fix: y", "very short", "warning"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := AnalyzeMessage(tc.subject, msgCfg())
			if len(res.Issues) != 0 {
				t.Errorf("length findings are never issues: %v", res.Issues)
			}
			pool := res.Warnings
			if tc.finding == "suggestion" {
				pool = res.Suggestions
			}
			found := false
			for _, msg := range pool {
				if containsCI(msg, tc.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s containing %q, got warnings %v suggestions %v", tc.finding, tc.want, res.Warnings, res.Suggestions)
			}
		})
	}
}

func TestMessageNinetyCharSubjectIsWarning(t *testing.T) {
	subject := "feat: " + strings.Repeat("a", 84)
	if len(subject) != 90 {
		t.Fatalf("fixture subject is %d chars, want 90", len(subject))
	}

	res := AnalyzeMessage(subject, msgCfg())
	if len(res.Issues) != 0 {
		t.Errorf("90-char subject must not raise an issue: %v", res.Issues)
	}
	if len(res.Warnings) == 0 {
		t.Error("90-char subject must raise a warning")
	}
}

func TestMessageSuggestions(t *testing.T) {
	res := AnalyzeMessage("feat: add the new spinner.", msgCfg())

	hasPeriod, hasCapital := false, false
	for _, s := range res.Suggestions {
		if containsCI(s, "period") {
			hasPeriod = true
		}
		if containsCI(s, "capitaliz") {
			hasCapital = true
		}
	}
	if !hasPeriod {
		t.Errorf("expected trailing period suggestion, got %v", res.Suggestions)
	}
	if !hasCapital {
		t.Errorf("expected capitalization suggestion, got %v", res.Suggestions)
	}
	if res.Score != res.MaxScore {
		t.Errorf("suggestions must not deduct, got %d", res.Score)
	}
}

func TestMessageWhitespace(t *testing.T) {
	res := AnalyzeMessage("  fix: trim the cache  ", msgCfg())

	found := false
	for _, w := range res.Warnings {
		if containsCI(w, "whitespace") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected whitespace warning, got %v", res.Warnings)
	}
}

func TestMessageBodyBlankLine(t *testing.T) {
	res := AnalyzeMessage("feat: add login\nDetails about the change", msgCfg())
	found := false
	for _, w := range res.Warnings {
		if containsCI(w, "blank line") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected missing blank line warning, got %v", res.Warnings)
	}

	res = AnalyzeMessage("feat: add login\n\nDetails about the change", msgCfg())
	for _, w := range res.Warnings {
		if containsCI(w, "blank line") {
			t.Errorf("blank line present, warning must not fire: %v", res.Warnings)
		}
	}
}

func TestMessageLongBodyLinesAggregated(t *testing.T) {
	long := strings.Repeat("w", 120)
	msg := "feat: add login\n\n" + long + "\nshort line\n" + long

	res := AnalyzeMessage(msg, msgCfg())

	count := 0
	for _, w := range res.Warnings {
		if containsCI(w, "body line") {
			count++
			if !strings.Contains(w, "2") {
				t.Errorf("expected aggregated count 2 in %q", w)
			}
		}
	}
	if count != 1 {
		t.Errorf("long body lines must aggregate into one warning, got %d: %v", count, res.Warnings)
	}
}

func TestMessageCRLF(t *testing.T) {
	res := AnalyzeMessage("feat: add login\r\n\r\nBody text here", msgCfg())

	for _, w := range res.Warnings {
		if containsCI(w, "blank line") {
			t.Errorf("CRLF blank line not recognized: %v", res.Warnings)
		}
	}
	if res.Score != res.MaxScore {
		t.Errorf("expected full score, got %d: %v", res.Score, res.Warnings)
	}
}
