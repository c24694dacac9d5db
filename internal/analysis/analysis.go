// Package analysis implements the staged-change evaluation engine: four
// independent analyzers, each scoring one dimension of a pending change,
// and the aggregator that combines them into a weighted overall verdict.
package analysis

import (
	"math"

	"github.com/commitgate/commitgate/internal/config"
	"github.com/commitgate/commitgate/internal/diff"
	"github.com/commitgate/commitgate/internal/model"
)

// Every analyzer scores out of 100.
const maxScore = 100

// Analyzer names, also the JSON keys of the report details. These and the
// report field names are the stable contract hooks and CI parse; they must
// not change without a version bump.
const (
	NameMessage = "message"
	NameDiff    = "diff"
	NameRisk    = "risk"
	NameTest    = "test"
)

// analyzerOrder fixes the reporting order of the analyzers.
var analyzerOrder = []string{NameMessage, NameDiff, NameRisk, NameTest}

// analyzerWeights fixes each analyzer's share of the overall score. The
// weights sum to exactly 1.0.
var analyzerWeights = map[string]float64{
	NameMessage: 0.25,
	NameDiff:    0.25,
	NameRisk:    0.30,
	NameTest:    0.20,
}

// AnalyzerOrder returns the analyzer names in reporting order.
func AnalyzerOrder() []string {
	out := make([]string, len(analyzerOrder))
	copy(out, analyzerOrder)
	return out
}

// Result is the outcome of a single analyzer.
type Result struct {
	Score       int            `json:"score"`
	MaxScore    int            `json:"max_score"`
	Issues      []string       `json:"issues"`
	Warnings    []string       `json:"warnings"`
	Suggestions []string       `json:"suggestions"`
	Stats       map[string]int `json:"stats,omitempty"`
}

// Clean reports whether the result carries no score-relevant findings.
func (r Result) Clean() bool {
	return len(r.Issues) == 0 && len(r.Warnings) == 0
}

// Summary merges findings from all analyzers, tagged with their origin.
type Summary struct {
	Issues      []string `json:"issues"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Report is the aggregated evaluation verdict. Its JSON form is the stable
// report contract.
type Report struct {
	OverallScore float64           `json:"overall_score"`
	MaxScore     int               `json:"max_score"`
	Status       string            `json:"status"`
	ExitCode     int               `json:"exit_code"`
	Details      map[string]Result `json:"details"`
	Summary      Summary           `json:"summary"`
}

// Counts returns the total number of issues, warnings and suggestions
// across all analyzers, after summary deduplication.
func (r *Report) Counts() (issues, warnings, suggestions int) {
	return len(r.Summary.Issues), len(r.Summary.Warnings), len(r.Summary.Suggestions)
}

// Evaluate runs the four analyzers over the message and change set and
// aggregates their scores. Analyzers are pure functions of their inputs
// with no shared state, so Evaluate is safe to call concurrently.
func Evaluate(message string, ds *diff.DiffSet, cfg *config.Config) *Report {
	if cfg == nil {
		cfg = config.Default()
	}

	details := map[string]Result{
		NameMessage: AnalyzeMessage(message, cfg.Message),
		NameDiff:    AnalyzeDiff(ds, cfg.Diff),
		NameRisk:    AnalyzeRisk(ds),
		NameTest:    AnalyzeTests(ds, cfg.Test),
	}

	var overall float64
	for name, res := range details {
		overall += float64(res.Score) / float64(res.MaxScore) * 100 * analyzerWeights[name]
	}

	// A change that stages secrets or sensitive files never grades above
	// the cap, no matter how clean its other dimensions are.
	if len(details[NameRisk].Issues) > 0 && overall > cfg.Risk.OverallCap {
		overall = cfg.Risk.OverallCap
	}

	overall = math.Round(overall*100) / 100

	status := model.StatusForScore(overall)

	return &Report{
		OverallScore: overall,
		MaxScore:     maxScore,
		Status:       status.String(),
		ExitCode:     status.ExitCode(),
		Details:      details,
		Summary:      mergeSummary(details),
	}
}

// mergeSummary concatenates all findings in analyzer order, prefixes each
// with its analyzer tag, and drops exact duplicates (first occurrence wins,
// keeping its original attribution).
func mergeSummary(details map[string]Result) Summary {
	s := Summary{Issues: []string{}, Warnings: []string{}, Suggestions: []string{}}

	merge := func(dst *[]string, seen map[string]bool, name string, msgs []string) {
		for _, msg := range msgs {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			*dst = append(*dst, "["+name+"] "+msg)
		}
	}

	seenIssues := make(map[string]bool)
	seenWarnings := make(map[string]bool)
	seenSuggestions := make(map[string]bool)

	for _, name := range analyzerOrder {
		res := details[name]
		merge(&s.Issues, seenIssues, name, res.Issues)
		merge(&s.Warnings, seenWarnings, name, res.Warnings)
		merge(&s.Suggestions, seenSuggestions, name, res.Suggestions)
	}

	return s
}

// scorecard accumulates findings and deductions for one analyzer. Findings
// and deductions are recorded separately so grouped rules can cap their
// total penalty while still listing every affected file.
type scorecard struct {
	issues      []string
	warnings    []string
	suggestions []string
	stats       map[string]int
	deducted    int
}

func newScorecard() *scorecard {
	return &scorecard{
		issues:      []string{},
		warnings:    []string{},
		suggestions: []string{},
	}
}

// issue records a severe finding and deducts penalty points.
func (sc *scorecard) issue(msg string, penalty int) {
	sc.issues = append(sc.issues, msg)
	sc.deducted += penalty
}

// warn records a moderate finding and deducts penalty points.
func (sc *scorecard) warn(msg string, penalty int) {
	sc.warnings = append(sc.warnings, msg)
	sc.deducted += penalty
}

// suggest records advisory feedback. Suggestions never deduct.
func (sc *scorecard) suggest(msg string) {
	sc.suggestions = append(sc.suggestions, msg)
}

// deduct subtracts points outside of a single finding, used by rules whose
// findings are recorded per file but whose penalty is capped as a group.
func (sc *scorecard) deduct(points int) {
	sc.deducted += points
}

// setStat records an always-reported statistic.
func (sc *scorecard) setStat(key string, value int) {
	if sc.stats == nil {
		sc.stats = make(map[string]int)
	}
	sc.stats[key] = value
}

// Result finalizes the scorecard, flooring the score at 0.
func (sc *scorecard) Result() Result {
	score := maxScore - sc.deducted
	if score < 0 {
		score = 0
	}
	return Result{
		Score:       score,
		MaxScore:    maxScore,
		Issues:      sc.issues,
		Warnings:    sc.warnings,
		Suggestions: sc.suggestions,
		Stats:       sc.stats,
	}
}

// capped returns count*per bounded by limit, for grouped per-file penalties.
func capped(count, per, limit int) int {
	p := count * per
	if p > limit {
		return limit
	}
	return p
}
