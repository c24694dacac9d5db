package analysis

import (
	"fmt"
	"path"
	"strings"

	"github.com/commitgate/commitgate/internal/config"
	"github.com/commitgate/commitgate/internal/diff"
	"github.com/commitgate/commitgate/internal/model"
)

const (
	penaltyNoTests  = 40
	penaltyLowRatio = 20
)

// Test file naming conventions, per ecosystem. Matched against the full
// path so test directories count wherever they sit in the tree.
var testFilePatterns = compilePatterns(
	`(^|/)test_[^/]+\.py$`,
	`_test\.py$`,
	`_test\.go$`,
	`\.(test|spec)\.(js|jsx|ts|tsx)$`,
	`(^|/)(Test[^/]*|[^/]*Test)\.java$`,
	`_spec\.rb$`,
	`(^|/)(tests?|__tests__|spec)/`,
)

// Extensions that count as implementation code for the ratio.
var implExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".jsx": true,
	".ts": true, ".tsx": true, ".java": true, ".rb": true,
	".rs": true, ".c": true, ".h": true, ".cpp": true,
	".cc": true, ".hpp": true, ".cs": true, ".php": true,
	".swift": true, ".kt": true, ".scala": true,
	".ex": true, ".exs": true,
}

// Build plumbing with source extensions; neither tests nor implementation.
var neutralNames = map[string]bool{
	"setup.py":    true,
	"conftest.py": true,
}

// AnalyzeTests checks that implementation changes ship with test changes.
// Files are classified by name only; docs, config, and anything
// unrecognized stay out of the ratio.
func AnalyzeTests(ds *diff.DiffSet, cfg config.TestConfig) Result {
	sc := newScorecard()

	testFiles, implFiles, otherFiles := 0, 0, 0
	if ds != nil {
		for _, f := range ds.Files {
			if f.Status == model.StatusDeleted || f.IsBinary {
				continue
			}
			switch classifyFile(f.Path) {
			case fileTest:
				testFiles++
			case fileImpl:
				implFiles++
			default:
				otherFiles++
			}
		}
	}
	sc.setStat("test_files", testFiles)
	sc.setStat("implementation_files", implFiles)
	sc.setStat("other_files", otherFiles)

	switch {
	case implFiles > 0 && testFiles == 0:
		sc.issue("No tests added/modified for implementation changes", penaltyNoTests)
	case implFiles > 0 && testFiles > 0:
		if ratio := float64(testFiles) / float64(implFiles); ratio < cfg.MinRatio {
			sc.warn(fmt.Sprintf("Low test-to-implementation ratio (%d:%d)", testFiles, implFiles), penaltyLowRatio)
		}
	}

	return sc.Result()
}

type fileClass int

const (
	fileNeutral fileClass = iota
	fileTest
	fileImpl
)

func classifyFile(p string) fileClass {
	for _, re := range testFilePatterns {
		if re.MatchString(p) {
			return fileTest
		}
	}
	if neutralNames[path.Base(p)] {
		return fileNeutral
	}
	if implExtensions[strings.ToLower(path.Ext(p))] {
		return fileImpl
	}
	return fileNeutral
}
