package analysis

import (
	"fmt"
	"path"
	"strings"

	"github.com/commitgate/commitgate/internal/config"
	"github.com/commitgate/commitgate/internal/diff"
	"github.com/commitgate/commitgate/internal/model"
)

// Diff shape penalties. Per-file rules record one finding per file but cap
// the combined deduction.
const (
	penaltyHugeChange  = 25
	penaltyLargeChange = 10
	penaltyManyFiles   = 10

	penaltyLongFile = 5
	longFileCap     = 15

	penaltyHugeFile = 20
	hugeFileCap     = 40
)

// AnalyzeDiff scores the shape of the change set: overall size, file count,
// oversized files, and commit coherence. Statistics are reported even when
// nothing is flagged.
func AnalyzeDiff(ds *diff.DiffSet, cfg config.DiffConfig) Result {
	sc := newScorecard()
	sc.setStat("files", 0)
	sc.setStat("additions", 0)
	sc.setStat("deletions", 0)

	if ds == nil || ds.Empty() {
		sc.warn("No changes staged", 0)
		return sc.Result()
	}

	files, additions, deletions := ds.Stats()
	sc.setStat("files", files)
	sc.setStat("additions", additions)
	sc.setStat("deletions", deletions)

	total := additions + deletions
	switch {
	case total > cfg.HugeChangeLines:
		sc.issue(fmt.Sprintf("Very large change (%d lines, over %d)", total, cfg.HugeChangeLines), penaltyHugeChange)
	case total > cfg.LargeChangeLines:
		sc.warn(fmt.Sprintf("Large change (%d lines, over %d)", total, cfg.LargeChangeLines), penaltyLargeChange)
	}

	if files > cfg.MaxFiles {
		sc.warn(fmt.Sprintf("Many files changed (%d, over %d)", files, cfg.MaxFiles), penaltyManyFiles)
	}

	longFiles, hugeFiles := 0, 0
	for _, f := range ds.Files {
		if lines := f.Additions + f.Deletions; f.Status != model.StatusDeleted && lines > cfg.LargeFileLines {
			sc.warn(fmt.Sprintf("Large file change: %s (%d lines)", f.Path, lines), 0)
			longFiles++
		}
		if f.SizeBytes > cfg.LargeFileBytes {
			sc.issue(fmt.Sprintf("Large file staged: %s (%.1f MB)", f.Path, float64(f.SizeBytes)/(1<<20)), 0)
			hugeFiles++
		}
	}
	sc.deduct(capped(longFiles, penaltyLongFile, longFileCap))
	sc.deduct(capped(hugeFiles, penaltyHugeFile, hugeFileCap))

	// Coherence: a change sprawling across directories with no dominant
	// one, or across many file types, usually wants splitting.
	dirs := make(map[string]int)
	exts := make(map[string]bool)
	for _, f := range ds.Files {
		dirs[topDir(f.Path)]++
		if ext := strings.ToLower(path.Ext(f.Path)); ext != "" {
			exts[ext] = true
		}
	}
	if len(dirs) > cfg.MaxDirectories && !hasDominant(dirs, files) {
		sc.suggest(fmt.Sprintf("Change spans %d top-level directories, consider splitting into focused commits", len(dirs)))
	}
	if len(exts) > cfg.MaxExtensions {
		sc.suggest(fmt.Sprintf("Change touches %d file types, consider splitting into focused commits", len(exts)))
	}

	return sc.Result()
}

// topDir returns the first path segment, or "." for files at the root.
func topDir(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return "."
}

// hasDominant reports whether any single directory holds at least half of
// the changed files.
func hasDominant(dirs map[string]int, total int) bool {
	for _, n := range dirs {
		if n*2 >= total {
			return true
		}
	}
	return false
}
