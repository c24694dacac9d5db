// Package diff builds the normalized change set consumed by the analyzers.
//
// A DiffSet is constructed either from `git diff` output for a live
// repository or from any unified diff text supplied by a caller. It is
// read-only after construction.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/commitgate/commitgate/internal/model"
)

// FileChange is a single changed file with its added content materialized.
type FileChange struct {
	Path      string // new path (old path for deletions)
	OldPath   string // set for renames
	Status    model.FileStatus
	IsBinary  bool
	SizeBytes int64 // 0 when unknown (diff parsed without a repository)

	// AddedLines holds the text of added lines only, without trailing
	// newlines. Removed and context lines are never materialized.
	AddedLines []string
	Additions  int
	Deletions  int

	// Fragments are kept for rendering; scoring never walks them.
	Fragments []*gitdiff.TextFragment
}

// DisplayName returns the path shown in listings, with the rename arrow
// for renamed files.
func (f *FileChange) DisplayName() string {
	if f.Status == model.StatusRenamed && f.OldPath != "" {
		return fmt.Sprintf("%s → %s", f.OldPath, f.Path)
	}
	return f.Path
}

// DiffSet holds every changed file in provider order.
type DiffSet struct {
	Files []*FileChange
	Raw   string // the raw unified diff text
}

// Empty reports whether the set contains no files.
func (ds *DiffSet) Empty() bool {
	return len(ds.Files) == 0
}

// Stats returns aggregate counts across all files.
func (ds *DiffSet) Stats() (files, additions, deletions int) {
	files = len(ds.Files)
	for _, f := range ds.Files {
		additions += f.Additions
		deletions += f.Deletions
	}
	return
}

// Parse reads a unified diff and returns a DiffSet.
func Parse(raw string) (*DiffSet, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	ds := &DiffSet{Raw: raw}
	for _, f := range parsed {
		fc := &FileChange{
			Status:   fileStatus(f),
			IsBinary: f.IsBinary,
		}

		fc.Path = f.NewName
		if fc.Path == "" {
			fc.Path = f.OldName
		}
		if f.IsRename {
			fc.OldPath = f.OldName
		}

		for _, frag := range f.TextFragments {
			fc.Fragments = append(fc.Fragments, frag)
			for _, line := range frag.Lines {
				switch line.Op {
				case gitdiff.OpAdd:
					fc.AddedLines = append(fc.AddedLines, strings.TrimRight(line.Line, "\n\r"))
					fc.Additions++
				case gitdiff.OpDelete:
					fc.Deletions++
				}
			}
		}

		ds.Files = append(ds.Files, fc)
	}

	return ds, nil
}

func fileStatus(f *gitdiff.File) model.FileStatus {
	switch {
	case f.IsNew, f.IsCopy:
		return model.StatusAdded
	case f.IsDelete:
		return model.StatusDeleted
	case f.IsRename:
		return model.StatusRenamed
	default:
		return model.StatusModified
	}
}

// AttachSizes fills SizeBytes for non-deleted files by stat-ing the work
// tree. Files that cannot be stat-ed keep size 0; the caller may not have
// a work tree at all (bare diff input), which is fine.
func AttachSizes(ds *DiffSet, repoDir string) {
	if repoDir == "" {
		return
	}
	for _, f := range ds.Files {
		if f.Status == model.StatusDeleted {
			continue
		}
		if info, err := os.Stat(filepath.Join(repoDir, f.Path)); err == nil && !info.IsDir() {
			f.SizeBytes = info.Size()
		}
	}
}

// GitDiff runs `git diff` with the given arguments and returns the raw output.
func GitDiff(repoDir string, args ...string) (string, error) {
	cmdArgs := append([]string{"diff"}, args...)
	cmd := exec.Command("git", cmdArgs...)
	cmd.Dir = repoDir
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}

	return string(out), nil
}

// GitStaged returns the diff of the staging area against HEAD.
func GitStaged(repoDir string, contextLines int) (string, error) {
	return GitDiff(repoDir, fmt.Sprintf("-U%d", contextLines), "--cached")
}

// GitCommit returns the diff a single commit introduced over its parent.
func GitCommit(repoDir, rev string, contextLines int) (string, error) {
	return GitDiff(repoDir, fmt.Sprintf("-U%d", contextLines), rev+"~1", rev)
}

// GitCommitMessage returns the full commit message of a revision.
func GitCommitMessage(repoDir, rev string) (string, error) {
	cmd := exec.Command("git", "log", "-1", "--format=%B", rev)
	cmd.Dir = repoDir

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git log: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}
