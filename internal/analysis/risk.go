package analysis

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/commitgate/commitgate/internal/diff"
	"github.com/commitgate/commitgate/internal/model"
)

// Risk penalties. Findings are recorded per file (or per file and category)
// with the combined deduction capped per rule.
const (
	penaltySensitivePath = 30
	sensitivePathCap     = 50

	penaltySensitiveExt = 20
	sensitiveExtCap     = 40

	penaltyBinary = 5
	binaryCap     = 20

	penaltySecret = 25
	secretCap     = 75
)

// Filenames that should never be committed, matched against the basename.
var sensitiveNames = map[string]bool{
	".env":             true,
	"credentials.json": true,
	"secrets.json":     true,
	"secrets.yaml":     true,
	"secrets.yml":      true,
	"id_rsa":           true,
	"id_dsa":           true,
	"id_ecdsa":         true,
	"id_ed25519":       true,
	".npmrc":           true,
	".pypirc":          true,
	".netrc":           true,
}

// Paths sensitive only in a known location, matched by path suffix.
var sensitiveSuffixes = []string{
	".aws/credentials",
	".docker/config.json",
	".kube/config",
	".ssh/authorized_keys",
	".ssh/known_hosts",
}

// Key material extensions; staging one is an issue regardless of content.
var sensitiveExtensions = map[string]bool{
	".pem":      true,
	".key":      true,
	".p12":      true,
	".pfx":      true,
	".keystore": true,
	".jks":      true,
}

// Extensions treated as binary even when the diff carries no binary marker.
var binaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".bin": true, ".o": true, ".a": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".7z": true,
	".jar": true, ".war": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// Image formats routinely committed on purpose; never flagged.
var imageAllowlist = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".ico": true, ".svg": true, ".webp": true, ".bmp": true,
}

// Secret patterns grouped by category, checked in order. The first matching
// category consumes the line.
var secretPatterns = []struct {
	category string
	patterns []*regexp.Regexp
}{
	{
		category: "API key",
		patterns: compilePatterns(
			`(?i)api[_-]?key\s*[:=]\s*["']?[A-Za-z0-9_\-]{6,}`,
			`(?i)secret[_-]?key\s*[:=]\s*["']?[A-Za-z0-9_\-]{6,}`,
		),
	},
	{
		category: "password",
		patterns: compilePatterns(
			`(?i)password\s*[:=]\s*["'][^"']{8,}["']`,
		),
	},
	{
		category: "token",
		patterns: compilePatterns(
			`(?i)token\s*[:=]\s*["']?[A-Za-z0-9._\-]{16,}`,
		),
	},
	{
		category: "private key",
		patterns: compilePatterns(
			`-----BEGIN (RSA |DSA |EC |OPENSSH |ENCRYPTED )?PRIVATE KEY-----`,
		),
	},
	{
		category: "AWS access key",
		patterns: compilePatterns(
			`AKIA[0-9A-Z]{16}`,
			`(?i)aws_access_key_id`,
			`(?i)aws_secret_access_key`,
		),
	},
	{
		category: "bearer token",
		patterns: compilePatterns(
			`(?i)bearer\s+[A-Za-z0-9\-._~+/]{12,}`,
		),
	},
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// AnalyzeRisk scans the change set for security hazards: sensitive paths,
// key material, unreviewable binaries, and secret values in added lines.
// Removed and context lines are never inspected, so deleting a secret never
// flags.
func AnalyzeRisk(ds *diff.DiffSet) Result {
	sc := newScorecard()
	if ds == nil || ds.Empty() {
		return sc.Result()
	}

	sensitiveFiles, keyFiles, binaries := 0, 0, 0
	for _, f := range ds.Files {
		if f.Status == model.StatusDeleted {
			continue
		}
		ext := strings.ToLower(path.Ext(f.Path))
		switch {
		case sensitivePath(f.Path):
			sc.issue(fmt.Sprintf("Sensitive file staged: %s", f.Path), 0)
			sensitiveFiles++
		case sensitiveExtensions[ext]:
			sc.issue(fmt.Sprintf("Sensitive file type staged: %s", f.Path), 0)
			keyFiles++
		case (f.IsBinary || binaryExtensions[ext]) && !imageAllowlist[ext]:
			sc.warn(fmt.Sprintf("Binary file staged: %s", f.Path), 0)
			binaries++
		}
	}
	sc.deduct(capped(sensitiveFiles, penaltySensitivePath, sensitivePathCap))
	sc.deduct(capped(keyFiles, penaltySensitiveExt, sensitiveExtCap))
	sc.deduct(capped(binaries, penaltyBinary, binaryCap))

	// One issue per (file, category) pair no matter how many lines match,
	// so a config full of placeholder keys cannot flood the score.
	secrets := 0
	seen := make(map[string]bool)
	for _, f := range ds.Files {
		if f.Status == model.StatusDeleted {
			continue
		}
		for _, line := range f.AddedLines {
			cat := matchSecret(line)
			if cat == "" {
				continue
			}
			key := f.Path + "\x00" + cat
			if seen[key] {
				continue
			}
			seen[key] = true
			sc.issue(fmt.Sprintf("Potential %s detected in %s", cat, f.Path), 0)
			secrets++
		}
	}
	sc.deduct(capped(secrets, penaltySecret, secretCap))

	return sc.Result()
}

// matchSecret returns the first category with a pattern matching the line,
// or "" when none match.
func matchSecret(line string) string {
	for _, sp := range secretPatterns {
		for _, re := range sp.patterns {
			if re.MatchString(line) {
				return sp.category
			}
		}
	}
	return ""
}

// sensitivePath reports whether the path names a file that should never be
// committed.
func sensitivePath(p string) bool {
	base := path.Base(p)
	if sensitiveNames[base] || strings.HasPrefix(base, ".env.") {
		return true
	}
	for _, suffix := range sensitiveSuffixes {
		if p == suffix || strings.HasSuffix(p, "/"+suffix) {
			return true
		}
	}
	return false
}

// RiskyFiles reports the paths that would draw issue-level risk findings,
// for marking files in list views.
func RiskyFiles(ds *diff.DiffSet) map[string]bool {
	risky := make(map[string]bool)
	if ds == nil {
		return risky
	}
	for _, f := range ds.Files {
		if f.Status == model.StatusDeleted {
			continue
		}
		if sensitivePath(f.Path) || sensitiveExtensions[strings.ToLower(path.Ext(f.Path))] {
			risky[f.Path] = true
			continue
		}
		for _, line := range f.AddedLines {
			if matchSecret(line) != "" {
				risky[f.Path] = true
				break
			}
		}
	}
	return risky
}
