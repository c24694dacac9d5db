package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/commitgate/commitgate/internal/config"
)

// Conventional commit shape: type(scope)?: description.
var conventionalRe = regexp.MustCompile(`^([a-z]+)(\([a-z0-9-]+\))?: (.+)$`)

// Types accepted in the conventional commit prefix.
var conventionalTypes = map[string]bool{
	"feat":     true,
	"fix":      true,
	"docs":     true,
	"style":    true,
	"refactor": true,
	"perf":     true,
	"test":     true,
	"chore":    true,
	"build":    true,
	"ci":       true,
}

// Message rule penalties.
const (
	penaltySubjectLong     = 15
	penaltySubjectShort    = 10
	penaltyNotConventional = 10
	penaltyUnknownType     = 5
	penaltyWhitespace      = 5
	penaltyNoBlankLine     = 5
	penaltyLongBodyLines   = 5
)

// AnalyzeMessage scores the proposed commit message text.
func AnalyzeMessage(message string, cfg config.MessageConfig) Result {
	sc := newScorecard()

	if strings.TrimSpace(message) == "" {
		sc.issue("No commit message provided", maxScore)
		return sc.Result()
	}

	message = strings.ReplaceAll(message, "\r\n", "\n")
	lines := strings.Split(message, "\n")
	subject := lines[0]
	trimmed := strings.TrimSpace(subject)

	if subject != trimmed {
		sc.warn("Subject line has leading or trailing whitespace", penaltyWhitespace)
	}

	length := utf8.RuneCountInString(trimmed)
	switch {
	case length > cfg.SubjectWarnLength:
		sc.warn(fmt.Sprintf("Subject line too long (%d chars, max %d)", length, cfg.SubjectWarnLength), penaltySubjectLong)
	case length > cfg.SubjectSoftLength:
		sc.suggest(fmt.Sprintf("Consider shortening the subject line (%d chars, %d recommended)", length, cfg.SubjectSoftLength))
	case length < cfg.SubjectMinLength:
		sc.warn(fmt.Sprintf("Subject line is very short (%d chars)", length), penaltySubjectShort)
	}

	// The text whose capitalization convention applies: the description
	// after the conventional prefix, or the whole subject without one.
	text := trimmed
	if m := conventionalRe.FindStringSubmatch(trimmed); m != nil {
		if !conventionalTypes[m[1]] {
			sc.warn(fmt.Sprintf("Unknown commit type %q", m[1]), penaltyUnknownType)
		}
		text = m[3]
	} else {
		sc.warn("Subject does not follow the conventional commit format (type: description)", penaltyNotConventional)
	}

	if first, _ := utf8.DecodeRuneInString(text); unicode.IsLower(first) {
		sc.suggest("Consider capitalizing the subject")
	}
	if strings.HasSuffix(trimmed, ".") {
		sc.suggest("Remove the trailing period from the subject line")
	}

	if len(lines) > 1 {
		body := lines[1:]
		if strings.TrimSpace(body[0]) != "" {
			sc.warn("Missing blank line between subject and body", penaltyNoBlankLine)
		}

		long := 0
		for _, line := range body {
			if utf8.RuneCountInString(line) > cfg.BodyWrapWidth {
				long++
			}
		}
		if long > 0 {
			sc.warn(fmt.Sprintf("%d body line(s) exceed %d characters", long, cfg.BodyWrapWidth), penaltyLongBodyLines)
		}
	}

	return sc.Result()
}
