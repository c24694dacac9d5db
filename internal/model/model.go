// Package model defines the core data types shared across commitgate.
package model

// Status classifies an overall evaluation score.
type Status int

const (
	StatusCritical Status = iota
	StatusPoor
	StatusWarning
	StatusGood
	StatusExcellent
)

func (s Status) String() string {
	switch s {
	case StatusCritical:
		return "critical"
	case StatusPoor:
		return "poor"
	case StatusWarning:
		return "warning"
	case StatusGood:
		return "good"
	case StatusExcellent:
		return "excellent"
	default:
		return "unknown"
	}
}

// Score thresholds (inclusive lower bounds) for each status.
const (
	ThresholdExcellent = 90.0
	ThresholdGood      = 60.0
	ThresholdWarning   = 40.0
	ThresholdPoor      = 20.0
)

// StatusForScore maps an overall score in [0,100] to its status.
func StatusForScore(score float64) Status {
	switch {
	case score >= ThresholdExcellent:
		return StatusExcellent
	case score >= ThresholdGood:
		return StatusGood
	case score >= ThresholdWarning:
		return StatusWarning
	case score >= ThresholdPoor:
		return StatusPoor
	default:
		return StatusCritical
	}
}

// ExitCode returns the process exit code for a status: 0 for
// excellent/good, 1 for warning/poor, 2 for critical. Exit code 3 is
// reserved for environment errors detected before evaluation runs.
func (s Status) ExitCode() int {
	switch s {
	case StatusExcellent, StatusGood:
		return 0
	case StatusWarning, StatusPoor:
		return 1
	default:
		return 2
	}
}

// Severity categorizes a finding.
type Severity int

const (
	SeveritySuggestion Severity = iota
	SeverityWarning
	SeverityIssue
)

func (s Severity) String() string {
	switch s {
	case SeveritySuggestion:
		return "suggestion"
	case SeverityWarning:
		return "warning"
	case SeverityIssue:
		return "issue"
	default:
		return "unknown"
	}
}

// FileStatus describes how a file changed in a diff.
type FileStatus int

const (
	StatusModified FileStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
)

func (s FileStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter marker used in file listings.
func (s FileStatus) Letter() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusRenamed:
		return "R"
	default:
		return "M"
	}
}
