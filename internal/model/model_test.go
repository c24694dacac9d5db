package model

import (
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusCritical, "critical"},
		{StatusPoor, "poor"},
		{StatusWarning, "warning"},
		{StatusGood, "good"},
		{StatusExcellent, "excellent"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Status
	}{
		{100, StatusExcellent},
		{90, StatusExcellent},
		{89.99, StatusGood},
		{60, StatusGood},
		{59.99, StatusWarning},
		{40, StatusWarning},
		{39.99, StatusPoor},
		{20, StatusPoor},
		{19.99, StatusCritical},
		{0, StatusCritical},
	}
	for _, tt := range tests {
		if got := StatusForScore(tt.score); got != tt.want {
			t.Errorf("StatusForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

// Status must never improve as the score drops.
func TestStatusMonotonic(t *testing.T) {
	prev := StatusExcellent
	for score := 100.0; score >= 0; score -= 0.5 {
		s := StatusForScore(score)
		if s > prev {
			t.Fatalf("status improved from %v to %v as score dropped to %v", prev, s, score)
		}
		prev = s
	}
}

func TestStatusExitCode(t *testing.T) {
	tests := []struct {
		status Status
		want   int
	}{
		{StatusExcellent, 0},
		{StatusGood, 0},
		{StatusWarning, 1},
		{StatusPoor, 1},
		{StatusCritical, 2},
	}
	for _, tt := range tests {
		if got := tt.status.ExitCode(); got != tt.want {
			t.Errorf("%v.ExitCode() = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestFileStatusString(t *testing.T) {
	tests := []struct {
		status FileStatus
		want   string
		letter string
	}{
		{StatusAdded, "added", "A"},
		{StatusModified, "modified", "M"},
		{StatusDeleted, "deleted", "D"},
		{StatusRenamed, "renamed", "R"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("FileStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
		if got := tt.status.Letter(); got != tt.letter {
			t.Errorf("FileStatus(%d).Letter() = %q, want %q", tt.status, got, tt.letter)
		}
	}
}
