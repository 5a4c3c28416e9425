package task

import (
	"time"
)

// Task is the client-side record for a single unit of work. DueDate is kept
// in its wire form (UTC, RFC 3339); the intake pipeline normalizes it before
// a record is stored, bulk-imported records carry whatever the payload had.
type Task struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int64 `json:"dependencies"`
}

// Result is a Task enriched by the scoring service.
type Result struct {
	Task
	PriorityScore  float64            `json:"priority_score"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown,omitempty"`
	Explanation    string             `json:"explanation,omitempty"`
}

// Level is the derived priority classification of a scored task.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// LevelForScore maps a priority score to its display level. Thresholds are
// fixed: >= 70 high, >= 40 medium, below that low.
func LevelForScore(score float64) Level {
	switch {
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// dueLayouts are the accepted due date input forms, tried in order. The
// first two match what date/datetime pickers produce, the rest are common
// hand-typed variants. Layouts without a zone are read as local time.
var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDue parses a due date string into an absolute instant.
func ParseDue(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dueLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// NormalizeDue converts a due date input to its stored form: UTC, RFC 3339.
func NormalizeDue(s string) (string, error) {
	t, err := ParseDue(s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}
