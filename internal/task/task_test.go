package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  Level
	}{
		{85, LevelHigh},
		{70, LevelHigh},
		{69.99, LevelMedium},
		{55, LevelMedium},
		{40, LevelMedium},
		{39.99, LevelLow},
		{10, LevelLow},
		{0, LevelLow},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LevelForScore(c.score), "score %v", c.score)
	}
}

func TestNormalizeDueLocalInput(t *testing.T) {
	got, err := NormalizeDue("2030-05-01T10:30")
	require.NoError(t, err)

	want := time.Date(2030, 5, 1, 10, 30, 0, 0, time.Local).UTC().Format(time.RFC3339)
	assert.Equal(t, want, got)
}

func TestNormalizeDueAlreadyAbsolute(t *testing.T) {
	got, err := NormalizeDue("2030-05-01T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2030-05-01T08:30:00Z", got)
}

func TestNormalizeDueDateOnly(t *testing.T) {
	got, err := NormalizeDue("2030-05-01")
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestNormalizeDueRejectsGarbage(t *testing.T) {
	_, err := NormalizeDue("next tuesday")
	assert.Error(t, err)
}

func TestValidateAcceptsWellFormedTask(t *testing.T) {
	err := Validate(Task{
		Title:          "write report",
		DueDate:        "2030-05-01T08:30:00Z",
		EstimatedHours: 2.5,
		Importance:     7,
	})
	assert.NoError(t, err)
}

func TestValidateRejections(t *testing.T) {
	base := Task{
		Title:          "write report",
		DueDate:        "2030-05-01T08:30:00Z",
		EstimatedHours: 2.5,
		Importance:     7,
	}

	cases := []struct {
		name   string
		mutate func(*Task)
		field  string
	}{
		{"empty title", func(t *Task) { t.Title = "" }, "title"},
		{"missing due date", func(t *Task) { t.DueDate = "" }, "due_date"},
		{"garbage due date", func(t *Task) { t.DueDate = "whenever" }, "due_date"},
		{"zero hours", func(t *Task) { t.EstimatedHours = 0 }, "estimated_hours"},
		{"negative hours", func(t *Task) { t.EstimatedHours = -1 }, "estimated_hours"},
		{"zero importance", func(t *Task) { t.Importance = 0 }, "importance"},
		{"importance too large", func(t *Task) { t.Importance = 11 }, "importance"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tk := base
			c.mutate(&tk)
			err := Validate(tk)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidTask)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, c.field, fe.Field)
		})
	}
}
