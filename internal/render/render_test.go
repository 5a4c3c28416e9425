package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot/internal/task"
)

func result(score float64) task.Result {
	return task.Result{
		Task: task.Task{
			ID:             1,
			Title:          "write report",
			DueDate:        "2030-05-01T08:00:00Z",
			EstimatedHours: 2,
			Importance:     7,
		},
		PriorityScore: score,
	}
}

func TestNormalizeEmpty(t *testing.T) {
	v := Normalize("Suggestions", nil)
	assert.True(t, v.Empty)
	assert.Equal(t, "Suggestions", v.Heading)
	assert.Empty(t, v.Entries)

	v = Normalize("Suggestions", []task.Result{})
	assert.True(t, v.Empty)
}

func TestNormalizeDerivesLevels(t *testing.T) {
	v := Normalize("h", []task.Result{result(85), result(55), result(10)})
	require.Len(t, v.Entries, 3)
	assert.Equal(t, task.LevelHigh, v.Entries[0].Level)
	assert.Equal(t, task.LevelMedium, v.Entries[1].Level)
	assert.Equal(t, task.LevelLow, v.Entries[2].Level)
}

func TestNormalizeEscapesText(t *testing.T) {
	r := result(50)
	r.Title = `<script>alert("x")</script>`
	r.Explanation = "a < b & c"

	v := Normalize("h", []task.Result{r})
	require.Len(t, v.Entries, 1)
	assert.NotContains(t, v.Entries[0].Title, "<script>")
	assert.Contains(t, v.Entries[0].Title, "&lt;script&gt;")
	assert.Equal(t, "a &lt; b &amp; c", v.Entries[0].Explanation)
}

func TestResultsShowsNoResultsIndicator(t *testing.T) {
	out := Results(Normalize("Analyzed", nil))
	assert.Contains(t, out, "No results.")
}

func TestResultsIncludesScoreAndBadge(t *testing.T) {
	out := Results(Normalize("Analyzed", []task.Result{result(85)}))
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "85.00")
	assert.Contains(t, out, "write report")
}

func TestTasksEmptyCollection(t *testing.T) {
	assert.Equal(t, "No tasks yet.\n", Tasks(nil))
}

func TestTasksEscapesTitles(t *testing.T) {
	out := Tasks([]task.Task{{
		ID:             3,
		Title:          "<b>bold</b>",
		DueDate:        "2030-05-01T08:00:00Z",
		EstimatedHours: 1,
		Importance:     5,
		Dependencies:   []int64{1, 2},
	}})
	assert.False(t, strings.Contains(out, "<b>"))
	assert.Contains(t, out, "&lt;b&gt;")
	assert.Contains(t, out, "Depends on: 1, 2")
}
