// Package render maps scored results into a presentation model and prints
// it. Text fields are escaped before they enter the model, so consumers can
// embed entries in any markup without re-checking.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskpilot/internal/task"
)

// Entry is one result prepared for display. Title and Explanation are
// already escaped.
type Entry struct {
	ID           int64
	Title        string
	Level        task.Level
	Score        float64
	Due          string
	Hours        float64
	Importance   int
	Dependencies []int64
	Explanation  string
}

// View is the stable shape handed to whatever does the actual output.
type View struct {
	Heading string
	Empty   bool
	Entries []Entry
}

// Normalize converts a (possibly empty) result set into a View. Heading is
// carried through untouched; record text fields are escaped here.
func Normalize(heading string, results []task.Result) View {
	if len(results) == 0 {
		return View{Heading: heading, Empty: true}
	}

	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, Entry{
			ID:           r.ID,
			Title:        html.EscapeString(r.Title),
			Level:        task.LevelForScore(r.PriorityScore),
			Score:        r.PriorityScore,
			Due:          displayDue(r.DueDate),
			Hours:        r.EstimatedHours,
			Importance:   r.Importance,
			Dependencies: r.Dependencies,
			Explanation:  html.EscapeString(r.Explanation),
		})
	}
	return View{Heading: heading, Entries: entries}
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)

	badgeStyles = map[task.Level]lipgloss.Style{
		task.LevelHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		task.LevelMedium: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		task.LevelLow:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
)

// Results renders a View for the terminal.
func Results(v View) string {
	var b strings.Builder
	if v.Heading != "" {
		b.WriteString(headingStyle.Render(v.Heading))
		b.WriteString("\n")
	}
	if v.Empty {
		b.WriteString("No results.\n")
		return b.String()
	}
	for _, e := range v.Entries {
		badge := badgeStyles[e.Level].Render(strings.ToUpper(string(e.Level)))
		fmt.Fprintf(&b, "%s %s\n", badge, e.Title)
		fmt.Fprintf(&b, "  Score: %.2f | Due: %s | Effort: %gh | Importance: %d/10\n",
			e.Score, e.Due, e.Hours, e.Importance)
		if len(e.Dependencies) > 0 {
			fmt.Fprintf(&b, "  Depends on: %s\n", joinIDs(e.Dependencies))
		}
		if e.Explanation != "" {
			b.WriteString(dimStyle.Render("  " + e.Explanation))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Tasks renders the current collection for the `list` command.
func Tasks(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks yet.\n"
	}
	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "[%d] %s\n", t.ID, headingStyle.Render(html.EscapeString(t.Title)))
		fmt.Fprintf(&b, "  Due: %s | Effort: %gh | Importance: %d/10\n",
			displayDue(t.DueDate), t.EstimatedHours, t.Importance)
		if len(t.Dependencies) > 0 {
			fmt.Fprintf(&b, "  Depends on: %s\n", joinIDs(t.Dependencies))
		}
	}
	return b.String()
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}

// displayDue shows the stored UTC instant in local time when it parses,
// otherwise the raw string (bulk imports may carry anything).
func displayDue(due string) string {
	t, err := task.ParseDue(due)
	if err != nil {
		return html.EscapeString(due)
	}
	return t.Local().Format("2006-01-02 15:04")
}
