package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskpilot/internal/config"
	"taskpilot/internal/server"
)

// syncWriter guards the output buffer; the REPL's background exchanges write
// to the same writer as the prompt loop.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func runScript(t *testing.T, script string) string {
	t.Helper()

	srv := httptest.NewServer(server.New(zap.NewNop()).Handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		APIBase:  srv.URL + "/api/tasks",
		Strategy: "smart_balance",
	}
	out := &syncWriter{}
	r := newREPL(context.Background(), cfg, zap.NewNop(), strings.NewReader(script), out)
	r.run()
	return out.String()
}

func TestREPLAddListQuit(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"add",
		"write report",            // title
		"2030-05-01T10:30",        // due
		"2.5",                     // hours
		"7",                       // importance
		"",                        // dependencies
		"list",
		"quit",
	}, "\n") + "\n")

	assert.Contains(t, out, "added task 1")
	assert.Contains(t, out, "write report")
}

func TestREPLAddValidationError(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"add",
		"", // empty title
		"2030-05-01T10:30",
		"2.5",
		"7",
		"",
		"list",
		"quit",
	}, "\n") + "\n")

	assert.Contains(t, out, "error: invalid title")
	assert.Contains(t, out, "No tasks yet.")
}

func TestREPLBulkThenAnalyze(t *testing.T) {
	bulk := `[{"title": "one", "due_date": "2030-05-01T08:00:00Z", "estimated_hours": 1, "importance": 9},
{"title": "two", "due_date": "2030-05-02T08:00:00Z", "estimated_hours": 2, "importance": 4}]`

	out := runScript(t, strings.Join([]string{
		"bulk",
		bulk,
		".",
		"analyze",
		"quit",
	}, "\n") + "\n")

	assert.Contains(t, out, "added 2 tasks")
	assert.Contains(t, out, "Analyzing...")
	assert.Contains(t, out, "Analyzed with strategy: smart_balance")
	assert.Contains(t, out, "Score:")
}

func TestREPLSuggestEmptyCollection(t *testing.T) {
	out := runScript(t, "suggest\nquit\n")
	assert.Contains(t, out, "error: add at least one task first")
}

func TestREPLAnalyzeUnknownStrategySurfacesServiceError(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"bulk",
		`[{"title": "one", "due_date": "2030-05-01T08:00:00Z", "estimated_hours": 1, "importance": 5}]`,
		".",
		"analyze nonsense",
		"quit",
	}, "\n") + "\n")

	assert.Contains(t, out, "unknown strategy")
}

func TestREPLUnknownCommand(t *testing.T) {
	out := runScript(t, "frobnicate\nquit\n")
	assert.Contains(t, out, `unknown command "frobnicate"`)
}

func TestREPLStrategies(t *testing.T) {
	out := runScript(t, "strategies\nquit\n")
	for _, name := range []string{"smart_balance", "fastest_wins", "high_impact", "deadline_driven"} {
		require.Contains(t, out, name)
	}
}
