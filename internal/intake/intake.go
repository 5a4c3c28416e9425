// Package intake turns raw user input into task records: a validated
// single-entry form path and a lenient bulk JSON path. Both append to the
// session's collection; neither mutates anything on failure.
package intake

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"taskpilot/internal/session"
	"taskpilot/internal/task"
)

// Form carries the raw string fields of the single-entry path, exactly as
// the user typed them.
type Form struct {
	Title        string
	DueDate      string
	Hours        string
	Importance   string
	Dependencies string
}

type Pipeline struct {
	sess *session.Session
	log  *zap.Logger
}

func New(sess *session.Session, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{sess: sess, log: log}
}

// AddSingle validates a form, assigns a fresh id, normalizes the due date to
// UTC and appends exactly one record. On any validation failure the
// collection is untouched.
func (p *Pipeline) AddSingle(form Form) (task.Task, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return task.Task{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(form.DueDate) == "" {
		return task.Task{}, &ValidationError{Field: "due_date", Reason: "is required"}
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(form.Hours), 64)
	if err != nil || math.IsNaN(hours) {
		return task.Task{}, &ValidationError{Field: "estimated_hours", Reason: "must be a number"}
	}
	importance, err := strconv.Atoi(strings.TrimSpace(form.Importance))
	if err != nil {
		return task.Task{}, &ValidationError{Field: "importance", Reason: "must be a whole number"}
	}

	due, err := task.NormalizeDue(strings.TrimSpace(form.DueDate))
	if err != nil {
		return task.Task{}, &ValidationError{Field: "due_date", Reason: "is not a recognized date/time"}
	}

	t := task.Task{
		Title:          title,
		DueDate:        due,
		EstimatedHours: hours,
		Importance:     importance,
		Dependencies:   ParseDependencies(form.Dependencies),
	}
	if err := task.Validate(t); err != nil {
		var fe *task.FieldError
		if errors.As(err, &fe) {
			return task.Task{}, &ValidationError{Field: fe.Field, Reason: fe.Reason}
		}
		return task.Task{}, &ValidationError{Field: "task", Reason: err.Error()}
	}

	t.ID = p.sess.NextID()
	p.sess.Append(t)
	p.log.Debug("task added", zap.Int64("id", t.ID), zap.String("title", t.Title))
	return t, nil
}

// AddBulk parses a JSON array of task-like objects and concatenates it onto
// the collection. Elements without an id get a fresh one; beyond that the
// batch is taken as-is. Invalid elements are logged, not rejected, keeping
// the bulk path deliberately lenient (see DESIGN.md).
func (p *Pipeline) AddBulk(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrEmptyInput
	}

	data := []byte(trimmed)
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, &ParseError{Err: err}
	}
	if _, ok := probe.([]any); !ok {
		return 0, ErrNotArray
	}

	var batch []task.Task
	if err := json.Unmarshal(data, &batch); err != nil {
		return 0, &ParseError{Err: err}
	}

	for i := range batch {
		if batch[i].ID == 0 {
			batch[i].ID = p.sess.NextID()
		}
		if batch[i].Dependencies == nil {
			batch[i].Dependencies = []int64{}
		}
		if err := task.Validate(batch[i]); err != nil {
			p.log.Warn("bulk element accepted despite failing validation",
				zap.Int("index", i),
				zap.Int64("id", batch[i].ID),
				zap.Error(err))
		}
	}

	p.sess.AppendAll(batch)
	p.log.Debug("bulk tasks added", zap.Int("count", len(batch)))
	return len(batch), nil
}

// ParseDependencies splits a free-form comma-separated string into ids.
// Tokens that do not parse as integers are silently dropped.
func ParseDependencies(raw string) []int64 {
	deps := []int64{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			continue
		}
		deps = append(deps, id)
	}
	return deps
}
