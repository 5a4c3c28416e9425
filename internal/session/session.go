// Package session holds the in-memory state of one interactive run: the task
// collection, the last rendered result set and the single user-visible error
// slot. Nothing here survives the process; persistence is out of scope.
package session

import (
	"sync"

	"taskpilot/internal/task"
)

// Session owns all mutable client state. The zero value is not usable,
// construct with New. Sessions are independent; tests can create as many as
// they want without sharing anything.
type Session struct {
	mu sync.Mutex

	tasks   []task.Task
	results []task.Result
	heading string
	lastErr error

	nextID    int64
	issuedSeq uint64
}

func New() *Session {
	return &Session{nextID: 1}
}

// NextID hands out collection-unique ids. Monotonic counter, not wall clock,
// so repeated bulk imports within the same session cannot collide. Ids
// supplied by bulk payloads are taken as-is and are not checked against it.
func (s *Session) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id
}

// Append adds one task to the collection.
func (s *Session) Append(t task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
}

// AppendAll concatenates a bulk batch onto the collection. No dedupe.
func (s *Session) AppendAll(batch []task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, batch...)
}

// Tasks returns a snapshot copy of the collection.
func (s *Session) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len reports the collection size.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// ClearError resets the error slot. Every user action calls this before
// doing its own work, so the user never sees a stale message.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// SetError records a user-visible failure.
func (s *Session) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Err returns the current error slot, nil when the last action succeeded.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Results returns the displayed result set and its heading.
func (s *Session) Results() ([]task.Result, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Result, len(s.results))
	copy(out, s.results)
	return out, s.heading
}

// BeginExchange issues a sequence number for a remote exchange. Only the
// most recently issued exchange may publish its outcome; anything older is
// stale and gets dropped at CompleteExchange.
func (s *Session) BeginExchange() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issuedSeq++
	return s.issuedSeq
}

// CompleteExchange publishes the outcome of an exchange. Returns false when
// the exchange is no longer the latest issued one, in which case session
// state is untouched. On failure the error slot is set and any previously
// rendered results are cleared, so stale results never sit next to a fresh
// error.
func (s *Session) CompleteExchange(seq uint64, heading string, results []task.Result, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issuedSeq {
		return false
	}
	if err != nil {
		s.lastErr = err
		s.results = nil
		s.heading = ""
		return true
	}
	s.lastErr = nil
	s.results = results
	s.heading = heading
	return true
}
