package gateway

import "errors"

// ErrEmptyCollection is returned before any network I/O when there is
// nothing to send.
var ErrEmptyCollection = errors.New("add at least one task first")

// RemoteError is a non-success response from the scoring service, carrying
// the message the service put in its error field (or the generic fallback).
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// TransportError means the exchange itself never completed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "request failed: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
