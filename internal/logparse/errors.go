package logparse

import (
	"errors"
	"fmt"
)

// ErrClientPanicked reports an "Error" marker in a client log. A crashed
// client's measurements are not trustworthy, so no partial extraction is
// attempted.
var ErrClientPanicked = errors.New("client panicked")

// ErrNodePanicked reports a "panic" or "Error" marker in a shard log.
var ErrNodePanicked = errors.New("shard panicked")

// MalformedTimestampError reports a log timestamp that failed to parse.
type MalformedTimestampError struct {
	Value string
	Err   error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q: %v", e.Value, e.Err)
}

func (e *MalformedTimestampError) Unwrap() error { return e.Err }

// ClientLogError reports a required marker missing from a client log.
type ClientLogError struct {
	Missing string
}

func (e *ClientLogError) Error() string {
	return fmt.Sprintf("client log: %s not found", e.Missing)
}

// NodeLogError reports a required marker missing from a shard log.
type NodeLogError struct {
	Missing string
}

func (e *NodeLogError) Error() string {
	return fmt.Sprintf("shard log: %s not found", e.Missing)
}

// CausalityViolationError reports a certificate observed before its
// transaction was sent. This indicates a clock-sync or data defect and is
// never clamped away.
type CausalityViolationError struct {
	ID        uint64
	Sent      float64
	Certified float64
}

func (e *CausalityViolationError) Error() string {
	return fmt.Sprintf(
		"causality violation: sample %d certified at %f before sent at %f",
		e.ID, e.Certified, e.Sent,
	)
}
