// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import "context"

// SuccessFunc runs once the operation of its handle completed without error.
// It receives the terminal snapshot. Commands use it to fetch and emit the
// finished resource.
type SuccessFunc func(ctx context.Context, final *Snapshot) error

// Handle identifies one in-flight provider operation.
type Handle struct {
	Scope Scope
	ID    string

	// Snapshot starts as the representation returned by the initiating call,
	// if any, and is replaced by every later observation. Warnings on the
	// initial snapshot are surfaced before the first poll.
	Snapshot *Snapshot

	// OnSuccess is nil for fire-and-forget operations such as deletes.
	OnSuccess SuccessFunc
}

// Outcome is the state a handle was left in by the poller.
type Outcome int

const (
	// OutcomeUnresolved means the wait stopped before a terminal state was
	// observed, because the invocation was cancelled.
	OutcomeUnresolved Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unresolved"
	}
}
