// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyDrained is returned when a registry is drained a second time.
var ErrAlreadyDrained = errors.New("operation registry already drained")

// OperationFailedError reports a terminal provider error for one operation.
type OperationFailedError struct {
	Scope       Scope
	OperationID string
	Detail      *ProviderError
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("operation %s in %s failed: %s", e.OperationID, e.Scope, e.Detail)
}

// IsOperationFailed reports whether err carries an OperationFailedError.
func IsOperationFailed(err error) bool {
	var opErr *OperationFailedError
	return errors.As(err, &opErr)
}

// AggregateError bundles the failures of two or more operations of one
// invocation, in the order they failed.
type AggregateError struct {
	errs []error
}

// Errors returns the individual failures.
func (e *AggregateError) Errors() []error {
	out := make([]error, len(e.errs))
	copy(out, e.errs)
	return out
}

// Unwrap lets errors.Is and errors.As inspect every failure.
func (e *AggregateError) Unwrap() []error {
	return e.errs
}

func (e *AggregateError) Error() string {
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d operations failed: %s", len(e.errs), strings.Join(msgs, "; "))
}

// combine applies the reporting threshold: nothing, the single failure
// unwrapped, or an aggregate.
func combine(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{errs: errs}
	}
}
