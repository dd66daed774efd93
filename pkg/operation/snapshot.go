// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import (
	"fmt"
	"strings"
)

// Status is the provider-reported state of an operation, normalized by the
// status client.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusRunning Status = "RUNNING"
	StatusDone    Status = "DONE"
)

// Snapshot is one observation of an operation.
type Snapshot struct {
	ID         string
	Status     Status
	Progress   int
	ResourceID string
	Error      *ProviderError
	Warnings   []Warning
}

// Done reports whether the operation reached its terminal state.
func (s *Snapshot) Done() bool {
	return s != nil && s.Status == StatusDone
}

// Failed reports whether the provider attached an error to the operation.
func (s *Snapshot) Failed() bool {
	return s != nil && s.Error != nil
}

// Warning is an advisory message attached to an operation.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return joinCode(w.Code, w.Message)
}

// ProviderError is the structured failure payload of a terminal operation.
type ProviderError struct {
	Code    string
	Message string
	Details []ErrorDetail
}

// ErrorDetail is one entry of a provider error.
type ErrorDetail struct {
	Code     string
	Location string
	Message  string
}

func (e *ProviderError) String() string {
	if e == nil {
		return ""
	}

	msg := joinCode(e.Code, e.Message)
	if len(e.Details) == 0 {
		return msg
	}

	details := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		if d.Location != "" {
			details = append(details, fmt.Sprintf("%s (%s): %s", d.Code, d.Location, d.Message))
		} else {
			details = append(details, joinCode(d.Code, d.Message))
		}
	}
	return fmt.Sprintf("%s [%s]", msg, strings.Join(details, "; "))
}

func joinCode(code, message string) string {
	switch {
	case code == "":
		return message
	case message == "":
		return code
	default:
		return code + ": " + message
	}
}
