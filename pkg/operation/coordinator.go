// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Coordinator drains a registry once, waiting on every handle in turn.
type Coordinator struct {
	poller *Poller
	logger *zap.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithCoordinatorLogger sets the coordinator logger.
func WithCoordinatorLogger(logger *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoordinator creates a coordinator that waits with poller.
func NewCoordinator(poller *Poller, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		poller: poller,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Drain waits for every operation of r: zonal, then regional, then global,
// in registration order. Success callbacks run right after their own
// operation. Failures do not stop the drain and are returned together.
//
// When ctx is cancelled the drain stops; the failures seen so far are still
// returned and the remaining handles are left unresolved.
func (c *Coordinator) Drain(ctx context.Context, r *Registry) error {
	handles, ok := r.take()
	if !ok {
		return ErrAlreadyDrained
	}

	var (
		errs      error
		succeeded int
	)
	stop := func(unresolved int) error {
		c.logger.Warn("operation wait cancelled",
			zap.Int("unresolved", unresolved),
			zap.Int("succeeded", succeeded),
			zap.Int("failed", len(multierr.Errors(errs))),
		)
		return combine(multierr.Errors(errs))
	}

	for i, h := range handles {
		outcome, err := c.poller.Wait(ctx, h)
		switch outcome {
		case OutcomeUnresolved:
			return stop(len(handles) - i)
		case OutcomeFailed:
			c.logger.Debug("operation failed",
				zap.String("operation", h.ID),
				zap.Stringer("scope", h.Scope),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)
			continue
		}

		if h.OnSuccess == nil {
			succeeded++
			continue
		}
		if err := h.OnSuccess(ctx, h.Snapshot); err != nil {
			// A callback interrupted by cancellation leaves its handle unresolved.
			if ctx.Err() != nil {
				c.logger.Debug("success callback interrupted",
					zap.String("operation", h.ID),
					zap.Stringer("scope", h.Scope),
					zap.Error(err),
				)
				return stop(len(handles) - i)
			}
			errs = multierr.Append(errs, fmt.Errorf("operation %s in %s: %w", h.ID, h.Scope, err))
			continue
		}
		succeeded++
	}

	c.logger.Debug("operations drained",
		zap.Int("total", len(handles)),
		zap.Int("succeeded", succeeded),
	)
	return combine(multierr.Errors(errs))
}
