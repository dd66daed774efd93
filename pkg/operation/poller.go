// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is the fixed delay between two status queries.
const DefaultPollInterval = 150 * time.Millisecond

// SleepFunc suspends for d or until ctx is done, whichever comes first.
// It returns ctx.Err() when interrupted.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Poller waits for a single operation to reach DONE.
type Poller struct {
	client   StatusClient
	interval time.Duration
	sleep    SleepFunc
	notifier Notifier
	logger   *zap.Logger
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval overrides DefaultPollInterval. Non-positive values are ignored.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithSleep replaces the timer based sleep.
func WithSleep(fn SleepFunc) PollerOption {
	return func(p *Poller) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// WithNotifier sets where warnings are surfaced.
func WithNotifier(n Notifier) PollerOption {
	return func(p *Poller) {
		if n != nil {
			p.notifier = n
		}
	}
}

// WithLogger sets the poller logger.
func WithLogger(logger *zap.Logger) PollerOption {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPoller creates a poller that queries client.
func NewPoller(client StatusClient, opts ...PollerOption) *Poller {
	p := &Poller{
		client:   client,
		interval: DefaultPollInterval,
		sleep:    sleepContext,
		notifier: nopNotifier{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the delay between two status queries.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Wait blocks until the operation of h is DONE or ctx is cancelled.
//
// A cancelled wait returns OutcomeUnresolved and a nil error. A terminal
// provider error returns OutcomeFailed with an *OperationFailedError.
func (p *Poller) Wait(ctx context.Context, h *Handle) (Outcome, error) {
	log := p.logger.With(zap.String("operation", h.ID), zap.Stringer("scope", h.Scope))
	seen := make(map[Warning]struct{})

	snap := h.Snapshot
	if snap != nil {
		p.surface(h, snap, seen)
	} else {
		if ctx.Err() != nil {
			return OutcomeUnresolved, nil
		}
		var err error
		if snap, err = p.query(ctx, h); err != nil {
			if ctx.Err() != nil {
				return OutcomeUnresolved, nil
			}
			return OutcomeFailed, err
		}
		h.Snapshot = snap
		p.surface(h, snap, seen)
	}

	for attempt := 1; !snap.Done(); attempt++ {
		if ctx.Err() != nil {
			log.Debug("wait cancelled before sleeping", zap.Int("attempt", attempt))
			return OutcomeUnresolved, nil
		}
		if err := p.sleep(ctx, p.interval); err != nil {
			log.Debug("wait cancelled while sleeping", zap.Int("attempt", attempt))
			return OutcomeUnresolved, nil
		}
		if ctx.Err() != nil {
			return OutcomeUnresolved, nil
		}

		next, err := p.query(ctx, h)
		if err != nil {
			if ctx.Err() != nil {
				return OutcomeUnresolved, nil
			}
			log.Debug("status query failed", zap.Int("attempt", attempt), zap.Error(err))
			return OutcomeFailed, err
		}
		snap = next
		h.Snapshot = snap
		log.Debug("operation status",
			zap.Int("attempt", attempt),
			zap.String("status", string(snap.Status)),
			zap.Int("progress", snap.Progress),
		)
		p.surface(h, snap, seen)
	}

	if snap.Failed() {
		return OutcomeFailed, &OperationFailedError{
			Scope:       h.Scope,
			OperationID: h.ID,
			Detail:      snap.Error,
		}
	}
	return OutcomeSucceeded, nil
}

func (p *Poller) query(ctx context.Context, h *Handle) (*Snapshot, error) {
	snap, err := query(ctx, p.client, h)
	if err != nil {
		return nil, fmt.Errorf("polling operation %s in %s: %w", h.ID, h.Scope, err)
	}
	if snap == nil {
		return nil, fmt.Errorf("polling operation %s in %s: %w", h.ID, h.Scope, errEmptySnapshot)
	}
	return snap, nil
}

// surface forwards every warning not already reported for this handle.
func (p *Poller) surface(h *Handle, snap *Snapshot, seen map[Warning]struct{}) {
	for _, w := range snap.Warnings {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		p.notifier.Warn(h.Scope, h.ID, w)
	}
}

var errEmptySnapshot = errors.New("status query returned no operation")

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
