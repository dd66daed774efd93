// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package handlers

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// Create issues one create call per name and waits for all of them.
// props are shared by every name; "name" is set per call.
func Create(ctx context.Context, opts GlobalOptions, resourceType string, names []string, props map[string]interface{}) error {
	s, err := newSession(opts, resourceType)
	if err != nil {
		return err
	}

	var errs error
	for _, name := range names {
		body := withName(props, name)
		if err := s.resource.Insert(ctx, s.inv, s.pathContext(), body, s.emit); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return multierr.Append(errs, s.inv.Wait(ctx))
}

// Resize issues one resize call per name and waits for all of them.
func Resize(ctx context.Context, opts GlobalOptions, resourceType string, names []string, props map[string]interface{}) error {
	if len(props) == 0 {
		return fmt.Errorf("nothing to resize")
	}

	s, err := newSession(opts, resourceType)
	if err != nil {
		return err
	}

	var errs error
	for _, name := range names {
		if err := s.resource.Resize(ctx, s.inv, s.pathContext(), name, props, s.emit); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return multierr.Append(errs, s.inv.Wait(ctx))
}

// Delete issues one delete call per name and waits for all of them.
// Deletions produce no output.
func Delete(ctx context.Context, opts GlobalOptions, resourceType string, names []string) error {
	s, err := newSession(opts, resourceType)
	if err != nil {
		return err
	}

	var errs error
	for _, name := range names {
		if err := s.resource.Remove(ctx, s.inv, s.pathContext(), name); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return multierr.Append(errs, s.inv.Wait(ctx))
}

func withName(props map[string]interface{}, name string) map[string]interface{} {
	body := make(map[string]interface{}, len(props)+1)
	for k, v := range props {
		body[k] = v
	}
	body["name"] = name
	return body
}
