// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package handlers

import (
	"context"
	"fmt"

	"github.com/platform-engineering-labs/ovh-compute/pkg/inventory"
)

// Kinds accepted by List.
const (
	KindDisks     = "disks"
	KindInstances = "instances"
	KindImages    = "images"
	KindRoutes    = "routes"
	KindFirewalls = "firewalls"
)

// List writes the resources of one kind as JSON lines.
func List(ctx context.Context, opts GlobalOptions, kind string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.ValidateOpenStack(); err != nil {
		return err
	}

	lister, err := newLister(ctx, cfg)
	if err != nil {
		return err
	}

	var rows []inventory.Row
	switch kind {
	case KindDisks:
		rows, err = lister.Disks(ctx, cfg.Zone)
	case KindInstances:
		rows, err = lister.Instances(ctx)
	case KindImages:
		rows, err = lister.Images(ctx)
	case KindRoutes:
		rows, err = lister.Routes(ctx)
	case KindFirewalls:
		rows, err = lister.Firewalls(ctx)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return writeRows(rows)
}
