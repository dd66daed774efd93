// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import (
	"context"
	"fmt"
)

// StatusClient queries the current state of an operation, one method per
// scope kind.
type StatusClient interface {
	ZoneOperation(ctx context.Context, project, zone, id string) (*Snapshot, error)
	RegionOperation(ctx context.Context, project, region, id string) (*Snapshot, error)
	GlobalOperation(ctx context.Context, project, id string) (*Snapshot, error)
}

// query dispatches to the status endpoint matching the handle scope.
func query(ctx context.Context, client StatusClient, h *Handle) (*Snapshot, error) {
	switch s := h.Scope.(type) {
	case ZoneScope:
		return client.ZoneOperation(ctx, s.Project, s.Zone, h.ID)
	case RegionScope:
		return client.RegionOperation(ctx, s.Project, s.Region, h.ID)
	case GlobalScope:
		return client.GlobalOperation(ctx, s.Project, h.ID)
	default:
		return nil, fmt.Errorf("unsupported operation scope %T", h.Scope)
	}
}
