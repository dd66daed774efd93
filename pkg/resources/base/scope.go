// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

import (
	"fmt"

	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
)

// HandleScope returns the operation scope of a resource located by ctx.
func HandleScope(scope ScopeType, ctx PathContext) (operation.Scope, error) {
	if ctx.Project == "" {
		return nil, fmt.Errorf("project is required")
	}

	switch scope {
	case ScopeZonal:
		if ctx.Zone == "" {
			return nil, fmt.Errorf("zone is required for zonal resources")
		}
		return operation.ZoneScope{Project: ctx.Project, Zone: ctx.Zone}, nil
	case ScopeRegional:
		region := ctx.Region
		if region == "" && ctx.Zone != "" {
			region = RegionOfZone(ctx.Zone)
		}
		if region == "" {
			return nil, fmt.Errorf("region is required for regional resources")
		}
		return operation.RegionScope{Project: ctx.Project, Region: region}, nil
	case ScopeGlobal, "":
		return operation.GlobalScope{Project: ctx.Project}, nil
	default:
		return nil, fmt.Errorf("unsupported scope %q", scope)
	}
}
