// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

import (
	"fmt"
	"strings"
)

// NativeIDFormat defines the format of native IDs
type NativeIDFormat string

const (
	SimpleNameFormat          NativeIDFormat = "name"
	ProjectHierarchicalFormat NativeIDFormat = "project_hierarchical" // project/resourceId
	ProjectRegionalFormat     NativeIDFormat = "project_regional"     // project/region/resourceId
	ProjectZonalFormat        NativeIDFormat = "project_zonal"        // project/zone/resourceId
)

// NativeIDConfig defines how native IDs are formatted and parsed
type NativeIDConfig struct {
	Format NativeIDFormat
	Parser func(nativeID string) (PathContext, error)
}

// NativeIDForScope returns the native ID layout matching a scope.
func NativeIDForScope(scope ScopeType) NativeIDConfig {
	switch scope {
	case ScopeZonal:
		return NativeIDConfig{Format: ProjectZonalFormat}
	case ScopeRegional:
		return NativeIDConfig{Format: ProjectRegionalFormat}
	default:
		return NativeIDConfig{Format: ProjectHierarchicalFormat}
	}
}

// ParseNativeID parses a native ID using the config
func ParseNativeID(cfg NativeIDConfig, nativeID string) (PathContext, error) {
	if cfg.Parser != nil {
		return cfg.Parser(nativeID)
	}

	switch cfg.Format {
	case ProjectHierarchicalFormat:
		parts := strings.SplitN(nativeID, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return PathContext{}, fmt.Errorf("invalid project hierarchical ID: %s", nativeID)
		}
		return PathContext{Project: parts[0], ResourceName: parts[1]}, nil
	case ProjectRegionalFormat:
		parts := strings.SplitN(nativeID, "/", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return PathContext{}, fmt.Errorf("invalid project regional ID: %s", nativeID)
		}
		return PathContext{Project: parts[0], Region: parts[1], ResourceName: parts[2]}, nil
	case ProjectZonalFormat:
		parts := strings.SplitN(nativeID, "/", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return PathContext{}, fmt.Errorf("invalid project zonal ID: %s", nativeID)
		}
		return PathContext{
			Project:      parts[0],
			Zone:         parts[1],
			Region:       RegionOfZone(parts[1]),
			ResourceName: parts[2],
		}, nil
	default:
		return PathContext{ResourceName: nativeID}, nil
	}
}

// BuildNativeID builds a native ID from context
func BuildNativeID(cfg NativeIDConfig, ctx PathContext) string {
	switch cfg.Format {
	case ProjectHierarchicalFormat:
		if ctx.Project != "" {
			return fmt.Sprintf("%s/%s", ctx.Project, ctx.ResourceName)
		}
	case ProjectRegionalFormat:
		if ctx.Project != "" && ctx.Region != "" {
			return fmt.Sprintf("%s/%s/%s", ctx.Project, ctx.Region, ctx.ResourceName)
		}
	case ProjectZonalFormat:
		if ctx.Project != "" && ctx.Zone != "" {
			return fmt.Sprintf("%s/%s/%s", ctx.Project, ctx.Zone, ctx.ResourceName)
		}
	}
	return ctx.ResourceName
}
