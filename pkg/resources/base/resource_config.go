// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

// ScopeType defines the scoping type for a resource
type ScopeType string

const (
	ScopeGlobal   ScopeType = "global"
	ScopeRegional ScopeType = "regional"
	ScopeZonal    ScopeType = "zonal"
)

// ResourceConfig defines the resource metadata and behavior
type ResourceConfig struct {
	ResourceType   string
	Scope          ScopeType
	SupportsUpdate bool
	// UpdateAction turns updates into a POST on <resource>/<name>/<action>
	// instead of a PUT on the resource.
	UpdateAction string
}
