// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import "fmt"

// ScopeKind names the locator granularity an operation was issued in.
type ScopeKind string

const (
	ScopeKindZone   ScopeKind = "zone"
	ScopeKindRegion ScopeKind = "region"
	ScopeKindGlobal ScopeKind = "global"
)

// Scope determines which status query applies to an operation.
// It is implemented by ZoneScope, RegionScope and GlobalScope only.
type Scope interface {
	Kind() ScopeKind
	String() string

	isScope()
}

// ZoneScope locates an operation issued against a single zone.
type ZoneScope struct {
	Project string
	Zone    string
}

func (s ZoneScope) Kind() ScopeKind { return ScopeKindZone }
func (s ZoneScope) String() string  { return fmt.Sprintf("projects/%s/zones/%s", s.Project, s.Zone) }
func (ZoneScope) isScope()          {}

// RegionScope locates an operation issued against a region.
type RegionScope struct {
	Project string
	Region  string
}

func (s RegionScope) Kind() ScopeKind { return ScopeKindRegion }
func (s RegionScope) String() string {
	return fmt.Sprintf("projects/%s/regions/%s", s.Project, s.Region)
}
func (RegionScope) isScope() {}

// GlobalScope locates a project-wide operation.
type GlobalScope struct {
	Project string
}

func (s GlobalScope) Kind() ScopeKind { return ScopeKindGlobal }
func (s GlobalScope) String() string  { return fmt.Sprintf("projects/%s/global", s.Project) }
func (GlobalScope) isScope()          {}

var (
	_ Scope = ZoneScope{}
	_ Scope = RegionScope{}
	_ Scope = GlobalScope{}
)
