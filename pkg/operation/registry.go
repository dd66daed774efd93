// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import "sync"

// Registry collects the operations started by one invocation, partitioned
// by scope kind. The zero value is ready to use.
type Registry struct {
	mu      sync.Mutex
	zone    []*Handle
	region  []*Handle
	global  []*Handle
	drained bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an operation without an initial snapshot.
func (r *Registry) Register(scope Scope, id string, onSuccess SuccessFunc) *Handle {
	return r.add(&Handle{Scope: scope, ID: id, OnSuccess: onSuccess})
}

// AddZoneOperation appends a zonal operation returned by an initiating call.
func (r *Registry) AddZoneOperation(project, zone string, snap *Snapshot, onSuccess SuccessFunc) *Handle {
	return r.Add(ZoneScope{Project: project, Zone: zone}, snap, onSuccess)
}

// AddRegionOperation appends a regional operation returned by an initiating call.
func (r *Registry) AddRegionOperation(project, region string, snap *Snapshot, onSuccess SuccessFunc) *Handle {
	return r.Add(RegionScope{Project: project, Region: region}, snap, onSuccess)
}

// AddGlobalOperation appends a global operation returned by an initiating call.
func (r *Registry) AddGlobalOperation(project string, snap *Snapshot, onSuccess SuccessFunc) *Handle {
	return r.Add(GlobalScope{Project: project}, snap, onSuccess)
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.zone) + len(r.region) + len(r.global)
}

// Add appends an operation of any scope returned by an initiating call.
func (r *Registry) Add(scope Scope, snap *Snapshot, onSuccess SuccessFunc) *Handle {
	h := &Handle{Scope: scope, Snapshot: snap, OnSuccess: onSuccess}
	if snap != nil {
		h.ID = snap.ID
	}
	return r.add(h)
}

func (r *Registry) add(h *Handle) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.drained {
		panic("operation: handle registered after the registry was drained")
	}

	switch h.Scope.(type) {
	case ZoneScope:
		r.zone = append(r.zone, h)
	case RegionScope:
		r.region = append(r.region, h)
	case GlobalScope:
		r.global = append(r.global, h)
	default:
		panic("operation: unsupported scope")
	}
	return h
}

// take hands the drain order to the coordinator and seals the registry.
func (r *Registry) take() ([]*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.drained {
		return nil, false
	}
	r.drained = true

	ordered := make([]*Handle, 0, len(r.zone)+len(r.region)+len(r.global))
	ordered = append(ordered, r.zone...)
	ordered = append(ordered, r.region...)
	ordered = append(ordered, r.global...)
	return ordered, true
}
