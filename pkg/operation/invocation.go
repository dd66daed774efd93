// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import "context"

// Invocation is the operation set of a single command or plugin request.
type Invocation struct {
	registry    *Registry
	coordinator *Coordinator
}

// NewInvocation starts an empty operation set drained by coordinator.
func NewInvocation(coordinator *Coordinator) *Invocation {
	return &Invocation{
		registry:    NewRegistry(),
		coordinator: coordinator,
	}
}

// Register tracks an operation known only by its id.
func (i *Invocation) Register(scope Scope, id string, onSuccess SuccessFunc) *Handle {
	return i.registry.Register(scope, id, onSuccess)
}

// Add tracks an operation returned by an initiating call in any scope.
func (i *Invocation) Add(scope Scope, snap *Snapshot, onSuccess SuccessFunc) *Handle {
	return i.registry.Add(scope, snap, onSuccess)
}

func (i *Invocation) AddZoneOperation(project, zone string, snap *Snapshot, onSuccess SuccessFunc) *Handle {
	return i.registry.AddZoneOperation(project, zone, snap, onSuccess)
}

func (i *Invocation) AddRegionOperation(project, region string, snap *Snapshot, onSuccess SuccessFunc) *Handle {
	return i.registry.AddRegionOperation(project, region, snap, onSuccess)
}

func (i *Invocation) AddGlobalOperation(project string, snap *Snapshot, onSuccess SuccessFunc) *Handle {
	return i.registry.AddGlobalOperation(project, snap, onSuccess)
}

// Pending returns the number of registered operations.
func (i *Invocation) Pending() int {
	return i.registry.Len()
}

// Wait drains every registered operation. See Coordinator.Drain.
func (i *Invocation) Wait(ctx context.Context) error {
	return i.coordinator.Drain(ctx, i.registry)
}
