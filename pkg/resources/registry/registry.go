// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package registry

import (
	"sort"
	"sync"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/prov"
)

// Factory creates a provisioner bound to deps
type Factory func(deps prov.Deps) prov.Provisioner

type registration struct {
	operations []resource.Operation
	factory    Factory
}

var (
	mu            sync.RWMutex
	registrations = make(map[string]*registration)
)

// Register registers a resource type with its provisioner factory
func Register(resourceType string, operations []resource.Operation, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	registrations[resourceType] = &registration{
		operations: operations,
		factory:    factory,
	}
}

// Get builds the provisioner for a resource type
func Get(resourceType string, deps prov.Deps) (prov.Provisioner, bool) {
	mu.RLock()
	reg, ok := registrations[resourceType]
	mu.RUnlock()
	if !ok {
		return nil, false
	}
	return reg.factory(deps), true
}

// GetOperations returns supported operations for a resource type
func GetOperations(resourceType string) []resource.Operation {
	mu.RLock()
	defer mu.RUnlock()
	reg, ok := registrations[resourceType]
	if !ok {
		return nil
	}
	return reg.operations
}

// HasProvisioner checks if a resource type is registered
func HasProvisioner(resourceType string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registrations[resourceType]
	return ok
}

// ResourceTypes returns all registered resource types, sorted
func ResourceTypes() []string {
	mu.RLock()
	defer mu.RUnlock()
	types := make([]string, 0, len(registrations))
	for t := range registrations {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
