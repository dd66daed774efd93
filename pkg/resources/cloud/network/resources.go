// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package network

import (
	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/base"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud"
)

// Resource type constants for cloud network resources.
const (
	RouteResourceType          = "OVH::Network::Route"
	BackendServiceResourceType = "OVH::Network::BackendService"
	FirewallResourceType       = "OVH::Network::Firewall"
)

// Registry holds the network definitions.
var Registry *base.ResourceRegistry

var immutable = []resource.Operation{
	resource.OperationCreate,
	resource.OperationRead,
	resource.OperationDelete,
	resource.OperationList,
	resource.OperationCheckStatus,
}

func init() {
	Registry = base.NewResourceRegistry(cloud.CloudAPI, cloud.CloudOperations)

	err := Registry.RegisterAll([]base.ResourceDefinition{
		// Route (project-wide)
		// Create: POST /cloud/project/{serviceName}/network/route
		// Delete: DELETE /cloud/project/{serviceName}/network/route/{routeId}
		{
			ResourceType: RouteResourceType,
			ResourceConfig: base.ResourceConfig{
				ResourceType: "network/route",
				Scope:        base.ScopeGlobal,
			},
			RequestTransformer: base.RequestTransformerFunc(routeRequest),
			Operations:         immutable,
		},
		// Backend service (regional load balancer pool)
		// Create: POST /cloud/project/{serviceName}/region/{region}/backendService
		// Delete: DELETE /cloud/project/{serviceName}/region/{region}/backendService/{id}
		{
			ResourceType: BackendServiceResourceType,
			ResourceConfig: base.ResourceConfig{
				ResourceType: "backendService",
				Scope:        base.ScopeRegional,
			},
			RequestTransformer: base.RequestTransformerFunc(backendServiceRequest),
			Operations:         immutable,
		},
		// Firewall (project-wide)
		// Create: POST /cloud/project/{serviceName}/firewall
		// Update: PUT /cloud/project/{serviceName}/firewall/{firewallId}
		// Delete: DELETE /cloud/project/{serviceName}/firewall/{firewallId}
		{
			ResourceType: FirewallResourceType,
			ResourceConfig: base.ResourceConfig{
				ResourceType:   "firewall",
				Scope:          base.ScopeGlobal,
				SupportsUpdate: true,
			},
			RequestTransformer: base.RequestTransformerFunc(firewallRequest),
		},
	})

	if err != nil {
		panic(err)
	}
}
