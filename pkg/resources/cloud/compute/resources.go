// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package compute

import (
	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/base"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud"
)

// Resource type constants for cloud compute resources.
const (
	DiskResourceType             = "OVH::Compute::Disk"
	InstanceResourceType         = "OVH::Compute::Instance"
	InstanceTemplateResourceType = "OVH::Compute::InstanceTemplate"
	ImageResourceType            = "OVH::Compute::Image"
)

// Registry holds the compute definitions.
var Registry *base.ResourceRegistry

var createDeleteList = []resource.Operation{
	resource.OperationCreate,
	resource.OperationRead,
	resource.OperationDelete,
	resource.OperationList,
	resource.OperationCheckStatus,
}

func init() {
	Registry = base.NewResourceRegistry(cloud.CloudAPI, cloud.CloudOperations)

	err := Registry.RegisterAll([]base.ResourceDefinition{
		// Disk (block storage volume bound to a zone)
		// Create: POST /cloud/project/{serviceName}/zone/{zone}/volume
		// Resize: POST /cloud/project/{serviceName}/zone/{zone}/volume/{volumeId}/resize
		// Delete: DELETE /cloud/project/{serviceName}/zone/{zone}/volume/{volumeId}
		{
			ResourceType: DiskResourceType,
			ResourceConfig: base.ResourceConfig{
				ResourceType:   "volume",
				Scope:          base.ScopeZonal,
				SupportsUpdate: true,
				UpdateAction:   "resize",
			},
			RequestTransformer: diskTransformer,
		},
		// Instance
		// Create: POST /cloud/project/{serviceName}/zone/{zone}/instance
		// Resize: POST /cloud/project/{serviceName}/zone/{zone}/instance/{instanceId}/resize
		// Delete: DELETE /cloud/project/{serviceName}/zone/{zone}/instance/{instanceId}
		{
			ResourceType: InstanceResourceType,
			ResourceConfig: base.ResourceConfig{
				ResourceType:   "instance",
				Scope:          base.ScopeZonal,
				SupportsUpdate: true,
				UpdateAction:   "resize",
			},
			RequestTransformer: instanceTransformer,
		},
		// Instance template (project-wide)
		// Create: POST /cloud/project/{serviceName}/instanceTemplate
		// Delete: DELETE /cloud/project/{serviceName}/instanceTemplate/{name}
		// No Update support
		{
			ResourceType: InstanceTemplateResourceType,
			ResourceConfig: base.ResourceConfig{
				ResourceType: "instanceTemplate",
				Scope:        base.ScopeGlobal,
			},
			RequestTransformer: instanceTransformer,
			Operations:         createDeleteList,
		},
		// Image (project-wide)
		// Create: POST /cloud/project/{serviceName}/image
		// Delete: DELETE /cloud/project/{serviceName}/image/{imageId}
		{
			ResourceType: ImageResourceType,
			ResourceConfig: base.ResourceConfig{
				ResourceType: "image",
				Scope:        base.ScopeGlobal,
			},
			RequestTransformer: imageTransformer,
			Operations:         createDeleteList,
		},
	})

	if err != nil {
		panic(err)
	}
}
