// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cloud

import (
	"fmt"
	"net/url"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/base"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
)

// CloudAPI defines the API configuration for OVH Cloud
var CloudAPI = base.APIConfig{
	BaseURL:     "", // go-ovh handles endpoint
	APIVersion:  "1.0",
	PathBuilder: cloudPathBuilder,
}

// CloudOperations defines operation behavior for cloud resources
var CloudOperations = base.OperationConfig{
	Synchronous:      false, // Cloud operations may be async
	OperationDecoder: decodeCloudOperation,
}

// decodeCloudOperation recognises OVH Cloud async responses by their
// "action" field and decodes them into a snapshot.
func decodeCloudOperation(response map[string]interface{}) (*operation.Snapshot, error) {
	if !ovhtransport.IsOperation(response) {
		return nil, nil
	}
	return ovhtransport.DecodeOperation(response)
}

// cloudPathBuilder builds paths for cloud resources
// Supports:
// - Project-scoped resources: /cloud/project/{serviceName}/{resourceType}
// - Regional resources: /cloud/project/{serviceName}/region/{regionName}/{resourceType}
// - Zonal resources: /cloud/project/{serviceName}/zone/{zoneName}/{resourceType}
// - Actions: /cloud/project/{serviceName}/.../{resourceType}/{id}/{action}
func cloudPathBuilder(ctx base.PathContext) string {
	path := fmt.Sprintf("/cloud/project/%s", url.PathEscape(ctx.Project))

	// A zonal path wins over the region it belongs to
	switch {
	case ctx.Zone != "":
		path += "/zone/" + url.PathEscape(ctx.Zone)
	case ctx.Region != "":
		path += "/region/" + url.PathEscape(ctx.Region)
	}

	path += "/" + ctx.ResourceType

	if ctx.ResourceName != "" {
		path += "/" + url.PathEscape(ctx.ResourceName)
		if ctx.Action != "" {
			path += "/" + ctx.Action
		}
	}
	return path
}

// ZonalPlacement copies the placement of a zonal resource into the request
// body. OVH expects both the zone and its region on create.
var ZonalPlacement = base.RequestTransformerFunc(func(props map[string]interface{}, ctx base.TransformContext) (map[string]interface{}, error) {
	if ctx.Operation != resource.OperationCreate {
		return props, nil
	}
	if ctx.Zone == "" {
		return nil, fmt.Errorf("zone is required for %s", ctx.ResourceType)
	}
	out := make(map[string]interface{}, len(props)+2)
	for k, v := range props {
		out[k] = v
	}
	out["zone"] = ctx.Zone
	if _, ok := out["region"]; !ok {
		out["region"] = base.RegionOfZone(ctx.Zone)
	}
	return out, nil
})

// Rename returns a request transformer that renames schema fields to the
// names the API expects. Unlisted fields pass through.
func Rename(fields map[string]string, next base.RequestTransformer) base.RequestTransformer {
	return base.RequestTransformerFunc(func(props map[string]interface{}, ctx base.TransformContext) (map[string]interface{}, error) {
		out := make(map[string]interface{}, len(props))
		for k, v := range props {
			if renamed, ok := fields[k]; ok {
				k = renamed
			}
			out[k] = v
		}
		if next == nil {
			return out, nil
		}
		return next.Transform(out, ctx)
	})
}
