// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package compute

import (
	"fmt"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/base"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud"
)

// diskTransformer maps schema fields to the volume API:
//   - sizeGb → size
//   - diskType → type
var diskTransformer = cloud.Rename(map[string]string{
	"sizeGb":   "size",
	"diskType": "type",
}, base.RequestTransformerFunc(requireDiskSize))

// instanceTransformer maps machineType → flavorId and sourceImage → imageId.
var instanceTransformer = cloud.Rename(map[string]string{
	"machineType": "flavorId",
	"sourceImage": "imageId",
}, base.RequestTransformerFunc(placeInstance))

// imageTransformer maps sourceDisk → volumeId.
var imageTransformer = cloud.Rename(map[string]string{
	"sourceDisk": "volumeId",
}, nil)

func requireDiskSize(props map[string]interface{}, ctx base.TransformContext) (map[string]interface{}, error) {
	size, ok := props["size"]
	switch {
	case !ok && ctx.Operation == resource.OperationUpdate:
		return nil, fmt.Errorf("size is required to resize a disk")
	case ok:
		n, isNumber := size.(float64)
		if !isNumber {
			if i, isInt := size.(int); isInt {
				n = float64(i)
				isNumber = true
			}
		}
		if !isNumber || n <= 0 {
			return nil, fmt.Errorf("size must be a positive number of GB, got %v", size)
		}
	}
	return cloud.ZonalPlacement.Transform(props, ctx)
}

// placeInstance adds zone placement for instances. Templates are global and
// pass through unchanged.
func placeInstance(props map[string]interface{}, ctx base.TransformContext) (map[string]interface{}, error) {
	if ctx.Operation == resource.OperationUpdate {
		if _, ok := props["flavorId"]; !ok {
			return nil, fmt.Errorf("machineType is required to resize an instance")
		}
	}
	if ctx.Zone == "" {
		return props, nil
	}
	return cloud.ZonalPlacement.Transform(props, ctx)
}
