// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cloud

import (
	"testing"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/base"
)

func TestCloudPathBuilder(t *testing.T) {
	tests := []struct {
		name     string
		ctx      base.PathContext
		wantPath string
	}{
		{
			name: "project-scoped collection",
			ctx: base.PathContext{
				Project:      "my-project",
				ResourceType: "image",
			},
			wantPath: "/cloud/project/my-project/image",
		},
		{
			name: "project-scoped resource with ID",
			ctx: base.PathContext{
				Project:      "my-project",
				ResourceType: "network/route",
				ResourceName: "route-123",
			},
			wantPath: "/cloud/project/my-project/network/route/route-123",
		},
		{
			name: "regional resource",
			ctx: base.PathContext{
				Project:      "my-project",
				Region:       "GRA11",
				ResourceType: "backendService",
				ResourceName: "pool-1",
			},
			wantPath: "/cloud/project/my-project/region/GRA11/backendService/pool-1",
		},
		{
			name: "zonal resource wins over its region",
			ctx: base.PathContext{
				Project:      "my-project",
				Region:       "GRA11",
				Zone:         "GRA11-a",
				ResourceType: "volume",
			},
			wantPath: "/cloud/project/my-project/zone/GRA11-a/volume",
		},
		{
			name: "action on a resource",
			ctx: base.PathContext{
				Project:      "my-project",
				Zone:         "GRA11-a",
				ResourceType: "instance",
				ResourceName: "web-1",
				Action:       "resize",
			},
			wantPath: "/cloud/project/my-project/zone/GRA11-a/instance/web-1/resize",
		},
		{
			name: "action without a resource is dropped",
			ctx: base.PathContext{
				Project:      "my-project",
				ResourceType: "instance",
				Action:       "resize",
			},
			wantPath: "/cloud/project/my-project/instance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPath, cloudPathBuilder(tt.ctx))
		})
	}
}

func TestURLBuilder_WithCloudAPI(t *testing.T) {
	b := base.NewURLBuilder(CloudAPI, base.PathContext{Project: "p1", Zone: "GRA11-a", ResourceType: "volume", ResourceName: "ignored"})

	assert.Equal(t, "/cloud/project/p1/zone/GRA11-a/volume", b.CollectionURL())
	assert.Equal(t, "/cloud/project/p1/zone/GRA11-a/volume/vol-1", b.ResourceURL("vol-1"))
	assert.Equal(t, "/cloud/project/p1/zone/GRA11-a/volume/vol-1/resize", b.ActionURL("vol-1", "resize"))
}

func TestDecodeCloudOperation(t *testing.T) {
	snap, err := decodeCloudOperation(map[string]interface{}{"id": "vol-1", "size": 10.0})
	require.NoError(t, err)
	assert.Nil(t, snap, "plain resources are not operations")

	snap, err = decodeCloudOperation(map[string]interface{}{"id": "op-1", "action": "volume#create", "status": "in-progress"})
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "op-1", snap.ID)
	assert.Equal(t, operation.StatusRunning, snap.Status)
}

func TestZonalPlacement(t *testing.T) {
	ctx := base.TransformContext{Project: "p1", Zone: "GRA11-a", ResourceType: "volume", Operation: resource.OperationCreate}

	got, err := ZonalPlacement.Transform(map[string]interface{}{"name": "d"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "d", "zone": "GRA11-a", "region": "GRA11"}, got)

	got, err = ZonalPlacement.Transform(map[string]interface{}{"region": "GRA"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, "GRA", got["region"])

	ctx.Operation = resource.OperationUpdate
	got, err = ZonalPlacement.Transform(map[string]interface{}{"size": 20.0}, ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"size": 20.0}, got)

	ctx.Operation = resource.OperationCreate
	ctx.Zone = ""
	_, err = ZonalPlacement.Transform(map[string]interface{}{}, ctx)
	assert.ErrorContains(t, err, "zone is required")
}

func TestRename(t *testing.T) {
	tr := Rename(map[string]string{"sizeGb": "size"}, nil)
	got, err := tr.Transform(map[string]interface{}{"sizeGb": 10.0, "name": "d"}, base.TransformContext{})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"size": 10.0, "name": "d"}, got)
}
