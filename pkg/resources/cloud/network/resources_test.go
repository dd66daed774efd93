// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package network

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/prov"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/registry"
	"github.com/platform-engineering-labs/ovh-compute/pkg/testutil"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
)

func newDeps(ft *testutil.FakeTransport, notifier operation.Notifier) prov.Deps {
	sleeps := &testutil.SleepRecorder{}
	poller := operation.NewPoller(ovhtransport.NewOperationClient(ft),
		operation.WithSleep(sleeps.Sleep),
		operation.WithNotifier(notifier))
	return prov.Deps{Client: ft, Coordinator: operation.NewCoordinator(poller)}
}

func TestBackendService_UsesRegionOperation(t *testing.T) {
	ft := testutil.NewFakeTransport()
	ft.OnPost("/cloud/project/p1/region/GRA11/backendService", testutil.OperationBody("op-b", "created"))
	ft.OnGet(ovhtransport.RegionOperationPath("p1", "GRA11", "op-b"),
		map[string]interface{}{"id": "op-b", "action": "test#action", "status": "completed", "resourceId": "bs-1"})
	ft.OnGet("/cloud/project/p1/region/GRA11/backendService/bs-1", map[string]interface{}{"id": "bs-1"})

	p, ok := registry.Get(BackendServiceResourceType, newDeps(ft, nil))
	require.True(t, ok)

	result, err := p.Create(context.Background(), &resource.CreateRequest{
		Properties:   json.RawMessage(`{"name":"pool","port":443,"protocol":"https"}`),
		TargetConfig: json.RawMessage(`{"projectId":"p1","region":"GRA11"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, resource.OperationStatusSuccess, result.ProgressResult.OperationStatus)
	assert.Equal(t, "p1/GRA11/bs-1", result.ProgressResult.NativeID)
}

func TestFirewall_SurfacesSubOperationWarning(t *testing.T) {
	ft := testutil.NewFakeTransport()
	ft.OnPost("/cloud/project/p1/firewall", testutil.OperationBody("op-f", "in-progress"))
	ft.OnGet(ovhtransport.GlobalOperationPath("p1", "op-f"), map[string]interface{}{
		"id":         "op-f",
		"action":     "firewall#create",
		"status":     "completed",
		"resourceId": "fw-1",
		"subOperations": []interface{}{
			map[string]interface{}{"id": "sub-1", "action": "firewall#attach", "status": "error"},
		},
	})
	ft.OnGet("/cloud/project/p1/firewall/fw-1", map[string]interface{}{"id": "fw-1"})

	notifier := &testutil.RecordingNotifier{}
	p, ok := registry.Get(FirewallResourceType, newDeps(ft, notifier))
	require.True(t, ok)

	result, err := p.Create(context.Background(), &resource.CreateRequest{
		Properties:   json.RawMessage(`{"name":"allow-ssh"}`),
		TargetConfig: json.RawMessage(`{"projectId":"p1"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, resource.OperationStatusSuccess, result.ProgressResult.OperationStatus)

	warnings := notifier.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "op-f", warnings[0].OperationID)
	assert.Equal(t, ovhtransport.WarningCodeSubOperationFailed, warnings[0].Warning.Code)
}

func TestRoute_InvalidDestinationIsRejected(t *testing.T) {
	ft := testutil.NewFakeTransport()
	p, ok := registry.Get(RouteResourceType, newDeps(ft, nil))
	require.True(t, ok)

	result, err := p.Create(context.Background(), &resource.CreateRequest{
		Properties:   json.RawMessage(`{"name":"r1","destRange":"nope"}`),
		TargetConfig: json.RawMessage(`{"projectId":"p1"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, resource.OperationErrorCodeInvalidRequest, result.ProgressResult.ErrorCode)
	assert.Empty(t, ft.Requests())
}
