// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package ovh_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	"github.com/platform-engineering-labs/ovh-compute/pkg/testutil"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
)

func TestOperationPaths(t *testing.T) {
	assert.Equal(t, "/cloud/project/p1/operation/op-1", ovhtransport.GlobalOperationPath("p1", "op-1"))
	assert.Equal(t, "/cloud/project/p1/region/GRA11/operation/op-1", ovhtransport.RegionOperationPath("p1", "GRA11", "op-1"))
	assert.Equal(t, "/cloud/project/p1/zone/GRA11-a/operation/op-1", ovhtransport.ZoneOperationPath("p1", "GRA11-a", "op-1"))
}

func TestOperationClient_QueriesScopedPath(t *testing.T) {
	fake := testutil.NewFakeTransport().
		OnGet(ovhtransport.ZoneOperationPath("p1", "GRA11-a", "z"), testutil.OperationBody("z", "in-progress")).
		OnGet(ovhtransport.RegionOperationPath("p1", "GRA11", "r"), testutil.OperationBody("r", "created")).
		OnGet(ovhtransport.GlobalOperationPath("p1", "g"), testutil.OperationBody("g", "completed"))
	client := ovhtransport.NewOperationClient(fake)
	ctx := context.Background()

	snap, err := client.ZoneOperation(ctx, "p1", "GRA11-a", "z")
	require.NoError(t, err)
	assert.Equal(t, operation.StatusRunning, snap.Status)

	snap, err = client.RegionOperation(ctx, "p1", "GRA11", "r")
	require.NoError(t, err)
	assert.Equal(t, operation.StatusPending, snap.Status)

	snap, err = client.GlobalOperation(ctx, "p1", "g")
	require.NoError(t, err)
	assert.Equal(t, operation.StatusDone, snap.Status)

	assert.Len(t, fake.Requests(), 3)
}

func TestOperationClient_PropagatesTransportError(t *testing.T) {
	fake := testutil.NewFakeTransport()
	client := ovhtransport.NewOperationClient(fake)

	_, err := client.GlobalOperation(context.Background(), "p1", "missing")
	assert.True(t, ovhtransport.IsNotFound(err))
}

func TestDecodeOperation(t *testing.T) {
	tests := []struct {
		name         string
		body         map[string]interface{}
		wantStatus   operation.Status
		wantError    *operation.ProviderError
		wantWarnings []operation.Warning
		wantErr      bool
	}{
		{
			name:       "created",
			body:       testutil.OperationBody("op", "created"),
			wantStatus: operation.StatusPending,
		},
		{
			name:       "completed",
			body:       map[string]interface{}{"id": "op", "status": "completed", "progress": float64(100), "resourceId": "vol-1"},
			wantStatus: operation.StatusDone,
		},
		{
			name: "error with payload",
			body: map[string]interface{}{
				"id":     "op",
				"status": "error",
				"error": map[string]interface{}{
					"code":    "QUOTA_EXCEEDED",
					"message": "quota reached",
					"details": []interface{}{
						map[string]interface{}{"code": "VOLUME", "location": "size", "message": "too big"},
					},
				},
			},
			wantStatus: operation.StatusDone,
			wantError: &operation.ProviderError{
				Code:    "QUOTA_EXCEEDED",
				Message: "quota reached",
				Details: []operation.ErrorDetail{{Code: "VOLUME", Location: "size", Message: "too big"}},
			},
		},
		{
			name:       "error without payload",
			body:       map[string]interface{}{"id": "op", "status": "error", "message": "boom"},
			wantStatus: operation.StatusDone,
			wantError:  &operation.ProviderError{Code: "OPERATION_ERROR", Message: "boom"},
		},
		{
			name: "warnings",
			body: map[string]interface{}{
				"id":     "op",
				"status": "in-progress",
				"warnings": []interface{}{
					map[string]interface{}{"code": "DEPRECATED", "message": "image is deprecated"},
					"plain note",
					map[string]interface{}{"code": "EMPTY"},
				},
			},
			wantStatus: operation.StatusRunning,
			wantWarnings: []operation.Warning{
				{Code: "DEPRECATED", Message: "image is deprecated"},
				{Message: "plain note"},
			},
		},
		{
			name: "failed sub-operation becomes warning",
			body: map[string]interface{}{
				"id":     "op",
				"status": "completed",
				"subOperations": []interface{}{
					map[string]interface{}{"id": "sub-1", "action": "snapshot#create", "status": "completed"},
					map[string]interface{}{
						"id":     "sub-2",
						"action": "snapshot#create",
						"status": "error",
						"error":  map[string]interface{}{"message": "no space"},
					},
				},
			},
			wantStatus: operation.StatusDone,
			wantWarnings: []operation.Warning{
				{Code: ovhtransport.WarningCodeSubOperationFailed, Message: "sub-operation sub-2 (snapshot#create) failed: no space"},
			},
		},
		{
			name: "sub-operations ignored when parent failed",
			body: map[string]interface{}{
				"id":     "op",
				"status": "error",
				"error":  map[string]interface{}{"code": "INTERNAL", "message": "broken"},
				"subOperations": []interface{}{
					map[string]interface{}{"id": "sub-1", "status": "error"},
				},
			},
			wantStatus: operation.StatusDone,
			wantError:  &operation.ProviderError{Code: "INTERNAL", Message: "broken"},
		},
		{
			name:    "unknown status",
			body:    map[string]interface{}{"id": "op", "status": "paused"},
			wantErr: true,
		},
		{
			name:    "missing id",
			body:    map[string]interface{}{"status": "completed"},
			wantErr: true,
		},
		{
			name:    "nil body",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := ovhtransport.DecodeOperation(tt.body)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "op", snap.ID)
			assert.Equal(t, tt.wantStatus, snap.Status)
			assert.Equal(t, tt.wantError, snap.Error)
			assert.Equal(t, tt.wantWarnings, snap.Warnings)
		})
	}
}

func TestDecodeOperation_ProgressAndResource(t *testing.T) {
	snap, err := ovhtransport.DecodeOperation(map[string]interface{}{
		"id": "op", "status": "in-progress", "progress": float64(40), "resourceId": "inst-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 40, snap.Progress)
	assert.Equal(t, "inst-1", snap.ResourceID)
}

func TestIsOperation(t *testing.T) {
	assert.True(t, ovhtransport.IsOperation(testutil.OperationBody("op", "created")))
	assert.False(t, ovhtransport.IsOperation(map[string]interface{}{"id": "vol-1", "name": "data"}))
	assert.False(t, ovhtransport.IsOperation(map[string]interface{}{"action": "x"}))
	assert.False(t, ovhtransport.IsOperation(nil))
}

func TestOperationClient_WithPoller(t *testing.T) {
	path := ovhtransport.ZoneOperationPath("p1", "GRA11-a", "op-1")
	fake := testutil.NewFakeTransport().OnGet(path,
		testutil.OperationBody("op-1", "in-progress"),
		map[string]interface{}{"id": "op-1", "status": "completed", "resourceId": "vol-1"},
	)
	sleeper := &testutil.SleepRecorder{}
	poller := operation.NewPoller(ovhtransport.NewOperationClient(fake), operation.WithSleep(sleeper.Sleep))

	h := &operation.Handle{Scope: operation.ZoneScope{Project: "p1", Zone: "GRA11-a"}, ID: "op-1"}
	outcome, err := poller.Wait(context.Background(), h)

	require.NoError(t, err)
	assert.Equal(t, operation.OutcomeSucceeded, outcome)
	assert.Equal(t, 2, fake.Count("GET", path))
	assert.Equal(t, "vol-1", h.Snapshot.ResourceID)
}
