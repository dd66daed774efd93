// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package testutil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
)

func TestFakeTransport_ScriptOrder(t *testing.T) {
	f := NewFakeTransport().
		OnGet("/a", map[string]interface{}{"n": 1.0}, map[string]interface{}{"n": 2.0})
	f.OnGet("/a", map[string]interface{}{"n": 3.0})

	var got []interface{}
	for i := 0; i < 4; i++ {
		resp, err := f.Do(context.Background(), ovhtransport.RequestOptions{Method: http.MethodGet, Path: "/a"})
		require.NoError(t, err)
		got = append(got, resp.Body["n"])
	}

	assert.Equal(t, []interface{}{1.0, 2.0, 3.0, 3.0}, got, "replies are served in order and the last repeats")
	assert.Equal(t, 4, f.Count(http.MethodGet, "/a"))
	f.AssertNumberOfCalls(t, "Do", 4)
}

func TestFakeTransport_Unscripted(t *testing.T) {
	f := NewFakeTransport()

	_, err := f.Do(context.Background(), ovhtransport.RequestOptions{Method: http.MethodDelete, Path: "/gone"})
	assert.True(t, ovhtransport.IsNotFound(err))

	f.On(http.MethodDelete, "/gone", FakeResponse{Body: map[string]interface{}{"ok": true}})
	resp, err := f.Do(context.Background(), ovhtransport.RequestOptions{Method: http.MethodDelete, Path: "/gone"})
	require.NoError(t, err, "scripting a key replaces its fallback")
	assert.Equal(t, true, resp.Body["ok"])

	requests := f.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/gone", requests[1].Path)
}

func TestFakeTransport_Cancelled(t *testing.T) {
	f := NewFakeTransport().OnGet("/a", map[string]interface{}{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Do(ctx, ovhtransport.RequestOptions{Method: http.MethodGet, Path: "/a"})
	assert.Equal(t, ovhtransport.ErrorCodeCanceled, ovhtransport.CodeOf(err))
	assert.Equal(t, 1, f.Count(http.MethodGet, "/a"))
}

func TestScriptedStatusClient(t *testing.T) {
	zone := operation.ZoneScope{Project: "p1", Zone: "GRA11-a"}
	global := operation.GlobalScope{Project: "p1"}
	boom := errors.New("boom")

	c := NewScriptedStatusClient().
		Script(zone, "z1",
			&operation.Snapshot{Status: operation.StatusRunning},
			&operation.Snapshot{Status: operation.StatusDone}).
		Fail(global, "g1", boom)

	first, err := c.ZoneOperation(context.Background(), "p1", "GRA11-a", "z1")
	require.NoError(t, err)
	assert.Equal(t, operation.StatusRunning, first.Status)
	assert.Equal(t, "z1", first.ID)

	for i := 0; i < 2; i++ {
		snap, err := c.ZoneOperation(context.Background(), "p1", "GRA11-a", "z1")
		require.NoError(t, err)
		assert.Equal(t, operation.StatusDone, snap.Status)
	}

	_, err = c.GlobalOperation(context.Background(), "p1", "g1")
	assert.ErrorIs(t, err, boom)

	_, err = c.RegionOperation(context.Background(), "p1", "GRA11", "r1")
	assert.ErrorContains(t, err, "no script for operation projects/p1/regions/GRA11/r1")

	assert.Equal(t, 3, c.Queries(zone, "z1"))
	assert.Equal(t, []string{
		"projects/p1/zones/GRA11-a/z1",
		"projects/p1/zones/GRA11-a/z1",
		"projects/p1/zones/GRA11-a/z1",
		"projects/p1/global/g1",
		"projects/p1/regions/GRA11/r1",
	}, c.Calls())
	c.AssertCalled(t, "GlobalOperation", mock.Anything, "p1", "g1")
}

func TestScriptedStatusClient_OnQuery(t *testing.T) {
	zone := operation.ZoneScope{Project: "p1", Zone: "GRA11-a"}
	c := NewScriptedStatusClient().Script(zone, "z1", &operation.Snapshot{Status: operation.StatusRunning})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var seen []int
	c.OnQuery = func(_ operation.Scope, _ string, n int) {
		seen = append(seen, n)
		if n == 1 {
			cancel()
		}
	}

	_, err := c.ZoneOperation(ctx, "p1", "GRA11-a", "z1")
	require.NoError(t, err)
	_, err = c.ZoneOperation(ctx, "p1", "GRA11-a", "z1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestRecordingNotifier(t *testing.T) {
	n := &RecordingNotifier{}
	var hooked int
	n.OnWarn = func(RecordedWarning) { hooked++ }

	scope := operation.GlobalScope{Project: "p1"}
	n.Warn(scope, "op-1", operation.Warning{Code: "DEPRECATED", Message: "old"})

	assert.Equal(t, []RecordedWarning{{
		Scope:       scope,
		OperationID: "op-1",
		Warning:     operation.Warning{Code: "DEPRECATED", Message: "old"},
	}}, n.Warnings())
	assert.Equal(t, 1, hooked)
	n.AssertCalled(t, "Warn", scope, "op-1", operation.Warning{Code: "DEPRECATED", Message: "old"})
}

func TestSleepRecorder(t *testing.T) {
	s := &SleepRecorder{}
	require.NoError(t, s.Sleep(context.Background(), 150*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	s.OnSleep = func(n int) {
		assert.Equal(t, 1, n)
		cancel()
	}
	assert.ErrorIs(t, s.Sleep(ctx, 150*time.Millisecond), context.Canceled)
	assert.Equal(t, []time.Duration{150 * time.Millisecond, 150 * time.Millisecond}, s.Calls())
}

func TestSleepRecorder_ScriptedError(t *testing.T) {
	s := &SleepRecorder{}
	boom := errors.New("timer broken")
	s.Mock.On("Sleep", mock.Anything, mock.Anything).Return(boom).Once()

	assert.ErrorIs(t, s.Sleep(context.Background(), time.Second), boom)
	assert.NoError(t, s.Sleep(context.Background(), time.Second))
}
