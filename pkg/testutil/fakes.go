// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
)

// scripts chains mock expectations per key: every reply is served once,
// in order, and the last one repeats. A key first seen unscripted gets a
// fallback reply that later scripting disables.
type scripts struct {
	last     map[string]*mock.Call
	fallback map[string]bool
}

func newScripts() scripts {
	return scripts{
		last:     make(map[string]*mock.Call),
		fallback: make(map[string]bool),
	}
}

func (s *scripts) push(key string, call *mock.Call) {
	if prev, ok := s.last[key]; ok {
		if s.fallback[key] {
			prev.Repeatability = -1
			delete(s.fallback, key)
		} else {
			prev.Once()
		}
	}
	s.last[key] = call
}

func (s *scripts) ensure(key string, register func() *mock.Call) {
	if _, ok := s.last[key]; ok {
		return
	}
	s.last[key] = register()
	s.fallback[key] = true
}

// FakeResponse is one scripted reply of a FakeTransport.
type FakeResponse struct {
	Body  map[string]interface{}
	Array []interface{}
	Err   error
}

// FakeTransport is a mock ovhtransport.Doer scripted by method and path.
// Unscripted requests fail with a classified 404.
type FakeTransport struct {
	mock.Mock

	mu      sync.Mutex
	scripts scripts
}

var _ ovhtransport.Doer = (*FakeTransport)(nil)

// NewFakeTransport returns a transport with no scripted responses.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{scripts: newScripts()}
}

func requestKey(method, path string) string {
	return method + " " + path
}

func matchRequest(method, path string) interface{} {
	return mock.MatchedBy(func(opts ovhtransport.RequestOptions) bool {
		return opts.Method == method && opts.Path == path
	})
}

// On appends responses for method and path.
func (f *FakeTransport) On(method, path string, responses ...FakeResponse) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := requestKey(method, path)
	for _, r := range responses {
		var resp *ovhtransport.Response
		if r.Err == nil {
			resp = &ovhtransport.Response{StatusCode: http.StatusOK, Body: r.Body, BodyArray: r.Array}
		}
		f.scripts.push(key, f.Mock.On("Do", mock.Anything, matchRequest(method, path)).Return(resp, r.Err))
	}
	return f
}

// OnGet scripts JSON object bodies for a GET.
func (f *FakeTransport) OnGet(path string, bodies ...map[string]interface{}) *FakeTransport {
	return f.On(http.MethodGet, path, bodiesToResponses(bodies)...)
}

// OnPost scripts JSON object bodies for a POST.
func (f *FakeTransport) OnPost(path string, bodies ...map[string]interface{}) *FakeTransport {
	return f.On(http.MethodPost, path, bodiesToResponses(bodies)...)
}

func bodiesToResponses(bodies []map[string]interface{}) []FakeResponse {
	responses := make([]FakeResponse, 0, len(bodies))
	for _, b := range bodies {
		responses = append(responses, FakeResponse{Body: b})
	}
	return responses
}

func (f *FakeTransport) Do(ctx context.Context, opts ovhtransport.RequestOptions) (*ovhtransport.Response, error) {
	key := requestKey(opts.Method, opts.Path)

	f.mu.Lock()
	f.scripts.ensure(key, func() *mock.Call {
		return f.Mock.On("Do", mock.Anything, matchRequest(opts.Method, opts.Path)).
			Return((*ovhtransport.Response)(nil), NotFound(fmt.Sprintf("no fake response for %s", key)))
	})
	args := f.Mock.MethodCalled("Do", ctx, opts)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, ovhtransport.NewError(ovhtransport.ErrorCodeCanceled, err.Error(), err)
	}
	resp, _ := args.Get(0).(*ovhtransport.Response)
	return resp, args.Error(1)
}

// Requests returns every request received, in order.
func (f *FakeTransport) Requests() []ovhtransport.RequestOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ovhtransport.RequestOptions, 0, len(f.Mock.Calls))
	for _, c := range f.Mock.Calls {
		out = append(out, c.Arguments.Get(1).(ovhtransport.RequestOptions))
	}
	return out
}

// Count returns how many times method and path were requested.
func (f *FakeTransport) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// NotFound is a classified 404 for scripting.
func NotFound(message string) error {
	return &ovhtransport.Error{
		Code:     ovhtransport.ErrorCodeResourceNotFound,
		Message:  message,
		HTTPCode: http.StatusNotFound,
	}
}

// OperationBody builds a provider operation payload.
func OperationBody(id, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"action": "test#action",
		"status": status,
	}
}

// ScriptedStatusClient is a mock operation.StatusClient answering each
// operation from its own script.
type ScriptedStatusClient struct {
	mock.Mock

	mu      sync.Mutex
	scripts scripts

	// OnQuery, if set, runs before every query is answered.
	OnQuery func(scope operation.Scope, id string, n int)
}

var _ operation.StatusClient = (*ScriptedStatusClient)(nil)

// NewScriptedStatusClient returns a client with no scripts.
func NewScriptedStatusClient() *ScriptedStatusClient {
	return &ScriptedStatusClient{scripts: newScripts()}
}

func scriptKey(scope operation.Scope, id string) string {
	return scope.String() + "/" + id
}

// expect registers one reply for id in scope.
func (c *ScriptedStatusClient) expect(scope operation.Scope, id string, snap *operation.Snapshot, err error) *mock.Call {
	switch s := scope.(type) {
	case operation.ZoneScope:
		return c.Mock.On("ZoneOperation", mock.Anything, s.Project, s.Zone, id).Return(snap, err)
	case operation.RegionScope:
		return c.Mock.On("RegionOperation", mock.Anything, s.Project, s.Region, id).Return(snap, err)
	case operation.GlobalScope:
		return c.Mock.On("GlobalOperation", mock.Anything, s.Project, id).Return(snap, err)
	default:
		panic(fmt.Sprintf("unknown scope %T", scope))
	}
}

// Script appends the snapshots returned for successive queries of id.
// The last snapshot repeats.
func (c *ScriptedStatusClient) Script(scope operation.Scope, id string, snaps ...*operation.Snapshot) *ScriptedStatusClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := scriptKey(scope, id)
	for _, s := range snaps {
		if s.ID == "" {
			s.ID = id
		}
		c.scripts.push(key, c.expect(scope, id, s, nil))
	}
	return c
}

// Fail appends a query error to the script of id.
func (c *ScriptedStatusClient) Fail(scope operation.Scope, id string, err error) *ScriptedStatusClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scripts.push(scriptKey(scope, id), c.expect(scope, id, nil, err))
	return c
}

// recorded rebuilds the scope and id of every answered query.
func (c *ScriptedStatusClient) recorded() []string {
	keys := make([]string, 0, len(c.Mock.Calls))
	for _, call := range c.Mock.Calls {
		a := call.Arguments
		var scope operation.Scope
		var id string
		switch call.Method {
		case "ZoneOperation":
			scope, id = operation.ZoneScope{Project: a.String(1), Zone: a.String(2)}, a.String(3)
		case "RegionOperation":
			scope, id = operation.RegionScope{Project: a.String(1), Region: a.String(2)}, a.String(3)
		case "GlobalOperation":
			scope, id = operation.GlobalScope{Project: a.String(1)}, a.String(2)
		default:
			continue
		}
		keys = append(keys, scriptKey(scope, id))
	}
	return keys
}

// Queries returns how many times id was queried in scope.
func (c *ScriptedStatusClient) Queries(scope operation.Scope, id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return countKey(c.recorded(), scriptKey(scope, id))
}

// Calls returns "<scope>/<id>" for every query, in order.
func (c *ScriptedStatusClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recorded()
}

func countKey(keys []string, key string) int {
	n := 0
	for _, k := range keys {
		if k == key {
			n++
		}
	}
	return n
}

func (c *ScriptedStatusClient) ZoneOperation(ctx context.Context, project, zone, id string) (*operation.Snapshot, error) {
	return c.answer(ctx, operation.ZoneScope{Project: project, Zone: zone}, id, "ZoneOperation", ctx, project, zone, id)
}

func (c *ScriptedStatusClient) RegionOperation(ctx context.Context, project, region, id string) (*operation.Snapshot, error) {
	return c.answer(ctx, operation.RegionScope{Project: project, Region: region}, id, "RegionOperation", ctx, project, region, id)
}

func (c *ScriptedStatusClient) GlobalOperation(ctx context.Context, project, id string) (*operation.Snapshot, error) {
	return c.answer(ctx, operation.GlobalScope{Project: project}, id, "GlobalOperation", ctx, project, id)
}

func (c *ScriptedStatusClient) answer(ctx context.Context, scope operation.Scope, id, method string, arguments ...interface{}) (*operation.Snapshot, error) {
	key := scriptKey(scope, id)

	c.mu.Lock()
	n := countKey(c.recorded(), key)
	c.scripts.ensure(key, func() *mock.Call {
		return c.expect(scope, id, nil, fmt.Errorf("no script for operation %s", key))
	})
	args := c.Mock.MethodCalled(method, arguments...)
	hook := c.OnQuery
	c.mu.Unlock()

	if hook != nil {
		hook(scope, id, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	snap := *args.Get(0).(*operation.Snapshot)
	return &snap, nil
}

// RecordedWarning is one warning seen by a RecordingNotifier.
type RecordedWarning struct {
	Scope       operation.Scope
	OperationID string
	Warning     operation.Warning
}

// RecordingNotifier is a mock operation.Notifier that accepts every
// warning. Tests may add their own Warn expectations before the first
// warning arrives.
type RecordingNotifier struct {
	mock.Mock

	mu   sync.Mutex
	once sync.Once

	// OnWarn, if set, runs after a warning is recorded.
	OnWarn func(RecordedWarning)
}

var _ operation.Notifier = (*RecordingNotifier)(nil)

func (n *RecordingNotifier) Warn(scope operation.Scope, operationID string, w operation.Warning) {
	n.mu.Lock()
	n.once.Do(func() {
		n.Mock.On("Warn", mock.Anything, mock.Anything, mock.Anything).Return()
	})
	n.Mock.MethodCalled("Warn", scope, operationID, w)
	hook := n.OnWarn
	n.mu.Unlock()

	if hook != nil {
		hook(RecordedWarning{Scope: scope, OperationID: operationID, Warning: w})
	}
}

// Warnings returns the recorded warnings in order.
func (n *RecordingNotifier) Warnings() []RecordedWarning {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]RecordedWarning, 0, len(n.Mock.Calls))
	for _, c := range n.Mock.Calls {
		out = append(out, RecordedWarning{
			Scope:       c.Arguments.Get(0).(operation.Scope),
			OperationID: c.Arguments.String(1),
			Warning:     c.Arguments.Get(2).(operation.Warning),
		})
	}
	return out
}

// SleepRecorder is a mock operation.SleepFunc that returns immediately.
// By default a sleep fails only when ctx is done; tests may add their own
// Sleep expectations before the first sleep.
type SleepRecorder struct {
	mock.Mock

	mu   sync.Mutex
	once sync.Once

	// OnSleep, if set, runs before the sleep returns. n starts at 0.
	OnSleep func(n int)
}

// Sleep matches operation.SleepFunc.
func (s *SleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.once.Do(func() {
		s.Mock.On("Sleep", mock.Anything, mock.Anything).Return(nil)
	})
	n := len(s.Mock.Calls)
	args := s.Mock.MethodCalled("Sleep", ctx, d)
	hook := s.OnSleep
	s.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if err := args.Error(0); err != nil {
		return err
	}
	return ctx.Err()
}

// Calls returns the requested durations.
func (s *SleepRecorder) Calls() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, 0, len(s.Mock.Calls))
	for _, c := range s.Mock.Calls {
		out = append(out, c.Arguments.Get(1).(time.Duration))
	}
	return out
}
