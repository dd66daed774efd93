// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package ovh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/ovh/go-ovh/ovh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient(t *testing.T) {
	// This test requires OVH credentials - skip if not configured
	if os.Getenv("OVH_APPLICATION_KEY") == "" {
		t.Skip("Requires OVH credentials (OVH_APPLICATION_KEY not set)")
	}

	cfg := &OVHConfig{
		Endpoint:          os.Getenv("OVH_ENDPOINT"),
		ApplicationKey:    os.Getenv("OVH_APPLICATION_KEY"),
		ApplicationSecret: os.Getenv("OVH_APPLICATION_SECRET"),
		ConsumerKey:       os.Getenv("OVH_CONSUMER_KEY"),
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_NilConfig(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)
}

func TestClient_UnsupportedMethod(t *testing.T) {
	c := &Client{logger: zap.NewNop()}
	_, err := c.Do(context.Background(), RequestOptions{Method: "PATCH", Path: "/x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported method")
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantBody  map[string]interface{}
		wantArray []interface{}
		wantErr   bool
	}{
		{name: "empty", raw: ""},
		{name: "null", raw: "null"},
		{name: "object", raw: `{"id":"op-1","status":"created"}`, wantBody: map[string]interface{}{"id": "op-1", "status": "created"}},
		{name: "array", raw: `["a","b"]`, wantArray: []interface{}{"a", "b"}},
		{name: "invalid", raw: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := parseResponse(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
			assert.Equal(t, tt.wantBody, resp.Body)
			assert.Equal(t, tt.wantArray, resp.BodyArray)
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
		wantHTTP int
	}{
		{"api not found", &ovh.APIError{Code: 404, Message: "This service does not exist"}, ErrorCodeResourceNotFound, 404},
		{"api conflict", &ovh.APIError{Code: 409, Message: "exists"}, ErrorCodeAlreadyExists, 409},
		{"wrapped api error", fmt.Errorf("call: %w", &ovh.APIError{Code: 403, Message: "denied"}), ErrorCodeUnauthorized, 403},
		{"cancelled", context.Canceled, ErrorCodeCanceled, 0},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrorCodeCanceled, 0},
		{"other", errors.New("dial tcp: refused"), ErrorCodeUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyError(tt.err)
			var transportErr *Error
			require.ErrorAs(t, err, &transportErr)
			assert.Equal(t, tt.wantCode, transportErr.Code)
			assert.Equal(t, tt.wantHTTP, transportErr.HTTPCode)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, classifyError(nil))
}
