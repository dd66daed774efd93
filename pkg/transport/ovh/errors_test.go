// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package ovh

import (
	"errors"
	"fmt"
	"testing"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/stretchr/testify/assert"
)

func TestClassifyHTTPStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		want       ErrorCode
	}{
		{400, ErrorCodeInvalidInput},
		{401, ErrorCodeUnauthorized},
		{403, ErrorCodeUnauthorized},
		{404, ErrorCodeResourceNotFound},
		{409, ErrorCodeAlreadyExists},
		{429, ErrorCodeThrottling},
		{500, ErrorCodeInternalError},
		{503, ErrorCodeInternalError},
		{200, ErrorCodeNone},
		{202, ErrorCodeNone},
		{418, ErrorCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyHTTPStatus(tt.statusCode))
		})
	}
}

func TestToResourceErrorCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want resource.OperationErrorCode
	}{
		{ErrorCodeInvalidInput, resource.OperationErrorCodeInvalidRequest},
		{ErrorCodeUnauthorized, resource.OperationErrorCodeAccessDenied},
		{ErrorCodeResourceNotFound, resource.OperationErrorCodeNotFound},
		{ErrorCodeAlreadyExists, resource.OperationErrorCodeAlreadyExists},
		{ErrorCodeThrottling, resource.OperationErrorCodeThrottling},
		{ErrorCodeInternalError, resource.OperationErrorCodeServiceInternalError},
		{ErrorCodeUnknown, resource.OperationErrorCodeServiceInternalError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, ToResourceErrorCode(tt.code))
		})
	}
}

func TestCodeOf(t *testing.T) {
	notFound := NewError(ErrorCodeResourceNotFound, "gone", nil)

	assert.Equal(t, ErrorCodeResourceNotFound, CodeOf(notFound))
	assert.Equal(t, ErrorCodeResourceNotFound, CodeOf(fmt.Errorf("get disk: %w", notFound)))
	assert.Equal(t, ErrorCodeUnknown, CodeOf(errors.New("plain")))
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(NewError(ErrorCodeThrottling, "slow down", nil)))
}

func TestError_Message(t *testing.T) {
	underlying := errors.New("root")
	err := NewError(ErrorCodeInvalidInput, "size must be positive", underlying)

	assert.Equal(t, "INVALID_INPUT: size must be positive", err.Error())
	assert.ErrorIs(t, err, underlying)
}
