// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/logging"
	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
	"go.uber.org/zap"
)

// TransportClient interface for API calls
type TransportClient = ovhtransport.Doer

// BaseResource provides unified CRUD operations
type BaseResource struct {
	APIConfig           APIConfig
	OperationConfig     OperationConfig
	ResourceConfig      ResourceConfig
	NativeIDConfig      NativeIDConfig
	RequestTransformer  RequestTransformer
	ResponseTransformer ResponseTransformer
	Client              TransportClient
	Coordinator         *operation.Coordinator
	Logger              *zap.Logger
}

const waitInterruptedMessage = "operation wait interrupted"

// Create performs a CREATE operation
func (b *BaseResource) Create(ctx context.Context, request *resource.CreateRequest) (*resource.CreateResult, error) {
	var props map[string]interface{}
	if err := json.Unmarshal(request.Properties, &props); err != nil {
		return &resource.CreateResult{ProgressResult: failure(resource.OperationCreate, "",
			resource.OperationErrorCodeInvalidRequest, fmt.Sprintf("failed to parse properties: %v", err))}, nil
	}

	pathCtx := b.buildPathContext(request.TargetConfig, props)
	if _, err := HandleScope(b.ResourceConfig.Scope, pathCtx); err != nil {
		return &resource.CreateResult{ProgressResult: failure(resource.OperationCreate, "",
			resource.OperationErrorCodeInvalidRequest, err.Error())}, nil
	}

	var created map[string]interface{}
	inv := operation.NewInvocation(b.Coordinator)
	err := b.Insert(ctx, inv, pathCtx, props, func(_ context.Context, p map[string]interface{}) error {
		created = p
		return nil
	})
	if err == nil {
		err = inv.Wait(ctx)
	}

	result := b.settle(ctx, resource.OperationCreate, "", err, created != nil)
	if result.OperationStatus == resource.OperationStatusSuccess {
		result.NativeID = b.nativeID(created, pathCtx)
		result.ResourceProperties, _ = json.Marshal(created)
	}
	return &resource.CreateResult{ProgressResult: result}, nil
}

// Read performs a READ operation
func (b *BaseResource) Read(ctx context.Context, request *resource.ReadRequest) (*resource.ReadResult, error) {
	pathCtx, err := b.pathContextFromNativeID(request.TargetConfig, request.NativeID)
	if err != nil {
		return &resource.ReadResult{
			ErrorCode: resource.OperationErrorCodeInvalidRequest,
		}, nil
	}

	props, err := b.Get(ctx, pathCtx, pathCtx.ResourceName)
	if err != nil {
		return &resource.ReadResult{
			ErrorCode: errorCodeOf(err),
		}, nil
	}

	propsJSON, _ := json.Marshal(props)
	return &resource.ReadResult{
		Properties: string(propsJSON),
	}, nil
}

// Update performs an UPDATE operation
func (b *BaseResource) Update(ctx context.Context, request *resource.UpdateRequest) (*resource.UpdateResult, error) {
	if !b.ResourceConfig.SupportsUpdate {
		return &resource.UpdateResult{ProgressResult: failure(resource.OperationUpdate, request.NativeID,
			resource.OperationErrorCodeNotUpdatable, "")}, nil
	}

	var props map[string]interface{}
	if err := json.Unmarshal(request.DesiredProperties, &props); err != nil {
		return &resource.UpdateResult{ProgressResult: failure(resource.OperationUpdate, request.NativeID,
			resource.OperationErrorCodeInvalidRequest, fmt.Sprintf("failed to parse properties: %v", err))}, nil
	}

	pathCtx, err := b.pathContextFromNativeID(request.TargetConfig, request.NativeID)
	if err != nil {
		return &resource.UpdateResult{ProgressResult: failure(resource.OperationUpdate, request.NativeID,
			resource.OperationErrorCodeInvalidRequest, fmt.Sprintf("invalid native ID: %v", err))}, nil
	}

	var updated map[string]interface{}
	emit := func(_ context.Context, p map[string]interface{}) error {
		updated = p
		return nil
	}

	inv := operation.NewInvocation(b.Coordinator)
	if b.ResourceConfig.UpdateAction != "" {
		err = b.Resize(ctx, inv, pathCtx, pathCtx.ResourceName, props, emit)
	} else {
		err = b.Replace(ctx, inv, pathCtx, pathCtx.ResourceName, props, emit)
	}
	if err == nil {
		err = inv.Wait(ctx)
	}

	result := b.settle(ctx, resource.OperationUpdate, request.NativeID, err, updated != nil)
	if result.OperationStatus == resource.OperationStatusSuccess {
		result.ResourceProperties, _ = json.Marshal(updated)
	}
	return &resource.UpdateResult{ProgressResult: result}, nil
}

// Delete performs a DELETE operation
func (b *BaseResource) Delete(ctx context.Context, request *resource.DeleteRequest) (*resource.DeleteResult, error) {
	pathCtx, err := b.pathContextFromNativeID(request.TargetConfig, request.NativeID)
	if err != nil {
		return &resource.DeleteResult{ProgressResult: failure(resource.OperationDelete, request.NativeID,
			resource.OperationErrorCodeInvalidRequest, fmt.Sprintf("invalid native ID: %v", err))}, nil
	}

	inv := operation.NewInvocation(b.Coordinator)
	err = b.Remove(ctx, inv, pathCtx, pathCtx.ResourceName)
	if err == nil {
		err = inv.Wait(ctx)
	}

	return &resource.DeleteResult{ProgressResult: b.settle(ctx, resource.OperationDelete, request.NativeID, err, ctx.Err() == nil)}, nil
}

// List performs a LIST operation
func (b *BaseResource) List(ctx context.Context, request *resource.ListRequest) (*resource.ListResult, error) {
	pathCtx := b.buildPathContextFromAdditionalProps(request.TargetConfig, request.AdditionalProperties)

	names, err := b.ListNames(ctx, pathCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	nativeIDs := make([]string, 0, len(names))
	for _, name := range names {
		idCtx := pathCtx
		idCtx.ResourceName = name
		nativeIDs = append(nativeIDs, BuildNativeID(b.NativeIDConfig, idCtx))
	}

	return &resource.ListResult{
		NativeIDs: nativeIDs,
	}, nil
}

// Status reports the current state of a resource. Operations are drained
// inside the request that started them, so a readable resource is settled.
func (b *BaseResource) Status(ctx context.Context, request *resource.StatusRequest) (*resource.StatusResult, error) {
	pathCtx, err := b.pathContextFromNativeID(request.TargetConfig, request.NativeID)
	if err != nil {
		result := failure(resource.OperationCheckStatus, request.NativeID,
			resource.OperationErrorCodeInvalidRequest, fmt.Sprintf("invalid native ID: %v", err))
		result.RequestID = request.RequestID
		return &resource.StatusResult{ProgressResult: result}, nil
	}

	props, err := b.Get(ctx, pathCtx, pathCtx.ResourceName)
	if err != nil {
		result := failure(resource.OperationCheckStatus, request.NativeID, errorCodeOf(err), err.Error())
		result.RequestID = request.RequestID
		return &resource.StatusResult{ProgressResult: result}, nil
	}

	propsJSON, _ := json.Marshal(props)
	return &resource.StatusResult{
		ProgressResult: &resource.ProgressResult{
			Operation:          resource.OperationCheckStatus,
			OperationStatus:    resource.OperationStatusSuccess,
			RequestID:          request.RequestID,
			NativeID:           request.NativeID,
			ResourceProperties: propsJSON,
		},
	}, nil
}

// settle maps the outcome of an invocation to a progress result. An
// interrupted wait leaves the resource in progress.
func (b *BaseResource) settle(ctx context.Context, op resource.Operation, nativeID string, err error, completed bool) *resource.ProgressResult {
	if err != nil {
		b.log().Debug("operation failed",
			zap.String("type", b.ResourceConfig.ResourceType),
			zap.String("action", string(op)),
			zap.Error(err))
		return failure(op, nativeID, errorCodeOf(err), err.Error())
	}

	if !completed {
		if ctx.Err() != nil {
			return &resource.ProgressResult{
				Operation:       op,
				OperationStatus: resource.OperationStatusInProgress,
				StatusMessage:   waitInterruptedMessage,
				NativeID:        nativeID,
			}
		}
		return failure(op, nativeID, resource.OperationErrorCodeServiceInternalError, "provider returned no resource")
	}

	return &resource.ProgressResult{
		Operation:       op,
		OperationStatus: resource.OperationStatusSuccess,
		NativeID:        nativeID,
	}
}

func failure(op resource.Operation, nativeID string, code resource.OperationErrorCode, message string) *resource.ProgressResult {
	return &resource.ProgressResult{
		Operation:       op,
		OperationStatus: resource.OperationStatusFailure,
		ErrorCode:       code,
		StatusMessage:   message,
		NativeID:        nativeID,
	}
}

// errorCodeOf classifies transport failures. Failed provider operations and
// anything unclassified are reported as internal errors.
func errorCodeOf(err error) resource.OperationErrorCode {
	var transportErr *ovhtransport.Error
	if errors.As(err, &transportErr) {
		return ovhtransport.ToResourceErrorCode(transportErr.Code)
	}
	return resource.OperationErrorCodeServiceInternalError
}

func (b *BaseResource) nativeID(props map[string]interface{}, pathCtx PathContext) string {
	if b.OperationConfig.NativeIDExtractor != nil {
		return b.OperationConfig.NativeIDExtractor(props, pathCtx)
	}
	idCtx := pathCtx
	if id, ok := props["id"]; ok {
		idCtx.ResourceName = fmt.Sprintf("%v", id)
	} else if name, ok := props["name"].(string); ok {
		idCtx.ResourceName = name
	}
	return BuildNativeID(b.NativeIDConfig, idCtx)
}

func (b *BaseResource) log() *zap.Logger {
	if b.Logger == nil {
		return logging.Nop()
	}
	return b.Logger
}

// Helper methods

func (b *BaseResource) pathContextFromNativeID(targetConfig json.RawMessage, nativeID string) (PathContext, error) {
	pathCtx, err := ParseNativeID(b.NativeIDConfig, nativeID)
	if err != nil {
		return PathContext{}, err
	}

	pathCtx.ResourceType = b.ResourceConfig.ResourceType

	// Extract project from target config if not already set (for SimpleNameFormat native IDs)
	if pathCtx.Project == "" && len(targetConfig) > 0 {
		pathCtx.Project = extractProjectFromTargetConfig(targetConfig)
	}
	b.fillPlacement(&pathCtx, "", "", targetConfig)
	return pathCtx, nil
}

func (b *BaseResource) buildPathContext(targetConfig json.RawMessage, props map[string]interface{}) PathContext {
	ctx := PathContext{
		ResourceType: b.ResourceConfig.ResourceType,
	}

	// Extract serviceName/project from properties (OVH Cloud resources)
	if serviceName, ok := props["serviceName"].(string); ok && serviceName != "" {
		ctx.Project = serviceName
	}

	// Try target config if not found in props
	if ctx.Project == "" && len(targetConfig) > 0 {
		ctx.Project = extractProjectFromTargetConfig(targetConfig)
	}

	zone, _ := props["zone"].(string)
	region, _ := props["region"].(string)
	b.fillPlacement(&ctx, zone, region, targetConfig)
	return ctx
}

func (b *BaseResource) buildPathContextFromAdditionalProps(targetConfig json.RawMessage, additionalProps map[string]string) PathContext {
	ctx := PathContext{
		ResourceType: b.ResourceConfig.ResourceType,
	}

	if serviceName, ok := additionalProps["serviceName"]; ok && serviceName != "" {
		ctx.Project = serviceName
	}

	if ctx.Project == "" && len(targetConfig) > 0 {
		ctx.Project = extractProjectFromTargetConfig(targetConfig)
	}

	b.fillPlacement(&ctx, additionalProps["zone"], additionalProps["region"], targetConfig)
	return ctx
}

// fillPlacement sets zone and region for scoped resources. Explicit values
// win over the target config; a zonal resource derives its region.
func (b *BaseResource) fillPlacement(ctx *PathContext, zone, region string, targetConfig json.RawMessage) {
	switch b.ResourceConfig.Scope {
	case ScopeZonal:
		if ctx.Zone == "" {
			ctx.Zone = zone
		}
		if ctx.Zone == "" && len(targetConfig) > 0 {
			ctx.Zone = extractZoneFromTargetConfig(targetConfig)
		}
		if ctx.Region == "" {
			ctx.Region = RegionOfZone(ctx.Zone)
		}
	case ScopeRegional:
		if ctx.Region == "" {
			ctx.Region = region
		}
		if ctx.Region == "" && len(targetConfig) > 0 {
			ctx.Region = extractRegionFromTargetConfig(targetConfig)
		}
	}
}

func (b *BaseResource) buildTransformContext(pathCtx PathContext, op resource.Operation) TransformContext {
	return TransformContext{
		Project:      pathCtx.Project,
		Region:       pathCtx.Region,
		Zone:         pathCtx.Zone,
		ResourceType: pathCtx.ResourceType,
		Operation:    op,
	}
}

// extractProjectFromTargetConfig extracts project/serviceName from target config JSON.
// Checks multiple field names to support different naming conventions.
func extractProjectFromTargetConfig(targetConfig json.RawMessage) string {
	return firstStringField(targetConfig, "ProjectId", "projectId", "ServiceName", "serviceName")
}

func extractRegionFromTargetConfig(targetConfig json.RawMessage) string {
	return firstStringField(targetConfig, "Region", "region", "RegionName", "regionName")
}

func extractZoneFromTargetConfig(targetConfig json.RawMessage) string {
	return firstStringField(targetConfig, "Zone", "zone", "AvailabilityZone", "availabilityZone")
}

func firstStringField(raw json.RawMessage, fields ...string) string {
	var cfg map[string]interface{}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return ""
	}
	for _, field := range fields {
		if val, ok := cfg[field].(string); ok && val != "" {
			return val
		}
	}
	return ""
}
