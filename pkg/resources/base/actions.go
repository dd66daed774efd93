// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

import (
	"context"
	"fmt"
	"net/http"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
	"go.uber.org/zap"
)

// EmitFunc receives the properties of a resource once it exists.
type EmitFunc func(ctx context.Context, props map[string]interface{}) error

// Insert creates a resource. A synchronous response is emitted at once; an
// operation response is registered on inv and emitted after it completes.
func (b *BaseResource) Insert(ctx context.Context, inv *operation.Invocation, pathCtx PathContext, props map[string]interface{}, emit EmitFunc) error {
	body, err := b.transformRequest(props, pathCtx, resource.OperationCreate)
	if err != nil {
		return err
	}

	url := NewURLBuilder(b.APIConfig, pathCtx).CollectionURL()
	response, err := b.Client.Do(ctx, ovhtransport.RequestOptions{
		Method: http.MethodPost,
		Path:   url,
		Body:   filterNilValues(body),
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", b.ResourceConfig.ResourceType, err)
	}

	name, _ := props["name"].(string)
	return b.track(ctx, inv, pathCtx, response.Body, name, resource.OperationCreate, emit)
}

// Resize posts the configured update action for an existing resource.
func (b *BaseResource) Resize(ctx context.Context, inv *operation.Invocation, pathCtx PathContext, name string, props map[string]interface{}, emit EmitFunc) error {
	action := b.ResourceConfig.UpdateAction
	if action == "" {
		action = "resize"
	}

	body, err := b.transformRequest(props, pathCtx, resource.OperationUpdate)
	if err != nil {
		return err
	}

	url := NewURLBuilder(b.APIConfig, pathCtx).ActionURL(name, action)
	response, err := b.Client.Do(ctx, ovhtransport.RequestOptions{
		Method: http.MethodPost,
		Path:   url,
		Body:   filterNilValues(body),
	})
	if err != nil {
		return fmt.Errorf("%s %s %s: %w", action, b.ResourceConfig.ResourceType, name, err)
	}

	return b.track(ctx, inv, pathCtx, response.Body, name, resource.OperationUpdate, emit)
}

// Replace updates a resource in place with a PUT.
func (b *BaseResource) Replace(ctx context.Context, inv *operation.Invocation, pathCtx PathContext, name string, props map[string]interface{}, emit EmitFunc) error {
	body, err := b.transformRequest(props, pathCtx, resource.OperationUpdate)
	if err != nil {
		return err
	}

	url := NewURLBuilder(b.APIConfig, pathCtx).ResourceURL(name)
	response, err := b.Client.Do(ctx, ovhtransport.RequestOptions{
		Method: http.MethodPut,
		Path:   url,
		Body:   filterNilValues(body),
	})
	if err != nil {
		return fmt.Errorf("update %s %s: %w", b.ResourceConfig.ResourceType, name, err)
	}

	return b.track(ctx, inv, pathCtx, response.Body, name, resource.OperationUpdate, emit)
}

// Remove deletes a resource. A resource that is already gone is not an error.
func (b *BaseResource) Remove(ctx context.Context, inv *operation.Invocation, pathCtx PathContext, name string) error {
	url := NewURLBuilder(b.APIConfig, pathCtx).ResourceURL(name)
	response, err := b.Client.Do(ctx, ovhtransport.RequestOptions{
		Method: http.MethodDelete,
		Path:   url,
	})
	if err != nil {
		if ovhtransport.IsNotFound(err) {
			b.log().Debug("resource already deleted",
				zap.String("type", b.ResourceConfig.ResourceType),
				zap.String("name", name))
			return nil
		}
		return fmt.Errorf("delete %s %s: %w", b.ResourceConfig.ResourceType, name, err)
	}

	return b.track(ctx, inv, pathCtx, response.Body, name, resource.OperationDelete, nil)
}

// Get fetches a resource and returns its transformed properties.
func (b *BaseResource) Get(ctx context.Context, pathCtx PathContext, name string) (map[string]interface{}, error) {
	url := NewURLBuilder(b.APIConfig, pathCtx).ResourceURL(name)
	response, err := b.Client.Do(ctx, ovhtransport.RequestOptions{
		Method: http.MethodGet,
		Path:   url,
	})
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", b.ResourceConfig.ResourceType, name, err)
	}
	return b.transformResponse(response.Body, pathCtx, resource.OperationRead), nil
}

// ListNames returns the identifiers of every resource in the collection.
func (b *BaseResource) ListNames(ctx context.Context, pathCtx PathContext) ([]string, error) {
	url := NewURLBuilder(b.APIConfig, pathCtx).CollectionURL()
	response, err := b.Client.Do(ctx, ovhtransport.RequestOptions{
		Method: http.MethodGet,
		Path:   url,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.ResourceConfig.ResourceType, err)
	}

	// OVH API returns either array of IDs or array of objects for list operations
	names := make([]string, 0, len(response.BodyArray))
	for _, item := range response.BodyArray {
		switch v := item.(type) {
		case string:
			names = append(names, v)
		case map[string]interface{}:
			if id, ok := v["id"].(string); ok && id != "" {
				names = append(names, id)
			} else if n, ok := v["name"].(string); ok && n != "" {
				names = append(names, n)
			}
		default:
			names = append(names, fmt.Sprintf("%v", item))
		}
	}
	return names, nil
}

// track registers the operation carried by body on inv, or emits body
// directly when the provider answered synchronously.
func (b *BaseResource) track(ctx context.Context, inv *operation.Invocation, pathCtx PathContext, body map[string]interface{}, name string, op resource.Operation, emit EmitFunc) error {
	snap, err := b.decodeOperation(body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, b.ResourceConfig.ResourceType, err)
	}

	if snap == nil {
		if emit == nil {
			return nil
		}
		return emit(ctx, b.transformResponse(body, withName(pathCtx, body, name), op))
	}

	scope, err := HandleScope(b.ResourceConfig.Scope, pathCtx)
	if err != nil {
		return err
	}

	var onSuccess operation.SuccessFunc
	if emit != nil {
		onSuccess = func(ctx context.Context, final *operation.Snapshot) error {
			id := final.ResourceID
			if id == "" {
				id = name
			}
			if id == "" {
				return fmt.Errorf("operation %s did not report a resource", final.ID)
			}
			props, err := b.Get(ctx, pathCtx, id)
			if err != nil {
				return err
			}
			return emit(ctx, props)
		}
	}

	b.log().Debug("tracking operation",
		zap.String("operation", snap.ID),
		zap.String("scope", scope.String()),
		zap.String("type", b.ResourceConfig.ResourceType),
		zap.String("action", string(op)))
	inv.Add(scope, snap, onSuccess)
	return nil
}

func (b *BaseResource) decodeOperation(body map[string]interface{}) (*operation.Snapshot, error) {
	if b.OperationConfig.Synchronous || len(body) == 0 {
		return nil, nil
	}
	if b.OperationConfig.OperationDecoder != nil {
		return b.OperationConfig.OperationDecoder(body)
	}
	if !ovhtransport.IsOperation(body) {
		return nil, nil
	}
	return ovhtransport.DecodeOperation(body)
}

func (b *BaseResource) transformRequest(props map[string]interface{}, pathCtx PathContext, op resource.Operation) (map[string]interface{}, error) {
	if b.RequestTransformer == nil {
		return props, nil
	}
	body, err := b.RequestTransformer.Transform(props, b.buildTransformContext(pathCtx, op))
	if err != nil {
		return nil, ovhtransport.NewError(ovhtransport.ErrorCodeInvalidInput,
			fmt.Sprintf("failed to transform request: %v", err), err)
	}
	return body, nil
}

func (b *BaseResource) transformResponse(body map[string]interface{}, pathCtx PathContext, op resource.Operation) map[string]interface{} {
	if b.ResponseTransformer == nil {
		return body
	}
	return b.ResponseTransformer.Transform(body, b.buildTransformContext(pathCtx, op))
}

func withName(pathCtx PathContext, body map[string]interface{}, name string) PathContext {
	if id, ok := body["id"].(string); ok && id != "" {
		pathCtx.ResourceName = id
	} else if name != "" {
		pathCtx.ResourceName = name
	}
	return pathCtx
}

// filterNilValues removes nil values from a map recursively.
// OVH API rejects null values for optional fields - they should be omitted entirely.
func filterNilValues(m map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for k, v := range m {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			filtered := filterNilValues(nested)
			if len(filtered) > 0 {
				result[k] = filtered
			}
			continue
		}
		if slice, ok := v.([]interface{}); ok {
			var filtered []interface{}
			for _, item := range slice {
				if item == nil {
					continue
				}
				if nested, ok := item.(map[string]interface{}); ok {
					filtered = append(filtered, filterNilValues(nested))
				} else {
					filtered = append(filtered, item)
				}
			}
			if len(filtered) > 0 {
				result[k] = filtered
			}
			continue
		}
		result[k] = v
	}
	return result
}
