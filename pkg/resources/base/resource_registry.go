// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

import (
	"context"
	"fmt"
	"sort"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/prov"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/registry"
)

// ResourceDefinition defines a complete resource registration
type ResourceDefinition struct {
	ResourceType        string
	APIConfig           APIConfig
	OperationConfig     OperationConfig
	ResourceConfig      ResourceConfig
	NativeIDConfig      NativeIDConfig
	RequestTransformer  RequestTransformer
	ResponseTransformer ResponseTransformer
	Operations          []resource.Operation
}

// StandardOperations is the default set of operations
var StandardOperations = []resource.Operation{
	resource.OperationCreate,
	resource.OperationRead,
	resource.OperationUpdate,
	resource.OperationDelete,
	resource.OperationList,
	resource.OperationCheckStatus,
}

// ResourceRegistry manages resource definitions for an API
type ResourceRegistry struct {
	apiConfig       APIConfig
	operationConfig OperationConfig
	Definitions     map[string]*ResourceDefinition
}

// NewResourceRegistry creates a new resource registry
func NewResourceRegistry(apiConfig APIConfig, operationConfig OperationConfig) *ResourceRegistry {
	return &ResourceRegistry{
		apiConfig:       apiConfig,
		operationConfig: operationConfig,
		Definitions:     make(map[string]*ResourceDefinition),
	}
}

// Register registers a resource definition
func (r *ResourceRegistry) Register(def ResourceDefinition) error {
	if def.ResourceType == "" {
		return fmt.Errorf("resource type cannot be empty")
	}
	if def.ResourceConfig.ResourceType == "" {
		return fmt.Errorf("%s: API resource type cannot be empty", def.ResourceType)
	}

	// Use common configurations if not specified
	if def.APIConfig.PathBuilder == nil {
		def.APIConfig = r.apiConfig
	}
	if def.OperationConfig.OperationDecoder == nil && def.OperationConfig.NativeIDExtractor == nil && !def.OperationConfig.Synchronous {
		def.OperationConfig = r.operationConfig
	}
	if def.NativeIDConfig.Format == "" && def.NativeIDConfig.Parser == nil {
		def.NativeIDConfig = NativeIDForScope(def.ResourceConfig.Scope)
	}
	if def.Operations == nil {
		def.Operations = StandardOperations
	}

	r.Definitions[def.ResourceType] = &def

	resourceType := def.ResourceType
	registry.Register(resourceType, def.Operations, func(deps prov.Deps) prov.Provisioner {
		return r.CreateProvisioner(deps, resourceType)
	})

	return nil
}

// RegisterAll registers multiple definitions
func (r *ResourceRegistry) RegisterAll(definitions []ResourceDefinition) error {
	for _, def := range definitions {
		if err := r.Register(def); err != nil {
			return fmt.Errorf("failed to register %s: %w", def.ResourceType, err)
		}
	}
	return nil
}

// Resource returns a BaseResource for a registered type.
func (r *ResourceRegistry) Resource(resourceType string, deps prov.Deps) (*BaseResource, error) {
	def, ok := r.Definitions[resourceType]
	if !ok {
		return nil, fmt.Errorf("no definition found for resource type: %s", resourceType)
	}
	if deps.Client == nil {
		return nil, fmt.Errorf("%s: transport client is required", resourceType)
	}

	return &BaseResource{
		APIConfig:           def.APIConfig,
		OperationConfig:     def.OperationConfig,
		ResourceConfig:      def.ResourceConfig,
		NativeIDConfig:      def.NativeIDConfig,
		RequestTransformer:  def.RequestTransformer,
		ResponseTransformer: def.ResponseTransformer,
		Client:              deps.Client,
		Coordinator:         deps.Coordinator,
		Logger:              deps.Logger,
	}, nil
}

// Types returns the registered resource types, sorted.
func (r *ResourceRegistry) Types() []string {
	types := make([]string, 0, len(r.Definitions))
	for t := range r.Definitions {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// CreateProvisioner creates a provisioner for a resource type
func (r *ResourceRegistry) CreateProvisioner(deps prov.Deps, resourceType string) prov.Provisioner {
	baseResource, err := r.Resource(resourceType, deps)
	if err != nil {
		panic(err.Error())
	}
	return &UnifiedProvisioner{base: baseResource}
}

// UnifiedProvisioner wraps BaseResource to implement Provisioner
type UnifiedProvisioner struct {
	base *BaseResource
}

var _ prov.Provisioner = &UnifiedProvisioner{}

func (p *UnifiedProvisioner) Create(ctx context.Context, request *resource.CreateRequest) (*resource.CreateResult, error) {
	return p.base.Create(ctx, request)
}

func (p *UnifiedProvisioner) Read(ctx context.Context, request *resource.ReadRequest) (*resource.ReadResult, error) {
	return p.base.Read(ctx, request)
}

func (p *UnifiedProvisioner) Update(ctx context.Context, request *resource.UpdateRequest) (*resource.UpdateResult, error) {
	return p.base.Update(ctx, request)
}

func (p *UnifiedProvisioner) Delete(ctx context.Context, request *resource.DeleteRequest) (*resource.DeleteResult, error) {
	return p.base.Delete(ctx, request)
}

func (p *UnifiedProvisioner) List(ctx context.Context, request *resource.ListRequest) (*resource.ListResult, error) {
	return p.base.List(ctx, request)
}

func (p *UnifiedProvisioner) Status(ctx context.Context, request *resource.StatusRequest) (*resource.StatusResult, error) {
	return p.base.Status(ctx, request)
}
