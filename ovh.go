// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/platform-engineering-labs/formae/pkg/plugin"
	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/config"
	"github.com/platform-engineering-labs/ovh-compute/pkg/logging"
	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/prov"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/registry"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"

	// Import resources to trigger init() registration
	_ "github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud/compute"
	_ "github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud/network"
)

// Plugin implements the Formae ResourcePlugin interface.
// The SDK automatically provides identity methods (Name, Version, Namespace)
// and schema methods (SupportedResources, SchemaForResourceType) by reading
// formae-plugin.pkl and schema/pkl/ at startup.
type Plugin struct {
	// newDeps builds the collaborators of one request. Nil uses the real
	// OVH transport.
	newDeps func(cfg *config.Config) (prov.Deps, error)
}

// Compile-time check: Plugin must satisfy ResourcePlugin interface.
var _ plugin.ResourcePlugin = &Plugin{}

// RateLimit returns the rate limit configuration for this plugin
func (p *Plugin) RateLimit() plugin.RateLimitConfig {
	return plugin.RateLimitConfig{
		Scope:                            plugin.RateLimitScopeNamespace,
		MaxRequestsPerSecondForNamespace: 10, // each operation poll is a request too
	}
}

// DiscoveryFilters returns declarative filters for discovery.
func (p *Plugin) DiscoveryFilters() []plugin.MatchFilter {
	return nil
}

// LabelConfig returns the label extraction configuration for discovered resources.
func (p *Plugin) LabelConfig() plugin.LabelConfig {
	return plugin.LabelConfig{
		DefaultQuery: "$.name",
		ResourceOverrides: map[string]string{
			// Routes are identified by their destination
			"OVH::Network::Route": "$.destination",
		},
	}
}

func (p *Plugin) Create(ctx context.Context, request *resource.CreateRequest) (*resource.CreateResult, error) {
	provisioner, err := p.provisioner(request.TargetConfig, request.ResourceType)
	if err != nil {
		return nil, err
	}
	return provisioner.Create(ctx, request)
}

func (p *Plugin) Read(ctx context.Context, request *resource.ReadRequest) (*resource.ReadResult, error) {
	provisioner, err := p.provisioner(request.TargetConfig, request.ResourceType)
	if err != nil {
		return nil, err
	}
	return provisioner.Read(ctx, request)
}

func (p *Plugin) Update(ctx context.Context, request *resource.UpdateRequest) (*resource.UpdateResult, error) {
	provisioner, err := p.provisioner(request.TargetConfig, request.ResourceType)
	if err != nil {
		return nil, err
	}
	return provisioner.Update(ctx, request)
}

func (p *Plugin) Delete(ctx context.Context, request *resource.DeleteRequest) (*resource.DeleteResult, error) {
	provisioner, err := p.provisioner(request.TargetConfig, request.ResourceType)
	if err != nil {
		return nil, err
	}
	return provisioner.Delete(ctx, request)
}

func (p *Plugin) Status(ctx context.Context, request *resource.StatusRequest) (*resource.StatusResult, error) {
	provisioner, err := p.provisioner(request.TargetConfig, request.ResourceType)
	if err != nil {
		return nil, err
	}
	return provisioner.Status(ctx, request)
}

func (p *Plugin) List(ctx context.Context, request *resource.ListRequest) (*resource.ListResult, error) {
	provisioner, err := p.provisioner(request.TargetConfig, request.ResourceType)
	if err != nil {
		return nil, err
	}
	return provisioner.List(ctx, request)
}

func (p *Plugin) provisioner(targetConfig json.RawMessage, resourceType string) (prov.Provisioner, error) {
	// Check if resource type is supported
	if !registry.HasProvisioner(resourceType) {
		return nil, unsupported(resourceType)
	}

	cfg, err := config.FromTargetConfig(targetConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to extract config from target: %w", err)
	}

	build := p.newDeps
	if build == nil {
		build = newOVHDeps
	}
	deps, err := build(cfg)
	if err != nil {
		return nil, err
	}

	provisioner, ok := registry.Get(resourceType, deps)
	if !ok {
		return nil, unsupported(resourceType)
	}
	return provisioner, nil
}

func unsupported(resourceType string) error {
	return fmt.Errorf("unsupported resource type: %s (supported: %s)",
		resourceType, strings.Join(registry.ResourceTypes(), ", "))
}

// newOVHDeps wires the OVH client, a poller over its operation endpoints
// and a coordinator that logs warnings.
func newOVHDeps(cfg *config.Config) (prov.Deps, error) {
	logger, err := logging.NewLogger(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return prov.Deps{}, err
	}

	client, err := ovhtransport.NewClient(cfg.TransportConfig(), ovhtransport.WithLogger(logger))
	if err != nil {
		return prov.Deps{}, fmt.Errorf("failed to create OVH client: %w", err)
	}

	poller := operation.NewPoller(ovhtransport.NewOperationClient(client),
		operation.WithNotifier(operation.LogNotifier(logger)),
		operation.WithLogger(logger))

	return prov.Deps{
		Client:      client,
		Coordinator: operation.NewCoordinator(poller, operation.WithCoordinatorLogger(logger)),
		Logger:      logger,
	}, nil
}
