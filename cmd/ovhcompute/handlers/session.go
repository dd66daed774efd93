// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package handlers runs the ovhcompute commands.
//
// Mutating handlers share one shape: every name issues one provider call,
// each call registers its operation on a single invocation, and the handler
// ends by waiting for that invocation. Results are written to stdout as JSON
// lines by the success callbacks; warnings go to stderr as they are seen.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/platform-engineering-labs/ovh-compute/pkg/config"
	"github.com/platform-engineering-labs/ovh-compute/pkg/inventory"
	"github.com/platform-engineering-labs/ovh-compute/pkg/logging"
	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/base"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud/compute"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud/network"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/prov"
	"github.com/platform-engineering-labs/ovh-compute/pkg/transport/openstack"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
)

// GlobalOptions are the root flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Project    string
	Region     string
	Zone       string
	LogLevel   string
}

// Lister is the read side used by list commands.
type Lister interface {
	Instances(ctx context.Context) ([]inventory.Row, error)
	Disks(ctx context.Context, zone string) ([]inventory.Row, error)
	Images(ctx context.Context) ([]inventory.Row, error)
	Routes(ctx context.Context) ([]inventory.Row, error)
	Firewalls(ctx context.Context) ([]inventory.Row, error)
}

var _ Lister = (*inventory.Inventory)(nil)

// Factory functions and streams - can be replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// newDeps builds the OVH transport, poller and coordinator.
	newDeps = func(cfg *config.Config, warnings io.Writer) (prov.Deps, error) {
		logger, err := logging.NewLogger(cfg.Log.Env, cfg.Log.Level)
		if err != nil {
			return prov.Deps{}, err
		}
		client, err := ovhtransport.NewClient(cfg.TransportConfig(), ovhtransport.WithLogger(logger))
		if err != nil {
			return prov.Deps{}, fmt.Errorf("failed to create OVH client: %w", err)
		}
		poller := operation.NewPoller(ovhtransport.NewOperationClient(client),
			operation.WithNotifier(operation.WriterNotifier(warnings)),
			operation.WithLogger(logger))
		return prov.Deps{
			Client:      client,
			Coordinator: operation.NewCoordinator(poller, operation.WithCoordinatorLogger(logger)),
			Logger:      logger,
		}, nil
	}

	// newLister builds the OpenStack inventory.
	newLister = func(ctx context.Context, cfg *config.Config) (Lister, error) {
		client, err := openstack.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return inventory.New(client), nil
	}
)

var registries = []*base.ResourceRegistry{compute.Registry, network.Registry}

// loadConfig reads the configuration file or environment, then applies
// the root flag overrides.
func loadConfig(opts GlobalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Project != "" {
		cfg.Project = opts.Project
	}
	if opts.Region != "" {
		cfg.Region = opts.Region
	}
	if opts.Zone != "" {
		cfg.Zone = opts.Zone
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if cfg.Region == "" && cfg.Zone != "" {
		cfg.Region = base.RegionOfZone(cfg.Zone)
	}
	return cfg, nil
}

// session is the state of one mutating command.
type session struct {
	cfg      *config.Config
	resource *base.BaseResource
	inv      *operation.Invocation
	out      *json.Encoder
}

func newSession(opts GlobalOptions, resourceType string) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps, err := newDeps(cfg, stderr)
	if err != nil {
		return nil, err
	}

	r, err := resourceFor(resourceType, deps)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:      cfg,
		resource: r,
		inv:      operation.NewInvocation(deps.Coordinator),
		out:      json.NewEncoder(stdout),
	}
	if _, err := base.HandleScope(r.ResourceConfig.Scope, s.pathContext()); err != nil {
		return nil, err
	}
	return s, nil
}

func resourceFor(resourceType string, deps prov.Deps) (*base.BaseResource, error) {
	for _, r := range registries {
		if _, ok := r.Definitions[resourceType]; ok {
			return r.Resource(resourceType, deps)
		}
	}
	return nil, fmt.Errorf("unsupported resource type: %s", resourceType)
}

func (s *session) pathContext() base.PathContext {
	ctx := base.PathContext{
		Project:      s.cfg.Project,
		ResourceType: s.resource.ResourceConfig.ResourceType,
	}
	switch s.resource.ResourceConfig.Scope {
	case base.ScopeZonal:
		ctx.Zone = s.cfg.Zone
		ctx.Region = base.RegionOfZone(s.cfg.Zone)
	case base.ScopeRegional:
		ctx.Region = s.cfg.Region
	}
	return ctx
}

// emit writes one resource as a JSON line.
func (s *session) emit(_ context.Context, props map[string]interface{}) error {
	return s.out.Encode(props)
}

func writeRows(rows []inventory.Row) error {
	enc := json.NewEncoder(stdout)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
