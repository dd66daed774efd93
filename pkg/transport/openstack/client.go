// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"

	"github.com/platform-engineering-labs/ovh-compute/pkg/config"
)

// Client wraps gophercloud clients for OpenStack services
type Client struct {
	Provider      *gophercloud.ProviderClient
	ComputeClient *gophercloud.ServiceClient // Nova - instances
	NetworkClient *gophercloud.ServiceClient // Neutron - routers, security groups
	VolumeClient  *gophercloud.ServiceClient // Cinder - volumes
	ImageClient   *gophercloud.ServiceClient // Glance - images
}

// NewClient authenticates against Keystone and builds the regional service
// clients.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if err := cfg.ValidateOpenStack(); err != nil {
		return nil, err
	}

	provider, err := openstack.AuthenticatedClient(ctx, cfg.ToAuthOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	endpointOpts := gophercloud.EndpointOpts{
		Region: cfg.Region,
	}

	computeClient, err := openstack.NewComputeV2(provider, endpointOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}

	networkClient, err := openstack.NewNetworkV2(provider, endpointOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create network client: %w", err)
	}

	volumeClient, err := openstack.NewBlockStorageV3(provider, endpointOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create volume client: %w", err)
	}

	imageClient, err := openstack.NewImageV2(provider, endpointOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create image client: %w", err)
	}

	return &Client{
		Provider:      provider,
		ComputeClient: computeClient,
		NetworkClient: networkClient,
		VolumeClient:  volumeClient,
		ImageClient:   imageClient,
	}, nil
}
