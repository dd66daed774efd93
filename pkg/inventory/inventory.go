// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package inventory lists existing compute resources through the OpenStack
// APIs of a region. Listing is read-only and never starts operations.
package inventory

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/volumes"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/servers"
	"github.com/gophercloud/gophercloud/v2/openstack/image/v2/images"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/layer3/routers"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/security/groups"

	"github.com/platform-engineering-labs/ovh-compute/pkg/transport/openstack"
)

// Row is one listed resource, ready for JSON output.
type Row map[string]interface{}

// Inventory lists resources with gophercloud service clients.
type Inventory struct {
	compute *gophercloud.ServiceClient
	network *gophercloud.ServiceClient
	volume  *gophercloud.ServiceClient
	image   *gophercloud.ServiceClient
}

// New builds an inventory over an authenticated client.
func New(c *openstack.Client) *Inventory {
	return &Inventory{
		compute: c.ComputeClient,
		network: c.NetworkClient,
		volume:  c.VolumeClient,
		image:   c.ImageClient,
	}
}

// NewWithClients builds an inventory from individual service clients.
// A nil client disables the listings that need it.
func NewWithClients(compute, network, volume, image *gophercloud.ServiceClient) *Inventory {
	return &Inventory{compute: compute, network: network, volume: volume, image: image}
}

func requireClient(c *gophercloud.ServiceClient, service string) error {
	if c == nil {
		return fmt.Errorf("%s service is not available", service)
	}
	return nil
}

// Instances lists servers.
func (i *Inventory) Instances(ctx context.Context) ([]Row, error) {
	if err := requireClient(i.compute, "compute"); err != nil {
		return nil, err
	}

	allPages, err := servers.List(i.compute, servers.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	serverList, err := servers.ExtractServers(allPages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract instances: %w", err)
	}

	rows := make([]Row, 0, len(serverList))
	for _, srv := range serverList {
		row := Row{
			"id":     srv.ID,
			"name":   srv.Name,
			"status": srv.Status,
		}
		if flavorID, ok := srv.Flavor["id"]; ok {
			row["flavorId"] = flavorID
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Disks lists volumes, restricted to zone when it is not empty.
func (i *Inventory) Disks(ctx context.Context, zone string) ([]Row, error) {
	if err := requireClient(i.volume, "block storage"); err != nil {
		return nil, err
	}

	allPages, err := volumes.List(i.volume, volumes.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list disks: %w", err)
	}
	vols, err := volumes.ExtractVolumes(allPages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract disks: %w", err)
	}

	rows := make([]Row, 0, len(vols))
	for _, vol := range vols {
		if zone != "" && vol.AvailabilityZone != "" && vol.AvailabilityZone != zone {
			continue
		}
		rows = append(rows, Row{
			"id":     vol.ID,
			"name":   vol.Name,
			"size":   vol.Size,
			"status": vol.Status,
			"zone":   vol.AvailabilityZone,
			"type":   vol.VolumeType,
		})
	}
	return rows, nil
}

// Images lists images visible to the project.
func (i *Inventory) Images(ctx context.Context) ([]Row, error) {
	if err := requireClient(i.image, "image"); err != nil {
		return nil, err
	}

	allPages, err := images.List(i.image, images.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	imageList, err := images.ExtractImages(allPages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	rows := make([]Row, 0, len(imageList))
	for _, img := range imageList {
		rows = append(rows, Row{
			"id":         img.ID,
			"name":       img.Name,
			"status":     string(img.Status),
			"visibility": string(img.Visibility),
		})
	}
	return rows, nil
}

// Routes lists routers with their static routes.
func (i *Inventory) Routes(ctx context.Context) ([]Row, error) {
	if err := requireClient(i.network, "network"); err != nil {
		return nil, err
	}

	allPages, err := routers.List(i.network, routers.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	routerList, err := routers.ExtractRouters(allPages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract routes: %w", err)
	}

	rows := make([]Row, 0, len(routerList))
	for _, r := range routerList {
		routes := make([]Row, 0, len(r.Routes))
		for _, route := range r.Routes {
			routes = append(routes, Row{"destination": route.DestinationCIDR, "nextHop": route.NextHop})
		}
		rows = append(rows, Row{
			"id":     r.ID,
			"name":   r.Name,
			"status": r.Status,
			"routes": routes,
		})
	}
	return rows, nil
}

// Firewalls lists security groups with their rule count.
func (i *Inventory) Firewalls(ctx context.Context) ([]Row, error) {
	if err := requireClient(i.network, "network"); err != nil {
		return nil, err
	}

	allPages, err := groups.List(i.network, groups.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list firewalls: %w", err)
	}
	sgs, err := groups.ExtractGroups(allPages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract firewalls: %w", err)
	}

	rows := make([]Row, 0, len(sgs))
	for _, sg := range sgs {
		rows = append(rows, Row{
			"id":          sg.ID,
			"name":        sg.Name,
			"description": sg.Description,
			"rules":       len(sg.Rules),
		})
	}
	return rows, nil
}
