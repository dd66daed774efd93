// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package commands

import (
	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/ovh-compute/cmd/ovhcompute/handlers"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud/compute"
)

// Disk returns the command group for zonal block storage disks.
//
// Flags:
//
//	create --size-gb: Disk size in GB
//	create --type: Disk type (e.g. classic, high-speed)
//	resize --size-gb: New disk size in GB
func Disk(opts *handlers.GlobalOptions) *cobra.Command {
	create := createCmd(opts, compute.DiskResourceType, "Create disks", bound(
		propFlag{"size-gb", "sizeGb"},
		propFlag{"type", "diskType"},
	))
	create.Flags().Int("size-gb", 0, "Disk size in GB")
	create.Flags().String("type", "", "Disk type (e.g. classic, high-speed)")

	resize := resizeCmd(opts, compute.DiskResourceType, "Resize disks", bound(
		propFlag{"size-gb", "sizeGb"},
	))
	resize.Flags().Int("size-gb", 0, "New disk size in GB")
	_ = resize.MarkFlagRequired("size-gb")

	return group("disk", "Manage disks",
		create,
		resize,
		deleteCmd(opts, compute.DiskResourceType, "Delete disks"),
		listCmd(opts, handlers.KindDisks, "List disks in the zone"),
	)
}

// Instance returns the command group for zonal instances.
func Instance(opts *handlers.GlobalOptions) *cobra.Command {
	create := createCmd(opts, compute.InstanceResourceType, "Create instances", bound(
		propFlag{"machine-type", "machineType"},
		propFlag{"image", "sourceImage"},
		propFlag{"ssh-key", "sshKeyId"},
	))
	create.Flags().String("machine-type", "", "Flavor ID or name")
	create.Flags().String("image", "", "Source image ID")
	create.Flags().String("ssh-key", "", "SSH key ID")

	resize := resizeCmd(opts, compute.InstanceResourceType, "Change the machine type of instances", bound(
		propFlag{"machine-type", "machineType"},
	))
	resize.Flags().String("machine-type", "", "New flavor ID or name")
	_ = resize.MarkFlagRequired("machine-type")

	return group("instance", "Manage instances",
		create,
		resize,
		deleteCmd(opts, compute.InstanceResourceType, "Delete instances"),
		listCmd(opts, handlers.KindInstances, "List instances"),
	)
}

// Template returns the command group for global instance templates.
func Template(opts *handlers.GlobalOptions) *cobra.Command {
	create := createCmd(opts, compute.InstanceTemplateResourceType, "Create instance templates", bound(
		propFlag{"machine-type", "machineType"},
		propFlag{"image", "sourceImage"},
	))
	create.Flags().String("machine-type", "", "Flavor ID or name")
	create.Flags().String("image", "", "Source image ID")

	return group("template", "Manage instance templates",
		create,
		deleteCmd(opts, compute.InstanceTemplateResourceType, "Delete instance templates"),
	)
}

// Image returns the command group for global images.
func Image(opts *handlers.GlobalOptions) *cobra.Command {
	create := createCmd(opts, compute.ImageResourceType, "Create images from disks", bound(
		propFlag{"source-disk", "sourceDisk"},
	))
	create.Flags().String("source-disk", "", "ID of the disk to capture")
	_ = create.MarkFlagRequired("source-disk")

	return group("image", "Manage images",
		create,
		deleteCmd(opts, compute.ImageResourceType, "Delete images"),
		listCmd(opts, handlers.KindImages, "List images"),
	)
}
