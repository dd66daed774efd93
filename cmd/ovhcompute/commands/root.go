// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package commands defines the CLI command structure and flag bindings.
//
// Every resource group follows the same layout: create, resize and delete
// take one or more names and wait for the operations they start; list reads
// the current state through OpenStack. Execution is delegated to the
// handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/ovh-compute/cmd/ovhcompute/handlers"
)

// Root returns the root command for the ovhcompute CLI.
func Root() *cobra.Command {
	opts := &handlers.GlobalOptions{}

	cmd := &cobra.Command{
		Use:           "ovhcompute",
		Short:         "Manage OVH Public Cloud compute resources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.Project, "project", "", "Public Cloud project ID (overrides OVH_CLOUD_PROJECT_ID)")
	cmd.PersistentFlags().StringVar(&opts.Region, "region", "", "Region (overrides OS_REGION_NAME)")
	cmd.PersistentFlags().StringVar(&opts.Zone, "zone", "", "Availability zone (overrides OVH_ZONE)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn or error")

	// Compute
	cmd.AddCommand(Disk(opts))
	cmd.AddCommand(Instance(opts))
	cmd.AddCommand(Template(opts))
	cmd.AddCommand(Image(opts))

	// Network
	cmd.AddCommand(Route(opts))
	cmd.AddCommand(BackendService(opts))
	cmd.AddCommand(Firewall(opts))

	return cmd
}
