// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package commands

import (
	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/ovh-compute/cmd/ovhcompute/handlers"
	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/cloud/network"
)

// Route returns the command group for global routes.
func Route(opts *handlers.GlobalOptions) *cobra.Command {
	create := createCmd(opts, network.RouteResourceType, "Create routes", bound(
		propFlag{"network", "network"},
		propFlag{"destination", "destRange"},
		propFlag{"next-hop-ip", "nextHopIp"},
		propFlag{"next-hop-instance", "nextHopInstance"},
		propFlag{"priority", "priority"},
	))
	create.Flags().String("network", "", "Network ID")
	create.Flags().String("destination", "", "Destination range in CIDR notation")
	create.Flags().String("next-hop-ip", "", "Next hop IP address")
	create.Flags().String("next-hop-instance", "", "Next hop instance ID")
	create.Flags().Int("priority", 1000, "Route priority")
	_ = create.MarkFlagRequired("destination")
	create.MarkFlagsMutuallyExclusive("next-hop-ip", "next-hop-instance")

	return group("route", "Manage routes",
		create,
		deleteCmd(opts, network.RouteResourceType, "Delete routes"),
		listCmd(opts, handlers.KindRoutes, "List routes"),
	)
}

// BackendService returns the command group for regional backend services.
func BackendService(opts *handlers.GlobalOptions) *cobra.Command {
	create := createCmd(opts, network.BackendServiceResourceType, "Create backend services", bound(
		propFlag{"protocol", "protocol"},
		propFlag{"port", "port"},
	))
	create.Flags().String("protocol", "tcp", "Protocol: tcp, udp, http or https")
	create.Flags().Int("port", 0, "Backend port")

	return group("backend-service", "Manage backend services",
		create,
		deleteCmd(opts, network.BackendServiceResourceType, "Delete backend services"),
	)
}

// Firewall returns the command group for global firewall rules.
//
// Flags:
//
//	create --allow: Allowed traffic as protocol[:port,...], repeatable
//	create --source-ranges: Source CIDRs
//	create --direction: ingress or egress
func Firewall(opts *handlers.GlobalOptions) *cobra.Command {
	create := createCmd(opts, network.FirewallResourceType, "Create firewall rules", firewallProps)
	create.Flags().String("network", "", "Network ID")
	create.Flags().String("direction", "ingress", "Traffic direction: ingress or egress")
	create.Flags().StringSlice("source-ranges", nil, "Source ranges in CIDR notation")
	create.Flags().StringArray("allow", nil, "Allowed traffic as protocol[:port,...] (e.g. tcp:22,80)")

	return group("firewall", "Manage firewall rules",
		create,
		deleteCmd(opts, network.FirewallResourceType, "Delete firewall rules"),
		listCmd(opts, handlers.KindFirewalls, "List firewall rules"),
	)
}

var firewallBindings = bound(
	propFlag{"network", "network"},
	propFlag{"direction", "direction"},
	propFlag{"source-ranges", "sourceRanges"},
)

// firewallProps adds the parsed --allow rules to the bound flags.
func firewallProps(cmd *cobra.Command) (map[string]interface{}, error) {
	props, err := firewallBindings(cmd)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("allow") {
		return props, nil
	}
	rules, err := cmd.Flags().GetStringArray("allow")
	if err != nil {
		return nil, err
	}
	allowed, err := parseAllowed(rules)
	if err != nil {
		return nil, err
	}
	props["allowed"] = allowed
	return props, nil
}
