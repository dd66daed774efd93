// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package commands

import (
	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/ovh-compute/cmd/ovhcompute/handlers"
)

// propsFunc builds the request properties from the parsed flags.
type propsFunc func(cmd *cobra.Command) (map[string]interface{}, error)

func bound(bindings ...propFlag) propsFunc {
	return func(cmd *cobra.Command) (map[string]interface{}, error) {
		return collectProps(cmd, bindings)
	}
}

func group(use, short string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(subcommands...)
	return cmd
}

func createCmd(opts *handlers.GlobalOptions, resourceType, short string, props propsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := props(cmd)
			if err != nil {
				return err
			}
			return handlers.Create(cmd.Context(), *opts, resourceType, args, p)
		},
	}
}

func resizeCmd(opts *handlers.GlobalOptions, resourceType, short string, props propsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "resize NAME...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := props(cmd)
			if err != nil {
				return err
			}
			return handlers.Resize(cmd.Context(), *opts, resourceType, args, p)
		},
	}
}

func deleteCmd(opts *handlers.GlobalOptions, resourceType, short string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Delete(cmd.Context(), *opts, resourceType, args)
		},
	}
}

func listCmd(opts *handlers.GlobalOptions, kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.List(cmd.Context(), *opts, kind)
		},
	}
}
