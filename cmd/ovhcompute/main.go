// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package main is the entry point for the ovhcompute CLI.
//
// ovhcompute creates, resizes, deletes and lists OVH Public Cloud compute
// and network resources. Mutating commands start one provider operation per
// name and wait for all of them before exiting. SIGINT or SIGTERM stops the
// wait; operations already started keep running on the provider side.
//
// For detailed usage information, run:
//
//	ovhcompute --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/platform-engineering-labs/ovh-compute/cmd/ovhcompute/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := commands.Root().ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if interrupted {
		fmt.Fprintln(os.Stderr, "interrupted: pending operations were not waited for")
		os.Exit(130)
	}
}
