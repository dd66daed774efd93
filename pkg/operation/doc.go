// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package operation tracks asynchronous provider operations started by a
// single command invocation and waits for them to finish.
//
// # Flow
//
// A command issues mutating provider calls. Each call returns an operation,
// which the command registers on its Invocation together with an optional
// success callback:
//
//	inv := operation.NewInvocation(coordinator)
//	for _, name := range names {
//	    op, err := api.CreateDisk(ctx, name)
//	    if err != nil {
//	        return err
//	    }
//	    inv.AddZoneOperation(project, zone, op, func(ctx context.Context, final *operation.Snapshot) error {
//	        return emitDisk(ctx, final.ResourceID)
//	    })
//	}
//	return inv.Wait(ctx)
//
// Wait drains the registered handles sequentially: zonal first, then
// regional, then global, each partition in registration order. Every handle
// is polled every 150ms until its status is DONE. Callbacks run in-line right
// after their own operation succeeds. Failures are collected and reported
// once at the end: nil when everything succeeded, the single error when one
// operation failed, an *AggregateError when several did.
//
// # Cancellation
//
// Cancelling the context stops the wait loop at its next check. The handle
// being waited on, and every handle after it, is left unresolved: it is
// reported neither as a success nor as a failure.
package operation
