// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

import "github.com/platform-engineering-labs/ovh-compute/pkg/operation"

// OperationConfig defines operation semantics
type OperationConfig struct {
	// Synchronous resources never return operations.
	Synchronous bool
	// OperationDecoder returns nil for bodies that are not operations.
	OperationDecoder  func(response map[string]interface{}) (*operation.Snapshot, error)
	NativeIDExtractor func(response map[string]interface{}, ctx PathContext) string
}
