// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package prov

import (
	"context"

	"github.com/platform-engineering-labs/formae/pkg/plugin/resource"
	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
	"go.uber.org/zap"
)

// Provisioner interface for resource operations
type Provisioner interface {
	Create(ctx context.Context, request *resource.CreateRequest) (*resource.CreateResult, error)
	Read(ctx context.Context, request *resource.ReadRequest) (*resource.ReadResult, error)
	Update(ctx context.Context, request *resource.UpdateRequest) (*resource.UpdateResult, error)
	Delete(ctx context.Context, request *resource.DeleteRequest) (*resource.DeleteResult, error)
	List(ctx context.Context, request *resource.ListRequest) (*resource.ListResult, error)
	Status(ctx context.Context, request *resource.StatusRequest) (*resource.StatusResult, error)
}

// Deps are the shared collaborators handed to every provisioner.
type Deps struct {
	Client      ovhtransport.Doer
	Coordinator *operation.Coordinator
	Logger      *zap.Logger
}
