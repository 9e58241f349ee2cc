// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package groups

import (
	"context"

	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/internal/types"
)

type GroupAPIInterface interface {
	CreateGroup(ctx context.Context, req directory.GroupCreate) (uuid.UUID, error)
	SetGroupPolicies(ctx context.Context, groupID uuid.UUID, policies directory.GroupPolicies) error
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
	GetGroup(ctx context.Context, groupID uuid.UUID, includeMemberships bool) (*directory.Group, error)
	AddGroupMembers(ctx context.Context, groupID uuid.UUID, role types.Role, identityIDs []uuid.UUID) (*directory.BatchResult, error)
	RemoveGroupMembers(ctx context.Context, groupID uuid.UUID, identityIDs []uuid.UUID) (*directory.BatchResult, error)
}

type ResolverInterface interface {
	Seed(names ...string)
	Resolve(ctx context.Context, name string) (uuid.UUID, error)
	ResolveAll(ctx context.Context, names []string) (map[string]uuid.UUID, []string, error)
	Provision(ctx context.Context, names []string) (map[string]uuid.UUID, error)
}
