// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/types"
)

// GroupAPI is the group CRUD, policy and batched-membership capability of the
// directory service.
type GroupAPI interface {
	CreateGroup(ctx context.Context, req GroupCreate) (uuid.UUID, error)
	SetGroupPolicies(ctx context.Context, groupID uuid.UUID, policies GroupPolicies) error
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
	GetGroup(ctx context.Context, groupID uuid.UUID, includeMemberships bool) (*Group, error)
	AddGroupMembers(ctx context.Context, groupID uuid.UUID, role types.Role, identityIDs []uuid.UUID) (*BatchResult, error)
	RemoveGroupMembers(ctx context.Context, groupID uuid.UUID, identityIDs []uuid.UUID) (*BatchResult, error)
}

// IdentityAPI resolves usernames to identity records, optionally provisioning
// identities for usernames the directory has never seen.
type IdentityAPI interface {
	GetIdentities(ctx context.Context, usernames []string, provision bool) ([]Identity, error)
}

// TokenAPI validates and revokes bearer tokens.
type TokenAPI interface {
	IntrospectToken(ctx context.Context, token string) (bool, error)
	RevokeToken(ctx context.Context, token string) error
}

// ScopeAPI registers and looks up authorization scopes owned by this client.
type ScopeAPI interface {
	GetScopeByURI(ctx context.Context, uri string) (*Scope, error)
	CreateScope(ctx context.Context, req ScopeCreate) (*Scope, error)
}
