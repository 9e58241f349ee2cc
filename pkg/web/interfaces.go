// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"context"

	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/types"
	"github.com/canonical/group-service/pkg/groups"
	"github.com/canonical/group-service/pkg/session"
)

// FlowInterface is the login flow the handlers drive.
type FlowInterface interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*session.Session, error)
	LogoutURL(returnTo string) string
}

// GuardInterface validates and tears down credential bundles.
type GuardInterface interface {
	IsLoggedIn(ctx context.Context, s *session.Session) bool
	Logout(ctx context.Context, s *session.Session)
}

// GroupServiceInterface is the group lifecycle surface the API exposes.
type GroupServiceInterface interface {
	Create(ctx context.Context, params *groups.CreateParams) (uuid.UUID, error)
	Delete(ctx context.Context, groupID uuid.UUID) error
	GetMembers(ctx context.Context, groupID uuid.UUID) (*types.MembersByRole, error)
	AddMembers(ctx context.Context, groupID uuid.UUID, usernames []string, provision bool) error
	RemoveMembers(ctx context.Context, groupID uuid.UUID, usernames []string) error
}
