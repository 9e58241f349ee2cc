// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/types"
)

// GroupCreate is the request body for creating a group.
type GroupCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GroupPolicies is the fixed policy document applied to every group this
// service creates: private, members-only member visibility, no join requests.
// Only the high-assurance flag varies.
type GroupPolicies struct {
	IsHighAssurance        bool     `json:"is_high_assurance"`
	GroupVisibility        string   `json:"group_visibility"`
	GroupMembersVisibility string   `json:"group_members_visibility"`
	JoinRequests           bool     `json:"join_requests"`
	SignupFields           []string `json:"signup_fields"`
}

const (
	VisibilityPrivate = "private"
	VisibilityMembers = "members"
)

// DefaultGroupPolicies returns the policy set applied at group creation.
func DefaultGroupPolicies(highAssurance bool) GroupPolicies {
	return GroupPolicies{
		IsHighAssurance:        highAssurance,
		GroupVisibility:        VisibilityPrivate,
		GroupMembersVisibility: VisibilityMembers,
		JoinRequests:           false,
		SignupFields:           []string{},
	}
}

// Group is the directory's view of a group, optionally including the full
// membership list.
type Group struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Memberships []Membership `json:"memberships,omitempty"`
}

type Membership struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MemberError is a per-member failure inside a batch membership action.
type MemberError struct {
	IdentityID uuid.UUID `json:"identity_id"`
	Code       string    `json:"code"`
	Detail     string    `json:"detail"`
}

// Per-member error codes the directory emits when the requested state already
// holds. Callers treat these as success.
const (
	CodeAlreadyActive           = "ALREADY_ACTIVE"
	CodeRemoveNonActiveForbidden = "REMOVE_NON_ACTIVE_FORBIDDEN"
)

// BatchResult reports the outcome of one batch membership action.
type BatchResult struct {
	Added   int           `json:"added"`
	Removed int           `json:"removed"`
	Errors  []MemberError `json:"errors"`
}

type batchAction struct {
	Add    []batchMember `json:"add,omitempty"`
	Remove []uuid.UUID   `json:"remove,omitempty"`
}

type batchMember struct {
	IdentityID uuid.UUID  `json:"identity_id"`
	Role       types.Role `json:"role"`
}

// Identity is the directory's identity record.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Scope is a registered authorization scope owned by a client.
type Scope struct {
	ID          uuid.UUID `json:"id"`
	ScopeString string    `json:"scope_string"`
	Name        string    `json:"name"`
}

// ScopeCreate is the request body for registering a scope under a client.
type ScopeCreate struct {
	ScopeSuffix        string           `json:"scope_suffix"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Advertised         bool             `json:"advertised"`
	AllowsRefreshToken bool             `json:"allows_refresh_token"`
	DependentScopes    []DependentScope `json:"dependent_scopes"`
}

type DependentScope struct {
	Scope                string `json:"scope"`
	Optional             bool   `json:"optional"`
	RequiresRefreshToken bool   `json:"requires_refresh_token"`
}
