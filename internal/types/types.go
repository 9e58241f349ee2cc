// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the level of access an identity holds within a group. Roles form a
// strict hierarchy: admins have the privileges of managers, and managers have
// the privileges of members. A given identity holds exactly one role per
// group.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a role string from the directory service onto a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleManager, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Group is a named, policy-governed collection of identities with role-based
// membership, owned by the remote directory service.
type Group struct {
	ID            uuid.UUID
	Name          string
	Description   string
	HighAssurance bool
}

// Identity is a resolvable account in the remote directory, keyed by a stable
// UUID, with a human-readable username in user@domain form.
type Identity struct {
	ID       uuid.UUID
	Username string
}

// Membership ties an identity username to its role within a group.
type Membership struct {
	GroupID  uuid.UUID
	Username string
	Role     Role
}

// MembersByRole holds the full membership of a group, partitioned into the
// three role buckets. The buckets are pairwise disjoint.
type MembersByRole struct {
	Members  map[string]struct{}
	Managers map[string]struct{}
	Admins   map[string]struct{}
}

func NewMembersByRole() *MembersByRole {
	return &MembersByRole{
		Members:  make(map[string]struct{}),
		Managers: make(map[string]struct{}),
		Admins:   make(map[string]struct{}),
	}
}

// Contains reports whether username is present in any role bucket. If the
// username appears in more than one bucket the partition invariant is broken
// and an error is returned.
func (m *MembersByRole) Contains(username string) (bool, error) {
	found := 0
	for _, bucket := range []map[string]struct{}{m.Members, m.Managers, m.Admins} {
		if _, ok := bucket[username]; ok {
			found++
		}
	}
	if found > 1 {
		return true, fmt.Errorf("%s found in multiple role buckets", username)
	}
	return found == 1, nil
}

// Len returns the total number of memberships across all role buckets.
func (m *MembersByRole) Len() int {
	return len(m.Members) + len(m.Managers) + len(m.Admins)
}

// All returns the union of the three role buckets.
func (m *MembersByRole) All() map[string]struct{} {
	all := make(map[string]struct{}, m.Len())
	for _, bucket := range []map[string]struct{}{m.Members, m.Managers, m.Admins} {
		for username := range bucket {
			all[username] = struct{}{}
		}
	}
	return all
}
