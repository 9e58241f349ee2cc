// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/types"
)

const componentGroups = "groups"

func (c *Client) CreateGroup(ctx context.Context, req GroupCreate) (uuid.UUID, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.CreateGroup")
	defer span.End()

	var group Group
	url := fmt.Sprintf("%s/v2/groups", c.groupsBase)
	if err := c.do(ctx, componentGroups, http.MethodPost, url, req, &group, http.StatusCreated); err != nil {
		return uuid.Nil, err
	}
	return group.ID, nil
}

func (c *Client) SetGroupPolicies(ctx context.Context, groupID uuid.UUID, policies GroupPolicies) error {
	ctx, span := c.tracer.Start(ctx, "directory.Client.SetGroupPolicies")
	defer span.End()

	url := fmt.Sprintf("%s/v2/groups/%s/policies", c.groupsBase, groupID)
	return c.do(ctx, componentGroups, http.MethodPut, url, policies, nil, http.StatusOK)
}

func (c *Client) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	ctx, span := c.tracer.Start(ctx, "directory.Client.DeleteGroup")
	defer span.End()

	url := fmt.Sprintf("%s/v2/groups/%s", c.groupsBase, groupID)
	return c.do(ctx, componentGroups, http.MethodDelete, url, nil, nil, http.StatusOK)
}

func (c *Client) GetGroup(ctx context.Context, groupID uuid.UUID, includeMemberships bool) (*Group, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.GetGroup")
	defer span.End()

	url := fmt.Sprintf("%s/v2/groups/%s", c.groupsBase, groupID)
	if includeMemberships {
		url += "?include=memberships"
	}

	var group Group
	if err := c.do(ctx, componentGroups, http.MethodGet, url, nil, &group, http.StatusOK); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *Client) AddGroupMembers(ctx context.Context, groupID uuid.UUID, role types.Role, identityIDs []uuid.UUID) (*BatchResult, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.AddGroupMembers")
	defer span.End()

	action := batchAction{Add: make([]batchMember, 0, len(identityIDs))}
	for _, id := range identityIDs {
		action.Add = append(action.Add, batchMember{IdentityID: id, Role: role})
	}

	var result BatchResult
	url := fmt.Sprintf("%s/v2/groups/%s/membership_actions", c.groupsBase, groupID)
	if err := c.do(ctx, componentGroups, http.MethodPost, url, action, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RemoveGroupMembers(ctx context.Context, groupID uuid.UUID, identityIDs []uuid.UUID) (*BatchResult, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.RemoveGroupMembers")
	defer span.End()

	action := batchAction{Remove: identityIDs}

	var result BatchResult
	url := fmt.Sprintf("%s/v2/groups/%s/membership_actions", c.groupsBase, groupID)
	if err := c.do(ctx, componentGroups, http.MethodPost, url, action, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}
