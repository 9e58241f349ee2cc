// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type scopesResponse struct {
	Scopes []Scope `json:"scopes"`
}

// GetScopeByURI looks up a scope by its scope string. Absent scopes map to
// NotFound; more than one match for a single URI is remote data violating
// scope-string uniqueness.
func (c *Client) GetScopeByURI(ctx context.Context, uri string) (*Scope, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.GetScopeByURI")
	defer span.End()

	params := url.Values{}
	params.Set("scope_strings", uri)

	var resp scopesResponse
	endpoint := fmt.Sprintf("%s/v2/api/scopes?%s", c.authBase, params.Encode())
	if err := c.do(ctx, componentAuth, http.MethodGet, endpoint, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}

	switch len(resp.Scopes) {
	case 0:
		return nil, NewNotFound("scope %s", uri)
	case 1:
		return &resp.Scopes[0], nil
	default:
		return nil, NewInvalidState("scope URI %s matched %d scopes", uri, len(resp.Scopes))
	}
}

type scopeCreateRequest struct {
	Scope ScopeCreate `json:"scope"`
}

// CreateScope registers a new scope under this client. Idempotence is the
// caller's job: check GetScopeByURI first.
func (c *Client) CreateScope(ctx context.Context, req ScopeCreate) (*Scope, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.CreateScope")
	defer span.End()

	var resp scopesResponse
	endpoint := fmt.Sprintf("%s/v2/api/clients/%s/scopes", c.authBase, c.clientID)
	if err := c.do(ctx, componentAuth, http.MethodPost, endpoint, scopeCreateRequest{Scope: req}, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	if len(resp.Scopes) == 0 {
		return nil, NewUnknownIO("", "scope creation returned no scopes")
	}
	return &resp.Scopes[0], nil
}
