// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type introspectResponse struct {
	Active bool `json:"active"`
}

// IntrospectToken asks the auth service whether a bearer token is still
// active.
func (c *Client) IntrospectToken(ctx context.Context, token string) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.IntrospectToken")
	defer span.End()

	resp, err := c.postForm(ctx, c.authBase+"/v2/oauth2/token/introspect", url.Values{"token": {token}})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var remote remoteError
		_ = json.NewDecoder(resp.Body).Decode(&remote)
		return false, classify(resp.StatusCode, remote.Code, remote.Message)
	}

	var out introspectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, NewUnknownIO("", "decoding introspection response: "+err.Error())
	}
	return out.Active, nil
}

// RevokeToken revokes a bearer token. Revocation is fire-and-forget on the
// remote side; a 200 means the token is no longer usable, whether or not it
// was valid beforehand.
func (c *Client) RevokeToken(ctx context.Context, token string) error {
	ctx, span := c.tracer.Start(ctx, "directory.Client.RevokeToken")
	defer span.End()

	resp, err := c.postForm(ctx, c.authBase+"/v2/oauth2/token/revoke", url.Values{"token": {token}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var remote remoteError
		_ = json.NewDecoder(resp.Body).Decode(&remote)
		return classify(resp.StatusCode, remote.Code, remote.Message)
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, values url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewTransientIO("rate limiter interrupted: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, NewInvalidArgument("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		c.setAvailability(componentAuth, 0)
		return nil, NewTransientIO("network issue calling auth: %v", err)
	}

	c.setAvailability(componentAuth, 1)
	return resp, nil
}
