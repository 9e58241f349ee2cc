// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const componentAuth = "auth"

type identitiesResponse struct {
	Identities []Identity `json:"identities"`
}

// GetIdentities looks up identity records for a set of usernames. Usernames
// with no identity are absent from the result unless provision is set, in
// which case the directory creates an identity record for each unknown
// username and returns it.
func (c *Client) GetIdentities(ctx context.Context, usernames []string, provision bool) ([]Identity, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.GetIdentities")
	defer span.End()

	if len(usernames) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("usernames", strings.Join(usernames, ","))
	if provision {
		params.Set("provision", "true")
	}

	var resp identitiesResponse
	endpoint := fmt.Sprintf("%s/v2/api/identities?%s", c.authBase, params.Encode())
	if err := c.do(ctx, componentAuth, http.MethodGet, endpoint, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Identities, nil
}
