// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import "context"

// TokenAPIInterface is the slice of the directory client the guard needs to
// validate and revoke bearer tokens.
type TokenAPIInterface interface {
	IntrospectToken(ctx context.Context, token string) (bool, error)
	RevokeToken(ctx context.Context, token string) error
}
