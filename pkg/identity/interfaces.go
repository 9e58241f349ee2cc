// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/canonical/group-service/internal/directory"
)

type IdentityAPIInterface interface {
	GetIdentities(ctx context.Context, usernames []string, provision bool) ([]directory.Identity, error)
}
