// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scopes

import (
	"context"

	"github.com/canonical/group-service/internal/directory"
)

// ScopeAPIInterface is the slice of the directory client used to look up and
// register auth scopes.
type ScopeAPIInterface interface {
	GetScopeByURI(ctx context.Context, uri string) (*directory.Scope, error)
	CreateScope(ctx context.Context, req directory.ScopeCreate) (*directory.Scope, error)
}
