// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package scopes owns the auth scopes this service requires from its users.
// Accepting any directory credential would let an attacker replay a token
// harvested elsewhere, so the service registers its own scopes under its
// client and requires access tokens to carry them. Scopes can only be
// registered through the auth API, never through a console, which is why the
// registration path exists at all.
package scopes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
)

// scopeURIBase is the prefix the auth service uses for client-owned scope
// strings.
const scopeURIBase = "https://auth.example.com/scopes"

// DependentScope names another scope, by URI, that one of our scopes pulls
// in. URIs are resolved to scope IDs at registration time.
type DependentScope struct {
	URI                  string
	Optional             bool
	RequiresRefreshToken bool
}

// ScopeInfo describes one scope this service registers under its client.
type ScopeInfo struct {
	Name               string
	Description        string
	Advertised         bool
	AllowsRefreshToken bool
	DependentScopes    []DependentScope
}

// Registry is the full set of scopes the service uses, keyed by scope
// suffix. The suffix combines with the owning client ID to form the scope
// URI.
var Registry = map[string]ScopeInfo{
	"manage_linked_groups": {
		Name:               "Linked directory groups",
		Description:        "Create and manage directory groups linked to institutional workgroups",
		Advertised:         false,
		AllowsRefreshToken: true,
		DependentScopes: []DependentScope{
			{URI: directory.GroupsAllScope},
		},
	},
}

// URIForScope builds a scope URI from the owning client ID and a scope
// suffix. It does not check that the scope exists.
func URIForScope(clientID uuid.UUID, suffix string) string {
	return fmt.Sprintf("%s/%s/%s", scopeURIBase, clientID, suffix)
}

// AsList returns the URIs of every registered scope, sorted. This is the set
// a user needs to use the whole service, whether or not the scopes have been
// registered yet.
func AsList(clientID uuid.UUID) []string {
	uris := make([]string, 0, len(Registry))
	for suffix := range Registry {
		uris = append(uris, URIForScope(clientID, suffix))
	}
	sort.Strings(uris)
	return uris
}

// AsString returns the registered scope URIs joined by delimiter.
func AsString(clientID uuid.UUID, delimiter string) string {
	return strings.Join(AsList(clientID), delimiter)
}

// Service registers the scope set against the auth service.
type Service struct {
	api      ScopeAPIInterface
	clientID uuid.UUID

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	api ScopeAPIInterface,
	clientID uuid.UUID,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.api = api
	s.clientID = clientID

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

// Has reports whether a scope with the given URI is already registered.
func (s *Service) Has(ctx context.Context, uri string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "scopes.Service.Has")
	defer span.End()

	_, err := s.api.GetScopeByURI(ctx, uri)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureAll registers every scope in the registry that does not exist yet
// and returns the URIs it created. Already-registered scopes are skipped, so
// repeat calls are no-ops.
func (s *Service) EnsureAll(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "scopes.Service.EnsureAll")
	defer span.End()

	suffixes := make([]string, 0, len(Registry))
	for suffix := range Registry {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	created := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		info := Registry[suffix]
		uri := URIForScope(s.clientID, suffix)

		exists, err := s.Has(ctx, uri)
		if err != nil {
			return created, err
		}
		if exists {
			s.logger.Debugf("scope %s already registered, skipping", uri)
			continue
		}

		req := directory.ScopeCreate{
			ScopeSuffix:        suffix,
			Name:               info.Name,
			Description:        info.Description,
			Advertised:         info.Advertised,
			AllowsRefreshToken: info.AllowsRefreshToken,
			DependentScopes:    make([]directory.DependentScope, 0, len(info.DependentScopes)),
		}

		// Dependent scopes are declared by URI but registered by ID.
		for _, dep := range info.DependentScopes {
			depScope, err := s.api.GetScopeByURI(ctx, dep.URI)
			if err != nil {
				return created, err
			}
			req.DependentScopes = append(req.DependentScopes, directory.DependentScope{
				Scope:                depScope.ID.String(),
				Optional:             dep.Optional,
				RequiresRefreshToken: dep.RequiresRefreshToken,
			})
		}

		if _, err := s.api.CreateScope(ctx, req); err != nil {
			return created, err
		}
		s.logger.Infof("registered scope %s", uri)
		created = append(created, uri)
	}

	return created, nil
}
