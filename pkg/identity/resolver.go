// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/batch"
	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
)

// Resolver maps human-readable usernames onto stable identity UUIDs, caching
// results for the lifetime of the instance so repeated resolution of the same
// name never re-issues a remote lookup.
//
// A Resolver is bound to one directory client and therefore one credential
// set; it is not safe for concurrent use. Callers needing concurrency use one
// Resolver per worker.
type Resolver struct {
	api IdentityAPIInterface

	cache   map[string]uuid.UUID
	pending map[string]struct{}

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewResolver(api IdentityAPIInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Resolver {
	return &Resolver{
		api:     api,
		cache:   make(map[string]uuid.UUID),
		pending: make(map[string]struct{}),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Seed registers usernames for bulk lookup. Seeded names are fetched together
// on the next Resolve or ResolveAll call, so callers that know the full
// working set up front pay for one remote round per 100 names instead of one
// per name.
func (r *Resolver) Seed(names ...string) {
	for _, name := range names {
		if _, ok := r.cache[name]; !ok {
			r.pending[name] = struct{}{}
		}
	}
}

// Resolve maps one username to its identity UUID, together with anything
// seeded beforehand. Unknown names fail with NotFound.
func (r *Resolver) Resolve(ctx context.Context, name string) (uuid.UUID, error) {
	ctx, span := r.tracer.Start(ctx, "identity.Resolver.Resolve")
	defer span.End()

	r.Seed(name)
	if err := r.flush(ctx, false); err != nil {
		return uuid.Nil, err
	}

	id, ok := r.cache[name]
	if !ok {
		return uuid.Nil, errNotFound(name)
	}
	return id, nil
}

// ResolveAll resolves a set of usernames, returning the resolved mapping and
// the usernames the directory does not know. Iteration order of the input set
// is not guaranteed stable, so neither is the order unresolved names come
// back in.
func (r *Resolver) ResolveAll(ctx context.Context, names []string) (map[string]uuid.UUID, []string, error) {
	ctx, span := r.tracer.Start(ctx, "identity.Resolver.ResolveAll")
	defer span.End()

	r.Seed(names...)
	if err := r.flush(ctx, false); err != nil {
		return nil, nil, err
	}

	resolved := make(map[string]uuid.UUID, len(names))
	var unresolved []string
	for _, name := range names {
		if id, ok := r.cache[name]; ok {
			resolved[name] = id
		} else {
			unresolved = append(unresolved, name)
		}
	}
	return resolved, unresolved, nil
}

// Provision creates identity records for usernames the directory has never
// seen, in bulk batches, and returns the mapping of every requested name to
// its (possibly fresh) UUID. Names that already resolve come back with their
// existing identity.
func (r *Resolver) Provision(ctx context.Context, names []string) (map[string]uuid.UUID, error) {
	ctx, span := r.tracer.Start(ctx, "identity.Resolver.Provision")
	defer span.End()

	provisioned := make(map[string]uuid.UUID, len(names))
	for _, chunk := range batch.Split(names, batch.DefaultCapacity) {
		identities, err := r.api.GetIdentities(ctx, chunk, true)
		if err != nil {
			return nil, err
		}
		for _, identity := range identities {
			r.cache[identity.Username] = identity.ID
			delete(r.pending, identity.Username)
			provisioned[identity.Username] = identity.ID
		}
	}
	return provisioned, nil
}

func errNotFound(name string) error {
	return directory.NewNotFound("identity %s", name)
}

// flush fetches every pending username in bulk and fills the cache. The
// pending set is cleared even for names the directory does not know; those
// simply stay out of the cache.
func (r *Resolver) flush(ctx context.Context, provision bool) error {
	if len(r.pending) == 0 {
		return nil
	}

	names := make([]string, 0, len(r.pending))
	for name := range r.pending {
		names = append(names, name)
	}

	for _, chunk := range batch.Split(names, batch.DefaultCapacity) {
		identities, err := r.api.GetIdentities(ctx, chunk, provision)
		if err != nil {
			return err
		}
		for _, identity := range identities {
			r.cache[identity.Username] = identity.ID
		}
	}

	r.pending = make(map[string]struct{})
	return nil
}
