// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/canonical/group-service/internal/config"
	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/pkg/groups"
	"github.com/canonical/group-service/pkg/identity"
	"github.com/canonical/group-service/pkg/scopes"
	"github.com/canonical/group-service/pkg/session"
)

// loadSpecs sources configuration from a local .env file (when present)
// layered under the process environment.
func loadSpecs() (*config.EnvSpec, error) {
	_ = godotenv.Load()

	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("issues with environment sourcing: %s", err)
	}
	return specs, nil
}

// clients bundles everything built on top of one directory credential.
type clients struct {
	specs    *config.EnvSpec
	clientID uuid.UUID

	directory *directory.Client
	resolver  *identity.Resolver
	groups    *groups.Service
	scopes    *scopes.Service
	guard     *session.Guard
}

func newClients(
	specs *config.EnvSpec,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*clients, error) {
	clientID, err := uuid.Parse(specs.ClientID)
	if err != nil {
		return nil, fmt.Errorf("directory client ID is not a UUID: %v", err)
	}

	dirClient := directory.NewClient(&directory.Config{
		AuthURL:      specs.AuthURL,
		GroupsURL:    specs.GroupsURL,
		ClientID:     specs.ClientID,
		ClientSecret: specs.ClientSecret,
		RateLimit:    specs.DirectoryRateLimit,
		RateBurst:    specs.DirectoryRateBurst,
	}, tracer, monitor, logger)

	resolver := identity.NewResolver(dirClient, tracer, monitor, logger)

	return &clients{
		specs:     specs,
		clientID:  clientID,
		directory: dirClient,
		resolver:  resolver,
		groups:    groups.NewService(dirClient, resolver, specs.GroupNamePrefix, tracer, monitor, logger),
		scopes:    scopes.NewService(dirClient, clientID, tracer, monitor, logger),
		guard:     session.NewGuard(dirClient, specs.TokenCheckGrace, specs.TokenExpiresEarly, tracer, monitor, logger),
	}, nil
}

// newCLIClients is the bootstrap shared by the one-shot commands: quiet
// ambient stack, no tracing export.
func newCLIClients() (*clients, logging.LoggerInterface, error) {
	specs, err := loadSpecs()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewLogger(specs.LogLevel)

	c, err := newClients(specs, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logger)
	if err != nil {
		return nil, nil, err
	}
	return c, logger, nil
}
