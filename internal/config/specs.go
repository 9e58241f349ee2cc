// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the environment configuration needed for the app to start.
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`

	Port    int    `envconfig:"port" default:"8080"`
	BaseURL string `envconfig:"base_url" default:"http://localhost:8080"`

	// Directory service endpoints and the confidential client credential used
	// for server-side operations.
	AuthURL      string `envconfig:"directory_auth_url" default:"https://auth.example.org"`
	GroupsURL    string `envconfig:"directory_groups_url" default:"https://groups.api.example.org"`
	ClientID     string `envconfig:"directory_client_id" required:"true"`
	ClientSecret string `envconfig:"directory_client_secret" required:"true"`

	// GroupNamePrefix, when set, prefixes every created group's display name
	// as "[PREFIX] name".
	GroupNamePrefix string `envconfig:"group_name_prefix"`

	// Client-side throttle for the rate-limited directory API.
	DirectoryRateLimit float64 `envconfig:"directory_rate_limit" default:"10"`
	DirectoryRateBurst int     `envconfig:"directory_rate_burst" default:"10"`

	// Session token lifecycle: how often held tokens are re-validated, and
	// how far ahead of the absolute expiry a session is treated as expired.
	TokenCheckGrace   time.Duration `envconfig:"token_check_grace" default:"10m"`
	TokenExpiresEarly time.Duration `envconfig:"token_expires_early" default:"10m"`
}
