// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package session tracks a logged-in principal's credential bundle and keeps
// it honest: tokens are re-validated against the auth service on a grace
// interval, and a bundle that expires, fails validation, or is explicitly
// logged out is revoked remotely and reset to sentinel values.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
)

// Sentinel values a logged-out bundle carries instead of real principal data.
const (
	SentinelUsername = "LOGGED_OUT@example.com"
	SentinelProvider = "LOGGED OUT"
)

// Default guard intervals.
const (
	DefaultCheckGrace   = 10 * time.Minute
	DefaultExpiresEarly = 10 * time.Minute
)

// Session is one principal's credential bundle: who they are, the bearer
// tokens issued for each sub-service, and when the bundle stops being
// trustworthy.
type Session struct {
	UserID       uuid.UUID
	Username     string
	ProviderID   uuid.UUID
	ProviderName string

	AuthToken    string
	GroupsToken  string
	AppToken     string
	RefreshToken string

	Expires     time.Time
	LastChecked time.Time
}

// NewLoggedOut returns a bundle already in the sentinel logged-out state.
func NewLoggedOut() *Session {
	s := &Session{}
	s.reset(time.Now())
	return s
}

// LoggedOut reports whether the bundle carries the sentinel identity.
func (s *Session) LoggedOut() bool {
	return s.UserID == uuid.Nil
}

// Tokens returns the distinct non-empty bearer tokens the bundle holds,
// refresh token included. Sub-services may share a token; each is revoked
// once.
func (s *Session) Tokens() []string {
	seen := make(map[string]struct{}, 4)
	tokens := make([]string, 0, 4)
	for _, token := range []string{s.AuthToken, s.GroupsToken, s.AppToken, s.RefreshToken} {
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

func (s *Session) reset(now time.Time) {
	s.UserID = uuid.Nil
	s.Username = SentinelUsername
	s.ProviderID = uuid.Nil
	s.ProviderName = SentinelProvider
	s.AuthToken = ""
	s.GroupsToken = ""
	s.AppToken = ""
	s.RefreshToken = ""
	s.Expires = now
	s.LastChecked = time.Time{}
}

// Guard decides whether a credential bundle is still usable and tears it
// down when it is not.
type Guard struct {
	api TokenAPIInterface

	checkGrace   time.Duration
	expiresEarly time.Duration
	now          func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewGuard(
	api TokenAPIInterface,
	checkGrace, expiresEarly time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Guard {
	g := new(Guard)

	g.api = api
	g.checkGrace = checkGrace
	g.expiresEarly = expiresEarly
	if g.checkGrace <= 0 {
		g.checkGrace = DefaultCheckGrace
	}
	if g.expiresEarly <= 0 {
		g.expiresEarly = DefaultExpiresEarly
	}
	g.now = time.Now

	g.tracer = tracer
	g.monitor = monitor
	g.logger = logger

	return g
}

// IsLoggedIn reports whether the bundle is still usable. A bundle past its
// expiry, or within the early-expiry margin of it, is treated as already
// expired and logged out. Otherwise tokens are re-validated remotely once per
// grace interval; any invalid token logs the bundle out, since there is no
// refresh-token renewal path. Validation inside the grace interval is skipped
// entirely.
func (g *Guard) IsLoggedIn(ctx context.Context, s *Session) bool {
	ctx, span := g.tracer.Start(ctx, "session.Guard.IsLoggedIn")
	defer span.End()

	if s.LoggedOut() {
		return false
	}

	now := g.now()
	if !now.Before(s.Expires) || s.Expires.Sub(now) <= g.expiresEarly {
		g.logger.Debugf("session for %s expired, logging out", s.Username)
		g.Logout(ctx, s)
		return false
	}

	if now.Sub(s.LastChecked) < g.checkGrace {
		return true
	}

	for _, token := range s.Tokens() {
		active, err := g.api.IntrospectToken(ctx, token)
		if err != nil {
			g.logger.Warnf("token introspection for %s failed: %v", s.Username, err)
			g.Logout(ctx, s)
			return false
		}
		if !active {
			g.logger.Infof("session for %s holds an inactive token, logging out", s.Username)
			g.Logout(ctx, s)
			return false
		}
	}

	s.LastChecked = now
	return true
}

// Logout revokes every distinct token the bundle holds and resets it to the
// sentinel logged-out state. Revocation is best-effort: a failed revocation
// is logged and does not block the reset. Logging out an already-logged-out
// bundle is a no-op.
func (g *Guard) Logout(ctx context.Context, s *Session) {
	ctx, span := g.tracer.Start(ctx, "session.Guard.Logout")
	defer span.End()

	if s.LoggedOut() {
		return
	}

	for _, token := range s.Tokens() {
		if err := g.api.RevokeToken(ctx, token); err != nil {
			g.logger.Warnf("failed to revoke token for %s: %v", s.Username, err)
		}
	}

	g.logger.Security().Logout(s.Username)
	s.reset(g.now())
}
