// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/pkg/scopes"
	"github.com/canonical/group-service/pkg/session"
)

// Resource server names the auth service tags token grants with. The app's
// own grant is tagged with the client ID instead.
const (
	ResourceServerAuth   = "auth"
	ResourceServerGroups = "groups"
)

// Flow drives the authorization-code login against the auth service. One
// login hands back grants for several resource servers at once; Exchange
// folds them into a single credential bundle.
type Flow struct {
	oauth    *oauth2.Config
	authURL  string
	clientID uuid.UUID
	offline  bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// NewFlow configures a login flow. redirectURL is where the auth service
// sends the user back with a code; for terminal logins this is the
// out-of-band copy-paste redirect. When offline is set, refresh tokens are
// requested.
func NewFlow(
	authURL string,
	clientID uuid.UUID,
	clientSecret string,
	redirectURL string,
	offline bool,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Flow {
	f := new(Flow)

	f.authURL = authURL
	f.clientID = clientID
	f.offline = offline
	f.oauth = &oauth2.Config{
		ClientID:     clientID.String(),
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL + "/v2/oauth2/authorize",
			TokenURL: authURL + "/v2/oauth2/token",
		},
		Scopes: f.requestedScopes(),
	}

	f.tracer = tracer
	f.monitor = monitor
	f.logger = logger

	return f
}

// requestedScopes is everything one login needs: identity claims, the groups
// API, and the service's own registered scopes.
func (f *Flow) requestedScopes() []string {
	requested := []string{"openid", "profile", "email", directory.GroupsAllScope}
	return append(requested, scopes.AsList(f.clientID)...)
}

// AuthCodeURL returns the URL to send the user to. state is the CSRF token
// the completion handler checks on return.
func (f *Flow) AuthCodeURL(state string) string {
	if f.offline {
		return f.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
	}
	return f.oauth.AuthCodeURL(state)
}

// LogoutURL returns the auth service's browser logout endpoint. Revoking our
// tokens does not end the user's session with the auth service itself; the
// browser has to be sent there so that session is cleared too, and returnTo
// is where the auth service sends the user afterwards.
func (f *Flow) LogoutURL(returnTo string) string {
	query := url.Values{}
	query.Set("client_id", f.clientID.String())
	query.Set("redirect_uri", returnTo)
	query.Set("redirect_name", "Group Service")
	return f.authURL + "/v2/web/logout?" + query.Encode()
}

// tokenGrant is one resource server's slice of a token response.
type tokenGrant struct {
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
	ResourceServer string `json:"resource_server"`
	ExpiresIn      int64  `json:"expires_in"`
	Scope          string `json:"scope"`
}

// Exchange redeems an authorization code for a credential bundle. The token
// response carries one grant per resource server; all three sub-services must
// be granted or the login is rejected. The bundle expires when its
// shortest-lived grant does.
func (f *Flow) Exchange(ctx context.Context, code string) (*session.Session, error) {
	ctx, span := f.tracer.Start(ctx, "authentication.Flow.Exchange")
	defer span.End()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &otelHTTPClient)

	token, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %v", err)
	}

	grants, err := f.collectGrants(token)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &session.Session{
		Expires:     token.Expiry,
		LastChecked: now,
	}

	for _, grant := range grants {
		switch grant.ResourceServer {
		case ResourceServerAuth:
			s.AuthToken = grant.AccessToken
		case ResourceServerGroups:
			s.GroupsToken = grant.AccessToken
		case f.clientID.String():
			s.AppToken = grant.AccessToken
		default:
			f.logger.Debugf("ignoring grant for unknown resource server %s", grant.ResourceServer)
			continue
		}
		if grant.RefreshToken != "" && s.RefreshToken == "" {
			s.RefreshToken = grant.RefreshToken
		}
		if expiry := now.Add(time.Duration(grant.ExpiresIn) * time.Second); grant.ExpiresIn > 0 && (s.Expires.IsZero() || expiry.Before(s.Expires)) {
			s.Expires = expiry
		}
	}

	if s.AuthToken == "" || s.GroupsToken == "" || s.AppToken == "" {
		return nil, fmt.Errorf("login did not grant all required resource servers")
	}

	if err := f.fetchUserInfo(ctx, s); err != nil {
		return nil, err
	}

	f.logger.Security().AuthSuccess(s.Username)
	return s, nil
}

// collectGrants flattens the token response: the top-level grant plus every
// entry of other_tokens.
func (f *Flow) collectGrants(token *oauth2.Token) ([]tokenGrant, error) {
	grants := make([]tokenGrant, 0, 3)

	primary := tokenGrant{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if rs, ok := token.Extra("resource_server").(string); ok {
		primary.ResourceServer = rs
	}
	grants = append(grants, primary)

	others := token.Extra("other_tokens")
	if others == nil {
		return grants, nil
	}

	// The oauth2 package hands extras back untyped; round-trip through JSON
	// to get them into shape.
	raw, err := json.Marshal(others)
	if err != nil {
		return nil, fmt.Errorf("malformed other_tokens in token response: %v", err)
	}
	var rest []tokenGrant
	if err := json.Unmarshal(raw, &rest); err != nil {
		return nil, fmt.Errorf("malformed other_tokens in token response: %v", err)
	}

	return append(grants, rest...), nil
}

type userInfoResponse struct {
	Sub                         string `json:"sub"`
	PreferredUsername           string `json:"preferred_username"`
	IdentityProvider            string `json:"identity_provider"`
	IdentityProviderDisplayName string `json:"identity_provider_display_name"`
}

// fetchUserInfo fills in the principal fields from the auth service's
// userinfo endpoint, using the freshly issued auth token.
func (f *Flow) fetchUserInfo(ctx context.Context, s *session.Session) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.authURL+"/v2/oauth2/userinfo", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.AuthToken)

	resp, err := otelHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("userinfo request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var info userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("malformed userinfo response: %v", err)
	}

	userID, err := uuid.Parse(info.Sub)
	if err != nil {
		return fmt.Errorf("userinfo subject is not an identity ID: %v", err)
	}
	providerID, err := uuid.Parse(info.IdentityProvider)
	if err != nil {
		return fmt.Errorf("userinfo identity provider is not an ID: %v", err)
	}

	s.UserID = userID
	s.Username = info.PreferredUsername
	s.ProviderID = providerID
	s.ProviderName = info.IdentityProviderDisplayName

	return nil
}
