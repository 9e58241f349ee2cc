// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
)

// GroupsAllScope is the directory scope granting full groups-API access.
const GroupsAllScope = "urn:directory:auth:scope:groups.api:all"

// Config carries everything needed to talk to one directory deployment with
// one confidential-client credential.
type Config struct {
	AuthURL      string
	GroupsURL    string
	ClientID     string
	ClientSecret string

	// The directory API is rate limited; requests are throttled client-side
	// before they reach the wire.
	RateLimit float64
	RateBurst int
}

// Client is the concrete HTTP client for the directory service. It implements
// GroupAPI, IdentityAPI, TokenAPI and ScopeAPI against a single deployment,
// authenticating with the client-credentials grant.
type Client struct {
	authBase   string
	groupsBase string
	clientID   string

	http    *http.Client
	limiter *rate.Limiter

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(cfg *Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.AuthURL + "/v2/oauth2/token",
		Scopes:       []string{GroupsAllScope},
	}

	base := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		authBase:   cfg.AuthURL,
		groupsBase: cfg.GroupsURL,
		clientID:   cfg.ClientID,
		http:       cc.Client(ctx),
		limiter:    rate.NewLimiter(limit, burst),
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// remoteError is the directory's error payload shape.
type remoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do performs one JSON request against the directory. Non-2xx responses and
// network failures come back classified into the error taxonomy; this is the
// only path remote errors take into the rest of the codebase.
func (c *Client) do(ctx context.Context, component, method, url string, body, out interface{}, wantStatus int) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return NewTransientIO("rate limiter interrupted: %v", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return NewInvalidArgument("encoding request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return NewInvalidArgument("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.setAvailability(component, 0)
		return NewTransientIO("network issue calling %s: %v", component, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		c.setAvailability(component, 0)
		var remote remoteError
		// Best effort; an unparseable error body classifies on status alone.
		_ = json.NewDecoder(resp.Body).Decode(&remote)
		return classify(resp.StatusCode, remote.Code, remote.Message)
	}

	c.setAvailability(component, 1)

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return NewUnknownIO("", fmt.Sprintf("decoding %s response: %v", component, err))
		}
	}
	return nil
}

func (c *Client) setAvailability(component string, value float64) {
	tags := map[string]string{"component": component}
	if err := c.monitor.SetDependencyAvailability(tags, value); err != nil {
		c.logger.Debugf("failed to set availability metric: %v", err)
	}
}
