// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	chi "github.com/go-chi/chi/v5"

	httpTypes "github.com/canonical/group-service/internal/http/types"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
)

// LoginAPI owns the browser-facing login dance: it hands the user to the
// auth service, redeems the returned code for a credential bundle, and keeps
// the bundle in the server-side store.
type LoginAPI struct {
	flow    FlowInterface
	guard   GuardInterface
	store   *Store
	baseURL string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewLoginAPI(
	flow FlowInterface,
	guard GuardInterface,
	store *Store,
	baseURL string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *LoginAPI {
	a := new(LoginAPI)

	a.flow = flow
	a.guard = guard
	a.store = store
	a.baseURL = strings.TrimSuffix(baseURL, "/")

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

func (a *LoginAPI) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/", a.home)
	mux.Get("/login", a.login)
	mux.Get("/login/complete", a.loginComplete)
	mux.Get("/logout", a.logout)
}

func (a *LoginAPI) home(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.LoginAPI.home")
	defer span.End()

	sess, ok := a.store.Get(r)
	if !ok || !a.guard.IsLoggedIn(ctx, sess) {
		writeResponse(w, http.StatusOK, map[string]any{"logged_in": false}, "")
		return
	}

	writeResponse(w, http.StatusOK, map[string]any{
		"logged_in": true,
		"username":  sess.Username,
		"provider":  sess.ProviderName,
	}, "")
}

func (a *LoginAPI) login(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "web.LoginAPI.login")
	defer span.End()

	state := RandomID()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	// Remember where to send the user after the exchange completes.
	if continueTo := r.URL.Query().Get("login_url"); isLocalPath(continueTo) {
		http.SetCookie(w, &http.Cookie{
			Name:     loginURLCookie,
			Value:    url.QueryEscape(continueTo),
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, a.flow.AuthCodeURL(state), http.StatusFound)
}

// isLocalPath accepts only same-site continuation targets. Anything absolute
// or protocol-relative would turn the login completion into an open redirect.
func isLocalPath(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//")
}

func (a *LoginAPI) loginComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.LoginAPI.loginComplete")
	defer span.End()

	stateFromCookie, err := r.Cookie(stateCookie)
	if err != nil || stateFromCookie.Value == "" || r.URL.Query().Get("state") != stateFromCookie.Value {
		a.logger.Security().AuthFailure("unknown")
		writeResponse(w, http.StatusForbidden, nil, "state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeResponse(w, http.StatusBadRequest, nil, "missing authorization code")
		return
	}

	sess, err := a.flow.Exchange(ctx, code)
	if err != nil {
		a.logger.Errorf("login code exchange failed: %v", err)
		a.logger.Security().AuthFailure("unknown")
		writeResponse(w, http.StatusBadGateway, nil, "login failed")
		return
	}

	a.store.Put(w, sess)
	http.Redirect(w, r, a.continuation(w, r), http.StatusFound)
}

// continuation consumes the login_url cookie, falling back to the home page.
// The cookie lives on the browser side, so the target is re-validated here
// rather than trusted from the login handler.
func (a *LoginAPI) continuation(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(loginURLCookie)
	if err != nil {
		return "/"
	}

	http.SetCookie(w, &http.Cookie{Name: loginURLCookie, Path: "/", MaxAge: -1})

	target, err := url.QueryUnescape(cookie.Value)
	if err != nil || !isLocalPath(target) {
		return "/"
	}
	return target
}

func (a *LoginAPI) logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.LoginAPI.logout")
	defer span.End()

	sess, ok := a.store.Get(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	a.guard.Logout(ctx, sess)
	a.store.Drop(w, r)

	// Our tokens are gone, but the browser still holds a live session with
	// the auth service; hand the user over so that one ends too.
	http.Redirect(w, r, a.flow.LogoutURL(a.baseURL+"/"), http.StatusFound)
}

func writeResponse(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding a plain envelope cannot fail; the error is ignored.
	_ = json.NewEncoder(w).Encode(httpTypes.Response{
		Data:    data,
		Message: message,
		Status:  status,
	})
}
