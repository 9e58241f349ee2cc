// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/pkg/session"
)

func newLoginRouter(flow FlowInterface, guard GuardInterface, store *Store) *chi.Mux {
	mux := chi.NewMux()
	api := NewLoginAPI(flow, guard, store, "https://groups.example.edu", tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	api.RegisterEndpoints(mux)
	return mux
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginAPI_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFlow := NewMockFlowInterface(ctrl)
	mockFlow.EXPECT().
		AuthCodeURL(gomock.Any()).
		DoAndReturn(func(state string) string {
			return "https://auth.example.com/v2/oauth2/authorize?state=" + state
		})

	mux := newLoginRouter(mockFlow, NewMockGuardInterface(ctrl), NewStore())

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}

	state := cookieByName(rr.Result().Cookies(), stateCookie)
	if state == nil || state.Value == "" {
		t.Fatal("state cookie not set")
	}
	if location := rr.Header().Get("Location"); !strings.Contains(location, state.Value) {
		t.Errorf("redirect %q does not carry the state %q", location, state.Value)
	}
}

func TestLoginAPI_LoginStoresContinuation(t *testing.T) {
	testCases := []struct {
		name         string
		loginURL     string
		expectCookie bool
	}{
		{"relative path kept", "/groups/research-team", true},
		{"absolute url dropped", "https://evil.example.com/", false},
		{"protocol relative dropped", "//evil.example.com/", false},
		{"empty ignored", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFlow := NewMockFlowInterface(ctrl)
			mockFlow.EXPECT().AuthCodeURL(gomock.Any()).Return("https://auth.example.com/v2/oauth2/authorize")

			mux := newLoginRouter(mockFlow, NewMockGuardInterface(ctrl), NewStore())

			target := "/login"
			if tc.loginURL != "" {
				target += "?login_url=" + url.QueryEscape(tc.loginURL)
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			cookie := cookieByName(rr.Result().Cookies(), loginURLCookie)
			if tc.expectCookie {
				if cookie == nil {
					t.Fatal("continuation cookie not set")
				}
				if got, _ := url.QueryUnescape(cookie.Value); got != tc.loginURL {
					t.Errorf("expected continuation %q, got %q", tc.loginURL, got)
				}
			} else if cookie != nil {
				t.Errorf("unexpected continuation cookie %q", cookie.Value)
			}
		})
	}
}

func TestLoginAPI_LoginCompleteContinuation(t *testing.T) {
	testCases := []struct {
		name             string
		continuation     string
		expectedLocation string
	}{
		{"no continuation", "", "/"},
		{"relative path honored", "/groups/research-team", "/groups/research-team"},
		{"absolute url refused", "https://evil.example.com/", "/"},
		{"protocol relative refused", "//evil.example.com/", "/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFlow := NewMockFlowInterface(ctrl)
			mockFlow.EXPECT().
				Exchange(gomock.Any(), "good-code").
				Return(&session.Session{
					UserID:   uuid.New(),
					Username: "alice@example.edu",
					Expires:  time.Now().Add(time.Hour),
				}, nil)

			mux := newLoginRouter(mockFlow, NewMockGuardInterface(ctrl), NewStore())

			req := httptest.NewRequest(http.MethodGet, "/login/complete?state=good-state&code=good-code", nil)
			req.AddCookie(&http.Cookie{Name: stateCookie, Value: "good-state"})
			if tc.continuation != "" {
				req.AddCookie(&http.Cookie{Name: loginURLCookie, Value: url.QueryEscape(tc.continuation)})
			}
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != http.StatusFound {
				t.Fatalf("expected redirect, got %d", rr.Code)
			}
			if location := rr.Header().Get("Location"); location != tc.expectedLocation {
				t.Errorf("expected redirect to %q, got %q", tc.expectedLocation, location)
			}
			if tc.continuation != "" {
				cleared := cookieByName(rr.Result().Cookies(), loginURLCookie)
				if cleared == nil || cleared.MaxAge != -1 {
					t.Error("continuation cookie not cleared after use")
				}
			}
		})
	}
}

func TestLoginAPI_LoginComplete(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		name           string
		target         string
		stateValue     string
		setupMocks     func(*MockFlowInterface)
		expectedStatus int
	}{
		{
			name:       "success",
			target:     "/login/complete?state=good-state&code=good-code",
			stateValue: "good-state",
			setupMocks: func(flow *MockFlowInterface) {
				flow.EXPECT().
					Exchange(gomock.Any(), "good-code").
					Return(&session.Session{
						UserID:   userID,
						Username: "alice@example.edu",
						Expires:  time.Now().Add(time.Hour),
					}, nil)
			},
			expectedStatus: http.StatusFound,
		},
		{
			name:           "state mismatch",
			target:         "/login/complete?state=evil-state&code=good-code",
			stateValue:     "good-state",
			setupMocks:     func(flow *MockFlowInterface) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing state cookie",
			target:         "/login/complete?state=good-state&code=good-code",
			stateValue:     "",
			setupMocks:     func(flow *MockFlowInterface) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing code",
			target:         "/login/complete?state=good-state",
			stateValue:     "good-state",
			setupMocks:     func(flow *MockFlowInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "exchange failure",
			target:     "/login/complete?state=good-state&code=bad-code",
			stateValue: "good-state",
			setupMocks: func(flow *MockFlowInterface) {
				flow.EXPECT().
					Exchange(gomock.Any(), "bad-code").
					Return(nil, http.ErrHandlerTimeout)
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFlow := NewMockFlowInterface(ctrl)
			tc.setupMocks(mockFlow)

			store := NewStore()
			mux := newLoginRouter(mockFlow, NewMockGuardInterface(ctrl), store)

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.stateValue != "" {
				req.AddCookie(&http.Cookie{Name: stateCookie, Value: tc.stateValue})
			}
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rr.Code)
			}

			if tc.expectedStatus == http.StatusFound {
				if cookieByName(rr.Result().Cookies(), sessionCookie) == nil {
					t.Error("session cookie not set after login")
				}
			}
		})
	}
}

func TestLoginAPI_HomeReflectsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := &session.Session{
		UserID:       uuid.New(),
		Username:     "alice@example.edu",
		ProviderName: "Example University",
		Expires:      time.Now().Add(time.Hour),
	}

	mockGuard := NewMockGuardInterface(ctrl)
	mockGuard.EXPECT().IsLoggedIn(gomock.Any(), sess).Return(true)

	store := NewStore()
	mux := newLoginRouter(NewMockFlowInterface(ctrl), mockGuard, store)

	// Seed the store through a recorder to capture the cookie.
	seed := httptest.NewRecorder()
	store.Put(seed, sess)
	cookie := cookieByName(seed.Result().Cookies(), sessionCookie)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "alice@example.edu") {
		t.Errorf("expected username in body %q", rr.Body.String())
	}
}

func TestLoginAPI_HomeLoggedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mux := newLoginRouter(NewMockFlowInterface(ctrl), NewMockGuardInterface(ctrl), NewStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"logged_in":false`) {
		t.Errorf("expected logged_in false in body %q", rr.Body.String())
	}
}

func TestLoginAPI_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := &session.Session{
		UserID:  uuid.New(),
		Expires: time.Now().Add(time.Hour),
	}

	mockGuard := NewMockGuardInterface(ctrl)
	mockGuard.EXPECT().Logout(gomock.Any(), sess)

	mockFlow := NewMockFlowInterface(ctrl)
	mockFlow.EXPECT().
		LogoutURL("https://groups.example.edu/").
		Return("https://auth.example.com/v2/web/logout?client_id=x")

	store := NewStore()
	mux := newLoginRouter(mockFlow, mockGuard, store)

	seed := httptest.NewRecorder()
	store.Put(seed, sess)
	cookie := cookieByName(seed.Result().Cookies(), sessionCookie)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if location := rr.Header().Get("Location"); location != "https://auth.example.com/v2/web/logout?client_id=x" {
		t.Errorf("expected the auth service logout, got %q", location)
	}

	// The bundle is gone from the store.
	followup := httptest.NewRequest(http.MethodGet, "/", nil)
	followup.AddCookie(cookie)
	if _, ok := store.Get(followup); ok {
		t.Error("session still in store after logout")
	}
}

func TestLoginAPI_LogoutWithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No session means nothing to revoke and nothing to end with the
	// auth service, so neither Logout nor LogoutURL may be called.
	mux := newLoginRouter(NewMockFlowInterface(ctrl), NewMockGuardInterface(ctrl), NewStore())

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if location := rr.Header().Get("Location"); location != "/" {
		t.Errorf("expected redirect home, got %q", location)
	}
}
