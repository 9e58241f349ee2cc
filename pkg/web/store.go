// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"

	"github.com/canonical/group-service/pkg/session"
)

const (
	sessionCookie  = "group_service_session"
	stateCookie    = "group_service_state"
	loginURLCookie = "group_service_login_url"
)

// Store keeps credential bundles server-side, keyed by an opaque random ID
// carried in a cookie. Bundles hold bearer tokens and never leave the
// process.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session.Session)}
}

// RandomID returns an unguessable URL-safe identifier, used for session IDs
// and login state tokens.
func RandomID() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// Get fetches the caller's bundle from the request cookie.
func (s *Store) Get(r *http.Request) (*session.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[cookie.Value]
	return sess, ok
}

// Put stores a bundle under a fresh ID and sets the session cookie.
func (s *Store) Put(w http.ResponseWriter, sess *session.Session) {
	id := RandomID()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Drop forgets the caller's bundle and clears the cookie.
func (s *Store) Drop(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
