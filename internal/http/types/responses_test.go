// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/canonical/group-service/internal/directory"
)

func TestStatusFromError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "invalid argument", err: directory.NewInvalidArgument("bad input"), expected: http.StatusBadRequest},
		{name: "not found", err: directory.NewNotFound("missing"), expected: http.StatusNotFound},
		{name: "permission denied", err: directory.NewPermissionDenied("nope"), expected: http.StatusForbidden},
		{name: "transient", err: directory.NewTransientIO("remote 500"), expected: http.StatusBadGateway},
		{name: "unknown IO", err: directory.NewUnknownIO("TEAPOT", "remote 418"), expected: http.StatusBadGateway},
		{name: "invalid state", err: directory.NewInvalidState("duplicate membership"), expected: http.StatusInternalServerError},
		{name: "wrapped", err: fmt.Errorf("lookup: %w", directory.NewNotFound("missing")), expected: http.StatusNotFound},
		{name: "unclassified", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if status := StatusFromError(tc.err); status != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, status)
			}
		})
	}
}
