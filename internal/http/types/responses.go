// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package types holds the JSON envelope every API response uses.
package types

import (
	"errors"
	"net/http"

	"github.com/canonical/group-service/internal/directory"
)

type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Status  int    `json:"status"`
}

// StatusFromError maps a directory error to the HTTP status the API reports.
// Anything unclassified is a 500.
func StatusFromError(err error) int {
	var dirErr *directory.Error
	if !errors.As(err, &dirErr) {
		return http.StatusInternalServerError
	}

	switch dirErr.Kind {
	case directory.KindInvalidArgument:
		return http.StatusBadRequest
	case directory.KindNotFound:
		return http.StatusNotFound
	case directory.KindPermissionDenied:
		return http.StatusForbidden
	case directory.KindTransientIO:
		return http.StatusBadGateway
	case directory.KindUnknownIO:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
