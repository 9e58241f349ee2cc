// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"encoding/json"
	"net/http"
	"sort"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpTypes "github.com/canonical/group-service/internal/http/types"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/pkg/groups"
)

// GroupsAPI is the token-authenticated REST surface over the group lifecycle.
// Automation clients hit it with bearer tokens carrying the service scope.
type GroupsAPI struct {
	service GroupServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewGroupsAPI(
	service GroupServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *GroupsAPI {
	a := new(GroupsAPI)

	a.service = service

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

func (a *GroupsAPI) RegisterEndpoints(mux *chi.Mux, authenticate func(http.Handler) http.Handler) {
	mux.Route("/api/v0/groups", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", a.createGroup)
		r.Delete("/{id}", a.deleteGroup)
		r.Get("/{id}/members", a.listMembers)
		r.Post("/{id}/members", a.addMembers)
		r.Delete("/{id}/members", a.removeMembers)
	})
}

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HighRisk    bool     `json:"high_risk"`
	Admins      []string `json:"admins"`
}

func (a *GroupsAPI) createGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.GroupsAPI.createGroup")
	defer span.End()

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, http.StatusBadRequest, nil, "malformed request body")
		return
	}

	groupID, err := a.service.Create(ctx, &groups.CreateParams{
		Name:             req.Name,
		Description:      req.Description,
		HighRisk:         req.HighRisk,
		AdditionalAdmins: req.Admins,
	})
	if err != nil {
		// A failed creation whose rollback also failed leaves an orphaned
		// group behind; its ID is reported so the caller can clean up.
		if groupID != uuid.Nil {
			writeResponse(w, httpTypes.StatusFromError(err), map[string]any{"id": groupID}, err.Error())
			return
		}
		writeResponse(w, httpTypes.StatusFromError(err), nil, err.Error())
		return
	}

	writeResponse(w, http.StatusCreated, map[string]any{"id": groupID}, "")
}

func (a *GroupsAPI) deleteGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.GroupsAPI.deleteGroup")
	defer span.End()

	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeResponse(w, http.StatusBadRequest, nil, "malformed group ID")
		return
	}

	if err := a.service.Delete(ctx, groupID); err != nil {
		writeResponse(w, httpTypes.StatusFromError(err), nil, err.Error())
		return
	}

	writeResponse(w, http.StatusOK, nil, "")
}

func (a *GroupsAPI) listMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.GroupsAPI.listMembers")
	defer span.End()

	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeResponse(w, http.StatusBadRequest, nil, "malformed group ID")
		return
	}

	members, err := a.service.GetMembers(ctx, groupID)
	if err != nil {
		writeResponse(w, httpTypes.StatusFromError(err), nil, err.Error())
		return
	}

	writeResponse(w, http.StatusOK, map[string]any{
		"members":  sorted(members.Members),
		"managers": sorted(members.Managers),
		"admins":   sorted(members.Admins),
	}, "")
}

type membersRequest struct {
	Usernames []string `json:"usernames"`
	Provision bool     `json:"provision"`
}

func (a *GroupsAPI) addMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.GroupsAPI.addMembers")
	defer span.End()

	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeResponse(w, http.StatusBadRequest, nil, "malformed group ID")
		return
	}

	var req membersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Usernames) == 0 {
		writeResponse(w, http.StatusBadRequest, nil, "usernames are required")
		return
	}

	if err := a.service.AddMembers(ctx, groupID, req.Usernames, req.Provision); err != nil {
		writeResponse(w, httpTypes.StatusFromError(err), nil, err.Error())
		return
	}

	writeResponse(w, http.StatusOK, nil, "")
}

func (a *GroupsAPI) removeMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.GroupsAPI.removeMembers")
	defer span.End()

	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeResponse(w, http.StatusBadRequest, nil, "malformed group ID")
		return
	}

	var req membersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Usernames) == 0 {
		writeResponse(w, http.StatusBadRequest, nil, "usernames are required")
		return
	}

	if err := a.service.RemoveMembers(ctx, groupID, req.Usernames); err != nil {
		writeResponse(w, httpTypes.StatusFromError(err), nil, err.Error())
		return
	}

	writeResponse(w, http.StatusOK, nil, "")
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for username := range set {
		out = append(out, username)
	}
	sort.Strings(out)
	return out
}
