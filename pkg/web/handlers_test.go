// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/internal/types"
	"github.com/canonical/group-service/pkg/groups"
)

//go:generate mockgen -build_flags=--mod=mod -package web -destination ./mock_web.go -source=./interfaces.go

// passthroughAuth stands in for the bearer-token middleware.
func passthroughAuth(next http.Handler) http.Handler {
	return next
}

func newGroupsRouter(service GroupServiceInterface) *chi.Mux {
	mux := chi.NewMux()
	api := NewGroupsAPI(service, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	api.RegisterEndpoints(mux, passthroughAuth)
	return mux
}

func TestGroupsAPI_CreateGroup(t *testing.T) {
	groupID := uuid.New()

	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockGroupServiceInterface)
		expectedStatus int
		expectedInBody string
	}{
		{
			name: "created",
			body: `{"name": "research-team", "description": "shared data", "admins": ["alice@example.edu"]}`,
			setupMocks: func(service *MockGroupServiceInterface) {
				service.EXPECT().
					Create(gomock.Any(), &groups.CreateParams{
						Name:             "research-team",
						Description:      "shared data",
						AdditionalAdmins: []string{"alice@example.edu"},
					}).
					Return(groupID, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedInBody: groupID.String(),
		},
		{
			name:           "malformed body",
			body:           `{not json`,
			setupMocks:     func(service *MockGroupServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation failure",
			body: `{"name": ""}`,
			setupMocks: func(service *MockGroupServiceInterface) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(uuid.Nil, directory.NewInvalidArgument("invalid group parameters"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failed rollback reports the orphan ID",
			body: `{"name": "research-team"}`,
			setupMocks: func(service *MockGroupServiceInterface) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(groupID, directory.NewTransientIO("policy update failed"))
			},
			expectedStatus: http.StatusBadGateway,
			expectedInBody: groupID.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockGroupServiceInterface(ctrl)
			tc.setupMocks(mockService)

			mux := newGroupsRouter(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/groups", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rr.Code)
			}
			if tc.expectedInBody != "" && !strings.Contains(rr.Body.String(), tc.expectedInBody) {
				t.Errorf("expected %q in body %q", tc.expectedInBody, rr.Body.String())
			}
		})
	}
}

func TestGroupsAPI_DeleteGroup(t *testing.T) {
	groupID := uuid.New()

	testCases := []struct {
		name           string
		target         string
		setupMocks     func(*MockGroupServiceInterface)
		expectedStatus int
	}{
		{
			name:   "deleted",
			target: "/api/v0/groups/" + groupID.String(),
			setupMocks: func(service *MockGroupServiceInterface) {
				service.EXPECT().Delete(gomock.Any(), groupID).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed ID",
			target:         "/api/v0/groups/not-a-uuid",
			setupMocks:     func(service *MockGroupServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "not found",
			target: "/api/v0/groups/" + groupID.String(),
			setupMocks: func(service *MockGroupServiceInterface) {
				service.EXPECT().Delete(gomock.Any(), groupID).Return(directory.NewNotFound("group %s", groupID))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "forbidden",
			target: "/api/v0/groups/" + groupID.String(),
			setupMocks: func(service *MockGroupServiceInterface) {
				service.EXPECT().Delete(gomock.Any(), groupID).Return(directory.NewPermissionDenied("not allowed"))
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockGroupServiceInterface(ctrl)
			tc.setupMocks(mockService)

			mux := newGroupsRouter(mockService)

			req := httptest.NewRequest(http.MethodDelete, tc.target, nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rr.Code)
			}
		})
	}
}

func TestGroupsAPI_ListMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()

	members := types.NewMembersByRole()
	members.Admins["alice@example.edu"] = struct{}{}
	members.Members["bob@example.edu"] = struct{}{}
	members.Members["carol@example.edu"] = struct{}{}

	mockService := NewMockGroupServiceInterface(ctrl)
	mockService.EXPECT().GetMembers(gomock.Any(), groupID).Return(members, nil)

	mux := newGroupsRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v0/groups/%s/members", groupID), nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, username := range []string{"alice@example.edu", "bob@example.edu", "carol@example.edu"} {
		if !strings.Contains(body, username) {
			t.Errorf("expected %s in body %q", username, body)
		}
	}
}

func TestGroupsAPI_AddMembers(t *testing.T) {
	groupID := uuid.New()

	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockGroupServiceInterface)
		expectedStatus int
	}{
		{
			name: "added",
			body: `{"usernames": ["bob@example.edu"], "provision": true}`,
			setupMocks: func(service *MockGroupServiceInterface) {
				service.EXPECT().
					AddMembers(gomock.Any(), groupID, []string{"bob@example.edu"}, true).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty usernames",
			body:           `{"usernames": []}`,
			setupMocks:     func(service *MockGroupServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown identity",
			body: `{"usernames": ["ghost@example.edu"]}`,
			setupMocks: func(service *MockGroupServiceInterface) {
				service.EXPECT().
					AddMembers(gomock.Any(), groupID, []string{"ghost@example.edu"}, false).
					Return(directory.NewNotFound("identity ghost@example.edu"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockGroupServiceInterface(ctrl)
			tc.setupMocks(mockService)

			mux := newGroupsRouter(mockService)

			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v0/groups/%s/members", groupID), strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rr.Code)
			}
		})
	}
}

func TestGroupsAPI_RemoveMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()

	mockService := NewMockGroupServiceInterface(ctrl)
	mockService.EXPECT().
		RemoveMembers(gomock.Any(), groupID, []string{"bob@example.edu"}).
		Return(nil)

	mux := newGroupsRouter(mockService)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v0/groups/%s/members", groupID), strings.NewReader(`{"usernames": ["bob@example.edu"]}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
