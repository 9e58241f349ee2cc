// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package groups

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package groups -destination ./mock_groups.go -source=./interfaces.go

func newTestService(api GroupAPIInterface, resolver ResolverInterface, prefix string) *Service {
	return NewService(api, resolver, prefix, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestService_Create(t *testing.T) {
	groupID := uuid.New()
	adminID := uuid.New()

	testCases := []struct {
		name        string
		params      *CreateParams
		prefix      string
		setupMocks  func(*MockGroupAPIInterface, *MockResolverInterface)
		expectedID  uuid.UUID
		expectedErr error
	}{
		{
			name:   "success without admins",
			params: &CreateParams{Name: "research-team", Description: "shared data", HighRisk: false},
			setupMocks: func(api *MockGroupAPIInterface, resolver *MockResolverInterface) {
				api.EXPECT().
					CreateGroup(gomock.Any(), directory.GroupCreate{Name: "research-team", Description: "shared data"}).
					Return(groupID, nil)
				api.EXPECT().
					SetGroupPolicies(gomock.Any(), groupID, directory.DefaultGroupPolicies(false)).
					Return(nil)
			},
			expectedID: groupID,
		},
		{
			name:   "name prefix applied",
			params: &CreateParams{Name: "research-team"},
			prefix: "RC",
			setupMocks: func(api *MockGroupAPIInterface, resolver *MockResolverInterface) {
				api.EXPECT().
					CreateGroup(gomock.Any(), directory.GroupCreate{Name: "[RC] research-team"}).
					Return(groupID, nil)
				api.EXPECT().
					SetGroupPolicies(gomock.Any(), groupID, gomock.Any()).
					Return(nil)
			},
			expectedID: groupID,
		},
		{
			name:   "high risk sets assurance policy",
			params: &CreateParams{Name: "phi-data", HighRisk: true},
			setupMocks: func(api *MockGroupAPIInterface, resolver *MockResolverInterface) {
				api.EXPECT().
					CreateGroup(gomock.Any(), gomock.Any()).
					Return(groupID, nil)
				api.EXPECT().
					SetGroupPolicies(gomock.Any(), groupID, directory.DefaultGroupPolicies(true)).
					Return(nil)
			},
			expectedID: groupID,
		},
		{
			name:        "empty name is invalid",
			params:      &CreateParams{Name: ""},
			setupMocks:  func(api *MockGroupAPIInterface, resolver *MockResolverInterface) {},
			expectedErr: directory.ErrInvalidArgument,
		},
		{
			name:   "admins resolved and added",
			params: &CreateParams{Name: "research-team", AdditionalAdmins: []string{"alice@example.edu"}},
			setupMocks: func(api *MockGroupAPIInterface, resolver *MockResolverInterface) {
				resolver.EXPECT().Seed(gomock.Any()).AnyTimes()
				resolver.EXPECT().
					ResolveAll(gomock.Any(), []string{"alice@example.edu"}).
					Return(map[string]uuid.UUID{"alice@example.edu": adminID}, nil, nil)
				api.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).Return(groupID, nil)
				api.EXPECT().SetGroupPolicies(gomock.Any(), groupID, gomock.Any()).Return(nil)
				api.EXPECT().
					AddGroupMembers(gomock.Any(), groupID, types.RoleAdmin, []uuid.UUID{adminID}).
					Return(&directory.BatchResult{Added: 1}, nil)
			},
			expectedID: groupID,
		},
		{
			name:   "raw UUID admins skip resolution",
			params: &CreateParams{Name: "research-team", AdditionalAdmins: []string{adminID.String()}},
			setupMocks: func(api *MockGroupAPIInterface, resolver *MockResolverInterface) {
				api.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).Return(groupID, nil)
				api.EXPECT().SetGroupPolicies(gomock.Any(), groupID, gomock.Any()).Return(nil)
				api.EXPECT().
					AddGroupMembers(gomock.Any(), groupID, types.RoleAdmin, []uuid.UUID{adminID}).
					Return(&directory.BatchResult{Added: 1}, nil)
			},
			expectedID: groupID,
		},
		{
			name:   "unresolvable admin fails before any group exists",
			params: &CreateParams{Name: "research-team", AdditionalAdmins: []string{"ghost@example.edu"}},
			setupMocks: func(api *MockGroupAPIInterface, resolver *MockResolverInterface) {
				resolver.EXPECT().Seed(gomock.Any()).AnyTimes()
				resolver.EXPECT().
					ResolveAll(gomock.Any(), []string{"ghost@example.edu"}).
					Return(map[string]uuid.UUID{}, []string{"ghost@example.edu"}, nil)
				// No CreateGroup call: the directory is untouched.
			},
			expectedErr: directory.ErrNotFound,
		},
		{
			name:   "create failure propagates",
			params: &CreateParams{Name: "research-team"},
			setupMocks: func(api *MockGroupAPIInterface, resolver *MockResolverInterface) {
				api.EXPECT().
					CreateGroup(gomock.Any(), gomock.Any()).
					Return(uuid.Nil, directory.NewPermissionDenied("not allowed"))
			},
			expectedErr: directory.ErrPermissionDenied,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAPI := NewMockGroupAPIInterface(ctrl)
			mockResolver := NewMockResolverInterface(ctrl)
			tc.setupMocks(mockAPI, mockResolver)

			s := newTestService(mockAPI, mockResolver, tc.prefix)

			id, err := s.Create(context.Background(), tc.params)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tc.expectedID {
				t.Errorf("expected group ID %s, got %s", tc.expectedID, id)
			}
		})
	}
}

func TestService_CreateRollbackOnPolicyFailure(t *testing.T) {
	groupID := uuid.New()
	policyErr := directory.NewTransientIO("policy update failed")

	testCases := []struct {
		name       string
		deleteErr  error
		expectedID uuid.UUID
	}{
		{
			// Delete succeeds: the group was never observable, only the
			// original error surfaces.
			name:       "rollback deletes the orphan",
			deleteErr:  nil,
			expectedID: uuid.Nil,
		},
		{
			// Delete fails: partial success, the caller gets the ID of the
			// orphaned group alongside the error.
			name:       "failed rollback returns the orphan ID",
			deleteErr:  directory.NewTransientIO("delete failed"),
			expectedID: groupID,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAPI := NewMockGroupAPIInterface(ctrl)
			mockResolver := NewMockResolverInterface(ctrl)

			mockAPI.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).Return(groupID, nil)
			mockAPI.EXPECT().SetGroupPolicies(gomock.Any(), groupID, gomock.Any()).Return(policyErr)
			mockAPI.EXPECT().DeleteGroup(gomock.Any(), groupID).Return(tc.deleteErr)

			s := newTestService(mockAPI, mockResolver, "")

			id, err := s.Create(context.Background(), &CreateParams{Name: "research-team"})

			if !errors.Is(err, directory.ErrTransientIO) {
				t.Errorf("expected the original policy error, got %v", err)
			}
			if id != tc.expectedID {
				t.Errorf("expected ID %s, got %s", tc.expectedID, id)
			}
		})
	}
}

func TestService_CreateRollbackOnAdminAddFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()
	adminID := uuid.New()

	mockAPI := NewMockGroupAPIInterface(ctrl)
	mockResolver := NewMockResolverInterface(ctrl)

	mockAPI.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).Return(groupID, nil)
	mockAPI.EXPECT().SetGroupPolicies(gomock.Any(), groupID, gomock.Any()).Return(nil)
	mockAPI.EXPECT().
		AddGroupMembers(gomock.Any(), groupID, types.RoleAdmin, gomock.Any()).
		Return(nil, directory.NewTransientIO("admin add failed"))
	mockAPI.EXPECT().DeleteGroup(gomock.Any(), groupID).Return(nil)

	s := newTestService(mockAPI, mockResolver, "")

	id, err := s.Create(context.Background(), &CreateParams{
		Name:             "research-team",
		AdditionalAdmins: []string{adminID.String()},
	})

	if !errors.Is(err, directory.ErrTransientIO) {
		t.Errorf("expected TransientIO, got %v", err)
	}
	if id != uuid.Nil {
		t.Errorf("expected no group ID after successful rollback, got %s", id)
	}
}

func TestService_GetMembers(t *testing.T) {
	groupID := uuid.New()

	testCases := []struct {
		name        string
		memberships []directory.Membership
		expectedErr error
		check       func(*testing.T, *types.MembersByRole)
	}{
		{
			name: "partitions by role",
			memberships: []directory.Membership{
				{Username: "alice@example.edu", Role: "admin"},
				{Username: "bob@example.edu", Role: "manager"},
				{Username: "carol@example.edu", Role: "member"},
				{Username: "dave@example.edu", Role: "member"},
			},
			check: func(t *testing.T, members *types.MembersByRole) {
				if len(members.Admins) != 1 || len(members.Managers) != 1 || len(members.Members) != 2 {
					t.Errorf("unexpected partition: %+v", members)
				}
				if members.Len() != 4 {
					t.Errorf("expected 4 total memberships, got %d", members.Len())
				}
				if len(members.All()) != 4 {
					t.Errorf("expected disjoint buckets, union has %d", len(members.All()))
				}
			},
		},
		{
			name:        "empty group",
			memberships: nil,
			check: func(t *testing.T, members *types.MembersByRole) {
				if members.Len() != 0 {
					t.Errorf("expected empty membership, got %d", members.Len())
				}
			},
		},
		{
			name: "unknown role is an invariant violation",
			memberships: []directory.Membership{
				{Username: "alice@example.edu", Role: "superuser"},
			},
			expectedErr: directory.ErrInvalidState,
		},
		{
			name: "duplicate membership is an invariant violation",
			memberships: []directory.Membership{
				{Username: "alice@example.edu", Role: "admin"},
				{Username: "alice@example.edu", Role: "member"},
			},
			expectedErr: directory.ErrInvalidState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAPI := NewMockGroupAPIInterface(ctrl)
			mockResolver := NewMockResolverInterface(ctrl)

			mockAPI.EXPECT().
				GetGroup(gomock.Any(), groupID, true).
				Return(&directory.Group{ID: groupID, Memberships: tc.memberships}, nil)
			// Every username seen seeds the resolver cache.
			mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()

			s := newTestService(mockAPI, mockResolver, "")

			members, err := s.GetMembers(context.Background(), groupID)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, members)
		})
	}
}

func TestService_AddMembersProvisioningGate(t *testing.T) {
	groupID := uuid.New()
	bobID := uuid.New()

	t.Run("unresolvable member without provisioning fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockGroupAPIInterface(ctrl)
		mockResolver := NewMockResolverInterface(ctrl)

		mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()
		mockResolver.EXPECT().
			ResolveAll(gomock.Any(), []string{"bob@example.edu"}).
			Return(map[string]uuid.UUID{}, []string{"bob@example.edu"}, nil)

		s := newTestService(mockAPI, mockResolver, "")

		err := s.AddMembers(context.Background(), groupID, []string{"bob@example.edu"}, false)
		if !errors.Is(err, directory.ErrNotFound) {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("provisioning resolves the same member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockGroupAPIInterface(ctrl)
		mockResolver := NewMockResolverInterface(ctrl)

		mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()
		mockResolver.EXPECT().
			ResolveAll(gomock.Any(), []string{"bob@example.edu"}).
			Return(map[string]uuid.UUID{}, []string{"bob@example.edu"}, nil)
		mockResolver.EXPECT().
			Provision(gomock.Any(), []string{"bob@example.edu"}).
			Return(map[string]uuid.UUID{"bob@example.edu": bobID}, nil)
		mockAPI.EXPECT().
			AddGroupMembers(gomock.Any(), groupID, types.RoleMember, []uuid.UUID{bobID}).
			Return(&directory.BatchResult{Added: 1}, nil)

		s := newTestService(mockAPI, mockResolver, "")

		if err := s.AddMembers(context.Background(), groupID, []string{"bob@example.edu"}, true); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestService_AddMembersIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()
	aliceID := uuid.New()

	mockAPI := NewMockGroupAPIInterface(ctrl)
	mockResolver := NewMockResolverInterface(ctrl)

	mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()
	mockResolver.EXPECT().
		ResolveAll(gomock.Any(), gomock.Any()).
		Return(map[string]uuid.UUID{"alice@example.edu": aliceID}, nil, nil).
		Times(2)
	// Second add sees ALREADY_ACTIVE for every member: swallowed.
	mockAPI.EXPECT().
		AddGroupMembers(gomock.Any(), groupID, types.RoleMember, []uuid.UUID{aliceID}).
		Return(&directory.BatchResult{Added: 1}, nil)
	mockAPI.EXPECT().
		AddGroupMembers(gomock.Any(), groupID, types.RoleMember, []uuid.UUID{aliceID}).
		Return(&directory.BatchResult{Added: 0, Errors: []directory.MemberError{
			{IdentityID: aliceID, Code: directory.CodeAlreadyActive, Detail: "already a member"},
		}}, nil)

	s := newTestService(mockAPI, mockResolver, "")

	for i := 0; i < 2; i++ {
		if err := s.AddMembers(context.Background(), groupID, []string{"alice@example.edu"}, false); err != nil {
			t.Errorf("add %d: unexpected error: %v", i, err)
		}
	}
}

func TestService_AddMembersSplitsBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()

	usernames := make([]string, 250)
	resolved := make(map[string]uuid.UUID, 250)
	for i := range usernames {
		usernames[i] = fmt.Sprintf("user%03d@example.edu", i)
		resolved[usernames[i]] = uuid.New()
	}

	mockAPI := NewMockGroupAPIInterface(ctrl)
	mockResolver := NewMockResolverInterface(ctrl)

	mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()
	mockResolver.EXPECT().ResolveAll(gomock.Any(), gomock.Any()).Return(resolved, nil, nil)

	gomock.InOrder(
		mockAPI.EXPECT().
			AddGroupMembers(gomock.Any(), groupID, types.RoleMember, gomock.Len(100)).
			Return(&directory.BatchResult{Added: 100}, nil),
		mockAPI.EXPECT().
			AddGroupMembers(gomock.Any(), groupID, types.RoleMember, gomock.Len(100)).
			Return(&directory.BatchResult{Added: 100}, nil),
		mockAPI.EXPECT().
			AddGroupMembers(gomock.Any(), groupID, types.RoleMember, gomock.Len(50)).
			Return(&directory.BatchResult{Added: 50}, nil),
	)

	s := newTestService(mockAPI, mockResolver, "")

	if err := s.AddMembers(context.Background(), groupID, usernames, false); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestService_AddMembersBatchFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()

	usernames := make([]string, 150)
	resolved := make(map[string]uuid.UUID, 150)
	for i := range usernames {
		usernames[i] = fmt.Sprintf("user%03d@example.edu", i)
		resolved[usernames[i]] = uuid.New()
	}

	mockAPI := NewMockGroupAPIInterface(ctrl)
	mockResolver := NewMockResolverInterface(ctrl)

	mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()
	mockResolver.EXPECT().ResolveAll(gomock.Any(), gomock.Any()).Return(resolved, nil, nil)

	// First batch lands, second fails at transport level: the operation
	// aborts without submitting more batches, and the first batch stands.
	gomock.InOrder(
		mockAPI.EXPECT().
			AddGroupMembers(gomock.Any(), groupID, types.RoleMember, gomock.Len(100)).
			Return(&directory.BatchResult{Added: 100}, nil),
		mockAPI.EXPECT().
			AddGroupMembers(gomock.Any(), groupID, types.RoleMember, gomock.Len(50)).
			Return(nil, directory.NewNotFound("group %s", groupID)),
	)

	s := newTestService(mockAPI, mockResolver, "")

	err := s.AddMembers(context.Background(), groupID, usernames, false)
	if !errors.Is(err, directory.ErrNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestService_AddMembersCountMismatchIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupID := uuid.New()
	aliceID := uuid.New()

	mockAPI := NewMockGroupAPIInterface(ctrl)
	mockResolver := NewMockResolverInterface(ctrl)

	mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()
	mockResolver.EXPECT().
		ResolveAll(gomock.Any(), gomock.Any()).
		Return(map[string]uuid.UUID{"alice@example.edu": aliceID}, nil, nil)
	// Remote reports neither a success nor an error for the member. The
	// discrepancy is logged, the remote count is trusted.
	mockAPI.EXPECT().
		AddGroupMembers(gomock.Any(), groupID, types.RoleMember, gomock.Any()).
		Return(&directory.BatchResult{Added: 0}, nil)

	s := newTestService(mockAPI, mockResolver, "")

	if err := s.AddMembers(context.Background(), groupID, []string{"alice@example.edu"}, false); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestService_RemoveMembers(t *testing.T) {
	groupID := uuid.New()
	aliceID := uuid.New()

	t.Run("unresolvable member always fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockGroupAPIInterface(ctrl)
		mockResolver := NewMockResolverInterface(ctrl)

		mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()
		mockResolver.EXPECT().
			ResolveAll(gomock.Any(), gomock.Any()).
			Return(map[string]uuid.UUID{}, []string{"ghost@example.edu"}, nil)

		s := newTestService(mockAPI, mockResolver, "")

		err := s.RemoveMembers(context.Background(), groupID, []string{"ghost@example.edu"})
		if !errors.Is(err, directory.ErrNotFound) {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("repeat removal is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAPI := NewMockGroupAPIInterface(ctrl)
		mockResolver := NewMockResolverInterface(ctrl)

		mockResolver.EXPECT().Seed(gomock.Any()).AnyTimes()
		mockResolver.EXPECT().
			ResolveAll(gomock.Any(), gomock.Any()).
			Return(map[string]uuid.UUID{"alice@example.edu": aliceID}, nil, nil).
			Times(2)
		mockAPI.EXPECT().
			RemoveGroupMembers(gomock.Any(), groupID, []uuid.UUID{aliceID}).
			Return(&directory.BatchResult{Removed: 1}, nil)
		mockAPI.EXPECT().
			RemoveGroupMembers(gomock.Any(), groupID, []uuid.UUID{aliceID}).
			Return(&directory.BatchResult{Removed: 0, Errors: []directory.MemberError{
				{IdentityID: aliceID, Code: directory.CodeRemoveNonActiveForbidden, Detail: "not a member"},
			}}, nil)

		s := newTestService(mockAPI, mockResolver, "")

		for i := 0; i < 2; i++ {
			if err := s.RemoveMembers(context.Background(), groupID, []string{"alice@example.edu"}); err != nil {
				t.Errorf("removal %d: unexpected error: %v", i, err)
			}
		}
	})
}

func TestService_Delete(t *testing.T) {
	groupID := uuid.New()

	testCases := []struct {
		name        string
		apiErr      error
		expectedErr error
	}{
		{name: "success"},
		{name: "not found", apiErr: directory.NewNotFound("group %s", groupID), expectedErr: directory.ErrNotFound},
		{name: "forbidden", apiErr: directory.NewPermissionDenied("nope"), expectedErr: directory.ErrPermissionDenied},
		{name: "transient", apiErr: directory.NewTransientIO("remote 500"), expectedErr: directory.ErrTransientIO},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAPI := NewMockGroupAPIInterface(ctrl)
			mockResolver := NewMockResolverInterface(ctrl)
			mockAPI.EXPECT().DeleteGroup(gomock.Any(), groupID).Return(tc.apiErr)

			s := newTestService(mockAPI, mockResolver, "")

			err := s.Delete(context.Background(), groupID)
			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected %v, got %v", tc.expectedErr, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
