// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package groups

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/canonical/group-service/internal/batch"
	"github.com/canonical/group-service/internal/directory"
	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/internal/types"
)

// Service orchestrates the group lifecycle and membership reconciliation
// against the remote directory. It holds no local group state; the directory
// is the single source of truth.
type Service struct {
	api      GroupAPIInterface
	resolver ResolverInterface

	// namePrefix, when non-empty, prefixes every created group's display
	// name as "[prefix] name".
	namePrefix string

	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	api GroupAPIInterface,
	resolver ResolverInterface,
	namePrefix string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		api:        api,
		resolver:   resolver,
		namePrefix: namePrefix,
		validate:   validator.New(),
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// CreateParams are the inputs for group creation. An empty Description means
// no description. AdditionalAdmins may mix identity usernames and raw
// identity UUID strings.
type CreateParams struct {
	Name             string `validate:"required"`
	Description      string
	HighRisk         bool
	AdditionalAdmins []string
}

// Create makes a new group, applies the fixed policy set (private, members
// visible to members only, no join requests, high-assurance per HighRisk) and
// adds any additional administrators.
//
// Admins are resolved before anything is created, so an unknown admin fails
// with NotFound while the directory is still untouched. Once the group exists
// remotely, any later failure triggers a best-effort delete of the new group:
// if the delete succeeds the original error is returned alone, the group was
// never observable; if the delete fails, Create returns BOTH the new group's
// ID and the error. That is the one partial-success case, so the caller does
// not lose track of the orphaned group.
func (s *Service) Create(ctx context.Context, params *CreateParams) (uuid.UUID, error) {
	ctx, span := s.tracer.Start(ctx, "groups.Service.Create")
	defer span.End()

	if err := s.validate.Struct(params); err != nil {
		return uuid.Nil, directory.NewInvalidArgument("invalid group parameters: %v", err)
	}

	name := params.Name
	if s.namePrefix != "" {
		name = "[" + s.namePrefix + "] " + params.Name
	}

	adminIDs, err := s.resolveAdmins(ctx, params.AdditionalAdmins)
	if err != nil {
		return uuid.Nil, err
	}

	groupID, err := s.api.CreateGroup(ctx, directory.GroupCreate{
		Name:        name,
		Description: params.Description,
	})
	if err != nil {
		return uuid.Nil, err
	}

	// The group now exists remotely. Failures past this point roll back.
	if err := s.api.SetGroupPolicies(ctx, groupID, directory.DefaultGroupPolicies(params.HighRisk)); err != nil {
		return s.rollback(ctx, groupID, err)
	}

	for _, chunk := range batch.Split(adminIDs, batch.DefaultCapacity) {
		result, err := s.api.AddGroupMembers(ctx, groupID, types.RoleAdmin, chunk)
		if err != nil {
			return s.rollback(ctx, groupID, err)
		}
		s.reconcileBatch(result, len(chunk), directory.CodeAlreadyActive, "admin add")
	}

	return groupID, nil
}

// resolveAdmins maps a mixed list of usernames and raw UUID strings onto
// identity UUIDs. Any unresolvable username fails the whole set.
func (s *Service) resolveAdmins(ctx context.Context, admins []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(admins))
	usernames := make([]string, 0, len(admins))
	for _, admin := range admins {
		if id, err := uuid.Parse(admin); err == nil {
			ids = append(ids, id)
			continue
		}
		usernames = append(usernames, admin)
	}

	if len(usernames) == 0 {
		return ids, nil
	}

	s.resolver.Seed(usernames...)
	resolved, unresolved, err := s.resolver.ResolveAll(ctx, usernames)
	if err != nil {
		return nil, err
	}
	if len(unresolved) > 0 {
		return nil, directory.NewNotFound("identity %s", unresolved[0])
	}
	for _, username := range usernames {
		ids = append(ids, resolved[username])
	}
	return ids, nil
}

// rollback tries to delete a half-created group. On successful deletion only
// the original error surfaces; on failed deletion the group ID is returned
// alongside the error and cleanup becomes the caller's responsibility.
func (s *Service) rollback(ctx context.Context, groupID uuid.UUID, cause error) (uuid.UUID, error) {
	if err := s.api.DeleteGroup(ctx, groupID); err != nil {
		s.logger.Errorf("failed to delete group %s during rollback: %v", groupID, err)
		return groupID, cause
	}
	return uuid.Nil, cause
}

// Delete removes a group from the directory.
func (s *Service) Delete(ctx context.Context, groupID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "groups.Service.Delete")
	defer span.End()

	return s.api.DeleteGroup(ctx, groupID)
}

// GetMembers fetches the full membership of a group in one call and
// partitions it by role, seeding the identity resolver with every username
// seen. An unknown role string, or a username appearing under two roles,
// violates the membership invariants and fails with InvalidState.
func (s *Service) GetMembers(ctx context.Context, groupID uuid.UUID) (*types.MembersByRole, error) {
	ctx, span := s.tracer.Start(ctx, "groups.Service.GetMembers")
	defer span.End()

	group, err := s.api.GetGroup(ctx, groupID, true)
	if err != nil {
		return nil, err
	}

	members := types.NewMembersByRole()
	seen := make(map[string]struct{}, len(group.Memberships))
	for _, membership := range group.Memberships {
		if _, dup := seen[membership.Username]; dup {
			return nil, directory.NewInvalidState("%s holds more than one role in group %s", membership.Username, groupID)
		}
		seen[membership.Username] = struct{}{}

		s.resolver.Seed(membership.Username)

		role, err := types.ParseRole(membership.Role)
		if err != nil {
			return nil, directory.NewInvalidState("unknown role %q for %s", membership.Role, membership.Username)
		}
		switch role {
		case types.RoleMember:
			members.Members[membership.Username] = struct{}{}
		case types.RoleManager:
			members.Managers[membership.Username] = struct{}{}
		case types.RoleAdmin:
			members.Admins[membership.Username] = struct{}{}
		}
	}

	return members, nil
}

// AddMembers adds a set of usernames to a group as plain members, in batches.
// Unknown usernames fail with NotFound unless provision is set, in which case
// identities are provisioned for them first.
//
// Batches are issued sequentially and the operation is NOT transactional
// across them: when a later batch fails with a transport-level error, earlier
// batches have already taken effect remotely and are not rolled back. Within
// a batch, a member already in the group is an idempotent no-op; other
// per-member errors are logged and do not abort the batch.
func (s *Service) AddMembers(ctx context.Context, groupID uuid.UUID, usernames []string, provision bool) error {
	ctx, span := s.tracer.Start(ctx, "groups.Service.AddMembers")
	defer span.End()

	s.resolver.Seed(usernames...)
	resolved, unresolved, err := s.resolver.ResolveAll(ctx, usernames)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(usernames))
	for _, id := range resolved {
		ids = append(ids, id)
	}

	if len(unresolved) > 0 {
		if !provision {
			// Input sets are unordered; which unresolved name is reported
			// is arbitrary.
			return directory.NewNotFound("identity %s", unresolved[0])
		}
		provisioned, err := s.resolver.Provision(ctx, unresolved)
		if err != nil {
			return err
		}
		for _, username := range unresolved {
			id, ok := provisioned[username]
			if !ok {
				return directory.NewNotFound("identity %s", username)
			}
			ids = append(ids, id)
		}
	}

	for _, chunk := range batch.Split(ids, batch.DefaultCapacity) {
		result, err := s.api.AddGroupMembers(ctx, groupID, types.RoleMember, chunk)
		if err != nil {
			return err
		}
		s.reconcileBatch(result, len(chunk), directory.CodeAlreadyActive, "member add")
	}

	return nil
}

// RemoveMembers removes a set of usernames from a group, in batches. Unknown
// usernames always fail with NotFound: there is no provisioning option,
// since provisioning an identity only to remove it is meaningless. Removing
// someone who is not a member is an idempotent no-op. The same cross-batch
// non-atomicity as AddMembers applies.
func (s *Service) RemoveMembers(ctx context.Context, groupID uuid.UUID, usernames []string) error {
	ctx, span := s.tracer.Start(ctx, "groups.Service.RemoveMembers")
	defer span.End()

	s.resolver.Seed(usernames...)
	resolved, unresolved, err := s.resolver.ResolveAll(ctx, usernames)
	if err != nil {
		return err
	}
	if len(unresolved) > 0 {
		return directory.NewNotFound("identity %s", unresolved[0])
	}

	ids := make([]uuid.UUID, 0, len(resolved))
	for _, id := range resolved {
		ids = append(ids, id)
	}

	for _, chunk := range batch.Split(ids, batch.DefaultCapacity) {
		result, err := s.api.RemoveGroupMembers(ctx, groupID, chunk)
		if err != nil {
			return err
		}
		s.reconcileBatch(result, len(chunk), directory.CodeRemoveNonActiveForbidden, "member remove")
	}

	return nil
}

// reconcileBatch checks one batch result against local bookkeeping and sifts
// its per-member errors. The remote count is trusted over our own; a mismatch
// is surfaced as a warning, not a failure. The idempotent code for the
// operation is fully swallowed, any other per-member error is logged and the
// batch continues.
func (s *Service) reconcileBatch(result *directory.BatchResult, batchSize int, idempotentCode, op string) {
	applied := result.Added + result.Removed
	if applied+len(result.Errors) != batchSize {
		s.logger.Warnf("%s count mismatch: %d applied + %d errors != %d submitted", op, applied, len(result.Errors), batchSize)
	}

	for _, memberErr := range result.Errors {
		if memberErr.Code == idempotentCode {
			s.logger.Debugf("%s: %s already in requested state", op, memberErr.IdentityID)
			continue
		}
		s.logger.Warnf("%s failed for %s: %s-%s", op, memberErr.IdentityID, memberErr.Code, memberErr.Detail)
	}
}
