package usecases

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/domain/repositories"
	"mercato.backend/pkg/logger"
)

// RoleUsecase handles roles and role requests
type RoleUsecase struct {
	uow             repositories.UnitOfWork
	roleRepo        repositories.RoleRepository
	roleRequestRepo repositories.RoleRequestRepository
	userRepo        repositories.UserRepository
	notifier        Notifier
}

// NewRoleUsecase creates a new role usecase
func NewRoleUsecase(
	uow repositories.UnitOfWork,
	roleRepo repositories.RoleRepository,
	roleRequestRepo repositories.RoleRequestRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) *RoleUsecase {
	return &RoleUsecase{
		uow:             uow,
		roleRepo:        roleRepo,
		roleRequestRepo: roleRequestRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// CreateRole adds a role to the reference table
func (u *RoleUsecase) CreateRole(ctx context.Context, actor entities.Actor, input *entities.CreateRoleInput) (*entities.RoleDefinition, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpCreateRole); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("role name is required")
	}

	_, err := u.roleRepo.GetByName(ctx, name)
	if err == nil {
		return nil, domainerrors.Conflict(fmt.Sprintf("role %s already exists", name))
	}
	if !isNotFound(err) {
		return nil, err
	}

	role := &entities.RoleDefinition{Name: name}
	if err := u.roleRepo.Create(ctx, role); err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict(fmt.Sprintf("role %s already exists", name))
		}
		return nil, err
	}
	return role, nil
}

// ListRoles lists the role reference table
func (u *RoleUsecase) ListRoles(ctx context.Context) ([]*entities.RoleDefinition, error) {
	return u.roleRepo.List(ctx)
}

// RequestRole files, or re-targets, the caller's pending role request
func (u *RoleUsecase) RequestRole(ctx context.Context, actor entities.Actor, input *entities.RoleRequestInput) (*entities.RoleRequest, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpRequestRole); err != nil {
		return nil, err
	}

	role, ok := entities.ParseRole(input.RequestedRole)
	if !ok || !role.In(entities.RequestableRoles...) {
		return nil, domainerrors.BadRequest("requested role must be one of Retailer, Merchant, Supplier, Courier, Customer")
	}
	if role == actor.Role {
		return nil, domainerrors.BadRequest(fmt.Sprintf("you already have the %s role", role))
	}

	pending, err := u.roleRequestRepo.GetPendingByUser(ctx, actor.UserID)
	switch {
	case err == nil:
		if pending.RequestedRole == role.String() {
			return nil, domainerrors.Conflict(fmt.Sprintf("a request for %s is already pending", role))
		}
		if err := u.roleRequestRepo.UpdateRequestedRole(ctx, pending.ID, role.String()); err != nil {
			return nil, err
		}
		pending.RequestedRole = role.String()
		return pending, nil
	case !isNotFound(err):
		return nil, err
	}

	req := &entities.RoleRequest{
		UserID:        actor.UserID,
		RequestedRole: role.String(),
		Status:        entities.RoleRequestPending,
	}
	if err := u.roleRequestRepo.Create(ctx, req); err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict("a role request is already pending")
		}
		return nil, err
	}
	return req, nil
}

// ListRoleRequests lists every role request for review
func (u *RoleUsecase) ListRoleRequests(ctx context.Context, actor entities.Actor) ([]*entities.RoleRequest, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpReviewRoleReqs); err != nil {
		return nil, err
	}
	return u.roleRequestRepo.List(ctx)
}

// ListMyRoleRequests lists the caller's own requests
func (u *RoleUsecase) ListMyRoleRequests(ctx context.Context, actor entities.Actor) ([]*entities.RoleRequest, error) {
	return u.roleRequestRepo.ListByUser(ctx, actor.UserID)
}

// ApproveRoleRequest grants the requested role
func (u *RoleUsecase) ApproveRoleRequest(ctx context.Context, actor entities.Actor, id int64) (*entities.RoleRequest, error) {
	return u.decide(ctx, actor, id, entities.RoleRequestApproved)
}

// RejectRoleRequest closes the request without changing the user's role
func (u *RoleUsecase) RejectRoleRequest(ctx context.Context, actor entities.Actor, id int64) (*entities.RoleRequest, error) {
	return u.decide(ctx, actor, id, entities.RoleRequestRejected)
}

func (u *RoleUsecase) decide(ctx context.Context, actor entities.Actor, id int64, status entities.RoleRequestStatus) (*entities.RoleRequest, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpReviewRoleReqs); err != nil {
		return nil, err
	}

	var req *entities.RoleRequest
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		req, err = u.roleRequestRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Status != entities.RoleRequestPending {
			return domainerrors.NotFound(fmt.Sprintf("role request %d is not pending", id))
		}

		if err := u.roleRequestRepo.Decide(ctx, id, status, actor.UserID); err != nil {
			return err
		}
		if status != entities.RoleRequestApproved {
			return nil
		}

		role, ok := entities.ParseRole(req.RequestedRole)
		if !ok {
			return domainerrors.BadRequest(fmt.Sprintf("unknown role %q", req.RequestedRole))
		}
		return u.userRepo.UpdateRole(ctx, req.UserID, role)
	})
	if err != nil {
		return nil, err
	}

	req.Status = status
	req.AdminID.SetValid(actor.UserID)

	kind := entities.NotificationRoleRequestRejected
	message := fmt.Sprintf("Your request for the %s role was rejected", req.RequestedRole)
	if status == entities.RoleRequestApproved {
		kind = entities.NotificationRoleRequestApproved
		message = fmt.Sprintf("Your request for the %s role was approved", req.RequestedRole)
	}
	emitAll(ctx, u.notifier, []pendingNotification{{userID: req.UserID, kind: kind, message: message}})

	logger.Info(ctx, "Role request decided",
		zap.Int64("role_request_id", id),
		zap.String("status", string(status)),
		zap.Int64("admin_id", actor.UserID),
	)
	return req, nil
}
