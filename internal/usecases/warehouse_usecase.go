package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/domain/repositories"
	"mercato.backend/pkg/logger"
)

// WarehouseUsecase handles supplier warehouses and their review
type WarehouseUsecase struct {
	warehouseRepo repositories.WarehouseRepository
	productRepo   repositories.ProductRepository
	notifier      Notifier
}

// NewWarehouseUsecase creates a new warehouse usecase
func NewWarehouseUsecase(
	warehouseRepo repositories.WarehouseRepository,
	productRepo repositories.ProductRepository,
	notifier Notifier,
) *WarehouseUsecase {
	return &WarehouseUsecase{
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		notifier:      notifier,
	}
}

// CreateWarehouse registers the caller's single warehouse
func (u *WarehouseUsecase) CreateWarehouse(ctx context.Context, actor entities.Actor, input *entities.CreateWarehouseInput) (*entities.Warehouse, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpCreateWarehouse); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("name is required")
	}

	_, err := u.warehouseRepo.GetBySupplier(ctx, actor.UserID)
	if err == nil {
		return nil, domainerrors.Conflict("you already have a warehouse")
	}
	if !isNotFound(err) {
		return nil, err
	}

	warehouse := &entities.Warehouse{
		SupplierID:  actor.UserID,
		Name:        name,
		Location:    optionalString(input.Location),
		Description: optionalString(input.Description),
		Icon:        optionalString(input.Icon),
		Capacity:    null.IntFromPtr(input.Capacity),
		Status:      entities.ApprovalStatusPending,
	}
	if err := u.warehouseRepo.Create(ctx, warehouse); err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict("you already have a warehouse")
		}
		return nil, err
	}
	return warehouse, nil
}

// GetMyWarehouse returns the caller's warehouse with its products
func (u *WarehouseUsecase) GetMyWarehouse(ctx context.Context, actor entities.Actor) (*entities.Warehouse, error) {
	warehouse, err := u.mine(ctx, actor)
	if err != nil {
		return nil, err
	}
	products, _, err := u.productRepo.List(ctx, entities.ProductFilter{WarehouseID: null.Int64From(warehouse.ID)})
	if err != nil {
		return nil, err
	}
	warehouse.Products = products
	return warehouse, nil
}

// UpdateMyWarehouse applies a partial update to the caller's warehouse
func (u *WarehouseUsecase) UpdateMyWarehouse(ctx context.Context, actor entities.Actor, patch entities.WarehousePatch) (*entities.Warehouse, error) {
	warehouse, err := u.mine(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(warehouse); err != nil {
		return nil, err
	}
	if err := u.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// DeleteMyWarehouse removes the caller's warehouse
func (u *WarehouseUsecase) DeleteMyWarehouse(ctx context.Context, actor entities.Actor) error {
	warehouse, err := u.mine(ctx, actor)
	if err != nil {
		return err
	}
	return u.warehouseRepo.Delete(ctx, warehouse.ID)
}

// ListPendingWarehouses lists warehouses awaiting review
func (u *WarehouseUsecase) ListPendingWarehouses(ctx context.Context, actor entities.Actor) ([]*entities.Warehouse, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpViewPending); err != nil {
		return nil, err
	}
	return u.warehouseRepo.ListByStatus(ctx, entities.ApprovalStatusPending)
}

// ApproveWarehouse approves a pending warehouse
func (u *WarehouseUsecase) ApproveWarehouse(ctx context.Context, actor entities.Actor, id int64) (*entities.Warehouse, error) {
	return u.decide(ctx, actor, id, entities.ApprovalStatusApproved)
}

// RejectWarehouse rejects a pending warehouse
func (u *WarehouseUsecase) RejectWarehouse(ctx context.Context, actor entities.Actor, id int64) (*entities.Warehouse, error) {
	return u.decide(ctx, actor, id, entities.ApprovalStatusRejected)
}

func (u *WarehouseUsecase) decide(ctx context.Context, actor entities.Actor, id int64, target entities.ApprovalStatus) (*entities.Warehouse, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpReviewWarehouse); err != nil {
		return nil, err
	}

	warehouse, err := u.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := warehouse.Status.Decide(target)
	if err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict(fmt.Sprintf("warehouse %d is already %s", id, warehouse.Status))
		}
		return nil, err
	}
	if !changed {
		return warehouse, nil
	}

	if err := u.warehouseRepo.UpdateStatus(ctx, id, warehouse.Status, target); err != nil {
		if !isConflict(err) {
			return nil, err
		}
		// another reviewer decided first
		current, getErr := u.warehouseRepo.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if current.Status == target {
			return current, nil
		}
		return nil, domainerrors.Conflict(fmt.Sprintf("warehouse %d is already %s", id, current.Status))
	}
	warehouse.Status = target

	kind := entities.NotificationWarehouseRejected
	if target == entities.ApprovalStatusApproved {
		kind = entities.NotificationWarehouseApproved
	}
	emitAll(ctx, u.notifier, []pendingNotification{{
		userID:  warehouse.SupplierID,
		kind:    kind,
		message: fmt.Sprintf("Your warehouse %q was %s", warehouse.Name, strings.ToLower(string(target))),
	}})

	logger.Info(ctx, "Warehouse reviewed", zap.Int64("warehouse_id", id), zap.String("status", string(target)))
	return warehouse, nil
}

func (u *WarehouseUsecase) mine(ctx context.Context, actor entities.Actor) (*entities.Warehouse, error) {
	warehouse, err := u.warehouseRepo.GetBySupplier(ctx, actor.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NotFound("you do not have a warehouse")
		}
		return nil, err
	}
	return warehouse, nil
}
