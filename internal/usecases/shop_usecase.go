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

// ShopUsecase handles shop ownership and review
type ShopUsecase struct {
	shopRepo repositories.ShopRepository
	notifier Notifier
}

// NewShopUsecase creates a new shop usecase
func NewShopUsecase(shopRepo repositories.ShopRepository, notifier Notifier) *ShopUsecase {
	return &ShopUsecase{shopRepo: shopRepo, notifier: notifier}
}

// CreateShop opens a shop awaiting review
func (u *ShopUsecase) CreateShop(ctx context.Context, actor entities.Actor, input *entities.CreateShopInput) (*entities.Shop, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpCreateShop); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("name is required")
	}

	shop := &entities.Shop{
		Name:        name,
		Description: optionalString(input.Description),
		OwnerID:     actor.UserID,
		Status:      entities.ApprovalStatusPending,
	}
	if err := u.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// UpdateShop applies a partial update to a shop the caller owns
func (u *ShopUsecase) UpdateShop(ctx context.Context, actor entities.Actor, id int64, patch entities.ShopPatch) (*entities.Shop, error) {
	shop, err := u.ownedShop(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(shop); err != nil {
		return nil, err
	}
	if err := u.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// DeleteShop removes a shop the caller owns
func (u *ShopUsecase) DeleteShop(ctx context.Context, actor entities.Actor, id int64) error {
	if _, err := u.ownedShop(ctx, actor, id); err != nil {
		return err
	}
	return u.shopRepo.Delete(ctx, id)
}

// ListMyShops lists the caller's shops in any status
func (u *ShopUsecase) ListMyShops(ctx context.Context, actor entities.Actor) ([]*entities.Shop, error) {
	return u.shopRepo.ListByOwner(ctx, actor.UserID)
}

// ListApprovedShops is the public shop catalogue
func (u *ShopUsecase) ListApprovedShops(ctx context.Context) ([]*entities.Shop, error) {
	return u.shopRepo.ListByStatus(ctx, entities.ApprovalStatusApproved)
}

// ListPendingShops lists shops awaiting review
func (u *ShopUsecase) ListPendingShops(ctx context.Context, actor entities.Actor) ([]*entities.Shop, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpViewPending); err != nil {
		return nil, err
	}
	return u.shopRepo.ListByStatus(ctx, entities.ApprovalStatusPending)
}

// ApproveShop approves a pending shop
func (u *ShopUsecase) ApproveShop(ctx context.Context, actor entities.Actor, id int64) (*entities.Shop, error) {
	return u.decide(ctx, actor, id, entities.ApprovalStatusApproved)
}

// RejectShop rejects a pending shop
func (u *ShopUsecase) RejectShop(ctx context.Context, actor entities.Actor, id int64) (*entities.Shop, error) {
	return u.decide(ctx, actor, id, entities.ApprovalStatusRejected)
}

func (u *ShopUsecase) decide(ctx context.Context, actor entities.Actor, id int64, target entities.ApprovalStatus) (*entities.Shop, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpReviewShop); err != nil {
		return nil, err
	}

	shop, err := u.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := shop.Status.Decide(target)
	if err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict(fmt.Sprintf("shop %d is already %s", id, shop.Status))
		}
		return nil, err
	}
	if !changed {
		return shop, nil
	}

	if err := u.shopRepo.UpdateStatus(ctx, id, shop.Status, target); err != nil {
		if !isConflict(err) {
			return nil, err
		}
		// another reviewer decided first
		current, getErr := u.shopRepo.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if current.Status == target {
			return current, nil
		}
		return nil, domainerrors.Conflict(fmt.Sprintf("shop %d is already %s", id, current.Status))
	}
	shop.Status = target

	kind := entities.NotificationShopRejected
	if target == entities.ApprovalStatusApproved {
		kind = entities.NotificationShopApproved
	}
	emitAll(ctx, u.notifier, []pendingNotification{{
		userID:  shop.OwnerID,
		kind:    kind,
		message: fmt.Sprintf("Your shop %q was %s", shop.Name, strings.ToLower(string(target))),
	}})

	logger.Info(ctx, "Shop reviewed", zap.Int64("shop_id", id), zap.String("status", string(target)))
	return shop, nil
}

func (u *ShopUsecase) ownedShop(ctx context.Context, actor entities.Actor, id int64) (*entities.Shop, error) {
	shop, err := u.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != actor.UserID {
		return nil, domainerrors.Unauthorized("you do not own this shop")
	}
	return shop, nil
}
