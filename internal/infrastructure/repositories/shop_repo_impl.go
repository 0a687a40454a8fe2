package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/infrastructure/models"
)

// ShopRepository implements shop data operations
type ShopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// Create creates a new shop
func (r *ShopRepository) Create(ctx context.Context, shop *entities.Shop) error {
	now := time.Now()
	if shop.Status == "" {
		shop.Status = entities.ApprovalStatusPending
	}
	shop.CreatedAt, shop.UpdatedAt = now, now
	m := &models.Shop{
		Name:        shop.Name,
		Description: shop.Description.Ptr(),
		OwnerID:     shop.OwnerID,
		Status:      string(shop.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "create shop")
	}
	shop.ID = m.ID
	return nil
}

// GetByID gets a shop by ID
func (r *ShopRepository) GetByID(ctx context.Context, id int64) (*entities.Shop, error) {
	var m models.Shop
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get shop")
	}
	return toShopEntity(&m), nil
}

// Update updates the editable shop fields
func (r *ShopRepository) Update(ctx context.Context, shop *entities.Shop) error {
	now := time.Now()
	result := GetDB(ctx, r.db).Model(&models.Shop{}).Where("id = ?", shop.ID).Updates(map[string]interface{}{
		"name":        shop.Name,
		"description": shop.Description.Ptr(),
		"updated_at":  now,
	})
	if result.Error != nil {
		return translate(result.Error, "update shop")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	shop.UpdatedAt = now
	return nil
}

// UpdateStatus records an approval decision while the shop is still in from.
// A decision that lost the race gets ErrAlreadyExists.
func (r *ShopRepository) UpdateStatus(ctx context.Context, id int64, from, to entities.ApprovalStatus) error {
	db := GetDB(ctx, r.db)
	result := db.Model(&models.Shop{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": time.Now()})
	if result.Error != nil {
		return translate(result.Error, "update shop status")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Shop{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err, "check shop")
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.NewError(fmt.Sprintf("shop is no longer %s", from), domainerrors.ErrAlreadyExists)
}

// Delete removes a shop
func (r *ShopRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Delete(&models.Shop{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "delete shop")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByOwner lists the shops owned by a user
func (r *ShopRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Shop, error) {
	return r.find(GetDB(ctx, r.db).Where("owner_id = ?", ownerID).Order("id ASC"))
}

// ListByStatus lists shops in the given review state; an empty status lists all
func (r *ShopRepository) ListByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Shop, error) {
	query := GetDB(ctx, r.db).Order("id ASC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	return r.find(query)
}

func (r *ShopRepository) find(query *gorm.DB) ([]*entities.Shop, error) {
	var shopModels []models.Shop
	if err := query.Find(&shopModels).Error; err != nil {
		return nil, translate(err, "list shops")
	}
	shops := make([]*entities.Shop, 0, len(shopModels))
	for i := range shopModels {
		shops = append(shops, toShopEntity(&shopModels[i]))
	}
	return shops, nil
}

func toShopEntity(m *models.Shop) *entities.Shop {
	return &entities.Shop{
		ID:          m.ID,
		Name:        m.Name,
		Description: null.StringFromPtr(m.Description),
		OwnerID:     m.OwnerID,
		Status:      entities.ApprovalStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
