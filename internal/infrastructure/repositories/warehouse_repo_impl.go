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

// WarehouseRepository implements warehouse data operations
type WarehouseRepository struct {
	db *gorm.DB
}

// NewWarehouseRepository creates a new warehouse repository
func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

// Create creates a warehouse; a supplier already owning one gets ErrAlreadyExists
func (r *WarehouseRepository) Create(ctx context.Context, w *entities.Warehouse) error {
	now := time.Now()
	if w.Status == "" {
		w.Status = entities.ApprovalStatusPending
	}
	w.CreatedAt, w.UpdatedAt = now, now
	m := &models.Warehouse{
		SupplierID:  w.SupplierID,
		Name:        w.Name,
		Location:    w.Location.Ptr(),
		Description: w.Description.Ptr(),
		Icon:        w.Icon.Ptr(),
		Capacity:    w.Capacity.Ptr(),
		Status:      string(w.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "create warehouse")
	}
	w.ID = m.ID
	return nil
}

// GetByID gets a warehouse by ID
func (r *WarehouseRepository) GetByID(ctx context.Context, id int64) (*entities.Warehouse, error) {
	var m models.Warehouse
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get warehouse")
	}
	return toWarehouseEntity(&m), nil
}

// GetBySupplier gets the warehouse owned by a supplier
func (r *WarehouseRepository) GetBySupplier(ctx context.Context, supplierID int64) (*entities.Warehouse, error) {
	var m models.Warehouse
	if err := GetDB(ctx, r.db).Where("supplier_id = ?", supplierID).First(&m).Error; err != nil {
		return nil, translate(err, "get warehouse by supplier")
	}
	return toWarehouseEntity(&m), nil
}

// Update updates the editable warehouse fields
func (r *WarehouseRepository) Update(ctx context.Context, w *entities.Warehouse) error {
	now := time.Now()
	result := GetDB(ctx, r.db).Model(&models.Warehouse{}).Where("id = ?", w.ID).Updates(map[string]interface{}{
		"name":           w.Name,
		"location":       w.Location.Ptr(),
		"description":    w.Description.Ptr(),
		"warehouse_icon": w.Icon.Ptr(),
		"capacity":       w.Capacity.Ptr(),
		"updated_at":     now,
	})
	if result.Error != nil {
		return translate(result.Error, "update warehouse")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	w.UpdatedAt = now
	return nil
}

// UpdateStatus records an approval decision while the warehouse is still in from.
// A decision that lost the race gets ErrAlreadyExists.
func (r *WarehouseRepository) UpdateStatus(ctx context.Context, id int64, from, to entities.ApprovalStatus) error {
	db := GetDB(ctx, r.db)
	result := db.Model(&models.Warehouse{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": time.Now()})
	if result.Error != nil {
		return translate(result.Error, "update warehouse status")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Warehouse{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err, "check warehouse")
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.NewError(fmt.Sprintf("warehouse is no longer %s", from), domainerrors.ErrAlreadyExists)
}

// Delete removes a warehouse
func (r *WarehouseRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Delete(&models.Warehouse{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "delete warehouse")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByStatus lists warehouses in the given review state; an empty status lists all
func (r *WarehouseRepository) ListByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Warehouse, error) {
	query := GetDB(ctx, r.db).Order("id ASC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var whModels []models.Warehouse
	if err := query.Find(&whModels).Error; err != nil {
		return nil, translate(err, "list warehouses")
	}
	warehouses := make([]*entities.Warehouse, 0, len(whModels))
	for i := range whModels {
		warehouses = append(warehouses, toWarehouseEntity(&whModels[i]))
	}
	return warehouses, nil
}

func toWarehouseEntity(m *models.Warehouse) *entities.Warehouse {
	return &entities.Warehouse{
		ID:          m.ID,
		SupplierID:  m.SupplierID,
		Name:        m.Name,
		Location:    null.StringFromPtr(m.Location),
		Description: null.StringFromPtr(m.Description),
		Icon:        null.StringFromPtr(m.Icon),
		Capacity:    null.IntFromPtr(m.Capacity),
		Status:      entities.ApprovalStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
