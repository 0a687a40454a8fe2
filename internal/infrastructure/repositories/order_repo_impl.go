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
	"mercato.backend/pkg/utils"
)

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new order
func (r *OrderRepository) Create(ctx context.Context, o *entities.Order) error {
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	m := &models.Order{
		UserID:    o.UserID,
		ProductID: o.ProductID,
		ShopID:    o.ShopID.Ptr(),
		Quantity:  o.Quantity,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "create order")
	}
	o.ID = m.ID
	return nil
}

// GetByID gets an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*entities.Order, error) {
	var m models.Order
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get order")
	}
	return toOrderEntity(&m), nil
}

// UpdateStatus is a compare-and-set on the current status, so two racing transitions cannot both apply.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, from, to entities.OrderStatus) error {
	db := GetDB(ctx, r.db)
	result := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": time.Now()})
	if result.Error != nil {
		return translate(result.Error, "update order status")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err, "check order")
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.NewError(fmt.Sprintf("order is no longer %s", from), domainerrors.ErrInvalidTransition)
}

// List lists orders matching filter, newest first
func (r *OrderRepository) List(ctx context.Context, filter entities.OrderFilter) ([]*entities.Order, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Order{})
	if filter.UserID.Valid {
		query = query.Where("user_id = ?", filter.UserID.Int64)
	}
	if filter.ShopID.Valid {
		query = query.Where("shop_id = ?", filter.ShopID.Int64)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count orders")
	}

	page := utils.NewPageRequest(filter.Page, filter.Limit)
	query = query.Order("created_at DESC, id DESC")
	if page.Limit > 0 {
		query = query.Limit(page.Limit).Offset(page.Offset())
	}

	var orderModels []models.Order
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, 0, translate(err, "list orders")
	}
	orders := make([]*entities.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, toOrderEntity(&orderModels[i]))
	}
	return orders, total, nil
}

func toOrderEntity(m *models.Order) *entities.Order {
	return &entities.Order{
		ID:        m.ID,
		UserID:    m.UserID,
		ProductID: m.ProductID,
		ShopID:    null.Int64FromPtr(m.ShopID),
		Quantity:  m.Quantity,
		Total:     m.Total,
		Status:    entities.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
