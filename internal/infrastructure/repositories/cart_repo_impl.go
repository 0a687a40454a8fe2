package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/infrastructure/models"
)

// CartRepository implements cart data operations
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Add inserts a cart line
func (r *CartRepository) Add(ctx context.Context, item *entities.CartItem) error {
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now
	m := &models.CartItem{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "add cart item")
	}
	return nil
}

// UpdateQuantity sets the quantity of an existing line
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	result := GetDB(ctx, r.db).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{"quantity": quantity, "updated_at": time.Now()})
	if result.Error != nil {
		return translate(result.Error, "update cart item")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Remove deletes a cart line
func (r *CartRepository) Remove(ctx context.Context, userID, productID int64) error {
	result := GetDB(ctx, r.db).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return translate(result.Error, "remove cart item")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUser lists a user's cart with the products attached
func (r *CartRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.CartItem, error) {
	var itemModels []models.CartItem
	err := GetDB(ctx, r.db).Preload("Product").Where("user_id = ?", userID).
		Order("created_at ASC, product_id ASC").Find(&itemModels).Error
	if err != nil {
		return nil, translate(err, "list cart")
	}
	items := make([]*entities.CartItem, 0, len(itemModels))
	for _, m := range itemModels {
		item := &entities.CartItem{
			UserID:    m.UserID,
			ProductID: m.ProductID,
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		}
		if m.Product != nil {
			item.Product = toProductEntity(m.Product)
		}
		items = append(items, item)
	}
	return items, nil
}

// WishlistRepository implements wishlist data operations
type WishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add saves a product to the wishlist, ignoring duplicates
func (r *WishlistRepository) Add(ctx context.Context, item *entities.WishlistItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	m := &models.WishlistItem{UserID: item.UserID, ProductID: item.ProductID, CreatedAt: item.CreatedAt}
	err := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
	return translate(err, "add wishlist item")
}

// Remove deletes a wishlist entry
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	result := GetDB(ctx, r.db).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return translate(result.Error, "remove wishlist item")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUser lists a user's wishlist with the products attached
func (r *WishlistRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.WishlistItem, error) {
	var itemModels []models.WishlistItem
	err := GetDB(ctx, r.db).Preload("Product").Where("user_id = ?", userID).
		Order("created_at ASC, product_id ASC").Find(&itemModels).Error
	if err != nil {
		return nil, translate(err, "list wishlist")
	}
	items := make([]*entities.WishlistItem, 0, len(itemModels))
	for _, m := range itemModels {
		item := &entities.WishlistItem{UserID: m.UserID, ProductID: m.ProductID, CreatedAt: m.CreatedAt}
		if m.Product != nil {
			item.Product = toProductEntity(m.Product)
		}
		items = append(items, item)
	}
	return items, nil
}

// NotificationRepository implements notification data operations
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create stores a notification
func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m := &models.Notification{UserID: n.UserID, Message: n.Message, Type: string(n.Type), CreatedAt: n.CreatedAt}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "create notification")
	}
	n.ID = m.ID
	return nil
}

// ListByUser lists a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.Notification, error) {
	query := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var notifModels []models.Notification
	if err := query.Find(&notifModels).Error; err != nil {
		return nil, translate(err, "list notifications")
	}
	notifications := make([]*entities.Notification, 0, len(notifModels))
	for _, m := range notifModels {
		notifications = append(notifications, &entities.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Message:   m.Message,
			Type:      entities.NotificationType(m.Type),
			CreatedAt: m.CreatedAt,
		})
	}
	return notifications, nil
}
