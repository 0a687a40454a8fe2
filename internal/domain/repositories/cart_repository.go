package repositories

import (
	"context"

	"mercato.backend/internal/domain/entities"
)

// CartRepository defines cart data operations
type CartRepository interface {
	// Add inserts a line; ErrAlreadyExists when the product is already in the cart.
	Add(ctx context.Context, item *entities.CartItem) error
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error
	Remove(ctx context.Context, userID, productID int64) error
	ListByUser(ctx context.Context, userID int64) ([]*entities.CartItem, error)
}

// WishlistRepository defines wishlist data operations
type WishlistRepository interface {
	// Add is idempotent: adding an existing product leaves the row unchanged.
	Add(ctx context.Context, item *entities.WishlistItem) error
	Remove(ctx context.Context, userID, productID int64) error
	ListByUser(ctx context.Context, userID int64) ([]*entities.WishlistItem, error)
}

// NotificationRepository defines notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.Notification, error)
}
