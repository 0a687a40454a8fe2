package repositories

import (
	"context"

	"mercato.backend/internal/domain/entities"
)

// OrderRepository defines order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id int64) (*entities.Order, error)
	// UpdateStatus changes status only while the order is still in from; ErrInvalidTransition otherwise.
	UpdateStatus(ctx context.Context, id int64, from, to entities.OrderStatus) error
	List(ctx context.Context, filter entities.OrderFilter) ([]*entities.Order, int64, error)
}
