package repositories

import (
	"context"

	"mercato.backend/internal/domain/entities"
)

// ShopRepository defines shop data operations
type ShopRepository interface {
	Create(ctx context.Context, shop *entities.Shop) error
	GetByID(ctx context.Context, id int64) (*entities.Shop, error)
	Update(ctx context.Context, shop *entities.Shop) error
	// UpdateStatus changes status only while it is still from; ErrAlreadyExists otherwise.
	UpdateStatus(ctx context.Context, id int64, from, to entities.ApprovalStatus) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Shop, error)
	ListByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Shop, error)
}

// WarehouseRepository defines warehouse data operations
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entities.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entities.Warehouse, error)
	GetBySupplier(ctx context.Context, supplierID int64) (*entities.Warehouse, error)
	Update(ctx context.Context, warehouse *entities.Warehouse) error
	// UpdateStatus changes status only while it is still from; ErrAlreadyExists otherwise.
	UpdateStatus(ctx context.Context, id int64, from, to entities.ApprovalStatus) error
	Delete(ctx context.Context, id int64) error
	ListByStatus(ctx context.Context, status entities.ApprovalStatus) ([]*entities.Warehouse, error)
}
