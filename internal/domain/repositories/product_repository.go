package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"mercato.backend/internal/domain/entities"
)

// StockLedger is the only writer of Product.stock during order workflows.
type StockLedger interface {
	// Reserve atomically debits quantity when enough stock remains and returns the current unit price.
	// It fails with ErrInsufficientStock, leaving stock untouched, or ErrNotFound.
	Reserve(ctx context.Context, productID int64, quantity int) (decimal.Decimal, error)
	// Release credits quantity back to the product.
	Release(ctx context.Context, productID int64, quantity int) error
}

// UnitOfWork groups a ledger movement with the order row it belongs to.
// Repositories called with the ctx handed to fn join the same transaction; nested Do calls join the outer one.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductRepository defines product data operations
type ProductRepository interface {
	StockLedger
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id int64) (*entities.Product, error)
	// Update leaves stock alone unless setStock is true.
	Update(ctx context.Context, product *entities.Product, setStock bool) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter entities.ProductFilter) ([]*entities.Product, int64, error)
}

// CategoryRepository defines category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id int64) (*entities.Category, error)
	List(ctx context.Context) ([]*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	// ChangeID re-keys oldID to category.ID in one transaction, keeping creator and creation time
	// and repointing products. ErrAlreadyExists when the new id is taken.
	ChangeID(ctx context.Context, oldID int64, category *entities.Category) error
	Delete(ctx context.Context, id int64) error
}
