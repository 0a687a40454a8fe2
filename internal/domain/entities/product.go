package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	domainerrors "mercato.backend/internal/domain/errors"
)

// Product is a sellable item held by exactly one shop or one warehouse.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description null.String     `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ShopID      null.Int64      `json:"shopId"`
	WarehouseID null.Int64      `json:"warehouseId"`
	CategoryID  null.Int64      `json:"categoryId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// InShop reports whether the product is sold by a shop.
func (p *Product) InShop() bool {
	return p.ShopID.Valid && !p.WarehouseID.Valid
}

// InWarehouse reports whether the product is warehouse stock.
func (p *Product) InWarehouse() bool {
	return p.WarehouseID.Valid && !p.ShopID.Valid
}

// Validate checks the holder and numeric invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return domainerrors.NewError("name is required", domainerrors.ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return domainerrors.NewError("price cannot be negative", domainerrors.ErrInvalidInput)
	}
	if p.Stock < 0 {
		return domainerrors.NewError("stock cannot be negative", domainerrors.ErrInvalidInput)
	}
	if p.ShopID.Valid == p.WarehouseID.Valid {
		return domainerrors.NewError("product must belong to exactly one shop or warehouse", domainerrors.ErrInvalidInput)
	}
	return nil
}

// CreateProductInput represents input for creating a shop or warehouse product
type CreateProductInput struct {
	Name        string          `json:"name" binding:"required,min=1,max=255"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=5000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"gte=0"`
	CategoryID  *int64          `json:"categoryId,omitempty" binding:"omitempty,category_id"`
}

// ProductPatch is a partial update of a product. The holder cannot be changed.
type ProductPatch struct {
	Name        Optional[string]          `json:"name"`
	Description Optional[string]          `json:"description"`
	Price       Optional[decimal.Decimal] `json:"price"`
	Stock       Optional[int]             `json:"stock"`
	CategoryID  Optional[int64]           `json:"categoryId"`
}

// Apply writes the patch onto p and re-validates it.
func (patch ProductPatch) Apply(p *Product) error {
	if err := applyRequired(patch.Name, &p.Name, "name"); err != nil {
		return err
	}
	if err := applyRequired(patch.Price, &p.Price, "price"); err != nil {
		return err
	}
	if err := applyRequired(patch.Stock, &p.Stock, "stock"); err != nil {
		return err
	}
	applyNullString(patch.Description, &p.Description)
	applyNullInt64(patch.CategoryID, &p.CategoryID)
	return p.Validate()
}

// ProductFilter narrows product searches.
type ProductFilter struct {
	Query       string
	CategoryID  null.Int64
	ShopID      null.Int64
	WarehouseID null.Int64
	// Only products held by approved shops or warehouses.
	ApprovedOnly bool
	Page         int
	Limit        int
}
