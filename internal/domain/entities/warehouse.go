package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	domainerrors "mercato.backend/internal/domain/errors"
)

// Warehouse represents a supplier's stock location. A supplier owns at most one.
type Warehouse struct {
	ID          int64          `json:"id"`
	SupplierID  int64          `json:"supplierId"`
	Name        string         `json:"name"`
	Location    null.String    `json:"location"`
	Description null.String    `json:"description"`
	Icon        null.String    `json:"warehouseIcon"`
	Capacity    null.Int       `json:"capacity"`
	Status      ApprovalStatus `json:"status"`
	Products    []*Product     `json:"products,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CreateWarehouseInput represents input for creating a warehouse
type CreateWarehouseInput struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Location    string `json:"location,omitempty" binding:"omitempty,max=255"`
	Description string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Icon        string `json:"warehouseIcon,omitempty" binding:"omitempty,max=500"`
	Capacity    *int   `json:"capacity,omitempty" binding:"omitempty,gte=0"`
}

// WarehousePatch is a partial update of a warehouse.
type WarehousePatch struct {
	Name        Optional[string] `json:"name"`
	Location    Optional[string] `json:"location"`
	Description Optional[string] `json:"description"`
	Icon        Optional[string] `json:"warehouseIcon"`
	Capacity    Optional[int]    `json:"capacity"`
}

// Apply writes the patch onto w.
func (p WarehousePatch) Apply(w *Warehouse) error {
	if err := applyRequired(p.Name, &w.Name, "name"); err != nil {
		return err
	}
	if p.Name.Set && strings.TrimSpace(w.Name) == "" {
		return domainerrors.NewError("name cannot be empty", domainerrors.ErrInvalidInput)
	}
	if p.Capacity.HasValue() && p.Capacity.Value < 0 {
		return domainerrors.NewError("capacity cannot be negative", domainerrors.ErrInvalidInput)
	}
	applyNullString(p.Location, &w.Location)
	applyNullString(p.Description, &w.Description)
	applyNullString(p.Icon, &w.Icon)
	applyNullInt(p.Capacity, &w.Capacity)
	return nil
}
