package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	domainerrors "mercato.backend/internal/domain/errors"
)

const (
	MinCategoryID int64 = 1
	MaxCategoryID int64 = 9999
)

// Category is a product classification with a caller-chosen identifier.
type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	CreatedByID int64      `json:"createdById"`
	UpdatedByID null.Int64 `json:"updatedById"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ValidateCategoryID enforces the allowed identifier range.
func ValidateCategoryID(id int64) error {
	if id < MinCategoryID || id > MaxCategoryID {
		return domainerrors.NewError(fmt.Sprintf("category id must be between %d and %d", MinCategoryID, MaxCategoryID), domainerrors.ErrInvalidInput)
	}
	return nil
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	ID   int64  `json:"id" binding:"required,category_id"`
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryPatch is a partial update of a category; a new ID triggers an atomic re-key.
type CategoryPatch struct {
	ID   Optional[int64]  `json:"id"`
	Name Optional[string] `json:"name"`
}

// Apply writes the patch onto c.
func (p CategoryPatch) Apply(c *Category) error {
	if err := applyRequired(p.ID, &c.ID, "id"); err != nil {
		return err
	}
	if err := ValidateCategoryID(c.ID); err != nil {
		return err
	}
	if err := applyRequired(p.Name, &c.Name, "name"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return domainerrors.NewError("name cannot be empty", domainerrors.ErrInvalidInput)
	}
	return nil
}
