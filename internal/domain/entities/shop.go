package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	domainerrors "mercato.backend/internal/domain/errors"
)

// Shop represents a storefront owned by a retailer or merchant
type Shop struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description null.String    `json:"description"`
	OwnerID     int64          `json:"ownerId"`
	Status      ApprovalStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CreateShopInput represents input for creating a shop
type CreateShopInput struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// ShopPatch is a partial update of a shop.
type ShopPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// Apply writes the patch onto s.
func (p ShopPatch) Apply(s *Shop) error {
	if err := applyRequired(p.Name, &s.Name, "name"); err != nil {
		return err
	}
	if p.Name.Set && strings.TrimSpace(s.Name) == "" {
		return domainerrors.NewError("name cannot be empty", domainerrors.ErrInvalidInput)
	}
	applyNullString(p.Description, &s.Description)
	return nil
}
