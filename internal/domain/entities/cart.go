package entities

import "time"

// CartItem is a product placed in a user's cart.
type CartItem struct {
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WishlistItem is a product saved to a user's wishlist.
type WishlistItem struct {
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartItemInput represents input for adding to the cart
type CartItemInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CartQuantityInput represents input for changing a cart line quantity
type CartQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// WishlistItemInput represents input for adding to the wishlist
type WishlistItemInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
}
