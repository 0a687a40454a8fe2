package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/interfaces/http/response"
)

type CartService interface {
	AddToCart(ctx context.Context, actor entities.Actor, input *entities.CartItemInput) (*entities.CartItem, error)
	UpdateCartItem(ctx context.Context, actor entities.Actor, productID int64, input *entities.CartQuantityInput) error
	RemoveFromCart(ctx context.Context, actor entities.Actor, productID int64) error
	ListCart(ctx context.Context, actor entities.Actor) ([]*entities.CartItem, error)
	AddToWishlist(ctx context.Context, actor entities.Actor, input *entities.WishlistItemInput) (*entities.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, actor entities.Actor, productID int64) error
	ListWishlist(ctx context.Context, actor entities.Actor) ([]*entities.WishlistItem, error)
}

// CartHandler handles cart and wishlist endpoints
type CartHandler struct {
	cartUsecase CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartUsecase CartService) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase}
}

// AddToCart POST /api/v1/cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.CartItemInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := h.cartUsecase.AddToCart(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

// UpdateCartItem PUT /api/v1/cart/:productId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var input entities.CartQuantityInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.cartUsecase.UpdateCartItem(c.Request.Context(), caller, productID, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"productId": productID, "quantity": input.Quantity})
}

// RemoveFromCart DELETE /api/v1/cart/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	if err := h.cartUsecase.RemoveFromCart(c.Request.Context(), caller, productID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCart GET /api/v1/cart
func (h *CartHandler) ListCart(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	items, err := h.cartUsecase.ListCart(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// AddToWishlist POST /api/v1/wishlist
func (h *CartHandler) AddToWishlist(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.WishlistItemInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := h.cartUsecase.AddToWishlist(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": item})
}

// RemoveFromWishlist DELETE /api/v1/wishlist/:productId
func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	if err := h.cartUsecase.RemoveFromWishlist(c.Request.Context(), caller, productID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListWishlist GET /api/v1/wishlist
func (h *CartHandler) ListWishlist(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	items, err := h.cartUsecase.ListWishlist(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}
