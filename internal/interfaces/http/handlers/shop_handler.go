package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/interfaces/http/response"
)

type ShopService interface {
	CreateShop(ctx context.Context, actor entities.Actor, input *entities.CreateShopInput) (*entities.Shop, error)
	UpdateShop(ctx context.Context, actor entities.Actor, id int64, patch entities.ShopPatch) (*entities.Shop, error)
	DeleteShop(ctx context.Context, actor entities.Actor, id int64) error
	ListMyShops(ctx context.Context, actor entities.Actor) ([]*entities.Shop, error)
	ListApprovedShops(ctx context.Context) ([]*entities.Shop, error)
	ListPendingShops(ctx context.Context, actor entities.Actor) ([]*entities.Shop, error)
	ApproveShop(ctx context.Context, actor entities.Actor, id int64) (*entities.Shop, error)
	RejectShop(ctx context.Context, actor entities.Actor, id int64) (*entities.Shop, error)
}

// ShopHandler handles shop endpoints
type ShopHandler struct {
	shopUsecase ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopUsecase ShopService) *ShopHandler {
	return &ShopHandler{shopUsecase: shopUsecase}
}

// CreateShop opens a shop pending review
// POST /api/v1/shops
func (h *ShopHandler) CreateShop(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.CreateShopInput
	if !bindJSON(c, &input) {
		return
	}
	shop, err := h.shopUsecase.CreateShop(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"shop": shop})
}

// UpdateShop patches an owned shop
// PATCH /api/v1/shops/:id
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch entities.ShopPatch
	if !bindJSON(c, &patch) {
		return
	}
	shop, err := h.shopUsecase.UpdateShop(c.Request.Context(), caller, id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"shop": shop})
}

// DeleteShop removes an owned shop
// DELETE /api/v1/shops/:id
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.shopUsecase.DeleteShop(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListMyShops lists the caller's shops
// GET /api/v1/shops/mine
func (h *ShopHandler) ListMyShops(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	h.respond(c, func() ([]*entities.Shop, error) { return h.shopUsecase.ListMyShops(c.Request.Context(), caller) })
}

// ListApprovedShops is the public shop list
// GET /api/v1/shops
func (h *ShopHandler) ListApprovedShops(c *gin.Context) {
	h.respond(c, func() ([]*entities.Shop, error) { return h.shopUsecase.ListApprovedShops(c.Request.Context()) })
}

// ListPendingShops lists shops awaiting review
// GET /api/v1/shops/pending
func (h *ShopHandler) ListPendingShops(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	h.respond(c, func() ([]*entities.Shop, error) { return h.shopUsecase.ListPendingShops(c.Request.Context(), caller) })
}

// ApproveShop approves a shop
// PUT /api/v1/shops/:id/approve
func (h *ShopHandler) ApproveShop(c *gin.Context) {
	h.decide(c, h.shopUsecase.ApproveShop)
}

// RejectShop rejects a shop
// PUT /api/v1/shops/:id/reject
func (h *ShopHandler) RejectShop(c *gin.Context) {
	h.decide(c, h.shopUsecase.RejectShop)
}

func (h *ShopHandler) respond(c *gin.Context, list func() ([]*entities.Shop, error)) {
	shops, err := list()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"shops": shops})
}

func (h *ShopHandler) decide(c *gin.Context, fn func(context.Context, entities.Actor, int64) (*entities.Shop, error)) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	shop, err := fn(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"shop": shop})
}
