package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/interfaces/http/response"
)

type OrderService interface {
	CreateOrder(ctx context.Context, actor entities.Actor, input *entities.CreateOrderInput) (*entities.Order, error)
	CreateWarehouseOrder(ctx context.Context, actor entities.Actor, input *entities.WarehouseOrderInput) (*entities.Order, error)
	RequestWarehouseOrder(ctx context.Context, actor entities.Actor, input *entities.WarehouseOrderInput) (*entities.Order, error)
	UpdateOrderStatus(ctx context.Context, actor entities.Actor, id int64, status string) (*entities.Order, error)
	CancelOrder(ctx context.Context, actor entities.Actor, id int64) (*entities.Order, error)
	GetOrder(ctx context.Context, actor entities.Actor, id int64) (*entities.Order, error)
	ListMyOrders(ctx context.Context, actor entities.Actor, page, limit int) ([]*entities.Order, int64, error)
	ListShopOrders(ctx context.Context, actor entities.Actor, shopID int64, page, limit int) ([]*entities.Order, int64, error)
	ListOrders(ctx context.Context, actor entities.Actor, status string, page, limit int) ([]*entities.Order, int64, error)
}

// OrderHandler handles order placement and fulfilment
type OrderHandler struct {
	orderUsecase OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase OrderService) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

// CreateOrder buys a shop product
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.CreateOrderInput
	if !bindJSON(c, &input) {
		return
	}
	order, err := h.orderUsecase.CreateOrder(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

// CreateWarehouseOrder buys warehouse stock, optionally on behalf of a shop
// POST /api/v1/warehouse-orders
func (h *OrderHandler) CreateWarehouseOrder(c *gin.Context) {
	h.placeWarehouse(c, h.orderUsecase.CreateWarehouseOrder)
}

// RequestWarehouseOrder asks a supplier for stock without reserving it
// POST /api/v1/request-warehouse-order
func (h *OrderHandler) RequestWarehouseOrder(c *gin.Context) {
	h.placeWarehouse(c, h.orderUsecase.RequestWarehouseOrder)
}

func (h *OrderHandler) placeWarehouse(c *gin.Context, place func(context.Context, entities.Actor, *entities.WarehouseOrderInput) (*entities.Order, error)) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.WarehouseOrderInput
	if !bindJSON(c, &input) {
		return
	}
	order, err := place(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

// UpdateOrderStatus moves an order along its workflow
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.UpdateOrderStatusInput
	if !bindJSON(c, &input) {
		return
	}
	order, err := h.orderUsecase.UpdateOrderStatus(c.Request.Context(), caller, id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// CancelOrder lets the buyer withdraw an order
// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderUsecase.CancelOrder(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// GetOrder returns an order visible to the caller
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderUsecase.GetOrder(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// ListMyOrders lists the caller's purchases
// GET /api/v1/orders/mine
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	page, limit := pagination(c)
	orders, total, err := h.orderUsecase.ListMyOrders(c.Request.Context(), caller, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, "orders", orders, total, page, limit)
}

// ListShopOrders lists orders tied to an owned shop
// GET /api/v1/shops/:id/orders
func (h *OrderHandler) ListShopOrders(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	shopID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, limit := pagination(c)
	orders, total, err := h.orderUsecase.ListShopOrders(c.Request.Context(), caller, shopID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, "orders", orders, total, page, limit)
}

// ListOrders lists every order, optionally by status
// GET /api/v1/admin/orders?status=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	page, limit := pagination(c)
	orders, total, err := h.orderUsecase.ListOrders(c.Request.Context(), caller, c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, "orders", orders, total, page, limit)
}
