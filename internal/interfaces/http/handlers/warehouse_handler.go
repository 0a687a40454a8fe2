package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/interfaces/http/response"
)

type WarehouseService interface {
	CreateWarehouse(ctx context.Context, actor entities.Actor, input *entities.CreateWarehouseInput) (*entities.Warehouse, error)
	GetMyWarehouse(ctx context.Context, actor entities.Actor) (*entities.Warehouse, error)
	UpdateMyWarehouse(ctx context.Context, actor entities.Actor, patch entities.WarehousePatch) (*entities.Warehouse, error)
	DeleteMyWarehouse(ctx context.Context, actor entities.Actor) error
	ListPendingWarehouses(ctx context.Context, actor entities.Actor) ([]*entities.Warehouse, error)
	ApproveWarehouse(ctx context.Context, actor entities.Actor, id int64) (*entities.Warehouse, error)
	RejectWarehouse(ctx context.Context, actor entities.Actor, id int64) (*entities.Warehouse, error)
}

// WarehouseHandler handles the supplier's warehouse and its review
type WarehouseHandler struct {
	warehouseUsecase WarehouseService
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(warehouseUsecase WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseUsecase: warehouseUsecase}
}

// CreateWarehouse registers the caller's warehouse
// POST /api/v1/warehouse
func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.CreateWarehouseInput
	if !bindJSON(c, &input) {
		return
	}
	warehouse, err := h.warehouseUsecase.CreateWarehouse(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"warehouse": warehouse})
}

// GetMyWarehouse returns the caller's warehouse and its products
// GET /api/v1/warehouse
func (h *WarehouseHandler) GetMyWarehouse(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	warehouse, err := h.warehouseUsecase.GetMyWarehouse(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"warehouse": warehouse})
}

// UpdateMyWarehouse patches the caller's warehouse
// PATCH /api/v1/warehouse
func (h *WarehouseHandler) UpdateMyWarehouse(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var patch entities.WarehousePatch
	if !bindJSON(c, &patch) {
		return
	}
	warehouse, err := h.warehouseUsecase.UpdateMyWarehouse(c.Request.Context(), caller, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"warehouse": warehouse})
}

// DeleteMyWarehouse removes the caller's warehouse
// DELETE /api/v1/warehouse
func (h *WarehouseHandler) DeleteMyWarehouse(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	if err := h.warehouseUsecase.DeleteMyWarehouse(c.Request.Context(), caller); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListPendingWarehouses lists warehouses awaiting review
// GET /api/v1/warehouses/pending
func (h *WarehouseHandler) ListPendingWarehouses(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	warehouses, err := h.warehouseUsecase.ListPendingWarehouses(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"warehouses": warehouses})
}

// ApproveWarehouse approves a warehouse
// PUT /api/v1/warehouses/:id/approve
func (h *WarehouseHandler) ApproveWarehouse(c *gin.Context) {
	h.decide(c, h.warehouseUsecase.ApproveWarehouse)
}

// RejectWarehouse rejects a warehouse
// PUT /api/v1/warehouses/:id/reject
func (h *WarehouseHandler) RejectWarehouse(c *gin.Context) {
	h.decide(c, h.warehouseUsecase.RejectWarehouse)
}

func (h *WarehouseHandler) decide(c *gin.Context, fn func(context.Context, entities.Actor, int64) (*entities.Warehouse, error)) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	warehouse, err := fn(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"warehouse": warehouse})
}
