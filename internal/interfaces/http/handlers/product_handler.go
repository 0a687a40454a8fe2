package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null/v8"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/interfaces/http/response"
)

type ProductService interface {
	CreateShopProduct(ctx context.Context, actor entities.Actor, shopID int64, input *entities.CreateProductInput) (*entities.Product, error)
	CreateWarehouseProduct(ctx context.Context, actor entities.Actor, input *entities.CreateProductInput) (*entities.Product, error)
	UpdateProduct(ctx context.Context, actor entities.Actor, id int64, patch entities.ProductPatch) (*entities.Product, error)
	DeleteProduct(ctx context.Context, actor entities.Actor, id int64) error
	GetProduct(ctx context.Context, id int64) (*entities.Product, error)
	SearchProducts(ctx context.Context, filter entities.ProductFilter) ([]*entities.Product, int64, error)
	ListShopProducts(ctx context.Context, shopID int64, page, limit int) ([]*entities.Product, int64, error)
	ListWarehouseProducts(ctx context.Context, warehouseID int64, page, limit int) ([]*entities.Product, int64, error)
}

// ProductHandler handles catalogue endpoints
type ProductHandler struct {
	productUsecase ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUsecase ProductService) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase}
}

// CreateShopProduct lists a product in a shop
// POST /api/v1/shops/:id/products
func (h *ProductHandler) CreateShopProduct(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	shopID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.CreateProductInput
	if !bindJSON(c, &input) {
		return
	}
	product, err := h.productUsecase.CreateShopProduct(c.Request.Context(), caller, shopID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

// CreateWarehouseProduct adds stock to the caller's warehouse
// POST /api/v1/warehouse/products
func (h *ProductHandler) CreateWarehouseProduct(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.CreateProductInput
	if !bindJSON(c, &input) {
		return
	}
	product, err := h.productUsecase.CreateWarehouseProduct(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct patches a held product
// PATCH /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch entities.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}
	product, err := h.productUsecase.UpdateProduct(c.Request.Context(), caller, id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a held product
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.productUsecase.DeleteProduct(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetProduct returns one product
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.productUsecase.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// SearchProducts searches the public catalogue
// GET /api/v1/products?q=&categoryId=&shopId=&warehouseId=&page=&limit=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	filter := entities.ProductFilter{Query: c.Query("q")}
	for param, dst := range map[string]*null.Int64{
		"categoryId":  &filter.CategoryID,
		"shopId":      &filter.ShopID,
		"warehouseId": &filter.WarehouseID,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, domainerrors.BadRequest("invalid "+param))
			return
		}
		*dst = null.Int64From(id)
	}
	filter.Page, filter.Limit = pagination(c)

	products, total, err := h.productUsecase.SearchProducts(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, "products", products, total, filter.Page, filter.Limit)
}

// ListShopProducts lists a shop's catalogue
// GET /api/v1/shops/:id/products
func (h *ProductHandler) ListShopProducts(c *gin.Context) {
	h.listHeld(c, h.productUsecase.ListShopProducts)
}

// ListWarehouseProducts lists a warehouse's stock
// GET /api/v1/warehouses/:id/products
func (h *ProductHandler) ListWarehouseProducts(c *gin.Context) {
	h.listHeld(c, h.productUsecase.ListWarehouseProducts)
}

func (h *ProductHandler) listHeld(c *gin.Context, list func(context.Context, int64, int, int) ([]*entities.Product, int64, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, limit := pagination(c)
	products, total, err := list(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, "products", products, total, page, limit)
}
