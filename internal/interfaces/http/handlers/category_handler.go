package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/interfaces/http/response"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, actor entities.Actor, input *entities.CreateCategoryInput) (*entities.Category, error)
	UpdateCategory(ctx context.Context, actor entities.Actor, id int64, patch entities.CategoryPatch) (*entities.Category, error)
	DeleteCategory(ctx context.Context, actor entities.Actor, id int64) error
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	GetCategory(ctx context.Context, id int64) (*entities.Category, error)
}

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryUsecase CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryUsecase CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase}
}

// CreateCategory adds a category
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.CreateCategoryInput
	if !bindJSON(c, &input) {
		return
	}
	category, err := h.categoryUsecase.CreateCategory(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory renames or re-keys a category
// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch entities.CategoryPatch
	if !bindJSON(c, &patch) {
		return
	}
	category, err := h.categoryUsecase.UpdateCategory(c.Request.Context(), caller, id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryUsecase.DeleteCategory(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCategories lists categories
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryUsecase.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns one category
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.categoryUsecase.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": category})
}
