package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/domain/repositories"
	"mercato.backend/pkg/logger"
)

// CategoryUsecase handles product categories
type CategoryUsecase struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryUsecase creates a new category usecase
func NewCategoryUsecase(categoryRepo repositories.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

// CreateCategory adds a category under a caller-chosen id
func (u *CategoryUsecase) CreateCategory(ctx context.Context, actor entities.Actor, input *entities.CreateCategoryInput) (*entities.Category, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpManageCategory); err != nil {
		return nil, err
	}
	if err := entities.ValidateCategoryID(input.ID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("name is required")
	}

	_, err := u.categoryRepo.GetByID(ctx, input.ID)
	if err == nil {
		return nil, domainerrors.Conflict(fmt.Sprintf("category %d already exists", input.ID))
	}
	if !isNotFound(err) {
		return nil, err
	}

	category := &entities.Category{
		ID:          input.ID,
		Name:        name,
		CreatedByID: actor.UserID,
	}
	if err := u.categoryRepo.Create(ctx, category); err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict(fmt.Sprintf("category %q already exists", name))
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category and, when the patch carries a new id, re-keys it atomically
func (u *CategoryUsecase) UpdateCategory(ctx context.Context, actor entities.Actor, id int64, patch entities.CategoryPatch) (*entities.Category, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpManageCategory); err != nil {
		return nil, err
	}

	current, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if patch.Name.HasValue() {
		patch.Name.Value = strings.TrimSpace(patch.Name.Value)
	}
	if err := patch.Apply(&updated); err != nil {
		return nil, err
	}
	updated.UpdatedByID = null.Int64From(actor.UserID)

	if updated.ID == id {
		err = u.categoryRepo.Update(ctx, &updated)
	} else {
		err = u.categoryRepo.ChangeID(ctx, id, &updated)
		if err == nil {
			logger.Info(ctx, "Category re-keyed", zap.Int64("from", id), zap.Int64("to", updated.ID))
		}
	}
	if err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict("category id or name already in use")
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory removes a category; its products become uncategorised
func (u *CategoryUsecase) DeleteCategory(ctx context.Context, actor entities.Actor, id int64) error {
	if err := rbac.Authorize(actor.Role, rbac.OpManageCategory); err != nil {
		return err
	}
	return u.categoryRepo.Delete(ctx, id)
}

// ListCategories lists every category
func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return u.categoryRepo.List(ctx)
}

// GetCategory returns one category
func (u *CategoryUsecase) GetCategory(ctx context.Context, id int64) (*entities.Category, error) {
	return u.categoryRepo.GetByID(ctx, id)
}
