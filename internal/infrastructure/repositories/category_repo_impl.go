package repositories

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/infrastructure/models"
)

// CategoryRepository implements category data operations
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a category under its caller-chosen id
func (r *CategoryRepository) Create(ctx context.Context, c *entities.Category) error {
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	m := &models.Category{
		ID:          c.ID,
		Name:        c.Name,
		CreatedByID: c.CreatedByID,
		UpdatedByID: c.UpdatedByID.Ptr(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "create category")
	}
	return nil
}

// GetByID gets a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	var m models.Category
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get category")
	}
	return toCategoryEntity(&m), nil
}

// List lists categories by id
func (r *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	var catModels []models.Category
	if err := GetDB(ctx, r.db).Order("id ASC").Find(&catModels).Error; err != nil {
		return nil, translate(err, "list categories")
	}
	cats := make([]*entities.Category, 0, len(catModels))
	for i := range catModels {
		cats = append(cats, toCategoryEntity(&catModels[i]))
	}
	return cats, nil
}

// Update renames a category in place
func (r *CategoryRepository) Update(ctx context.Context, c *entities.Category) error {
	return r.rekey(GetDB(ctx, r.db), c.ID, c)
}

// ChangeID moves a category to a new id and repoints its products in one transaction.
// Creator and creation time stay with the row.
func (r *CategoryRepository) ChangeID(ctx context.Context, oldID int64, c *entities.Category) error {
	if oldID == c.ID {
		return r.Update(ctx, c)
	}
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Category{}).Where("id = ?", c.ID).Count(&taken).Error; err != nil {
			return translate(err, "check category id")
		}
		if taken > 0 {
			return domainerrors.NewError("category id already in use", domainerrors.ErrAlreadyExists)
		}
		if err := r.rekey(tx, oldID, c); err != nil {
			return err
		}
		err := tx.Model(&models.Product{}).Where("category_id = ?", oldID).
			UpdateColumn("category_id", c.ID).Error
		return translate(err, "repoint products")
	})
}

func (r *CategoryRepository) rekey(db *gorm.DB, oldID int64, c *entities.Category) error {
	now := time.Now()
	// Table rather than Model: the primary key itself is among the assigned columns.
	result := db.Table("categories").Where("id = ?", oldID).Updates(map[string]interface{}{
		"id":            c.ID,
		"name":          c.Name,
		"updated_by_id": c.UpdatedByID.Ptr(),
		"updated_at":    now,
	})
	if result.Error != nil {
		return translate(result.Error, "update category")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	c.UpdatedAt = now
	return nil
}

// Delete removes a category and detaches its products
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			return translate(result.Error, "delete category")
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		err := tx.Model(&models.Product{}).Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error
		return translate(err, "detach products")
	})
}

func toCategoryEntity(m *models.Category) *entities.Category {
	return &entities.Category{
		ID:          m.ID,
		Name:        m.Name,
		CreatedByID: m.CreatedByID,
		UpdatedByID: null.Int64FromPtr(m.UpdatedByID),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
