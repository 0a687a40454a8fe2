package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/infrastructure/models"
	"mercato.backend/pkg/utils"
)

// ProductRepository implements product data operations and the stock ledger
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Reserve debits stock with a single conditional UPDATE so concurrent reservations can never oversell.
func (r *ProductRepository) Reserve(ctx context.Context, productID int64, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, domainerrors.NewError("quantity must be positive", domainerrors.ErrInvalidInput)
	}
	db := GetDB(ctx, r.db)
	result := db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return decimal.Zero, translate(result.Error, "reserve stock")
	}

	var m models.Product
	if err := db.Select("id", "price", "stock").Where("id = ?", productID).First(&m).Error; err != nil {
		return decimal.Zero, translate(err, "read reserved product")
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, domainerrors.ErrInsufficientStock
	}
	return m.Price, nil
}

// Release credits stock back to a product
func (r *ProductRepository) Release(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return domainerrors.NewError("quantity must be positive", domainerrors.ErrInvalidInput)
	}
	result := GetDB(ctx, r.db).Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return translate(result.Error, "release stock")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, p *entities.Product) error {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	m := toProductModel(p)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "create product")
	}
	p.ID = m.ID
	return nil
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entities.Product, error) {
	var m models.Product
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get product")
	}
	return toProductEntity(&m), nil
}

// Update writes the editable columns. The holder is fixed at creation.
// Stock is only written when setStock is true so an edit made from a stale read
// cannot undo reservations taken since.
func (r *ProductRepository) Update(ctx context.Context, p *entities.Product, setStock bool) error {
	now := time.Now()
	columns := map[string]interface{}{
		"name":        p.Name,
		"description": p.Description.Ptr(),
		"price":       p.Price,
		"category_id": p.CategoryID.Ptr(),
		"updated_at":  now,
	}
	if setStock {
		columns["stock"] = p.Stock
	}
	result := GetDB(ctx, r.db).Model(&models.Product{}).Where("id = ?", p.ID).Updates(columns)
	if result.Error != nil {
		return translate(result.Error, "update product")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	p.UpdatedAt = now
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "delete product")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List searches products and returns one page plus the total match count
func (r *ProductRepository) List(ctx context.Context, filter entities.ProductFilter) ([]*entities.Product, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Product{})

	if filter.Query != "" {
		term := "%" + filter.Query + "%"
		query = query.Where("(LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))", term, term)
	}
	if filter.CategoryID.Valid {
		query = query.Where("category_id = ?", filter.CategoryID.Int64)
	}
	if filter.ShopID.Valid {
		query = query.Where("shop_id = ?", filter.ShopID.Int64)
	}
	if filter.WarehouseID.Valid {
		query = query.Where("warehouse_id = ?", filter.WarehouseID.Int64)
	}
	if filter.ApprovedOnly {
		approved := string(entities.ApprovalStatusApproved)
		query = query.Where(
			"(shop_id IN (SELECT id FROM shops WHERE status = ?) OR warehouse_id IN (SELECT id FROM warehouses WHERE status = ?))",
			approved, approved,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count products")
	}

	page := utils.NewPageRequest(filter.Page, filter.Limit)
	query = query.Order("id ASC")
	if page.Limit > 0 {
		query = query.Limit(page.Limit).Offset(page.Offset())
	}

	var productModels []models.Product
	if err := query.Find(&productModels).Error; err != nil {
		return nil, 0, translate(err, "list products")
	}
	products := make([]*entities.Product, 0, len(productModels))
	for i := range productModels {
		products = append(products, toProductEntity(&productModels[i]))
	}
	return products, total, nil
}

func toProductModel(p *entities.Product) *models.Product {
	return &models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description.Ptr(),
		Price:       p.Price,
		Stock:       p.Stock,
		ShopID:      p.ShopID.Ptr(),
		WarehouseID: p.WarehouseID.Ptr(),
		CategoryID:  p.CategoryID.Ptr(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductEntity(m *models.Product) *entities.Product {
	return &entities.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: null.StringFromPtr(m.Description),
		Price:       m.Price,
		Stock:       m.Stock,
		ShopID:      null.Int64FromPtr(m.ShopID),
		WarehouseID: null.Int64FromPtr(m.WarehouseID),
		CategoryID:  null.Int64FromPtr(m.CategoryID),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
