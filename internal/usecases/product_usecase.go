package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/domain/repositories"
)

// ProductUsecase handles the shop and warehouse catalogues
type ProductUsecase struct {
	productRepo   repositories.ProductRepository
	shopRepo      repositories.ShopRepository
	warehouseRepo repositories.WarehouseRepository
	categoryRepo  repositories.CategoryRepository
}

// NewProductUsecase creates a new product usecase
func NewProductUsecase(
	productRepo repositories.ProductRepository,
	shopRepo repositories.ShopRepository,
	warehouseRepo repositories.WarehouseRepository,
	categoryRepo repositories.CategoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		shopRepo:      shopRepo,
		warehouseRepo: warehouseRepo,
		categoryRepo:  categoryRepo,
	}
}

// CreateShopProduct lists a product in an approved shop the caller owns
func (u *ProductUsecase) CreateShopProduct(ctx context.Context, actor entities.Actor, shopID int64, input *entities.CreateProductInput) (*entities.Product, error) {
	shop, err := u.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != actor.UserID {
		return nil, domainerrors.Unauthorized("you do not own this shop")
	}
	if shop.Status != entities.ApprovalStatusApproved {
		return nil, domainerrors.BadRequest("shop is not approved")
	}

	product := newProduct(input)
	product.ShopID = null.Int64From(shop.ID)
	if err := u.create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateWarehouseProduct adds stock to the caller's approved warehouse
func (u *ProductUsecase) CreateWarehouseProduct(ctx context.Context, actor entities.Actor, input *entities.CreateProductInput) (*entities.Product, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpCreateWarehouse); err != nil {
		return nil, err
	}

	warehouse, err := u.warehouseRepo.GetBySupplier(ctx, actor.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NotFound("you do not have a warehouse")
		}
		return nil, err
	}
	if warehouse.Status != entities.ApprovalStatusApproved {
		return nil, domainerrors.BadRequest("warehouse is not approved")
	}

	product := newProduct(input)
	product.WarehouseID = null.Int64From(warehouse.ID)
	if err := u.create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update to a product held by the caller
func (u *ProductUsecase) UpdateProduct(ctx context.Context, actor entities.Actor, id int64, patch entities.ProductPatch) (*entities.Product, error) {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.authorizeHolder(ctx, actor, product); err != nil {
		return nil, err
	}

	if err := patch.Apply(product); err != nil {
		return nil, err
	}
	if patch.CategoryID.HasValue() {
		if err := u.checkCategory(ctx, product.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := u.productRepo.Update(ctx, product, patch.Stock.Set); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product held by the caller
func (u *ProductUsecase) DeleteProduct(ctx context.Context, actor entities.Actor, id int64) error {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.authorizeHolder(ctx, actor, product); err != nil {
		return err
	}
	return u.productRepo.Delete(ctx, id)
}

// GetProduct returns one product
func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (*entities.Product, error) {
	return u.productRepo.GetByID(ctx, id)
}

// SearchProducts searches products of approved shops and warehouses
func (u *ProductUsecase) SearchProducts(ctx context.Context, filter entities.ProductFilter) ([]*entities.Product, int64, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.ApprovedOnly = true
	return u.productRepo.List(ctx, filter)
}

// ListShopProducts lists one shop's catalogue
func (u *ProductUsecase) ListShopProducts(ctx context.Context, shopID int64, page, limit int) ([]*entities.Product, int64, error) {
	return u.SearchProducts(ctx, entities.ProductFilter{ShopID: null.Int64From(shopID), Page: page, Limit: limit})
}

// ListWarehouseProducts lists one warehouse's stock
func (u *ProductUsecase) ListWarehouseProducts(ctx context.Context, warehouseID int64, page, limit int) ([]*entities.Product, int64, error) {
	return u.SearchProducts(ctx, entities.ProductFilter{WarehouseID: null.Int64From(warehouseID), Page: page, Limit: limit})
}

func (u *ProductUsecase) create(ctx context.Context, product *entities.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if err := u.checkCategory(ctx, product.CategoryID); err != nil {
		return err
	}
	return u.productRepo.Create(ctx, product)
}

func (u *ProductUsecase) checkCategory(ctx context.Context, categoryID null.Int64) error {
	if !categoryID.Valid {
		return nil
	}
	if _, err := u.categoryRepo.GetByID(ctx, categoryID.Int64); err != nil {
		if isNotFound(err) {
			return domainerrors.BadRequest(fmt.Sprintf("category %d does not exist", categoryID.Int64))
		}
		return err
	}
	return nil
}

func (u *ProductUsecase) authorizeHolder(ctx context.Context, actor entities.Actor, product *entities.Product) error {
	switch {
	case product.ShopID.Valid:
		shop, err := u.shopRepo.GetByID(ctx, product.ShopID.Int64)
		if err != nil {
			return err
		}
		if shop.OwnerID == actor.UserID {
			return nil
		}
	case product.WarehouseID.Valid:
		warehouse, err := u.warehouseRepo.GetByID(ctx, product.WarehouseID.Int64)
		if err != nil {
			return err
		}
		if warehouse.SupplierID == actor.UserID {
			return nil
		}
	}
	return domainerrors.Unauthorized("you do not own this product")
}

func newProduct(input *entities.CreateProductInput) *entities.Product {
	return &entities.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: optionalString(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  null.Int64FromPtr(input.CategoryID),
	}
}
