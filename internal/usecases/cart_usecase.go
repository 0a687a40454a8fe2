package usecases

import (
	"context"

	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/repositories"
)

// CartUsecase handles carts and wishlists
type CartUsecase struct {
	cartRepo     repositories.CartRepository
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewCartUsecase creates a new cart usecase
func NewCartUsecase(
	cartRepo repositories.CartRepository,
	wishlistRepo repositories.WishlistRepository,
	productRepo repositories.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// AddToCart puts a product in the caller's cart
func (u *CartUsecase) AddToCart(ctx context.Context, actor entities.Actor, input *entities.CartItemInput) (*entities.CartItem, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.BadRequest("quantity must be positive")
	}
	product, err := u.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	item := &entities.CartItem{
		UserID:    actor.UserID,
		ProductID: product.ID,
		Quantity:  input.Quantity,
	}
	if err := u.cartRepo.Add(ctx, item); err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict("product is already in the cart")
		}
		return nil, err
	}
	item.Product = product
	return item, nil
}

// UpdateCartItem changes the quantity of a cart line
func (u *CartUsecase) UpdateCartItem(ctx context.Context, actor entities.Actor, productID int64, input *entities.CartQuantityInput) error {
	if input.Quantity <= 0 {
		return domainerrors.BadRequest("quantity must be positive")
	}
	return u.cartRepo.UpdateQuantity(ctx, actor.UserID, productID, input.Quantity)
}

// RemoveFromCart drops a cart line
func (u *CartUsecase) RemoveFromCart(ctx context.Context, actor entities.Actor, productID int64) error {
	return u.cartRepo.Remove(ctx, actor.UserID, productID)
}

// ListCart lists the caller's cart with products
func (u *CartUsecase) ListCart(ctx context.Context, actor entities.Actor) ([]*entities.CartItem, error) {
	return u.cartRepo.ListByUser(ctx, actor.UserID)
}

// AddToWishlist saves a product; adding it twice is a no-op
func (u *CartUsecase) AddToWishlist(ctx context.Context, actor entities.Actor, input *entities.WishlistItemInput) (*entities.WishlistItem, error) {
	product, err := u.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	item := &entities.WishlistItem{UserID: actor.UserID, ProductID: product.ID}
	if err := u.wishlistRepo.Add(ctx, item); err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// RemoveFromWishlist drops a saved product
func (u *CartUsecase) RemoveFromWishlist(ctx context.Context, actor entities.Actor, productID int64) error {
	return u.wishlistRepo.Remove(ctx, actor.UserID, productID)
}

// ListWishlist lists the caller's saved products
func (u *CartUsecase) ListWishlist(ctx context.Context, actor entities.Actor) ([]*entities.WishlistItem, error) {
	return u.wishlistRepo.ListByUser(ctx, actor.UserID)
}
