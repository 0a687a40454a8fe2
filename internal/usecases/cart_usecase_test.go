package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/usecases"
)

func TestCartUsecase_AddToCart(t *testing.T) {
	cart := new(MockCartRepository)
	products := new(MockProductRepository)
	uc := usecases.NewCartUsecase(cart, new(MockWishlistRepository), products)
	ctx := context.Background()

	products.On("GetByID", mock.Anything, int64(100)).Return(shopProduct(), nil)
	products.On("GetByID", mock.Anything, int64(404)).Return(nil, domainerrors.ErrNotFound)
	cart.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	item, err := uc.AddToCart(ctx, buyer, &entities.CartItemInput{ProductID: 100, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "Mug", item.Product.Name)

	cart.On("Add", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists)
	_, err = uc.AddToCart(ctx, buyer, &entities.CartItemInput{ProductID: 100, Quantity: 1})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = uc.AddToCart(ctx, buyer, &entities.CartItemInput{ProductID: 404, Quantity: 1})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = uc.AddToCart(ctx, buyer, &entities.CartItemInput{ProductID: 100, Quantity: 0})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestCartUsecase_UpdateAndRemove(t *testing.T) {
	cart := new(MockCartRepository)
	uc := usecases.NewCartUsecase(cart, new(MockWishlistRepository), new(MockProductRepository))
	ctx := context.Background()

	cart.On("UpdateQuantity", mock.Anything, buyer.UserID, int64(100), 5).Return(nil)
	cart.On("Remove", mock.Anything, buyer.UserID, int64(100)).Return(domainerrors.ErrNotFound)

	require.NoError(t, uc.UpdateCartItem(ctx, buyer, 100, &entities.CartQuantityInput{Quantity: 5}))
	assert.ErrorIs(t, uc.UpdateCartItem(ctx, buyer, 100, &entities.CartQuantityInput{Quantity: -1}), domainerrors.ErrInvalidInput)
	assert.ErrorIs(t, uc.RemoveFromCart(ctx, buyer, 100), domainerrors.ErrNotFound)
	cart.AssertNumberOfCalls(t, "UpdateQuantity", 1)
}

func TestCartUsecase_Wishlist(t *testing.T) {
	wishlist := new(MockWishlistRepository)
	products := new(MockProductRepository)
	uc := usecases.NewCartUsecase(new(MockCartRepository), wishlist, products)
	ctx := context.Background()

	products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)
	wishlist.On("Add", mock.Anything, mock.MatchedBy(func(i *entities.WishlistItem) bool {
		return i.UserID == buyer.UserID && i.ProductID == 200
	})).Return(nil)
	wishlist.On("ListByUser", mock.Anything, buyer.UserID).Return([]*entities.WishlistItem{{UserID: 1, ProductID: 200}}, nil)
	wishlist.On("Remove", mock.Anything, buyer.UserID, int64(200)).Return(nil)

	for i := 0; i < 2; i++ {
		_, err := uc.AddToWishlist(ctx, buyer, &entities.WishlistItemInput{ProductID: 200})
		require.NoError(t, err)
	}

	items, err := uc.ListWishlist(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	require.NoError(t, uc.RemoveFromWishlist(ctx, buyer, 200))
}
