package usecases_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/usecases"
)

type orderFixture struct {
	uow        *MockUnitOfWork
	orders     *MockOrderRepository
	products   *MockProductRepository
	shops      *MockShopRepository
	warehouses *MockWarehouseRepository
	notifier   *MockNotifier
	usecase    *usecases.OrderUsecase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		uow:        new(MockUnitOfWork),
		orders:     new(MockOrderRepository),
		products:   new(MockProductRepository),
		shops:      new(MockShopRepository),
		warehouses: new(MockWarehouseRepository),
		notifier:   new(MockNotifier),
	}
	f.uow.On("Do", mock.Anything, mock.Anything).Return()
	f.usecase = usecases.NewOrderUsecase(f.uow, f.orders, f.products, f.shops, f.warehouses, f.notifier)
	return f
}

var (
	buyer    = entities.Actor{UserID: 1, Username: "buyer", Role: entities.RoleCustomer}
	retailer = entities.Actor{UserID: 2, Username: "retailer", Role: entities.RoleRetailer}
	opsAdmin = entities.Actor{UserID: 3, Username: "ops", Role: entities.RoleOperationsAdmin}
	courier  = entities.Actor{UserID: 4, Username: "courier", Role: entities.RoleCourier}
)

func shopProduct() *entities.Product {
	return &entities.Product{ID: 100, Name: "Mug", Price: decimal.RequireFromString("2.50"), Stock: 10, ShopID: null.Int64From(10)}
}

func warehouseProduct() *entities.Product {
	return &entities.Product{ID: 200, Name: "Flour", Price: decimal.RequireFromString("1.25"), Stock: 50, WarehouseID: null.Int64From(20)}
}

func approvedShop(ownerID int64) *entities.Shop {
	return &entities.Shop{ID: 10, Name: "Corner", OwnerID: ownerID, Status: entities.ApprovalStatusApproved}
}

func approvedWarehouse() *entities.Warehouse {
	return &entities.Warehouse{ID: 20, Name: "Depot", SupplierID: 60, Status: entities.ApprovalStatusApproved}
}

func TestOrderUsecase_CreateOrder_Success(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.products.On("GetByID", mock.Anything, int64(100)).Return(shopProduct(), nil)
	f.shops.On("GetByID", mock.Anything, int64(10)).Return(approvedShop(50), nil)
	f.products.On("Reserve", mock.Anything, int64(100), 4).Return(decimal.RequireFromString("2.50"), nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entities.Order) bool {
		return o.Status == entities.OrderStatusPending &&
			o.Total.Equal(decimal.RequireFromString("10")) &&
			o.ShopID == null.Int64From(10) &&
			o.UserID == buyer.UserID
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Order).ID = 99
	}).Return(nil)
	f.notifier.On("Emit", mock.Anything, buyer.UserID, entities.NotificationOrderPlaced, mock.Anything).Return()
	f.notifier.On("Emit", mock.Anything, int64(50), entities.NotificationOrderReceived, mock.Anything).Return()

	order, err := f.usecase.CreateOrder(ctx, buyer, &entities.CreateOrderInput{ProductID: 100, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(99), order.ID)
	assert.Equal(t, entities.OrderStatusPending, order.Status)
	f.uow.AssertNumberOfCalls(t, "Do", 1)
	f.notifier.AssertExpectations(t)
}

func TestOrderUsecase_CreateOrder_InsufficientStock(t *testing.T) {
	f := newOrderFixture()

	f.products.On("GetByID", mock.Anything, int64(100)).Return(shopProduct(), nil)
	f.shops.On("GetByID", mock.Anything, int64(10)).Return(approvedShop(50), nil)
	f.products.On("Reserve", mock.Anything, int64(100), 11).Return(decimal.Zero, domainerrors.ErrInsufficientStock)

	_, err := f.usecase.CreateOrder(context.Background(), buyer, &entities.CreateOrderInput{ProductID: 100, Quantity: 11})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Equal(t, domainerrors.CodeInsufficientStock, domainerrors.FromError(err).Code)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_CreateOrder_Preconditions(t *testing.T) {
	t.Run("shop not approved", func(t *testing.T) {
		f := newOrderFixture()
		shop := approvedShop(50)
		shop.Status = entities.ApprovalStatusPending
		f.products.On("GetByID", mock.Anything, int64(100)).Return(shopProduct(), nil)
		f.shops.On("GetByID", mock.Anything, int64(10)).Return(shop, nil)

		_, err := f.usecase.CreateOrder(context.Background(), buyer, &entities.CreateOrderInput{ProductID: 100, Quantity: 1})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		f.products.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("warehouse product", func(t *testing.T) {
		f := newOrderFixture()
		f.products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)

		_, err := f.usecase.CreateOrder(context.Background(), buyer, &entities.CreateOrderInput{ProductID: 200, Quantity: 1})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})

	t.Run("missing product", func(t *testing.T) {
		f := newOrderFixture()
		f.products.On("GetByID", mock.Anything, int64(5)).Return(nil, domainerrors.ErrNotFound)

		_, err := f.usecase.CreateOrder(context.Background(), buyer, &entities.CreateOrderInput{ProductID: 5, Quantity: 1})
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("non positive quantity", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.usecase.CreateOrder(context.Background(), buyer, &entities.CreateOrderInput{ProductID: 100, Quantity: 0})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		f.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestOrderUsecase_CreateWarehouseOrder_ForSelf(t *testing.T) {
	f := newOrderFixture()

	f.products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)
	f.warehouses.On("GetByID", mock.Anything, int64(20)).Return(approvedWarehouse(), nil)
	f.products.On("Reserve", mock.Anything, int64(200), 8).Return(decimal.RequireFromString("1.25"), nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entities.Order) bool {
		return o.Status == entities.OrderStatusProcessing && !o.ShopID.Valid && o.Total.Equal(decimal.NewFromInt(10))
	})).Return(nil)
	f.notifier.On("Emit", mock.Anything, buyer.UserID, entities.NotificationOrderPlaced, mock.Anything).Return()

	order, err := f.usecase.CreateWarehouseOrder(context.Background(), buyer, &entities.WarehouseOrderInput{ProductID: 200, Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusProcessing, order.Status)
	f.notifier.AssertNumberOfCalls(t, "Emit", 1)
}

func TestOrderUsecase_CreateWarehouseOrder_ForShop(t *testing.T) {
	f := newOrderFixture()
	shopID := int64(10)

	f.products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)
	f.warehouses.On("GetByID", mock.Anything, int64(20)).Return(approvedWarehouse(), nil)
	f.shops.On("GetByID", mock.Anything, shopID).Return(approvedShop(retailer.UserID), nil)
	f.products.On("Reserve", mock.Anything, int64(200), 2).Return(decimal.RequireFromString("1.25"), nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entities.Order) bool {
		return o.Status == entities.OrderStatusPending && o.ShopID == null.Int64From(shopID)
	})).Return(nil)
	f.notifier.On("Emit", mock.Anything, retailer.UserID, entities.NotificationOrderPlaced, mock.Anything).Return()
	f.notifier.On("Emit", mock.Anything, int64(60), entities.NotificationOrderReceived, mock.Anything).Return()

	order, err := f.usecase.CreateWarehouseOrder(context.Background(), retailer, &entities.WarehouseOrderInput{ProductID: 200, Quantity: 2, ShopID: &shopID})
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, order.Status)
	f.notifier.AssertExpectations(t)
}

func TestOrderUsecase_CreateWarehouseOrder_Rejections(t *testing.T) {
	shopID := int64(10)

	t.Run("courier is not allowed", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.usecase.CreateWarehouseOrder(context.Background(), courier, &entities.WarehouseOrderInput{ProductID: 200, Quantity: 1})
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
		f.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("customer cannot order for a shop", func(t *testing.T) {
		f := newOrderFixture()
		f.products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)
		f.warehouses.On("GetByID", mock.Anything, int64(20)).Return(approvedWarehouse(), nil)

		_, err := f.usecase.CreateWarehouseOrder(context.Background(), buyer, &entities.WarehouseOrderInput{ProductID: 200, Quantity: 1, ShopID: &shopID})
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	})

	t.Run("shop owned by someone else", func(t *testing.T) {
		f := newOrderFixture()
		f.products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)
		f.warehouses.On("GetByID", mock.Anything, int64(20)).Return(approvedWarehouse(), nil)
		f.shops.On("GetByID", mock.Anything, shopID).Return(approvedShop(999), nil)

		_, err := f.usecase.CreateWarehouseOrder(context.Background(), retailer, &entities.WarehouseOrderInput{ProductID: 200, Quantity: 1, ShopID: &shopID})
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
		f.products.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("warehouse not approved", func(t *testing.T) {
		f := newOrderFixture()
		warehouse := approvedWarehouse()
		warehouse.Status = entities.ApprovalStatusRejected
		f.products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)
		f.warehouses.On("GetByID", mock.Anything, int64(20)).Return(warehouse, nil)

		_, err := f.usecase.CreateWarehouseOrder(context.Background(), buyer, &entities.WarehouseOrderInput{ProductID: 200, Quantity: 1})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})
}

func TestOrderUsecase_RequestWarehouseOrder_DoesNotReserve(t *testing.T) {
	f := newOrderFixture()

	f.products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)
	f.warehouses.On("GetByID", mock.Anything, int64(20)).Return(approvedWarehouse(), nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *entities.Order) bool {
		return o.Status == entities.OrderStatusRequested && o.Total.Equal(decimal.RequireFromString("62.5"))
	})).Return(nil)
	f.notifier.On("Emit", mock.Anything, courier.UserID, entities.NotificationOrderRequested, mock.Anything).Return()
	f.notifier.On("Emit", mock.Anything, int64(60), entities.NotificationOrderRequested, mock.Anything).Return()

	order, err := f.usecase.RequestWarehouseOrder(context.Background(), courier, &entities.WarehouseOrderInput{ProductID: 200, Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusRequested, order.Status)
	f.products.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertExpectations(t)
}

func TestOrderUsecase_RequestWarehouseOrder_MoreThanStocked(t *testing.T) {
	f := newOrderFixture()

	f.products.On("GetByID", mock.Anything, int64(200)).Return(warehouseProduct(), nil)
	f.warehouses.On("GetByID", mock.Anything, int64(20)).Return(approvedWarehouse(), nil)

	_, err := f.usecase.RequestWarehouseOrder(context.Background(), courier, &entities.WarehouseOrderInput{ProductID: 200, Quantity: 51})
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateOrderStatus_ReservesLeavingRequested(t *testing.T) {
	f := newOrderFixture()
	order := &entities.Order{ID: 7, UserID: buyer.UserID, ProductID: 200, Quantity: 3, Status: entities.OrderStatusRequested}

	f.orders.On("GetByID", mock.Anything, int64(7)).Return(order, nil)
	f.products.On("Reserve", mock.Anything, int64(200), 3).Return(decimal.RequireFromString("1.25"), nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(7), entities.OrderStatusRequested, entities.OrderStatusPending).Return(nil)
	f.notifier.On("Emit", mock.Anything, buyer.UserID, entities.NotificationOrderStatusUpdated, mock.Anything).Return()

	updated, err := f.usecase.UpdateOrderStatus(context.Background(), opsAdmin, 7, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, updated.Status)
	f.products.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertExpectations(t)
}

func TestOrderUsecase_UpdateOrderStatus_InsufficientStockKeepsRequested(t *testing.T) {
	f := newOrderFixture()
	order := &entities.Order{ID: 7, UserID: buyer.UserID, ProductID: 200, Quantity: 300, Status: entities.OrderStatusRequested}

	f.orders.On("GetByID", mock.Anything, int64(7)).Return(order, nil)
	f.products.On("Reserve", mock.Anything, int64(200), 300).Return(decimal.Zero, domainerrors.ErrInsufficientStock)

	_, err := f.usecase.UpdateOrderStatus(context.Background(), opsAdmin, 7, "PROCESSING")
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateOrderStatus_RejectReleasesStock(t *testing.T) {
	f := newOrderFixture()
	order := &entities.Order{ID: 8, UserID: buyer.UserID, ProductID: 100, Quantity: 2, Status: entities.OrderStatusProcessing}

	f.orders.On("GetByID", mock.Anything, int64(8)).Return(order, nil)
	f.products.On("Release", mock.Anything, int64(100), 2).Return(nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(8), entities.OrderStatusProcessing, entities.OrderStatusRejected).Return(nil)
	f.notifier.On("Emit", mock.Anything, buyer.UserID, entities.NotificationOrderStatusUpdated, mock.Anything).Return()

	updated, err := f.usecase.UpdateOrderStatus(context.Background(), opsAdmin, 8, "REJECTED")
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusRejected, updated.Status)
	f.products.AssertExpectations(t)
}

func TestOrderUsecase_UpdateOrderStatus_Rejections(t *testing.T) {
	t.Run("only operations admins", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.usecase.UpdateOrderStatus(context.Background(), retailer, 7, "SHIPPED")
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
		f.orders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.usecase.UpdateOrderStatus(context.Background(), opsAdmin, 7, "LOST")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})

	t.Run("backwards move", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(7)).Return(&entities.Order{ID: 7, ProductID: 1, Quantity: 1, Status: entities.OrderStatusShipped}, nil)

		_, err := f.usecase.UpdateOrderStatus(context.Background(), opsAdmin, 7, "PENDING")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
		f.products.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
		f.products.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost compare and set", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(7)).Return(&entities.Order{ID: 7, ProductID: 1, Quantity: 1, Status: entities.OrderStatusPending}, nil)
		f.orders.On("UpdateStatus", mock.Anything, int64(7), entities.OrderStatusPending, entities.OrderStatusProcessing).
			Return(domainerrors.NewError("order is no longer PENDING", domainerrors.ErrInvalidTransition))

		_, err := f.usecase.UpdateOrderStatus(context.Background(), opsAdmin, 7, "PROCESSING")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
		f.notifier.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderUsecase_CancelOrder(t *testing.T) {
	t.Run("buyer cancels pending order", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(9)).Return(&entities.Order{ID: 9, UserID: buyer.UserID, ProductID: 100, Quantity: 5, Status: entities.OrderStatusPending}, nil)
		f.products.On("Release", mock.Anything, int64(100), 5).Return(nil)
		f.orders.On("UpdateStatus", mock.Anything, int64(9), entities.OrderStatusPending, entities.OrderStatusCancelled).Return(nil)
		f.notifier.On("Emit", mock.Anything, buyer.UserID, entities.NotificationOrderCancelled, mock.Anything).Return()

		order, err := f.usecase.CancelOrder(context.Background(), buyer, 9)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusCancelled, order.Status)
		f.products.AssertExpectations(t)
	})

	t.Run("requested order holds no stock", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(9)).Return(&entities.Order{ID: 9, UserID: buyer.UserID, ProductID: 100, Quantity: 5, Status: entities.OrderStatusRequested}, nil)
		f.orders.On("UpdateStatus", mock.Anything, int64(9), entities.OrderStatusRequested, entities.OrderStatusCancelled).Return(nil)
		f.notifier.On("Emit", mock.Anything, buyer.UserID, entities.NotificationOrderCancelled, mock.Anything).Return()

		_, err := f.usecase.CancelOrder(context.Background(), buyer, 9)
		require.NoError(t, err)
		f.products.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("someone else's order", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(9)).Return(&entities.Order{ID: 9, UserID: 77, ProductID: 100, Quantity: 5, Status: entities.OrderStatusPending}, nil)

		_, err := f.usecase.CancelOrder(context.Background(), buyer, 9)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
		f.products.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already processing", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(9)).Return(&entities.Order{ID: 9, UserID: buyer.UserID, ProductID: 100, Quantity: 5, Status: entities.OrderStatusProcessing}, nil)

		_, err := f.usecase.CancelOrder(context.Background(), buyer, 9)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	})
}

func TestOrderUsecase_GetOrder_Visibility(t *testing.T) {
	order := &entities.Order{ID: 5, UserID: buyer.UserID, ProductID: 100, ShopID: null.Int64From(10), Quantity: 1, Status: entities.OrderStatusPending}

	t.Run("buyer", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(order, nil)
		got, err := f.usecase.GetOrder(context.Background(), buyer, 5)
		require.NoError(t, err)
		assert.Equal(t, order, got)
	})

	t.Run("shop owner", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(order, nil)
		f.shops.On("GetByID", mock.Anything, int64(10)).Return(approvedShop(retailer.UserID), nil)
		_, err := f.usecase.GetOrder(context.Background(), retailer, 5)
		assert.NoError(t, err)
	})

	t.Run("admin", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(order, nil)
		_, err := f.usecase.GetOrder(context.Background(), opsAdmin, 5)
		assert.NoError(t, err)
	})

	t.Run("stranger", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(order, nil)
		f.shops.On("GetByID", mock.Anything, int64(10)).Return(approvedShop(50), nil)
		f.products.On("GetByID", mock.Anything, int64(100)).Return(shopProduct(), nil)
		_, err := f.usecase.GetOrder(context.Background(), courier, 5)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	})
}

func TestOrderUsecase_Lists(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("List", mock.Anything, entities.OrderFilter{UserID: null.Int64From(buyer.UserID), Page: 1, Limit: 10}).
		Return([]*entities.Order{{ID: 1}}, int64(1), nil)
	orders, total, err := f.usecase.ListMyOrders(ctx, buyer, 1, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(1), total)

	_, _, err = f.usecase.ListOrders(ctx, buyer, "", 1, 10)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, _, err = f.usecase.ListOrders(ctx, opsAdmin, "NOPE", 1, 10)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	f.orders.On("List", mock.Anything, entities.OrderFilter{Status: entities.OrderStatusShipped, Page: 2, Limit: 5}).
		Return([]*entities.Order{}, int64(0), nil)
	_, _, err = f.usecase.ListOrders(ctx, opsAdmin, "SHIPPED", 2, 5)
	assert.NoError(t, err)

	f.shops.On("GetByID", mock.Anything, int64(10)).Return(approvedShop(50), nil)
	_, _, err = f.usecase.ListShopOrders(ctx, retailer, 10, 1, 10)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	f.orders.On("List", mock.Anything, entities.OrderFilter{ShopID: null.Int64From(10), Page: 1, Limit: 10}).
		Return([]*entities.Order{{ID: 4, ShopID: null.Int64From(10)}}, int64(1), nil)
	orders, _, err = f.usecase.ListShopOrders(ctx, opsAdmin, 10, 1, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
