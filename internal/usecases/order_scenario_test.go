package usecases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/infrastructure/models"
	"mercato.backend/internal/infrastructure/repositories"
	"mercato.backend/internal/usecases"
)

// storeScenario wires the order workflow to real repositories on a private sqlite database.
type storeScenario struct {
	db            *gorm.DB
	products      *repositories.ProductRepository
	orders        *repositories.OrderRepository
	orderUC       *usecases.OrderUsecase
	productUC     *usecases.ProductUsecase
	notifications *usecases.NotificationUsecase
}

func newStoreScenario(t *testing.T) *storeScenario {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	s := &storeScenario{
		db:       db,
		products: repositories.NewProductRepository(db),
		orders:   repositories.NewOrderRepository(db),
	}
	shops := repositories.NewShopRepository(db)
	warehouses := repositories.NewWarehouseRepository(db)
	s.notifications = usecases.NewNotificationUsecase(repositories.NewNotificationRepository(db))
	s.orderUC = usecases.NewOrderUsecase(repositories.NewUnitOfWork(db), s.orders, s.products, shops, warehouses, s.notifications)
	s.productUC = usecases.NewProductUsecase(s.products, shops, warehouses, repositories.NewCategoryRepository(db))
	return s
}

func (s *storeScenario) seed(t *testing.T, rows ...interface{}) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, s.db.Create(row).Error)
	}
}

func (s *storeScenario) stock(t *testing.T, productID int64) int {
	t.Helper()
	p, err := s.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}

func (s *storeScenario) inbox(t *testing.T, userID int64) []entities.NotificationType {
	t.Helper()
	list, err := s.notifications.ListNotifications(context.Background(), entities.Actor{UserID: userID}, 0)
	require.NoError(t, err)
	kinds := make([]entities.NotificationType, 0, len(list))
	for _, n := range list {
		kinds = append(kinds, n.Type)
	}
	return kinds
}

func int64Ptr(v int64) *int64 { return &v }

func TestOrderScenario_ShopPurchase(t *testing.T) {
	s := newStoreScenario(t)
	ctx := context.Background()
	owner := entities.Actor{UserID: 30, Username: "owner", Role: entities.RoleRetailer}
	customer := entities.Actor{UserID: 10, Username: "customer", Role: entities.RoleCustomer}

	s.seed(t,
		&models.Shop{ID: 3, Name: "Corner", OwnerID: owner.UserID, Status: string(entities.ApprovalStatusApproved)},
		&models.Product{ID: 5, Name: "Teapot", Price: decimal.RequireFromString("20.00"), Stock: 8, ShopID: int64Ptr(3)},
	)

	order, err := s.orderUC.CreateOrder(ctx, customer, &entities.CreateOrderInput{ProductID: 5, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(10), order.UserID)
	assert.Equal(t, int64(5), order.ProductID)
	assert.Equal(t, null.Int64From(3), order.ShopID)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, entities.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("60.00")), "total %s", order.Total)

	assert.Equal(t, 5, s.stock(t, 5))
	assert.Equal(t, []entities.NotificationType{entities.NotificationOrderPlaced}, s.inbox(t, customer.UserID))
	assert.Equal(t, []entities.NotificationType{entities.NotificationOrderReceived}, s.inbox(t, owner.UserID))

	t.Run("total stays frozen when the price changes", func(t *testing.T) {
		_, err := s.productUC.UpdateProduct(ctx, owner, 5, entities.ProductPatch{Price: entities.Some(decimal.RequireFromString("35.00"))})
		require.NoError(t, err)

		stored, err := s.orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, stored.Total.Equal(decimal.RequireFromString("60.00")), "total %s", stored.Total)
		assert.Equal(t, 5, s.stock(t, 5), "a price edit must not touch stock")
	})
}

func TestOrderScenario_WarehouseRequestReservesOnApproval(t *testing.T) {
	s := newStoreScenario(t)
	ctx := context.Background()
	requester := entities.Actor{UserID: 20, Username: "requester", Role: entities.RoleCustomer}
	ops := entities.Actor{UserID: 3, Username: "ops", Role: entities.RoleOperationsAdmin}

	s.seed(t,
		&models.Warehouse{ID: 2, SupplierID: 60, Name: "Depot", Status: string(entities.ApprovalStatusApproved)},
		&models.Product{ID: 9, Name: "Flour", Price: decimal.RequireFromString("1.25"), Stock: 4, WarehouseID: int64Ptr(2)},
	)

	first, err := s.orderUC.RequestWarehouseOrder(ctx, requester, &entities.WarehouseOrderInput{ProductID: 9, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusRequested, first.Status)
	assert.Equal(t, 4, s.stock(t, 9), "a request does not reserve")

	second, err := s.orderUC.RequestWarehouseOrder(ctx, requester, &entities.WarehouseOrderInput{ProductID: 9, Quantity: 1})
	require.NoError(t, err)

	moved, err := s.orderUC.UpdateOrderStatus(ctx, ops, first.ID, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, moved.Status)
	assert.Equal(t, 0, s.stock(t, 9))

	_, err = s.orderUC.UpdateOrderStatus(ctx, ops, second.ID, "PENDING")
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	stored, err := s.orders.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusRequested, stored.Status)
	assert.Equal(t, 0, s.stock(t, 9))

	_, err = s.orderUC.RequestWarehouseOrder(ctx, requester, &entities.WarehouseOrderInput{ProductID: 9, Quantity: 1})
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}
