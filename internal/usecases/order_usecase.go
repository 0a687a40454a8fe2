package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/domain/repositories"
	"mercato.backend/pkg/logger"
	"mercato.backend/pkg/metrics"
)

// order kinds used as metric labels
const (
	orderKindShop             = "shop"
	orderKindWarehouse        = "warehouse"
	orderKindWarehouseForShop = "warehouse_shop"
	orderKindRequest          = "request"
)

// OrderUsecase drives the order workflow and the stock it holds
type OrderUsecase struct {
	uow           repositories.UnitOfWork
	orderRepo     repositories.OrderRepository
	productRepo   repositories.ProductRepository
	shopRepo      repositories.ShopRepository
	warehouseRepo repositories.WarehouseRepository
	notifier      Notifier
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	uow repositories.UnitOfWork,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	shopRepo repositories.ShopRepository,
	warehouseRepo repositories.WarehouseRepository,
	notifier Notifier,
) *OrderUsecase {
	return &OrderUsecase{
		uow:           uow,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		shopRepo:      shopRepo,
		warehouseRepo: warehouseRepo,
		notifier:      notifier,
	}
}

// CreateOrder buys a product from an approved shop, reserving stock
func (u *OrderUsecase) CreateOrder(ctx context.Context, actor entities.Actor, input *entities.CreateOrderInput) (*entities.Order, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpCreateOrder); err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, domainerrors.BadRequest("quantity must be positive")
	}

	product, err := u.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.InShop() {
		return nil, domainerrors.BadRequest("product is not sold by a shop")
	}
	shop, err := u.shopRepo.GetByID(ctx, product.ShopID.Int64)
	if err != nil {
		return nil, err
	}
	if shop.Status != entities.ApprovalStatusApproved {
		return nil, domainerrors.BadRequest("shop is not approved")
	}

	order := &entities.Order{
		UserID:    actor.UserID,
		ProductID: product.ID,
		ShopID:    product.ShopID,
		Quantity:  input.Quantity,
		Status:    entities.OrderStatusPending,
	}
	if err := u.placeReserved(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrderCreated(orderKindShop)
	emitAll(ctx, u.notifier, []pendingNotification{
		{userID: actor.UserID, kind: entities.NotificationOrderPlaced, message: fmt.Sprintf("Your order #%d for %d x %s has been placed", order.ID, order.Quantity, product.Name)},
		{userID: shop.OwnerID, kind: entities.NotificationOrderReceived, message: fmt.Sprintf("Shop %q received order #%d for %d x %s", shop.Name, order.ID, order.Quantity, product.Name)},
	})
	logger.Info(ctx, "Order placed", zap.Int64("order_id", order.ID), zap.Int64("product_id", product.ID), zap.Int("quantity", order.Quantity))
	return order, nil
}

// CreateWarehouseOrder buys warehouse stock, either for the caller or for one of the caller's shops
func (u *OrderUsecase) CreateWarehouseOrder(ctx context.Context, actor entities.Actor, input *entities.WarehouseOrderInput) (*entities.Order, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpWarehouseOrder); err != nil {
		return nil, err
	}
	target, err := u.resolveWarehouseTarget(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	order := &entities.Order{
		UserID:    actor.UserID,
		ProductID: target.product.ID,
		ShopID:    target.shopID,
		Quantity:  input.Quantity,
		Status:    entities.OrderStatusProcessing,
	}
	kind := orderKindWarehouse
	if target.shopID.Valid {
		order.Status = entities.OrderStatusPending
		kind = orderKindWarehouseForShop
	}
	if err := u.placeReserved(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrderCreated(kind)
	pending := []pendingNotification{
		{userID: actor.UserID, kind: entities.NotificationOrderPlaced, message: fmt.Sprintf("Your warehouse order #%d for %d x %s has been placed", order.ID, order.Quantity, target.product.Name)},
	}
	if target.shopID.Valid {
		pending = append(pending, pendingNotification{
			userID:  target.warehouse.SupplierID,
			kind:    entities.NotificationOrderReceived,
			message: fmt.Sprintf("Warehouse %q received order #%d for %d x %s", target.warehouse.Name, order.ID, order.Quantity, target.product.Name),
		})
	}
	emitAll(ctx, u.notifier, pending)
	logger.Info(ctx, "Warehouse order placed", zap.Int64("order_id", order.ID), zap.String("status", string(order.Status)))
	return order, nil
}

// RequestWarehouseOrder records interest in warehouse stock without reserving it
func (u *OrderUsecase) RequestWarehouseOrder(ctx context.Context, actor entities.Actor, input *entities.WarehouseOrderInput) (*entities.Order, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpRequestWarehouse); err != nil {
		return nil, err
	}
	target, err := u.resolveWarehouseTarget(ctx, actor, input)
	if err != nil {
		return nil, err
	}
	// Checked, not reserved. The REQUESTED -> PENDING move reserves and checks again.
	if target.product.Stock < input.Quantity {
		metrics.StockReservation("insufficient")
		return nil, domainerrors.NewError(fmt.Sprintf("insufficient stock for product %d", target.product.ID), domainerrors.ErrInsufficientStock)
	}

	order := &entities.Order{
		UserID:    actor.UserID,
		ProductID: target.product.ID,
		ShopID:    target.shopID,
		Quantity:  input.Quantity,
		Total:     target.product.Price.Mul(decimal.NewFromInt(int64(input.Quantity))),
		Status:    entities.OrderStatusRequested,
	}
	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrderCreated(orderKindRequest)
	emitAll(ctx, u.notifier, []pendingNotification{
		{userID: actor.UserID, kind: entities.NotificationOrderRequested, message: fmt.Sprintf("Your request #%d for %d x %s was sent", order.ID, order.Quantity, target.product.Name)},
		{userID: target.warehouse.SupplierID, kind: entities.NotificationOrderRequested, message: fmt.Sprintf("Warehouse %q received request #%d for %d x %s", target.warehouse.Name, order.ID, order.Quantity, target.product.Name)},
	})
	return order, nil
}

// UpdateOrderStatus moves an order along the workflow, reserving or releasing stock as the move requires
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, actor entities.Actor, id int64, status string) (*entities.Order, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpUpdateOrder); err != nil {
		return nil, err
	}
	to, err := entities.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, from, err := u.transition(ctx, id, to, nil)
	if err != nil {
		return nil, err
	}

	emitAll(ctx, u.notifier, []pendingNotification{{
		userID:  order.UserID,
		kind:    entities.NotificationOrderStatusUpdated,
		message: fmt.Sprintf("Your order #%d is now %s", order.ID, order.Status),
	}})
	logger.Info(ctx, "Order status updated",
		zap.Int64("order_id", order.ID),
		zap.String("from", string(from)),
		zap.String("to", string(order.Status)),
		zap.Int64("admin_id", actor.UserID),
	)
	return order, nil
}

// CancelOrder lets the buyer withdraw an order that has not started processing
func (u *OrderUsecase) CancelOrder(ctx context.Context, actor entities.Actor, id int64) (*entities.Order, error) {
	order, _, err := u.transition(ctx, id, entities.OrderStatusCancelled, func(o *entities.Order) error {
		if o.UserID != actor.UserID {
			return domainerrors.Unauthorized("only the buyer can cancel this order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	emitAll(ctx, u.notifier, []pendingNotification{{
		userID:  order.UserID,
		kind:    entities.NotificationOrderCancelled,
		message: fmt.Sprintf("Your order #%d was cancelled", order.ID),
	}})
	return order, nil
}

// GetOrder returns an order visible to the caller
func (u *OrderUsecase) GetOrder(ctx context.Context, actor entities.Actor, id int64) (*entities.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := u.canView(ctx, actor, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.Unauthorized("you cannot view this order")
	}
	return order, nil
}

// ListMyOrders lists orders placed by the caller
func (u *OrderUsecase) ListMyOrders(ctx context.Context, actor entities.Actor, page, limit int) ([]*entities.Order, int64, error) {
	return u.orderRepo.List(ctx, entities.OrderFilter{UserID: null.Int64From(actor.UserID), Page: page, Limit: limit})
}

// ListShopOrders lists orders attached to a shop the caller owns
func (u *OrderUsecase) ListShopOrders(ctx context.Context, actor entities.Actor, shopID int64, page, limit int) ([]*entities.Order, int64, error) {
	shop, err := u.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, 0, err
	}
	if shop.OwnerID != actor.UserID && !rbac.Allowed(actor.Role, rbac.OpListAllOrders) {
		return nil, 0, domainerrors.Unauthorized("you do not own this shop")
	}
	return u.orderRepo.List(ctx, entities.OrderFilter{ShopID: null.Int64From(shopID), Page: page, Limit: limit})
}

// ListOrders lists all orders for administrators, optionally by status
func (u *OrderUsecase) ListOrders(ctx context.Context, actor entities.Actor, status string, page, limit int) ([]*entities.Order, int64, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpListAllOrders); err != nil {
		return nil, 0, err
	}
	filter := entities.OrderFilter{Page: page, Limit: limit}
	if status != "" {
		parsed, err := entities.ParseOrderStatus(status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = parsed
	}
	return u.orderRepo.List(ctx, filter)
}

// placeReserved reserves stock, freezes the total and inserts the order as one unit.
func (u *OrderUsecase) placeReserved(ctx context.Context, order *entities.Order) error {
	return u.uow.Do(ctx, func(ctx context.Context) error {
		price, err := u.reserve(ctx, order.ProductID, order.Quantity)
		if err != nil {
			return err
		}
		order.Total = price.Mul(decimal.NewFromInt(int64(order.Quantity)))
		return u.orderRepo.Create(ctx, order)
	})
}

// transition applies from→to inside one unit of work. The status write only succeeds
// while the order is still in the status that was read, so a reservation can never run twice.
func (u *OrderUsecase) transition(ctx context.Context, id int64, to entities.OrderStatus, check func(*entities.Order) error) (*entities.Order, entities.OrderStatus, error) {
	var (
		order *entities.Order
		from  entities.OrderStatus
	)
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = u.orderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(order); err != nil {
				return err
			}
		}
		from = order.Status

		plan, err := entities.PlanTransition(from, to)
		if err != nil {
			return err
		}
		if plan.Reserve {
			if _, err := u.reserve(ctx, order.ProductID, order.Quantity); err != nil {
				return err
			}
		}
		if plan.Release {
			if err := u.productRepo.Release(ctx, order.ProductID, order.Quantity); err != nil {
				return err
			}
		}
		if err := u.orderRepo.UpdateStatus(ctx, id, from, to); err != nil {
			return err
		}
		order.Status = to
		return nil
	})
	if err != nil {
		return nil, from, err
	}
	metrics.OrderTransition(string(from), string(to))
	return order, from, nil
}

func (u *OrderUsecase) reserve(ctx context.Context, productID int64, quantity int) (decimal.Decimal, error) {
	price, err := u.productRepo.Reserve(ctx, productID, quantity)
	switch {
	case err == nil:
		metrics.StockReservation("reserved")
	case errors.Is(err, domainerrors.ErrInsufficientStock):
		metrics.StockReservation("insufficient")
		return decimal.Zero, domainerrors.NewError(fmt.Sprintf("insufficient stock for product %d", productID), domainerrors.ErrInsufficientStock)
	default:
		metrics.StockReservation("error")
	}
	return price, err
}

type warehouseTarget struct {
	product   *entities.Product
	warehouse *entities.Warehouse
	shopID    null.Int64
}

func (u *OrderUsecase) resolveWarehouseTarget(ctx context.Context, actor entities.Actor, input *entities.WarehouseOrderInput) (*warehouseTarget, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.BadRequest("quantity must be positive")
	}

	product, err := u.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.InWarehouse() {
		return nil, domainerrors.BadRequest("product is not warehouse stock")
	}
	warehouse, err := u.warehouseRepo.GetByID(ctx, product.WarehouseID.Int64)
	if err != nil {
		return nil, err
	}
	if warehouse.Status != entities.ApprovalStatusApproved {
		return nil, domainerrors.BadRequest("warehouse is not approved")
	}

	target := &warehouseTarget{product: product, warehouse: warehouse}
	if input.ShopID == nil {
		return target, nil
	}

	if !actor.Role.IsShopKeeper() {
		return nil, domainerrors.Unauthorized("only retailers and merchants can order for a shop")
	}
	shop, err := u.shopRepo.GetByID(ctx, *input.ShopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != actor.UserID {
		return nil, domainerrors.Unauthorized("you do not own this shop")
	}
	if shop.Status != entities.ApprovalStatusApproved {
		return nil, domainerrors.BadRequest("shop is not approved")
	}
	target.shopID = null.Int64From(shop.ID)
	return target, nil
}

func (u *OrderUsecase) canView(ctx context.Context, actor entities.Actor, order *entities.Order) (bool, error) {
	if order.UserID == actor.UserID || rbac.Allowed(actor.Role, rbac.OpListAllOrders) {
		return true, nil
	}
	if order.ShopID.Valid {
		shop, err := u.shopRepo.GetByID(ctx, order.ShopID.Int64)
		if err != nil && !isNotFound(err) {
			return false, err
		}
		if shop != nil && shop.OwnerID == actor.UserID {
			return true, nil
		}
	}
	product, err := u.productRepo.GetByID(ctx, order.ProductID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if !product.WarehouseID.Valid {
		return false, nil
	}
	warehouse, err := u.warehouseRepo.GetByID(ctx, product.WarehouseID.Int64)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return warehouse.SupplierID == actor.UserID, nil
}
