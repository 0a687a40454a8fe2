package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	domainerrors "mercato.backend/internal/domain/errors"
)

// OrderStatus represents the workflow state of an order
type OrderStatus string

const (
	OrderStatusRequested  OrderStatus = "REQUESTED"
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusRejected   OrderStatus = "REJECTED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// fulfilment chain order; terminal states are not ranked.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusRequested:  0,
	OrderStatusPending:    1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

// ParseOrderStatus validates a status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if status.IsValid() {
		return status, nil
	}
	return "", domainerrors.NewError(fmt.Sprintf("invalid order status %q", s), domainerrors.ErrInvalidInput)
}

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	if _, ok := orderStatusRank[s]; ok {
		return true
	}
	return s.IsTerminal()
}

// IsTerminal reports whether the order has left the fulfilment chain for good.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRejected || s == OrderStatusCancelled || s == OrderStatusDelivered
}

// HoldsStock reports whether an order in this status has stock reserved for it.
func (s OrderStatus) HoldsStock() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// Transition describes the stock effect of moving between two statuses.
type Transition struct {
	From    OrderStatus
	To      OrderStatus
	Reserve bool
	Release bool
}

// PlanTransition validates from→to and reports which ledger operation it requires.
// Moves along the chain are forward only. REJECTED is reachable from anything not yet shipped;
// CANCELLED only before processing starts.
func PlanTransition(from, to OrderStatus) (Transition, error) {
	t := Transition{From: from, To: to}
	if !to.IsValid() {
		return t, domainerrors.NewError(fmt.Sprintf("invalid order status %q", to), domainerrors.ErrInvalidInput)
	}
	if from == to {
		return t, domainerrors.NewError(fmt.Sprintf("order is already %s", from), domainerrors.ErrInvalidTransition)
	}
	if from.IsTerminal() {
		return t, domainerrors.NewError(fmt.Sprintf("order is %s and can no longer change", from), domainerrors.ErrInvalidTransition)
	}

	switch to {
	case OrderStatusRejected:
		if from == OrderStatusShipped {
			return t, domainerrors.NewError("shipped orders cannot be rejected", domainerrors.ErrInvalidTransition)
		}
		t.Release = from.HoldsStock()
		return t, nil
	case OrderStatusCancelled:
		if from != OrderStatusRequested && from != OrderStatusPending {
			return t, domainerrors.NewError(fmt.Sprintf("%s orders cannot be cancelled", from), domainerrors.ErrInvalidTransition)
		}
		t.Release = from.HoldsStock()
		return t, nil
	}

	if orderStatusRank[to] < orderStatusRank[from] {
		return t, domainerrors.NewError(fmt.Sprintf("cannot move order from %s back to %s", from, to), domainerrors.ErrInvalidTransition)
	}
	t.Reserve = !from.HoldsStock() && to.HoldsStock()
	return t, nil
}

// Order is a purchase of a single product line.
type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	ProductID int64           `json:"productId"`
	ShopID    null.Int64      `json:"shopId"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CreateOrderInput represents input for ordering a shop product
type CreateOrderInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// WarehouseOrderInput represents input for ordering or requesting warehouse stock
type WarehouseOrderInput struct {
	ProductID int64  `json:"productId" binding:"required,gt=0"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	ShopID    *int64 `json:"shopId,omitempty" binding:"omitempty,gt=0"`
}

// UpdateOrderStatusInput represents input for an operations status change
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,order_status"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID null.Int64
	ShopID null.Int64
	Status OrderStatus
	Page   int
	Limit  int
}
