// Package rbac maps role identities to the operations they may perform.
package rbac

import (
	"fmt"

	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
)

// Operation names a gated action.
type Operation string

const (
	OpCreateUser       Operation = "user.create"
	OpListUsers        Operation = "user.list"
	OpViewDevelopers   Operation = "user.developers"
	OpViewUser         Operation = "user.view"
	OpCreateRole       Operation = "role.create"
	OpRequestRole      Operation = "role.request"
	OpReviewRoleReqs   Operation = "role.review"
	OpCreateShop       Operation = "shop.create"
	OpReviewShop       Operation = "shop.review"
	OpCreateWarehouse  Operation = "warehouse.create"
	OpReviewWarehouse  Operation = "warehouse.review"
	OpViewPending      Operation = "approval.pending"
	OpManageCategory   Operation = "category.manage"
	OpCreateOrder      Operation = "order.create"
	OpWarehouseOrder   Operation = "order.warehouse"
	OpRequestWarehouse Operation = "order.warehouse_request"
	OpUpdateOrder      Operation = "order.status"
	OpListAllOrders    Operation = "order.list_all"
)

var (
	admins    = []entities.Role{entities.RoleDeveloper, entities.RolePlatformAdmin, entities.RoleOperationsAdmin}
	reviewers = []entities.Role{entities.RoleDeveloper, entities.RolePlatformAdmin}
	everyone  = entities.SeedRoles
)

var policy = map[Operation][]entities.Role{
	OpCreateUser:       admins,
	OpListUsers:        admins,
	OpViewDevelopers:   {entities.RoleDeveloper},
	OpViewUser:         {entities.RoleDeveloper},
	OpCreateRole:       reviewers,
	OpRequestRole:      everyone,
	OpReviewRoleReqs:   {entities.RoleDeveloper},
	OpCreateShop:       {entities.RoleRetailer, entities.RoleMerchant},
	OpReviewShop:       reviewers,
	OpCreateWarehouse:  {entities.RoleSupplier},
	OpReviewWarehouse:  reviewers,
	OpViewPending:      admins,
	OpManageCategory:   admins,
	OpCreateOrder:      everyone,
	OpWarehouseOrder:   {entities.RoleCustomer, entities.RoleSupplier, entities.RoleRetailer, entities.RoleMerchant},
	OpRequestWarehouse: everyone,
	OpUpdateOrder:      {entities.RoleOperationsAdmin},
	OpListAllOrders:    admins,
}

// Allowed reports whether role may perform op. Unknown operations are denied.
func Allowed(role entities.Role, op Operation) bool {
	return role.In(policy[op]...)
}

// Authorize returns nil when role may perform op, otherwise an Unauthorized error naming the reason.
func Authorize(role entities.Role, op Operation) error {
	if Allowed(role, op) {
		return nil
	}
	return domainerrors.NewError(fmt.Sprintf("role %s is not allowed to perform %s", role, op), domainerrors.ErrUnauthorized)
}
