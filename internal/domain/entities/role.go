package entities

import (
	"encoding/json"
	"time"
)

// Role is the numeric role identity carried in tokens and stored on users.
type Role int

const (
	RoleDeveloper       Role = 1
	RolePlatformAdmin   Role = 2
	RoleOperationsAdmin Role = 3
	RoleRetailer        Role = 4
	RoleMerchant        Role = 5
	RoleSupplier        Role = 6
	RoleCourier         Role = 7
	RoleCustomer        Role = 8
)

var roleNames = map[Role]string{
	RoleDeveloper:       "Developer",
	RolePlatformAdmin:   "PlatformAdmin",
	RoleOperationsAdmin: "OperationsAdmin",
	RoleRetailer:        "Retailer",
	RoleMerchant:        "Merchant",
	RoleSupplier:        "Supplier",
	RoleCourier:         "Courier",
	RoleCustomer:        "Customer",
}

// SeedRoles lists the built-in roles in id order.
var SeedRoles = []Role{
	RoleDeveloper,
	RolePlatformAdmin,
	RoleOperationsAdmin,
	RoleRetailer,
	RoleMerchant,
	RoleSupplier,
	RoleCourier,
	RoleCustomer,
}

// RequestableRoles are the roles a user may ask for through a role request.
var RequestableRoles = []Role{RoleRetailer, RoleMerchant, RoleSupplier, RoleCourier, RoleCustomer}

// AdminCreatableRoles are the roles an administrator may assign when creating a user directly.
var AdminCreatableRoles = []Role{RoleDeveloper, RolePlatformAdmin, RoleOperationsAdmin}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

// IsValid reports whether r is one of the built-in roles.
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// IsShopKeeper reports whether r may own shops.
func (r Role) IsShopKeeper() bool {
	return r == RoleRetailer || r == RoleMerchant
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// MarshalJSON renders the role as {"id":..,"name":..} so clients do not need the numeric table.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{ID: int(r), Name: r.String()})
}

// ParseRole resolves a role by its name (case-sensitive, as stored).
func ParseRole(name string) (Role, bool) {
	for role, roleName := range roleNames {
		if roleName == name {
			return role, true
		}
	}
	return 0, false
}

// RoleDefinition is a row of the roles reference table.
type RoleDefinition struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateRoleInput represents input for creating a role
type CreateRoleInput struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID   int64
	Username string
	Role     Role
}
