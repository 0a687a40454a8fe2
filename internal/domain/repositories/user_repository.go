package repositories

import (
	"context"

	"mercato.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	// Update persists account fields and upserts the profile when present.
	Update(ctx context.Context, user *entities.User) error
	UpdateRole(ctx context.Context, id int64, role entities.Role) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfilePicture(ctx context.Context, id int64, path string) error
	List(ctx context.Context, excludeRoles ...entities.Role) ([]*entities.User, error)
	ListByRole(ctx context.Context, role entities.Role) ([]*entities.User, error)
}

// RoleRepository defines role reference data operations
type RoleRepository interface {
	Create(ctx context.Context, role *entities.RoleDefinition) error
	GetByName(ctx context.Context, name string) (*entities.RoleDefinition, error)
	List(ctx context.Context) ([]*entities.RoleDefinition, error)
	// EnsureSeeded inserts the built-in roles that are missing.
	EnsureSeeded(ctx context.Context) error
}

// RoleRequestRepository defines role request operations
type RoleRequestRepository interface {
	Create(ctx context.Context, req *entities.RoleRequest) error
	GetByID(ctx context.Context, id int64) (*entities.RoleRequest, error)
	GetPendingByUser(ctx context.Context, userID int64) (*entities.RoleRequest, error)
	UpdateRequestedRole(ctx context.Context, id int64, role string) error
	// Decide moves a PENDING request to status; ErrNotFound when it is no longer pending.
	Decide(ctx context.Context, id int64, status entities.RoleRequestStatus, adminID int64) error
	List(ctx context.Context) ([]*entities.RoleRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.RoleRequest, error)
}
