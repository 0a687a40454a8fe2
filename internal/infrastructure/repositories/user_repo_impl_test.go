package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
)

func seedUser(t *testing.T, repo *UserRepository, username string, role entities.Role) *entities.User {
	t.Helper()
	u := &entities.User{Username: username, PasswordHash: "hash", Role: role}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CRUDAndProfile(t *testing.T) {
	db := newSchemaDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{
		Username:     "alice",
		Email:        null.StringFrom("alice@mercato.test"),
		PasswordHash: "hash",
		Role:         entities.RoleCustomer,
		Profile:      &entities.Profile{City: null.StringFrom("Lisbon")},
	}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@mercato.test", byID.Email.String)
	require.NotNil(t, byID.Profile)
	require.Equal(t, "Lisbon", byID.Profile.City.String)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byName.Email = null.String{}
	byName.Profile.City = null.StringFrom("Porto")
	byName.Profile.Name = null.StringFrom("Alice A.")
	require.NoError(t, repo.Update(ctx, byName))

	updated, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, updated.Email.Valid)
	require.Equal(t, "Porto", updated.Profile.City.String)
	require.Equal(t, "Alice A.", updated.Profile.Name.String)

	require.NoError(t, repo.UpdateRole(ctx, u.ID, entities.RoleRetailer))
	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "hash2"))
	require.NoError(t, repo.UpdateProfilePicture(ctx, u.ID, "avatars/1.png"))

	updated, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, entities.RoleRetailer, updated.Role)
	require.Equal(t, "hash2", updated.PasswordHash)
	require.Equal(t, "avatars/1.png", updated.ProfilePicture.String)
}

func TestUserRepository_ProfileCreatedOnFirstUpdate(t *testing.T) {
	db := newSchemaDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "bob", entities.RoleCustomer)
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.Profile)

	got.Profile = &entities.Profile{Country: null.StringFrom("PT")}
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	require.Equal(t, "PT", got.Profile.Country.String)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newSchemaDB(t)
	repo := NewUserRepository(db)
	seedUser(t, repo, "carol", entities.RoleCustomer)

	err := repo.Create(context.Background(), &entities.User{Username: "carol", PasswordHash: "x", Role: entities.RoleCustomer})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserRepository_ListAndNotFound(t *testing.T) {
	db := newSchemaDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "dev", entities.RoleDeveloper)
	seedUser(t, repo, "ops", entities.RoleOperationsAdmin)
	seedUser(t, repo, "shopper", entities.RoleCustomer)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	nonDev, err := repo.List(ctx, entities.RoleDeveloper)
	require.NoError(t, err)
	require.Len(t, nonDev, 2)

	devs, err := repo.ListByRole(ctx, entities.RoleDeveloper)
	require.NoError(t, err)
	require.Len(t, devs, 1)
	require.Equal(t, "dev", devs[0].Username)

	_, err = repo.GetByID(ctx, 404)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, &entities.User{ID: 404, Username: "x"}), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdateRole(ctx, 404, entities.RoleCustomer), domainerrors.ErrNotFound)
}

func TestRoleRepository_SeedCreateAndList(t *testing.T) {
	db := newSchemaDB(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSeeded(ctx))
	require.NoError(t, repo.EnsureSeeded(ctx), "seeding twice is harmless")

	roles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, len(entities.SeedRoles))
	require.Equal(t, "Developer", roles[0].Name)

	custom := &entities.RoleDefinition{Name: "Auditor"}
	require.NoError(t, repo.Create(ctx, custom))
	require.Equal(t, int64(len(entities.SeedRoles)+1), custom.ID)

	require.ErrorIs(t, repo.Create(ctx, &entities.RoleDefinition{Name: "Auditor"}), domainerrors.ErrAlreadyExists)

	got, err := repo.GetByName(ctx, "Merchant")
	require.NoError(t, err)
	require.Equal(t, int64(entities.RoleMerchant), got.ID)

	_, err = repo.GetByName(ctx, "Ghost")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRoleRequestRepository_OnePendingPerUser(t *testing.T) {
	db := newSchemaDB(t)
	users := NewUserRepository(db)
	repo := NewRoleRequestRepository(db)
	ctx := context.Background()

	u := seedUser(t, users, "erin", entities.RoleCustomer)

	req := &entities.RoleRequest{UserID: u.ID, RequestedRole: "Retailer"}
	require.NoError(t, repo.Create(ctx, req))
	require.Equal(t, entities.RoleRequestPending, req.Status)

	err := repo.Create(ctx, &entities.RoleRequest{UserID: u.ID, RequestedRole: "Merchant"})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	require.NoError(t, repo.UpdateRequestedRole(ctx, req.ID, "Merchant"))
	pending, err := repo.GetPendingByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Merchant", pending.RequestedRole)

	require.NoError(t, repo.Decide(ctx, req.ID, entities.RoleRequestApproved, 1))
	require.ErrorIs(t, repo.Decide(ctx, req.ID, entities.RoleRequestRejected, 1), domainerrors.ErrNotFound)

	decided, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, entities.RoleRequestApproved, decided.Status)
	require.Equal(t, int64(1), decided.AdminID.Int64)

	_, err = repo.GetPendingByUser(ctx, u.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// once decided, the user may ask again
	require.NoError(t, repo.Create(ctx, &entities.RoleRequest{UserID: u.ID, RequestedRole: "Supplier"}))

	mine, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].User)
	require.Equal(t, "erin", all[0].User.Username)
}
