package repositories

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user together with its profile, if any
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	m := &models.User{
		Username:       user.Username,
		Email:          user.Email.Ptr(),
		Phone:          user.Phone.Ptr(),
		PasswordHash:   user.PasswordHash,
		RoleID:         int64(user.Role),
		ProfilePicture: user.ProfilePicture.Ptr(),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
	if user.Profile != nil {
		m.Profile = toProfileModel(user.Profile, now)
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "create user")
	}
	user.ID = m.ID
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Preload("Profile").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return toUserEntity(&m), nil
}

// GetByUsername gets a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Preload("Profile").Where("username = ?", username).First(&m).Error; err != nil {
		return nil, translate(err, "get user by username")
	}
	return toUserEntity(&m), nil
}

// Update updates account fields and upserts the profile row
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	db := GetDB(ctx, r.db)
	now := time.Now()
	updates := map[string]interface{}{
		"username":   user.Username,
		"email":      user.Email.Ptr(),
		"phone":      user.Phone.Ptr(),
		"updated_at": now,
	}

	result := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return translate(result.Error, "update user")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	user.UpdatedAt = now

	if user.Profile == nil {
		return nil
	}
	profile := toProfileModel(user.Profile, now)
	profile.UserID = user.ID
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "city", "country", "updated_at"}),
	}).Create(profile).Error
	return translate(err, "upsert profile")
}

// UpdateRole assigns a new role to the user
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role entities.Role) error {
	return r.updateColumn(ctx, id, "role_id", int64(role))
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.updateColumn(ctx, id, "password_hash", passwordHash)
}

// UpdateProfilePicture stores the avatar object key
func (r *UserRepository) UpdateProfilePicture(ctx context.Context, id int64, path string) error {
	return r.updateColumn(ctx, id, "profile_picture", path)
}

func (r *UserRepository) updateColumn(ctx context.Context, id int64, column string, value interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		column:       value,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return translate(result.Error, "update user "+column)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users, leaving out the given roles
func (r *UserRepository) List(ctx context.Context, excludeRoles ...entities.Role) ([]*entities.User, error) {
	query := GetDB(ctx, r.db).Preload("Profile").Order("id ASC")
	if len(excludeRoles) > 0 {
		ids := make([]int64, 0, len(excludeRoles))
		for _, role := range excludeRoles {
			ids = append(ids, int64(role))
		}
		query = query.Where("role_id NOT IN ?", ids)
	}
	return r.find(query)
}

// ListByRole lists users holding role
func (r *UserRepository) ListByRole(ctx context.Context, role entities.Role) ([]*entities.User, error) {
	return r.find(GetDB(ctx, r.db).Preload("Profile").Where("role_id = ?", int64(role)).Order("id ASC"))
}

func (r *UserRepository) find(query *gorm.DB) ([]*entities.User, error) {
	var userModels []models.User
	if err := query.Find(&userModels).Error; err != nil {
		return nil, translate(err, "list users")
	}
	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, toUserEntity(&userModels[i]))
	}
	return users, nil
}

func toProfileModel(p *entities.Profile, now time.Time) *models.Profile {
	return &models.Profile{
		Name:      p.Name.Ptr(),
		Address:   p.Address.Ptr(),
		City:      p.City.Ptr(),
		Country:   p.Country.Ptr(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toUserEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          null.StringFromPtr(m.Email),
		Phone:          null.StringFromPtr(m.Phone),
		PasswordHash:   m.PasswordHash,
		Role:           entities.Role(m.RoleID),
		ProfilePicture: null.StringFromPtr(m.ProfilePicture),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Profile != nil {
		u.Profile = &entities.Profile{
			Name:    null.StringFromPtr(m.Profile.Name),
			Address: null.StringFromPtr(m.Profile.Address),
			City:    null.StringFromPtr(m.Profile.City),
			Country: null.StringFromPtr(m.Profile.Country),
		}
	}
	return u
}
