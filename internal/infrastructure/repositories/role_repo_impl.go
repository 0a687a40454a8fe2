package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/infrastructure/models"
)

// RoleRepository implements role reference data operations
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create adds a custom role. IDs continue after the highest existing one.
func (r *RoleRepository) Create(ctx context.Context, role *entities.RoleDefinition) error {
	db := GetDB(ctx, r.db)
	var maxID int64
	if err := db.Model(&models.Role{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return translate(err, "next role id")
	}
	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now()
	}
	m := &models.Role{ID: maxID + 1, Name: role.Name, CreatedAt: role.CreatedAt}
	if err := db.Create(m).Error; err != nil {
		return translate(err, "create role")
	}
	role.ID = m.ID
	return nil
}

// GetByName gets a role by its name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entities.RoleDefinition, error) {
	var m models.Role
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, translate(err, "get role")
	}
	return toRoleEntity(&m), nil
}

// List lists all roles by id
func (r *RoleRepository) List(ctx context.Context) ([]*entities.RoleDefinition, error) {
	var roleModels []models.Role
	if err := GetDB(ctx, r.db).Order("id ASC").Find(&roleModels).Error; err != nil {
		return nil, translate(err, "list roles")
	}
	roles := make([]*entities.RoleDefinition, 0, len(roleModels))
	for i := range roleModels {
		roles = append(roles, toRoleEntity(&roleModels[i]))
	}
	return roles, nil
}

// EnsureSeeded inserts the built-in roles, skipping the ones already present
func (r *RoleRepository) EnsureSeeded(ctx context.Context) error {
	now := time.Now()
	seed := make([]models.Role, 0, len(entities.SeedRoles))
	for _, role := range entities.SeedRoles {
		seed = append(seed, models.Role{ID: int64(role), Name: role.String(), CreatedAt: now})
	}
	err := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error
	return translate(err, "seed roles")
}

func toRoleEntity(m *models.Role) *entities.RoleDefinition {
	return &entities.RoleDefinition{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}
