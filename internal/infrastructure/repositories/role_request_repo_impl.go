package repositories

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/infrastructure/models"
)

// RoleRequestRepository implements role request data operations
type RoleRequestRepository struct {
	db *gorm.DB
}

// NewRoleRequestRepository creates a new role request repository
func NewRoleRequestRepository(db *gorm.DB) *RoleRequestRepository {
	return &RoleRequestRepository{db: db}
}

// Create stores a pending request. A second pending request for the same user violates the partial unique index.
func (r *RoleRequestRepository) Create(ctx context.Context, req *entities.RoleRequest) error {
	now := time.Now()
	if req.Status == "" {
		req.Status = entities.RoleRequestPending
	}
	req.CreatedAt, req.UpdatedAt = now, now
	m := &models.RoleRequest{
		UserID:        req.UserID,
		RequestedRole: req.RequestedRole,
		Status:        string(req.Status),
		AdminID:       req.AdminID.Ptr(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err, "create role request")
	}
	req.ID = m.ID
	return nil
}

// GetByID gets a request by ID
func (r *RoleRequestRepository) GetByID(ctx context.Context, id int64) (*entities.RoleRequest, error) {
	var m models.RoleRequest
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get role request")
	}
	return toRoleRequestEntity(&m), nil
}

// GetPendingByUser returns the user's open request
func (r *RoleRequestRepository) GetPendingByUser(ctx context.Context, userID int64) (*entities.RoleRequest, error) {
	var m models.RoleRequest
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND status = ?", userID, string(entities.RoleRequestPending)).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "get pending role request")
	}
	return toRoleRequestEntity(&m), nil
}

// UpdateRequestedRole changes the role asked for by a pending request
func (r *RoleRequestRepository) UpdateRequestedRole(ctx context.Context, id int64, role string) error {
	result := GetDB(ctx, r.db).Model(&models.RoleRequest{}).
		Where("id = ? AND status = ?", id, string(entities.RoleRequestPending)).
		Updates(map[string]interface{}{"requested_role": role, "updated_at": time.Now()})
	if result.Error != nil {
		return translate(result.Error, "update requested role")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Decide closes a pending request
func (r *RoleRequestRepository) Decide(ctx context.Context, id int64, status entities.RoleRequestStatus, adminID int64) error {
	result := GetDB(ctx, r.db).Model(&models.RoleRequest{}).
		Where("id = ? AND status = ?", id, string(entities.RoleRequestPending)).
		Updates(map[string]interface{}{"status": string(status), "admin_id": adminID, "updated_at": time.Now()})
	if result.Error != nil {
		return translate(result.Error, "decide role request")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists every request with its requester, newest first
func (r *RoleRequestRepository) List(ctx context.Context) ([]*entities.RoleRequest, error) {
	return r.find(GetDB(ctx, r.db).Preload("User").Order("created_at DESC, id DESC"))
}

// ListByUser lists the requests made by one user
func (r *RoleRequestRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.RoleRequest, error) {
	return r.find(GetDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC, id DESC"))
}

func (r *RoleRequestRepository) find(query *gorm.DB) ([]*entities.RoleRequest, error) {
	var reqModels []models.RoleRequest
	if err := query.Find(&reqModels).Error; err != nil {
		return nil, translate(err, "list role requests")
	}
	reqs := make([]*entities.RoleRequest, 0, len(reqModels))
	for i := range reqModels {
		reqs = append(reqs, toRoleRequestEntity(&reqModels[i]))
	}
	return reqs, nil
}

func toRoleRequestEntity(m *models.RoleRequest) *entities.RoleRequest {
	req := &entities.RoleRequest{
		ID:            m.ID,
		UserID:        m.UserID,
		RequestedRole: m.RequestedRole,
		Status:        entities.RoleRequestStatus(m.Status),
		AdminID:       null.Int64FromPtr(m.AdminID),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.User != nil {
		req.User = toUserEntity(m.User)
	}
	return req
}
