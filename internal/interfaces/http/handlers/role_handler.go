package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/interfaces/http/response"
)

type RoleService interface {
	CreateRole(ctx context.Context, actor entities.Actor, input *entities.CreateRoleInput) (*entities.RoleDefinition, error)
	ListRoles(ctx context.Context) ([]*entities.RoleDefinition, error)
	RequestRole(ctx context.Context, actor entities.Actor, input *entities.RoleRequestInput) (*entities.RoleRequest, error)
	ListRoleRequests(ctx context.Context, actor entities.Actor) ([]*entities.RoleRequest, error)
	ListMyRoleRequests(ctx context.Context, actor entities.Actor) ([]*entities.RoleRequest, error)
	ApproveRoleRequest(ctx context.Context, actor entities.Actor, id int64) (*entities.RoleRequest, error)
	RejectRoleRequest(ctx context.Context, actor entities.Actor, id int64) (*entities.RoleRequest, error)
}

// RoleHandler handles roles and role requests
type RoleHandler struct {
	roleUsecase RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleUsecase RoleService) *RoleHandler {
	return &RoleHandler{roleUsecase: roleUsecase}
}

// CreateRole adds a role
// POST /api/v1/roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.CreateRoleInput
	if !bindJSON(c, &input) {
		return
	}
	role, err := h.roleUsecase.CreateRole(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"role": role})
}

// ListRoles lists roles
// GET /api/v1/roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleUsecase.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

// RequestRole files a role request
// POST /api/v1/role/request
func (h *RoleHandler) RequestRole(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.RoleRequestInput
	if !bindJSON(c, &input) {
		return
	}
	req, err := h.roleUsecase.RequestRole(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"roleRequest": req})
}

// ListRoleRequests lists all role requests
// GET /api/v1/role/requests
func (h *RoleHandler) ListRoleRequests(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	reqs, err := h.roleUsecase.ListRoleRequests(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roleRequests": reqs})
}

// ListMyRoleRequests lists the caller's role requests
// GET /api/v1/role/requests/me
func (h *RoleHandler) ListMyRoleRequests(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	reqs, err := h.roleUsecase.ListMyRoleRequests(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roleRequests": reqs})
}

// ApproveRoleRequest grants a pending request
// POST /api/v1/role/approve/:id
func (h *RoleHandler) ApproveRoleRequest(c *gin.Context) {
	h.decide(c, h.roleUsecase.ApproveRoleRequest)
}

// RejectRoleRequest declines a pending request
// POST /api/v1/role/reject/:id
func (h *RoleHandler) RejectRoleRequest(c *gin.Context) {
	h.decide(c, h.roleUsecase.RejectRoleRequest)
}

func (h *RoleHandler) decide(c *gin.Context, fn func(context.Context, entities.Actor, int64) (*entities.RoleRequest, error)) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, err := fn(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roleRequest": req})
}
