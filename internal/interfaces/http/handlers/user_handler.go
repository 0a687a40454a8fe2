package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gocloud.dev/blob"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/interfaces/http/response"
	"mercato.backend/internal/usecases"
)

const avatarFormField = "avatar"

type UserService interface {
	GetMe(ctx context.Context, actor entities.Actor) (*entities.User, error)
	UpdateMe(ctx context.Context, actor entities.Actor, patch entities.UserPatch) (*entities.User, error)
	ChangePassword(ctx context.Context, actor entities.Actor, input *entities.ChangePasswordInput) error
	UploadAvatar(ctx context.Context, actor entities.Actor, upload usecases.AvatarUpload) (*entities.User, error)
	ListUsers(ctx context.Context, actor entities.Actor) ([]*entities.User, error)
	ListDevelopers(ctx context.Context, actor entities.Actor) ([]*entities.User, error)
	GetUser(ctx context.Context, actor entities.Actor, id int64) (*entities.User, error)
}

// AvatarReader serves stored profile pictures.
type AvatarReader interface {
	Open(ctx context.Context, key string) (*blob.Reader, error)
}

// UserHandler handles account endpoints
type UserHandler struct {
	userUsecase UserService
	avatars     AvatarReader
}

// NewUserHandler creates a new user handler. avatars may be nil, in which case
// stored pictures are not served.
func NewUserHandler(userUsecase UserService, avatars AvatarReader) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, avatars: avatars}
}

// GetMe returns the caller's account
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	user, err := h.userUsecase.GetMe(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateMe patches the caller's account; explicit nulls clear optional fields
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var patch entities.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	user, err := h.userUsecase.UpdateMe(c.Request.Context(), caller, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ChangePassword replaces the caller's password
// PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var input entities.ChangePasswordInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.userUsecase.ChangePassword(c.Request.Context(), caller, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

// UploadAvatar stores a new profile picture from a multipart form
// POST /api/v1/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	header, err := c.FormFile(avatarFormField)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("avatar file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("unreadable avatar file"))
		return
	}
	defer file.Close()

	user, err := h.userUsecase.UploadAvatar(c.Request.Context(), caller, usecases.AvatarUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// GetAvatar streams a stored profile picture
// GET /api/v1/avatars/:name
func (h *UserHandler) GetAvatar(c *gin.Context) {
	name := c.Param("name")
	if h.avatars == nil || name == "" || strings.ContainsAny(name, "/\\") {
		response.Error(c, domainerrors.NotFound("avatar not found"))
		return
	}
	r, err := h.avatars.Open(c.Request.Context(), "avatars/"+name)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer r.Close()
	c.DataFromReader(http.StatusOK, r.Size(), r.ContentType(), r, nil)
}

// ListUsers lists every non-developer account
// GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	users, err := h.userUsecase.ListUsers(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// ListDevelopers lists developer accounts
// GET /api/v1/admin/developers
func (h *UserHandler) ListDevelopers(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	users, err := h.userUsecase.ListDevelopers(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetUser returns one account
// GET /api/v1/admin/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.userUsecase.GetUser(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
