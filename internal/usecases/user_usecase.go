package usecases

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/domain/repositories"
	"mercato.backend/pkg/crypto"
	"mercato.backend/pkg/logger"
)

// DefaultMaxAvatarBytes is the upload ceiling when none is configured.
const DefaultMaxAvatarBytes int64 = 10 << 20

// AvatarStorage persists profile pictures and returns their key.
type AvatarStorage interface {
	Put(ctx context.Context, userID int64, filename, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// AvatarUpload describes one uploaded file.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UserUsecase handles account self-service and user lookups
type UserUsecase struct {
	userRepo       repositories.UserRepository
	avatars        AvatarStorage
	maxAvatarBytes int64
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository, avatars AvatarStorage, maxAvatarBytes int64) *UserUsecase {
	if maxAvatarBytes <= 0 {
		maxAvatarBytes = DefaultMaxAvatarBytes
	}
	return &UserUsecase{
		userRepo:       userRepo,
		avatars:        avatars,
		maxAvatarBytes: maxAvatarBytes,
	}
}

// GetMe returns the caller's account
func (u *UserUsecase) GetMe(ctx context.Context, actor entities.Actor) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, actor.UserID)
}

// UpdateMe applies a partial update to the caller's account and profile
func (u *UserUsecase) UpdateMe(ctx context.Context, actor entities.Actor, patch entities.UserPatch) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if patch.Username.HasValue() {
		patch.Username.Value = strings.TrimSpace(patch.Username.Value)
		if patch.Username.Value != user.Username {
			_, err := u.userRepo.GetByUsername(ctx, patch.Username.Value)
			if err == nil {
				return nil, domainerrors.Conflict("username already taken")
			}
			if !isNotFound(err) {
				return nil, err
			}
		}
	}

	if err := patch.Apply(user); err != nil {
		return nil, err
	}
	if err := u.userRepo.Update(ctx, user); err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict("username already taken")
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the caller's password after verifying the current one
func (u *UserUsecase) ChangePassword(ctx context.Context, actor entities.Actor, input *entities.ChangePasswordInput) error {
	if err := crypto.ValidatePassword(input.NewPassword); err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	user, err := u.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.NewError("current password is incorrect", domainerrors.ErrInvalidCredentials)
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, user.ID, hash)
}

// UploadAvatar stores a new profile picture and removes the previous one
func (u *UserUsecase) UploadAvatar(ctx context.Context, actor entities.Actor, upload AvatarUpload) (*entities.User, error) {
	if u.avatars == nil {
		return nil, domainerrors.NewError("avatar uploads are not available", domainerrors.ErrBadRequest)
	}
	if upload.Body == nil || upload.Size <= 0 {
		return nil, domainerrors.BadRequest("file is required")
	}
	if upload.Size > u.maxAvatarBytes {
		return nil, domainerrors.BadRequest(fmt.Sprintf("file exceeds the %d byte limit", u.maxAvatarBytes))
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, domainerrors.BadRequest("only image uploads are allowed")
	}

	user, err := u.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	key, err := u.avatars.Put(ctx, user.ID, upload.Filename, upload.ContentType, io.LimitReader(upload.Body, u.maxAvatarBytes))
	if err != nil {
		return nil, err
	}
	if err := u.userRepo.UpdateProfilePicture(ctx, user.ID, key); err != nil {
		_ = u.avatars.Delete(ctx, key)
		return nil, err
	}

	previous := user.ProfilePicture
	if previous.Valid && previous.String != key {
		if err := u.avatars.Delete(ctx, previous.String); err != nil {
			logger.Warn(ctx, "Failed to delete previous avatar", zap.String("key", previous.String), zap.Error(err))
		}
	}

	user.ProfilePicture = null.StringFrom(key)
	return user, nil
}

// ListUsers lists every account except developers
func (u *UserUsecase) ListUsers(ctx context.Context, actor entities.Actor) ([]*entities.User, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpListUsers); err != nil {
		return nil, err
	}
	return u.userRepo.List(ctx, entities.RoleDeveloper)
}

// ListDevelopers lists developer accounts
func (u *UserUsecase) ListDevelopers(ctx context.Context, actor entities.Actor) ([]*entities.User, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpViewDevelopers); err != nil {
		return nil, err
	}
	return u.userRepo.ListByRole(ctx, entities.RoleDeveloper)
}

// GetUser returns any account by id
func (u *UserUsecase) GetUser(ctx context.Context, actor entities.Actor, id int64) (*entities.User, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpViewUser); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, id)
}
