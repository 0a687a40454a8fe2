package usecases

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/domain/rbac"
	"mercato.backend/internal/domain/repositories"
	"mercato.backend/pkg/crypto"
	"mercato.backend/pkg/jwt"
	"mercato.backend/pkg/logger"
	"mercato.backend/pkg/redis"
)

var generateSessionID = crypto.NewSessionID

// SessionStore keeps server-side login sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	jwtService   *jwt.JWTService
	sessionStore SessionStore
	sessionTTL   time.Duration
}

// NewAuthUsecase creates a new auth usecase. sessionStore may be nil when Redis is not configured.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	sessionStore SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	if sessionTTL <= 0 {
		sessionTTL = jwtService.Expiry()
	}
	return &AuthUsecase{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Signup registers a customer account and signs it in
func (u *AuthUsecase) Signup(ctx context.Context, input *entities.SignupInput) (*entities.AuthResponse, error) {
	user, err := u.newUser(ctx, input.Username, input.Email, input.Phone, input.Password, entities.RoleCustomer)
	if err != nil {
		return nil, err
	}
	user.Profile = input.Profile.ToProfile()

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict("username already taken")
		}
		return nil, err
	}

	logger.Info(ctx, "User signed up", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	token, err := u.jwtService.GenerateToken(user.ID, user.Username, int(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{AccessToken: token, User: user}, nil
}

// Login authenticates a user and returns a token, optionally backed by a server-side session
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NewError("invalid username or password", domainerrors.ErrInvalidCredentials)
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.NewError("invalid username or password", domainerrors.ErrInvalidCredentials)
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Username, int(user.Role))
	if err != nil {
		return nil, err
	}

	resp := &entities.AuthResponse{AccessToken: token, User: user}
	if !input.UseSession {
		return resp, nil
	}

	if u.sessionStore == nil {
		return nil, domainerrors.NewError("sessions are not available", domainerrors.ErrBadRequest)
	}
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, err
	}
	if err := u.sessionStore.CreateSession(ctx, sessionID, &redis.SessionData{
		UserID:      user.ID,
		Username:    user.Username,
		RoleID:      int(user.Role),
		AccessToken: token,
	}, u.sessionTTL); err != nil {
		return nil, err
	}
	resp.SessionID = sessionID
	return resp, nil
}

// Logout drops the server-side session, if any
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessionStore == nil {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}

// CreateUser lets an administrator create another administrator account.
// Only a developer may create a developer.
func (u *AuthUsecase) CreateUser(ctx context.Context, actor entities.Actor, input *entities.CreateUserInput) (*entities.User, error) {
	if err := rbac.Authorize(actor.Role, rbac.OpCreateUser); err != nil {
		return nil, err
	}

	role, ok := entities.ParseRole(input.Role)
	if !ok || !role.In(entities.AdminCreatableRoles...) {
		return nil, domainerrors.BadRequest("role must be one of Developer, PlatformAdmin, OperationsAdmin")
	}
	if role == entities.RoleDeveloper && actor.Role != entities.RoleDeveloper {
		return nil, domainerrors.Unauthorized("only developers can create developer accounts")
	}

	user, err := u.newUser(ctx, input.Username, input.Email, input.Phone, input.Password, role)
	if err != nil {
		return nil, err
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if isConflict(err) {
			return nil, domainerrors.Conflict("username already taken")
		}
		return nil, err
	}

	logger.Info(ctx, "Administrator account created",
		zap.Int64("user_id", user.ID),
		zap.String("role", role.String()),
		zap.Int64("created_by", actor.UserID),
	)
	return user, nil
}

func (u *AuthUsecase) newUser(ctx context.Context, username, email, phone, password string, role entities.Role) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domainerrors.BadRequest("username is required")
	}
	if err := crypto.ValidatePassword(password); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	_, err := u.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, domainerrors.Conflict("username already taken")
	}
	if !isNotFound(err) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		Username:     username,
		Email:        optionalString(email),
		Phone:        optionalString(phone),
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}
