package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	domainerrors "mercato.backend/internal/domain/errors"
)

// User represents a user entity
type User struct {
	ID             int64       `json:"id"`
	Username       string      `json:"username"`
	Email          null.String `json:"email"`
	Phone          null.String `json:"phone"`
	PasswordHash   string      `json:"-"`
	Role           Role        `json:"role"`
	ProfilePicture null.String `json:"profilePicture"`
	Profile        *Profile    `json:"profile,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Profile holds the optional 1:1 personal details of a user.
type Profile struct {
	Name    null.String `json:"name"`
	Address null.String `json:"address"`
	City    null.String `json:"city"`
	Country null.String `json:"country"`
}

// ProfileInput represents profile fields supplied at signup
type ProfileInput struct {
	Name    string `json:"name,omitempty" binding:"omitempty,max=100"`
	Address string `json:"address,omitempty" binding:"omitempty,max=255"`
	City    string `json:"city,omitempty" binding:"omitempty,max=100"`
	Country string `json:"country,omitempty" binding:"omitempty,max=100"`
}

// ToProfile converts signup profile input into a Profile, nil when nothing was supplied.
func (p *ProfileInput) ToProfile() *Profile {
	if p == nil {
		return nil
	}
	profile := &Profile{
		Name:    nullIfEmpty(p.Name),
		Address: nullIfEmpty(p.Address),
		City:    nullIfEmpty(p.City),
		Country: nullIfEmpty(p.Country),
	}
	if !profile.Name.Valid && !profile.Address.Valid && !profile.City.Valid && !profile.Country.Valid {
		return nil
	}
	return profile
}

// SignupInput represents input for self registration
type SignupInput struct {
	Username string        `json:"username" binding:"required,min=3,max=50"`
	Email    string        `json:"email,omitempty" binding:"omitempty,email"`
	Phone    string        `json:"phone,omitempty" binding:"omitempty,max=20"`
	Password string        `json:"password" binding:"required,min=6"`
	Profile  *ProfileInput `json:"profile,omitempty"`
}

// LoginInput represents input for login
type LoginInput struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// CreateUserInput represents input for admin user creation
type CreateUserInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,role_name"`
}

// ChangePasswordInput represents input for a password change
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UserPatch is a partial update of the caller's own account.
type UserPatch struct {
	Username Optional[string] `json:"username"`
	Email    Optional[string] `json:"email"`
	Phone    Optional[string] `json:"phone"`
	Name     Optional[string] `json:"name"`
	Address  Optional[string] `json:"address"`
	City     Optional[string] `json:"city"`
	Country  Optional[string] `json:"country"`
}

// TouchesProfile reports whether any profile column is part of the patch.
func (p UserPatch) TouchesProfile() bool {
	return p.Name.Set || p.Address.Set || p.City.Set || p.Country.Set
}

// Apply writes the patch onto u. Username is required and may not be blanked.
func (p UserPatch) Apply(u *User) error {
	if err := applyRequired(p.Username, &u.Username, "username"); err != nil {
		return err
	}
	if p.Username.Set && strings.TrimSpace(u.Username) == "" {
		return domainerrors.NewError("username cannot be empty", domainerrors.ErrInvalidInput)
	}
	applyNullString(p.Email, &u.Email)
	applyNullString(p.Phone, &u.Phone)
	if p.TouchesProfile() {
		if u.Profile == nil {
			u.Profile = &Profile{}
		}
		applyNullString(p.Name, &u.Profile.Name)
		applyNullString(p.Address, &u.Profile.Address)
		applyNullString(p.City, &u.Profile.City)
		applyNullString(p.Country, &u.Profile.Country)
	}
	return nil
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	SessionID   string `json:"sessionId,omitempty"`
	User        *User  `json:"user"`
}

func nullIfEmpty(s string) null.String {
	if strings.TrimSpace(s) == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
