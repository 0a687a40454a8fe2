package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// RoleRequestStatus represents the review state of a role request
type RoleRequestStatus string

const (
	RoleRequestPending  RoleRequestStatus = "PENDING"
	RoleRequestApproved RoleRequestStatus = "APPROVED"
	RoleRequestRejected RoleRequestStatus = "REJECTED"
)

// RoleRequest represents a user's request to be granted a role
type RoleRequest struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"userId"`
	RequestedRole string            `json:"requestedRole"`
	Status        RoleRequestStatus `json:"status"`
	AdminID       null.Int64        `json:"adminId"`
	User          *User             `json:"user,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// RoleRequestInput represents input for requesting a role
type RoleRequestInput struct {
	RequestedRole string `json:"requestedRole" binding:"required,role_name"`
}
