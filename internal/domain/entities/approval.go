package entities

import (
	"fmt"

	domainerrors "mercato.backend/internal/domain/errors"
)

// ApprovalStatus is the review lifecycle shared by shops and warehouses.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// IsValid reports whether s is a known approval status.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// Decide resolves an approve/reject decision against the current status.
// changed is false when the entity already carries the target status.
// Reversing a decision that has already been made is a conflict.
func (s ApprovalStatus) Decide(target ApprovalStatus) (changed bool, err error) {
	if target != ApprovalStatusApproved && target != ApprovalStatusRejected {
		return false, domainerrors.NewError(fmt.Sprintf("invalid decision %q", target), domainerrors.ErrInvalidInput)
	}
	switch s {
	case target:
		return false, nil
	case ApprovalStatusPending:
		return true, nil
	default:
		return false, domainerrors.NewError(fmt.Sprintf("already %s", s), domainerrors.ErrAlreadyExists)
	}
}
