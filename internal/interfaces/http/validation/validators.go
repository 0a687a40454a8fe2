// Package validation registers the domain-specific binding tags used by request DTOs.
package validation

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"mercato.backend/internal/domain/entities"
)

var validators = map[string]validator.Func{
	"order_status":    orderStatus,
	"approval_status": approvalStatus,
	"role_name":       roleName,
	"category_id":     categoryID,
}

// Register installs the custom tags on gin's validator engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("binding engine is not go-playground/validator")
	}
	return RegisterOn(v)
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func orderStatus(fl validator.FieldLevel) bool {
	return entities.OrderStatus(fl.Field().String()).IsValid()
}

func approvalStatus(fl validator.FieldLevel) bool {
	return entities.ApprovalStatus(fl.Field().String()).IsValid()
}

func roleName(fl validator.FieldLevel) bool {
	_, ok := entities.ParseRole(fl.Field().String())
	return ok
}

// categoryID accepts int64 fields and pointers to them; omitempty handles nil.
func categoryID(fl validator.FieldLevel) bool {
	return entities.ValidateCategoryID(fl.Field().Int()) == nil
}
