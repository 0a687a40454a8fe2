package storage

import (
	"fmt"

	domainerrors "mercato.backend/internal/domain/errors"
)

func errNotFound(key string) error {
	return domainerrors.NewError(fmt.Sprintf("object %s not found", key), domainerrors.ErrNotFound)
}
