package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/volatiletech/null/v8"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
)

// Notifier delivers a message to a single user without failing the caller.
type Notifier interface {
	Emit(ctx context.Context, userID int64, notificationType entities.NotificationType, message string)
}

type pendingNotification struct {
	userID  int64
	kind    entities.NotificationType
	message string
}

// emitAll is called once the triggering transaction has committed.
func emitAll(ctx context.Context, notifier Notifier, pending []pendingNotification) {
	if notifier == nil {
		return
	}
	for _, n := range pending {
		notifier.Emit(ctx, n.userID, n.kind, n.message)
	}
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, s != "")
}

func isNotFound(err error) bool {
	return errors.Is(err, domainerrors.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, domainerrors.ErrAlreadyExists)
}
