package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "mercato.backend/internal/domain/errors"
)

func TestPlanTransition_ReservesWhenLeavingRequested(t *testing.T) {
	tr, err := PlanTransition(OrderStatusRequested, OrderStatusPending)
	require.NoError(t, err)
	assert.True(t, tr.Reserve)
	assert.False(t, tr.Release)

	tr, err = PlanTransition(OrderStatusRequested, OrderStatusShipped)
	require.NoError(t, err)
	assert.True(t, tr.Reserve)

	tr, err = PlanTransition(OrderStatusPending, OrderStatusProcessing)
	require.NoError(t, err)
	assert.False(t, tr.Reserve)
}

func TestPlanTransition_RejectsBackwardAndTerminal(t *testing.T) {
	_, err := PlanTransition(OrderStatusPending, OrderStatusRequested)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = PlanTransition(OrderStatusShipped, OrderStatusShipped)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = PlanTransition(OrderStatusDelivered, OrderStatusRejected)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = PlanTransition(OrderStatusPending, OrderStatus("LOST"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

// Rejection and cancellation restore stock; the upstream flow never did.
func TestPlanTransition_TerminalStatesReleaseReservedStock(t *testing.T) {
	tr, err := PlanTransition(OrderStatusPending, OrderStatusRejected)
	require.NoError(t, err)
	assert.True(t, tr.Release)

	tr, err = PlanTransition(OrderStatusRequested, OrderStatusRejected)
	require.NoError(t, err)
	assert.False(t, tr.Release)

	tr, err = PlanTransition(OrderStatusPending, OrderStatusCancelled)
	require.NoError(t, err)
	assert.True(t, tr.Release)

	_, err = PlanTransition(OrderStatusProcessing, OrderStatusCancelled)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = PlanTransition(OrderStatusShipped, OrderStatusRejected)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, s)

	_, err = ParseOrderStatus("shipped")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
