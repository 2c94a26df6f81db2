package domain_test

import (
	"testing"

	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTransition(t *testing.T) {
	tests := []struct {
		name      string
		from      domain.OrderStatus
		to        domain.OrderStatus
		want      domain.TransitionPlan
		wantError error
	}{
		{
			name: "pending to confirmed: ok",
			from: domain.OrderStatusPending,
			to:   domain.OrderStatusConfirmed,
			want: domain.TransitionPlan{From: domain.OrderStatusPending, To: domain.OrderStatusConfirmed},
		},
		{
			name: "pending to fulfilled deducts stock: ok",
			from: domain.OrderStatusPending,
			to:   domain.OrderStatusFulfilled,
			want: domain.TransitionPlan{From: domain.OrderStatusPending, To: domain.OrderStatusFulfilled, DeductStock: true},
		},
		{
			name: "confirmed to fulfilled deducts stock: ok",
			from: domain.OrderStatusConfirmed,
			to:   domain.OrderStatusFulfilled,
			want: domain.TransitionPlan{From: domain.OrderStatusConfirmed, To: domain.OrderStatusFulfilled, DeductStock: true},
		},
		{
			name: "confirmed to cancelled reverses stats: ok",
			from: domain.OrderStatusConfirmed,
			to:   domain.OrderStatusCancelled,
			want: domain.TransitionPlan{From: domain.OrderStatusConfirmed, To: domain.OrderStatusCancelled, ReverseStats: true},
		},
		{
			name: "confirmed to paid: ok",
			from: domain.OrderStatusConfirmed,
			to:   domain.OrderStatusPaid,
			want: domain.TransitionPlan{From: domain.OrderStatusConfirmed, To: domain.OrderStatusPaid},
		},
		{
			name: "fulfilled to fulfilled is a no-op: ok",
			from: domain.OrderStatusFulfilled,
			to:   domain.OrderStatusFulfilled,
			want: domain.TransitionPlan{From: domain.OrderStatusFulfilled, To: domain.OrderStatusFulfilled, NoOp: true},
		},
		{
			name: "cancelled to cancelled is a no-op: ok",
			from: domain.OrderStatusCancelled,
			to:   domain.OrderStatusCancelled,
			want: domain.TransitionPlan{From: domain.OrderStatusCancelled, To: domain.OrderStatusCancelled, NoOp: true},
		},
		{
			name:      "cancelled to pending: fail",
			from:      domain.OrderStatusCancelled,
			to:        domain.OrderStatusPending,
			wantError: domain.ErrIllegalTransition,
		},
		{
			name:      "cancelled to fulfilled: fail",
			from:      domain.OrderStatusCancelled,
			to:        domain.OrderStatusFulfilled,
			wantError: domain.ErrIllegalTransition,
		},
		{
			name:      "fulfilled to cancelled: fail",
			from:      domain.OrderStatusFulfilled,
			to:        domain.OrderStatusCancelled,
			wantError: domain.ErrIllegalTransition,
		},
		{
			name:      "paid to fulfilled: fail",
			from:      domain.OrderStatusPaid,
			to:        domain.OrderStatusFulfilled,
			wantError: domain.ErrIllegalTransition,
		},
		{
			name:      "confirmed to pending: fail",
			from:      domain.OrderStatusConfirmed,
			to:        domain.OrderStatusPending,
			wantError: domain.ErrIllegalTransition,
		},
		{
			name:      "unknown target status: fail",
			from:      domain.OrderStatusPending,
			to:        domain.OrderStatus("shipped"),
			wantError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := domain.PlanTransition(tt.from, tt.to)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want, plan)
		})
	}
}

func TestToOrderStatus(t *testing.T) {
	for _, status := range domain.OrderStatuses() {
		got, err := domain.ToOrderStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, got)
	}

	_, err := domain.ToOrderStatus("Confirmed")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.False(t, domain.OrderStatusPending.Terminal())
	assert.False(t, domain.OrderStatusConfirmed.Terminal())
	assert.True(t, domain.OrderStatusPaid.Terminal())
	assert.True(t, domain.OrderStatusFulfilled.Terminal())
	assert.True(t, domain.OrderStatusCancelled.Terminal())
}
