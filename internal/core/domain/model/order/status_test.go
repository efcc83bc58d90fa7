package order_test

import (
	"fmt"
	"testing"

	"pharmacy/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Placed))
		assert.Equal(t, 2, int(order.Confirmed))
		assert.Equal(t, 3, int(order.Shipped))
		assert.Equal(t, 4, int(order.Delivered))
		assert.Equal(t, 5, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Placed,
			order.Confirmed,
			order.Shipped,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
	})

	t.Run("should reject out-of-range status", func(t *testing.T) {
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:   "Unknown",
		order.Placed:    "placed",
		order.Confirmed: "confirmed",
		order.Shipped:   "shipped",
		order.Delivered: "delivered",
		order.Cancelled: "cancelled",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses every valid status name", func(t *testing.T) {
		for _, name := range []string{"placed", "confirmed", "shipped", "delivered", "cancelled"} {
			status, err := order.StatusFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, status.String())
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("teleported")
		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	type transition struct {
		from    order.Status
		to      order.Status
		allowed bool
	}

	transitions := []transition{
		{order.Placed, order.Confirmed, true},
		{order.Placed, order.Cancelled, true},
		{order.Placed, order.Shipped, false},
		{order.Placed, order.Delivered, false},
		{order.Confirmed, order.Shipped, true},
		{order.Confirmed, order.Cancelled, true},
		{order.Confirmed, order.Delivered, false},
		{order.Confirmed, order.Placed, false},
		{order.Shipped, order.Delivered, true},
		{order.Shipped, order.Cancelled, false},
		{order.Shipped, order.Placed, false},
		{order.Delivered, order.Cancelled, false},
		{order.Delivered, order.Placed, false},
		{order.Cancelled, order.Placed, false},
		{order.Cancelled, order.Delivered, false},
	}

	for _, tc := range transitions {
		t.Run(fmt.Sprintf("%s_to_%s", tc.from, tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatus_IsFinal(t *testing.T) {
	assert.False(t, order.Placed.IsFinal())
	assert.False(t, order.Confirmed.IsFinal())
	assert.False(t, order.Shipped.IsFinal())
	assert.True(t, order.Delivered.IsFinal())
	assert.True(t, order.Cancelled.IsFinal())
	assert.False(t, order.Unknown.IsFinal())
}
