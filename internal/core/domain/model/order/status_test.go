package order_test

import (
	"fmt"
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "pending"},
		{order.Preparing, "preparing"},
		{order.Delivering, "delivering"},
		{order.Completed, "completed"},
		{order.Cancelled, "cancelled"},
		{order.Unknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Preparing, order.Delivering, order.Completed, order.Cancelled} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Pending.Validate())
	require.NoError(t, order.Cancelled.Validate())

	for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(6)} {
		t.Run(fmt.Sprintf("rejects %d", int(s)), func(t *testing.T) {
			require.ErrorIs(t, s.Validate(), errs.ErrValueIsInvalid)
		})
	}
}

func TestStatus_Classification(t *testing.T) {
	testCases := []struct {
		status    order.Status
		active    bool
		terminal  bool
		cancelErr bool
	}{
		{order.Pending, true, false, false},
		{order.Preparing, true, false, false},
		{order.Delivering, true, false, true},
		{order.Completed, false, true, true},
		{order.Cancelled, false, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.active, tc.status.IsActive())
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())
			if tc.cancelErr {
				require.Error(t, tc.status.ValidateCancel())
			} else {
				require.NoError(t, tc.status.ValidateCancel())
			}
		})
	}
}

func TestStatus_AdvanceTo(t *testing.T) {
	type edge struct {
		from, to order.Status
	}
	valid := map[order.DeliveryType][]edge{
		order.Delivery: {
			{order.Pending, order.Preparing},
			{order.Preparing, order.Delivering},
			{order.Delivering, order.Completed},
		},
		order.Pickup: {
			{order.Pending, order.Preparing},
			{order.Preparing, order.Completed},
		},
	}
	all := []order.Status{order.Pending, order.Preparing, order.Delivering, order.Completed, order.Cancelled}

	for deliveryType, edges := range valid {
		for _, from := range all {
			for _, to := range all {
				allowed := false
				for _, e := range edges {
					if e.from == from && e.to == to {
						allowed = true
					}
				}

				name := fmt.Sprintf("%s %s->%s", deliveryType, from, to)
				t.Run(name, func(t *testing.T) {
					next, err := from.AdvanceTo(to, deliveryType)
					if allowed {
						require.NoError(t, err)
						assert.Equal(t, to, next)
					} else {
						require.Error(t, err)
						assert.Equal(t, order.Unknown, next)
					}
				})
			}
		}
	}
}

func TestStatus_ValidateFor(t *testing.T) {
	tests := []struct {
		status       order.Status
		deliveryType order.DeliveryType
		valid        bool
	}{
		{order.Pending, order.Delivery, true},
		{order.Preparing, order.Delivery, true},
		{order.Delivering, order.Delivery, true},
		{order.Completed, order.Delivery, true},
		{order.Cancelled, order.Delivery, true},
		{order.Pending, order.Pickup, true},
		{order.Preparing, order.Pickup, true},
		{order.Delivering, order.Pickup, false},
		{order.Completed, order.Pickup, true},
		{order.Cancelled, order.Pickup, true},
		{order.Unknown, order.Pickup, false},
	}

	for _, tc := range tests {
		t.Run(tc.status.String()+"/"+tc.deliveryType.String(), func(t *testing.T) {
			err := tc.status.ValidateFor(tc.deliveryType)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStatus_Cancel(t *testing.T) {
	next, err := order.Preparing.Cancel()
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, next)

	next, err = order.Completed.Cancel()
	require.Error(t, err)
	assert.Equal(t, order.Unknown, next)
}

func TestParseDeliveryType(t *testing.T) {
	dt, err := order.ParseDeliveryType("Delivery")
	require.NoError(t, err)
	assert.Equal(t, order.Delivery, dt)

	dt, err = order.ParseDeliveryType("pickup")
	require.NoError(t, err)
	assert.Equal(t, order.Pickup, dt)

	_, err = order.ParseDeliveryType("drone")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, order.UnknownDeliveryType.Validate())
}
