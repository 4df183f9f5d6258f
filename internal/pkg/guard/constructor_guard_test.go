package guard_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	type cancelRequest struct {
		orderID string
		guard   guard.ConstructorGuard
	}
	errNotConstructed := errors.New("cancelRequest must be created via newCancelRequest")
	newCancelRequest := func(id string) cancelRequest {
		return cancelRequest{orderID: id, guard: guard.NewConstructorGuard()}
	}

	require.NoError(t, newCancelRequest("o-1").guard.Validate(errNotConstructed))
	assert.Equal(t, errNotConstructed, cancelRequest{orderID: "o-1"}.guard.Validate(errNotConstructed))
}
