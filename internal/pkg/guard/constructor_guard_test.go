package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command not constructed")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type approveCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}
	errApproveNotConstructed := errors.New("approveCommand must be created via constructor")

	newApproveCommand := func(orderID string) (approveCommand, error) {
		if orderID == "" {
			return approveCommand{}, errors.New("order id is required")
		}
		return approveCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_sets_guard", func(t *testing.T) {
		cmd, err := newApproveCommand("o-1")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errApproveNotConstructed))
	})

	t.Run("literal_struct_is_rejected", func(t *testing.T) {
		cmd := approveCommand{orderID: "o-1"}

		require.ErrorIs(t, cmd.guard.Validate(errApproveNotConstructed), errApproveNotConstructed)
	})
}
