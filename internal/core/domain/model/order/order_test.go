package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

func mustItem(t *testing.T, qty int, price string) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func mustOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20260115-0001", kernel.NewUUID(), kernel.NewUUID(),
		order.TypeManual, items, "", now)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("should compute line total from quantity and unit price", func(t *testing.T) {
		item := mustItem(t, 2, "5.00")

		assert.Equal(t, 2, item.Quantity())
		assert.True(t, item.TotalPrice().Equal(decimal.NewFromInt(10)))
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 0, decimal.NewFromInt(5))

		require.Error(t, err)
		assert.Nil(t, item)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.NewFromInt(-1))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("should create draft order with summed total", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, 2, "5.00"), mustItem(t, 1, "2.50"))

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusDraft, o.Status())
		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("12.50")))
		assert.Len(t, o.Items(), 2)
		assert.Nil(t, o.ApprovedByID())
	})

	t.Run("should allow an empty item set", func(t *testing.T) {
		o := mustOrder(t)

		assert.True(t, o.TotalAmount().IsZero())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, "", kernel.NewUUID(), kernel.NewUUID(), order.Type("BULK"), nil, "", now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "BULK")
	})

	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ReplaceItems(t *testing.T) {
	t.Run("should replace items and recompute total while draft", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, 2, "5.00"))

		err := o.ReplaceItems([]*order.Item{mustItem(t, 3, "4.00")}, now.Add(time.Hour))

		require.NoError(t, err)
		assert.Len(t, o.Items(), 1)
		assert.True(t, o.TotalAmount().Equal(decimal.NewFromInt(12)))
		assert.Equal(t, now.Add(time.Hour), o.UpdatedAt())
	})

	t.Run("should allow edits while pending", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Submit(now))

		require.NoError(t, o.ReplaceItems([]*order.Item{mustItem(t, 1, "1.00")}, now))
	})

	t.Run("should refuse edits after approval", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, 1, "1.00"))
		require.NoError(t, o.Approve(kernel.NewUUID(), now))

		err := o.ReplaceItems(nil, now)

		require.Error(t, err)
		var transitionErr *errs.InvalidStateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "APPROVED", transitionErr.Current)
		assert.Equal(t, "UPDATE_ITEMS", transitionErr.Attempted)
		assert.True(t, o.TotalAmount().Equal(decimal.NewFromInt(1)))
	})
}

func TestOrder_Approve(t *testing.T) {
	t.Run("should approve pending order without items", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Submit(now))
		approver := kernel.NewUUID()

		require.NoError(t, o.Approve(approver, now))

		assert.Equal(t, order.StatusApproved, o.Status())
		require.NotNil(t, o.ApprovedByID())
		assert.True(t, o.ApprovedByID().IsEqual(approver))
		require.NotNil(t, o.ApprovedAt())
		assert.Equal(t, now, *o.ApprovedAt())
	})

	t.Run("should approve directly from draft", func(t *testing.T) {
		o := mustOrder(t)

		require.NoError(t, o.Approve(kernel.NewUUID(), now))
	})

	t.Run("should not approve twice", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Approve(kernel.NewUUID(), now))

		err := o.Approve(kernel.NewUUID(), now)

		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("should require approver", func(t *testing.T) {
		o := mustOrder(t)

		assert.ErrorIs(t, o.Approve(kernel.UUID{}, now), kernel.ErrUUIDIsNotConstructed)
		assert.Equal(t, order.StatusDraft, o.Status())
	})
}

func TestOrder_Reject(t *testing.T) {
	t.Run("should append notes", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "ORD-20260115-0002", kernel.NewUUID(), kernel.NewUUID(),
			order.TypeManual, nil, "deliver before noon", now)
		require.NoError(t, err)

		require.NoError(t, o.Reject("out of budget", now))

		assert.Equal(t, order.StatusRejected, o.Status())
		assert.Equal(t, "deliver before noon\nRejected: out of budget", o.Notes())
	})

	t.Run("should keep notes untouched when none given", func(t *testing.T) {
		o := mustOrder(t)

		require.NoError(t, o.Reject("  ", now))

		assert.Empty(t, o.Notes())
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Reject("", now))

		assert.ErrorIs(t, o.Cancel(now), errs.ErrInvalidStateTransition)
		assert.ErrorIs(t, o.Submit(now), errs.ErrInvalidStateTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel approved order", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Approve(kernel.NewUUID(), now))

		require.NoError(t, o.Cancel(now))
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("should not cancel once kitchen prep started", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Approve(kernel.NewUUID(), now))
		require.NoError(t, o.StartKitchenPrep(now))

		err := o.Cancel(now)

		var transitionErr *errs.InvalidStateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "KITCHEN_PREP", transitionErr.Current)
		assert.Equal(t, "CANCELLED", transitionErr.Attempted)
	})
}

func TestOrder_FulfillmentPath(t *testing.T) {
	t.Run("should walk the whole pipeline", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, 1, "3.00"))

		require.NoError(t, o.Submit(now))
		require.NoError(t, o.Approve(kernel.NewUUID(), now))
		require.NoError(t, o.StartKitchenPrep(now))
		require.NoError(t, o.MarkReady(now))
		require.NoError(t, o.StartDelivery(now))
		require.NoError(t, o.MarkDelivered(now))

		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("should not skip kitchen prep", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.Approve(kernel.NewUUID(), now))

		assert.ErrorIs(t, o.MarkReady(now), errs.ErrInvalidStateTransition)
		assert.ErrorIs(t, o.StartDelivery(now), errs.ErrInvalidStateTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should round trip through snapshot", func(t *testing.T) {
		o := mustOrder(t, mustItem(t, 2, "5.00"))
		require.NoError(t, o.Approve(kernel.NewUUID(), now))

		restored := order.RestoreOrder(o.Snapshot())

		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Status(), restored.Status())
		assert.Equal(t, o.Number(), restored.Number())
		assert.True(t, o.TotalAmount().Equal(restored.TotalAmount()))
		assert.Len(t, restored.Items(), 1)
	})
}
