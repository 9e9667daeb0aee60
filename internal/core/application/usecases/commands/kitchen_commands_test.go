package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKitchenSheetCommandHandler_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	storeID := env.seedStore()
	soup := env.seedProduct("SOUP", "6.00", ptr(3))
	bread := env.seedProduct("BREAD", "2.00", ptr(2))
	o := env.createOrder(storeID,
		commands.OrderLine{ProductID: soup, Quantity: 4},
		commands.OrderLine{ProductID: bread, Quantity: 10},
	)
	env.approveOrder(o.ID())

	first := env.generateSheet(o.ID())
	second := env.generateSheet(o.ID())

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, kitchen.StatusPending, second.Status())
	require.Len(t, second.Items(), 2)
	assert.Equal(t, soup, second.Items()[0].ProductID())
	assert.Equal(t, 4, second.Items()[0].Quantity())
	assert.Equal(t, order.StatusKitchenPrep, env.getOrder(o.ID()).Status())
}

func TestGenerateKitchenSheetCommandHandler_RequiresApprovedOrder(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(env.seedStore())

	cmd, err := commands.NewGenerateKitchenSheetCommand(o.ID())
	require.NoError(t, err)
	_, err = commands.NewGenerateKitchenSheetCommandHandler(env.kitchenUoW(), env.clock).Handle(env.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)

	cmd, err = commands.NewGenerateKitchenSheetCommand(kernel.NewUUID())
	require.NoError(t, err)
	_, err = commands.NewGenerateKitchenSheetCommandHandler(env.kitchenUoW(), env.clock).Handle(env.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestMarkItemPackedCommandHandler_LastItemCompletesSheetAndOrder(t *testing.T) {
	env := newTestEnv(t)
	storeID := env.seedStore()
	o := env.createOrder(storeID,
		commands.OrderLine{ProductID: env.seedProduct("CHEESE", "8.00", nil), Quantity: 1},
		commands.OrderLine{ProductID: env.seedProduct("HAM", "9.00", ptr(10)), Quantity: 2},
	)
	env.approveOrder(o.ID())
	sheet := env.generateSheet(o.ID())
	items := sheet.Items()

	partial, err := env.packItem(sheet.ID(), items[0].ID())
	require.NoError(t, err)
	assert.Equal(t, kitchen.StatusInProgress, partial.Status())
	assert.Equal(t, 1, partial.PackedCount())
	assert.Nil(t, partial.CompletedAt())
	assert.Equal(t, order.StatusKitchenPrep, env.getOrder(o.ID()).Status())

	env.advance(30 * time.Minute)
	completed, err := env.packItem(sheet.ID(), items[1].ID())
	require.NoError(t, err)
	assert.Equal(t, kitchen.StatusCompleted, completed.Status())
	require.NotNil(t, completed.CompletedAt())
	assert.True(t, completed.CompletedAt().Equal(env.now))
	assert.Equal(t, order.StatusReady, env.getOrder(o.ID()).Status())

	stored, err := env.factory.Create().KitchenSheetRepository().Get(env.ctx, sheet.ID())
	require.NoError(t, err)
	for _, item := range stored.Items() {
		assert.True(t, item.IsPacked())
		assert.Equal(t, "B-001", item.BatchNumber())
		assert.Len(t, item.Barcode(), 16)
		assert.Contains(t, item.QRCode(), o.Number())
	}

	_, err = env.packItem(sheet.ID(), items[0].ID())
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}

func TestMarkItemPackedCommandHandler_UnknownItem(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(env.seedStore(), commands.OrderLine{ProductID: env.seedProduct("TEA", "3.00", nil), Quantity: 1})
	env.approveOrder(o.ID())
	sheet := env.generateSheet(o.ID())

	_, err := env.packItem(sheet.ID(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	stored, err := env.factory.Create().KitchenSheetRepository().Get(env.ctx, sheet.ID())
	require.NoError(t, err)
	assert.Equal(t, kitchen.StatusPending, stored.Status())
}

func TestUpdateKitchenSheetItemCommandHandler(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(env.seedStore(), commands.OrderLine{ProductID: env.seedProduct("JAM", "4.50", nil), Quantity: 3})
	env.approveOrder(o.ID())
	sheet := env.generateSheet(o.ID())
	itemID := sheet.Items()[0].ID()
	expiry := env.now.AddDate(0, 1, 0)

	cmd, err := commands.NewUpdateKitchenSheetItemCommand(sheet.ID(), itemID, ptr(" LOT-7 "), &expiry)
	require.NoError(t, err)
	item, err := commands.NewUpdateKitchenSheetItemCommandHandler(env.kitchenUoW(), env.clock).Handle(env.ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "LOT-7", item.BatchNumber())
	assert.False(t, item.IsPacked())

	stored, err := env.factory.Create().KitchenSheetRepository().Get(env.ctx, sheet.ID())
	require.NoError(t, err)
	storedItem, err := stored.Item(itemID)
	require.NoError(t, err)
	assert.Equal(t, "LOT-7", storedItem.BatchNumber())
	require.NotNil(t, storedItem.ExpiryDate())
	assert.True(t, storedItem.ExpiryDate().Equal(expiry))
}

func TestNewMarkItemPackedCommand_RequiresLabelData(t *testing.T) {
	_, err := commands.NewMarkItemPackedCommand(kernel.NewUUID(), kernel.NewUUID(), "  ", time.Now().AddDate(0, 0, 3), nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewMarkItemPackedCommand(kernel.NewUUID(), kernel.NewUUID(), "B-1", time.Time{}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
