package kitchen_test

import (
	"encoding/json"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now    = time.Date(2026, 1, 16, 7, 0, 0, 0, time.UTC)
	expiry = time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC)
	lc     = kitchen.LabelContext{SKU: "MILK-1L", OrderNumber: "ORD-20260115-0001"}
)

func newSheet(t *testing.T, itemCount int) *kitchen.Sheet {
	t.Helper()
	items := make([]*kitchen.Item, 0, itemCount)
	for range itemCount {
		item, err := kitchen.NewItem(kernel.NewUUID(), kernel.NewUUID(), 3)
		require.NoError(t, err)
		items = append(items, item)
	}
	sheet, err := kitchen.NewSheet(kernel.NewUUID(), kernel.NewUUID(), items, now)
	require.NoError(t, err)
	return sheet
}

func TestNewSheet(t *testing.T) {
	t.Run("should start pending", func(t *testing.T) {
		sheet := newSheet(t, 2)

		require.NoError(t, sheet.Validate())
		assert.Equal(t, kitchen.StatusPending, sheet.Status())
		assert.Nil(t, sheet.CompletedAt())
		assert.Equal(t, 0, sheet.PackedCount())
	})

	t.Run("should require order id", func(t *testing.T) {
		sheet, err := kitchen.NewSheet(kernel.NewUUID(), kernel.UUID{}, nil, now)

		assert.Nil(t, sheet)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject non-positive item quantity", func(t *testing.T) {
		_, err := kitchen.NewItem(kernel.NewUUID(), kernel.NewUUID(), 0)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSheet_UpdateItem(t *testing.T) {
	t.Run("should set batch and expiry without packing", func(t *testing.T) {
		sheet := newSheet(t, 1)
		itemID := sheet.Items()[0].ID()
		batch := "B-42"

		item, err := sheet.UpdateItem(itemID, &batch, &expiry, now)

		require.NoError(t, err)
		assert.Equal(t, "B-42", item.BatchNumber())
		require.NotNil(t, item.ExpiryDate())
		assert.Equal(t, expiry, *item.ExpiryDate())
		assert.False(t, item.IsPacked())
		assert.Equal(t, kitchen.StatusPending, sheet.Status())
	})

	t.Run("should reject item of another sheet", func(t *testing.T) {
		sheet := newSheet(t, 1)
		foreign := newSheet(t, 1).Items()[0].ID()

		_, err := sheet.UpdateItem(foreign, nil, nil, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "does not belong")
	})
}

func TestSheet_MarkItemPacked(t *testing.T) {
	t.Run("packing a non-last item does not complete the sheet", func(t *testing.T) {
		sheet := newSheet(t, 2)

		result, err := sheet.MarkItemPacked(sheet.Items()[0].ID(), "B-1", expiry, lc, nil, now)

		require.NoError(t, err)
		assert.False(t, result.Completed)
		assert.True(t, result.Item.IsPacked())
		assert.Equal(t, kitchen.StatusInProgress, sheet.Status())
		assert.Nil(t, sheet.CompletedAt())
	})

	t.Run("packing the last item completes the sheet", func(t *testing.T) {
		sheet := newSheet(t, 2)
		packer := kernel.NewUUID()
		_, err := sheet.MarkItemPacked(sheet.Items()[0].ID(), "B-1", expiry, lc, nil, now)
		require.NoError(t, err)

		result, err := sheet.MarkItemPacked(sheet.Items()[1].ID(), "B-2", expiry, lc, &packer, now.Add(time.Minute))

		require.NoError(t, err)
		assert.True(t, result.Completed)
		assert.Equal(t, kitchen.StatusCompleted, sheet.Status())
		require.NotNil(t, sheet.CompletedAt())
		assert.Equal(t, now.Add(time.Minute), *sheet.CompletedAt())
		require.NotNil(t, sheet.PreparedBy())
		assert.True(t, sheet.PreparedBy().IsEqual(packer))
	})

	t.Run("should require batch number and expiry date", func(t *testing.T) {
		sheet := newSheet(t, 1)
		itemID := sheet.Items()[0].ID()

		_, err := sheet.MarkItemPacked(itemID, " ", expiry, lc, nil, now)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = sheet.MarkItemPacked(itemID, "B-1", time.Time{}, lc, nil, now)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		assert.False(t, sheet.Items()[0].IsPacked())
		assert.Equal(t, kitchen.StatusPending, sheet.Status())
	})

	t.Run("should refuse packing on a completed sheet", func(t *testing.T) {
		sheet := newSheet(t, 1)
		itemID := sheet.Items()[0].ID()
		_, err := sheet.MarkItemPacked(itemID, "B-1", expiry, lc, nil, now)
		require.NoError(t, err)

		_, err = sheet.MarkItemPacked(itemID, "B-1", expiry, lc, nil, now)

		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("empty sheet never completes", func(t *testing.T) {
		sheet := newSheet(t, 0)

		_, err := sheet.MarkItemPacked(kernel.NewUUID(), "B-1", expiry, lc, nil, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, kitchen.StatusPending, sheet.Status())
	})
}

func TestNewLabel(t *testing.T) {
	itemID := kernel.NewUUID()

	t.Run("should be deterministic", func(t *testing.T) {
		first, err := kitchen.NewLabel(itemID, "B-1", expiry, lc)
		require.NoError(t, err)
		second, err := kitchen.NewLabel(itemID, "B-1", expiry, lc)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first.Barcode, 16)
	})

	t.Run("should change with batch", func(t *testing.T) {
		first, _ := kitchen.NewLabel(itemID, "B-1", expiry, lc)
		second, _ := kitchen.NewLabel(itemID, "B-2", expiry, lc)

		assert.NotEqual(t, first.Barcode, second.Barcode)
	})

	t.Run("qr payload carries item, batch, expiry, sku and order number", func(t *testing.T) {
		label, err := kitchen.NewLabel(itemID, "B-1", expiry, lc)
		require.NoError(t, err)

		var payload map[string]string
		require.NoError(t, json.Unmarshal([]byte(label.QRCode), &payload))
		assert.Equal(t, itemID.String(), payload["itemId"])
		assert.Equal(t, "B-1", payload["batch"])
		assert.Equal(t, "2026-01-23", payload["expiry"])
		assert.Equal(t, "MILK-1L", payload["sku"])
		assert.Equal(t, "ORD-20260115-0001", payload["orderNumber"])
	})
}
