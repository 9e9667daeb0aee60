package stock_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 20, 6, 0, 0, 0, time.UTC)

func TestStoreStock_SetLevel(t *testing.T) {
	newStock := func(t *testing.T, level, threshold int) *stock.StoreStock {
		t.Helper()
		s, err := stock.NewStoreStock(kernel.NewUUID(), kernel.NewUUID(), level, threshold, now)
		require.NoError(t, err)
		return s
	}

	t.Run("should report crossing below threshold", func(t *testing.T) {
		s := newStock(t, 20, 10)

		crossed, err := s.SetLevel(10, nil, now)

		require.NoError(t, err)
		assert.True(t, crossed)
		assert.True(t, s.IsLow())
	})

	t.Run("should not report while already low", func(t *testing.T) {
		s := newStock(t, 5, 10)

		crossed, err := s.SetLevel(3, nil, now)

		require.NoError(t, err)
		assert.False(t, crossed)
	})

	t.Run("should not report while above threshold", func(t *testing.T) {
		s := newStock(t, 50, 10)

		crossed, err := s.SetLevel(11, nil, now)

		require.NoError(t, err)
		assert.False(t, crossed)
	})

	t.Run("raising the threshold can cause the crossing", func(t *testing.T) {
		s := newStock(t, 12, 10)
		threshold := 15

		crossed, err := s.SetLevel(12, &threshold, now)

		require.NoError(t, err)
		assert.True(t, crossed)
		assert.Equal(t, 15, s.Threshold)
	})

	t.Run("should reject negative values", func(t *testing.T) {
		s := newStock(t, 12, 10)
		threshold := -1

		_, err := s.SetLevel(-1, nil, now)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		_, err = s.SetLevel(1, &threshold, now)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 12, s.CurrentLevel)
	})
}
