// Package stock holds the per-store inventory levels watched by the
// replenishment forecaster.
package stock

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// StoreStock is the level of one product in one store.
type StoreStock struct {
	StoreID      kernel.UUID
	ProductID    kernel.UUID
	CurrentLevel int
	Threshold    int
	UpdatedAt    time.Time
}

// NewStoreStock creates a level record for a product not yet tracked.
func NewStoreStock(storeID, productID kernel.UUID, level, threshold int, now time.Time) (*StoreStock, error) {
	if err := errors.Join(storeID.Validate(), productID.Validate(), validateLevel(level), validateThreshold(threshold)); err != nil {
		return nil, err
	}
	return &StoreStock{
		StoreID:      storeID,
		ProductID:    productID,
		CurrentLevel: level,
		Threshold:    threshold,
		UpdatedAt:    now,
	}, nil
}

// IsLow reports whether the level is at or below the threshold.
func (s *StoreStock) IsLow() bool {
	return s.CurrentLevel <= s.Threshold
}

// SetLevel stores a new level and, when threshold is not nil, a new
// threshold. It reports whether this update crossed from above the
// threshold to at or below it.
func (s *StoreStock) SetLevel(level int, threshold *int, now time.Time) (bool, error) {
	if err := validateLevel(level); err != nil {
		return false, err
	}
	if threshold != nil {
		if err := validateThreshold(*threshold); err != nil {
			return false, err
		}
	}

	wasLow := s.IsLow()
	s.CurrentLevel = level
	if threshold != nil {
		s.Threshold = *threshold
	}
	s.UpdatedAt = now

	return !wasLow && s.IsLow(), nil
}

func validateLevel(level int) error {
	if level < 0 {
		return errs.NewValueIsInvalidErrorWithCause("currentLevel", fmt.Errorf("%d is negative", level))
	}
	return nil
}

func validateThreshold(threshold int) error {
	if threshold < 0 {
		return errs.NewValueIsInvalidErrorWithCause("threshold", fmt.Errorf("%d is negative", threshold))
	}
	return nil
}
