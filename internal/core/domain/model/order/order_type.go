package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Type tells whether a human or the replenishment forecaster created the order.
type Type string

const (
	TypeManual        Type = "MANUAL"
	TypeAutoReplenish Type = "AUTO_REPLENISH"
)

func (t Type) Validate() error {
	if t != TypeManual && t != TypeAutoReplenish {
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a valid order type", string(t)))
	}
	return nil
}
