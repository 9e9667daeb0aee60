package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/notification"
)

// Notifier dispatches notification triggers. Implementations log their own
// failures; callers never see them.
type Notifier interface {
	Notify(ctx context.Context, trigger notification.Trigger)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })
