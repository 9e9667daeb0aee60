// Package notifier delivers notification triggers raised by the use cases.
//
// The Dispatcher resolves a trigger's recipient selector to user IDs and
// hands one Message to every configured Channel. Delivery is best effort:
// resolution and channel failures are logged and never reach the caller,
// so a broken channel cannot undo a committed business operation.
package notifier

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
)

// Message is the channel-facing form of a trigger.
type Message struct {
	Kind       notification.Kind `json:"kind"`
	Recipients []string          `json:"recipients"`
	Payload    map[string]any    `json:"payload,omitempty"`
	SentAt     time.Time         `json:"sentAt"`
}

type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

type RecipientResolver interface {
	FindUserIDs(ctx context.Context, selector notification.RecipientSelector) ([]kernel.UUID, error)
}

var _ ports.Notifier = &Dispatcher{}

type Dispatcher struct {
	resolver RecipientResolver
	channels []Channel
	clock    ports.Clock
	logger   *zap.Logger
}

func NewDispatcher(resolver RecipientResolver, clock ports.Clock, logger *zap.Logger, channels ...Channel) *Dispatcher {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		resolver: resolver,
		channels: channels,
		clock:    clock,
		logger:   logger.Named("notifier"),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, trigger notification.Trigger) {
	log := d.logger.With(zap.String("kind", string(trigger.Kind)))

	ids, err := d.resolver.FindUserIDs(ctx, trigger.Recipients)
	if err != nil {
		log.Error("resolve recipients", zap.Error(errs.NewExternalServiceError("recipients", err)))
		return
	}
	if len(ids) == 0 {
		log.Debug("no recipients, notification skipped")
		return
	}

	msg := Message{
		Kind:       trigger.Kind,
		Recipients: make([]string, 0, len(ids)),
		Payload:    trigger.Payload,
		SentAt:     d.clock.Now(),
	}
	for _, id := range ids {
		msg.Recipients = append(msg.Recipients, id.String())
	}

	for _, ch := range d.channels {
		if err := ch.Send(ctx, msg); err != nil {
			log.Error("send notification",
				zap.String("channel", ch.Name()),
				zap.Error(errs.NewExternalServiceError(ch.Name(), err)))
		}
	}
}

// UnitOfWorkResolver looks recipients up outside of any transaction, so it
// sees only committed users.
type UnitOfWorkResolver struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewUnitOfWorkResolver(uowFactory ports.UnitOfWorkFactory) *UnitOfWorkResolver {
	return &UnitOfWorkResolver{uowFactory: uowFactory}
}

func (r *UnitOfWorkResolver) FindUserIDs(ctx context.Context, selector notification.RecipientSelector) ([]kernel.UUID, error) {
	return r.uowFactory.Create().AccountRepository().FindUserIDs(ctx, selector)
}
