package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectReturnCommandIsNotConstructed = errors.New(
	"RejectReturnCommand must be created via NewRejectReturnCommand constructor",
)

type RejectReturnCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

func NewRejectReturnCommand(returnID kernel.UUID, notes string) (RejectReturnCommand, error) {
	if err := returnID.Validate(); err != nil {
		return RejectReturnCommand{}, err
	}
	return RejectReturnCommand{returnID: returnID, notes: notes, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectReturnCommand) Validate() error {
	return c.guard.Validate(ErrRejectReturnCommandIsNotConstructed)
}

func (c RejectReturnCommand) ReturnID() kernel.UUID { return c.returnID }
func (c RejectReturnCommand) Notes() string         { return c.notes }

// RejectReturnCommandHandler closes a PENDING return without any financial
// effect.
type RejectReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	clock      ports.Clock
}

func NewRejectReturnCommandHandler(uowFactory ReturnUoWFactory, clock ports.Clock) *RejectReturnCommandHandler {
	return &RejectReturnCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *RejectReturnCommandHandler) Handle(ctx context.Context, command RejectReturnCommand) (*returns.Return, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	returnRepo := uow.ReturnRepository()
	ret, err := returnRepo.GetForUpdate(ctx, command.ReturnID())
	if err != nil {
		return nil, err
	}

	if err = ret.Reject(command.Notes(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = returnRepo.Update(ctx, ret); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ret, nil
}
