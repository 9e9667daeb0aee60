package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateReturnCommandIsNotConstructed = errors.New(
	"CreateReturnCommand must be created via NewCreateReturnCommand constructor",
)

// ReturnLine is a product handed back to the driver.
type ReturnLine struct {
	ProductID  kernel.UUID
	Quantity   int
	ExpiryDate *time.Time
	Reason     string
}

// CreateReturnCommand records goods returned against a delivery.
type CreateReturnCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	returnedBy kernel.UUID
	lines      []ReturnLine
	notes      string

	guard guard.ConstructorGuard
}

func NewCreateReturnCommand(
	deliveryID, returnedBy kernel.UUID,
	lines []ReturnLine,
	notes string,
) (CreateReturnCommand, error) {
	errList := []error{deliveryID.Validate(), returnedBy.Validate()}
	if len(lines) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
		}
		if line.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", line.Quantity),
			))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return CreateReturnCommand{}, err
	}

	return CreateReturnCommand{
		deliveryID: deliveryID,
		returnedBy: returnedBy,
		lines:      append([]ReturnLine(nil), lines...),
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReturnCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnCommandIsNotConstructed)
}

func (c CreateReturnCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CreateReturnCommand) ReturnedBy() kernel.UUID { return c.returnedBy }
func (c CreateReturnCommand) Lines() []ReturnLine     { return append([]ReturnLine(nil), c.lines...) }
func (c CreateReturnCommand) Notes() string           { return c.notes }

// CreateReturnCommandHandler stores a PENDING return. The delivery and
// every returned product must exist.
type CreateReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	clock      ports.Clock
}

func NewCreateReturnCommandHandler(uowFactory ReturnUoWFactory, clock ports.Clock) *CreateReturnCommandHandler {
	return &CreateReturnCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *CreateReturnCommandHandler) Handle(ctx context.Context, command CreateReturnCommand) (*returns.Return, error) {
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

	if _, err := uow.DeliveryRepository().Get(ctx, command.DeliveryID()); err != nil {
		return nil, err
	}

	lines := command.Lines()
	productIDs := make([]kernel.UUID, 0, len(lines))
	items := make([]*returns.Item, 0, len(lines))
	for _, line := range lines {
		item, err := returns.NewItem(kernel.NewUUID(), line.ProductID, line.Quantity, line.ExpiryDate, line.Reason)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		productIDs = append(productIDs, line.ProductID)
	}
	if _, err := uow.CatalogRepository().GetProducts(ctx, productIDs); err != nil {
		return nil, err
	}

	ret, err := returns.NewReturn(kernel.NewUUID(), command.DeliveryID(), command.ReturnedBy(), items, command.Notes(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.ReturnRepository().Add(ctx, ret); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ret, nil
}
