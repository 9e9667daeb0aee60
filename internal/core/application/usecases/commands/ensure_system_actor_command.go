package commands

import (
	"context"
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrEnsureSystemActorCommandIsNotConstructed = errors.New(
	"EnsureSystemActorCommand must be created via NewEnsureSystemActorCommand constructor",
)

// EnsureSystemActorCommand describes the user that scheduled jobs act as.
type EnsureSystemActorCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	name   string
	email  string

	guard guard.ConstructorGuard
}

func NewEnsureSystemActorCommand(userID kernel.UUID, name, email string) (EnsureSystemActorCommand, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	errList := []error{userID.Validate()}
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if email == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if err := errors.Join(errList...); err != nil {
		return EnsureSystemActorCommand{}, err
	}

	return EnsureSystemActorCommand{
		userID: userID,
		name:   name,
		email:  email,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c EnsureSystemActorCommand) Validate() error {
	return c.guard.Validate(ErrEnsureSystemActorCommandIsNotConstructed)
}

func (c EnsureSystemActorCommand) UserID() kernel.UUID { return c.userID }
func (c EnsureSystemActorCommand) Name() string        { return c.name }
func (c EnsureSystemActorCommand) Email() string       { return c.email }

// EnsureSystemActorCommandHandler creates the SYSTEM user on first start.
// An existing user with the same ID is left untouched.
type EnsureSystemActorCommandHandler struct {
	uowFactory AccountUoWFactory
}

func NewEnsureSystemActorCommandHandler(uowFactory AccountUoWFactory) *EnsureSystemActorCommandHandler {
	return &EnsureSystemActorCommandHandler{uowFactory: uowFactory}
}

func (h *EnsureSystemActorCommandHandler) Handle(ctx context.Context, command EnsureSystemActorCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	err := uow.AccountRepository().EnsureUser(ctx, &account.User{
		ID:    command.UserID(),
		Name:  command.Name(),
		Email: command.Email(),
		Role:  account.RoleSystem,
	})
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
