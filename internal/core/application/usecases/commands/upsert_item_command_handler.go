package commands

import (
	"context"

	"shipflow/internal/core/domain/model/item"
	"shipflow/internal/core/domain/services"
)

type UpsertItemCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.AccessPolicy
}

func NewUpsertItemCommandHandler(uowFactory ItemUoWFactory, policy services.AccessPolicy) UpsertItemCommandHandler {
	return UpsertItemCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle saves the row and returns the normalized item number.
func (h *UpsertItemCommandHandler) Handle(ctx context.Context, cmd UpsertItemCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := h.policy.Authorize(cmd.Session(), services.ManageItems); err != nil {
		return "", err
	}

	it, err := newItem(cmd.Row())
	if err != nil {
		return "", err
	}

	uow := h.uowFactory.Create(cmd.Session().Environment())
	if err = uow.Begin(ctx); err != nil {
		return "", storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ItemRepository().Save(ctx, it); err != nil {
		return "", storageError("save item", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return "", storageError("commit item", err)
	}
	return it.Number(), nil
}

func newItem(row ItemRow) (*item.Item, error) {
	it, err := item.NewItem(row.Number, row.Name, row.Unit, row.Manufacturer, row.Vendor)
	if err != nil {
		return nil, err
	}
	if !row.Active {
		it.Deactivate()
	}
	return it, nil
}
