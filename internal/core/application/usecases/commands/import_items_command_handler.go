package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipflow/internal/core/domain/model/item"
	"shipflow/internal/core/domain/services"
)

// ImportItemsResult counts what was saved. Errors holds one message per
// rejected row, prefixed with its line number.
type ImportItemsResult struct {
	Imported int
	Failed   int
	Errors   []string
}

// ImportItemsCommandHandler upserts every valid row in one transaction and
// reports the rest. A storage failure aborts the whole import.
type ImportItemsCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.AccessPolicy
	logger     *slog.Logger
}

func NewImportItemsCommandHandler(
	uowFactory ItemUoWFactory,
	policy services.AccessPolicy,
	logger *slog.Logger,
) ImportItemsCommandHandler {
	return ImportItemsCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger.With("component", "ImportItemsCommandHandler"),
	}
}

func (h *ImportItemsCommandHandler) Handle(ctx context.Context, cmd ImportItemsCommand) (ImportItemsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ImportItemsResult{}, err
	}
	if err := h.policy.Authorize(cmd.Session(), services.ManageItems); err != nil {
		return ImportItemsResult{}, err
	}

	var (
		result ImportItemsResult
		valid  = make([]*item.Item, 0, len(cmd.Rows()))
	)
	for _, row := range cmd.Rows() {
		it, err := newItem(row.Item)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
			continue
		}
		valid = append(valid, it)
	}
	if len(valid) == 0 {
		return result, nil
	}

	uow := h.uowFactory.Create(cmd.Session().Environment())
	if err := uow.Begin(ctx); err != nil {
		return ImportItemsResult{}, storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ItemRepository()
	for _, it := range valid {
		if err := repo.Save(ctx, it); err != nil {
			return ImportItemsResult{}, storageError("save item "+it.Number(), err)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return ImportItemsResult{}, storageError("commit item import", err)
	}
	result.Imported = len(valid)

	h.logger.InfoContext(ctx, "item master imported",
		"imported", result.Imported, "failed", result.Failed)
	return result, nil
}
