package commands

import (
	"errors"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

var ErrImportItemsCommandIsNotConstructed = errors.New(
	"ImportItemsCommand must be created via NewImportItemsCommand constructor",
)

// ImportItemsCommand carries the data rows of an item master workbook.
// Line numbers are the spreadsheet's own, so reported failures point at
// the row the user sees.
type ImportItemsCommand struct { //nolint:recvcheck //using for validation
	session kernel.Session
	rows    []ImportRow

	guard guard.ConstructorGuard
}

type ImportRow struct {
	Line int
	Item ItemRow
}

func NewImportItemsCommand(session kernel.Session, rows []ImportRow) (ImportItemsCommand, error) {
	if err := session.Validate(); err != nil {
		return ImportItemsCommand{}, err
	}
	if len(rows) == 0 {
		return ImportItemsCommand{}, errs.NewValidationError("workbook has no item rows")
	}
	return ImportItemsCommand{
		session: session,
		rows:    rows,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ImportItemsCommand) Validate() error {
	return c.guard.Validate(ErrImportItemsCommandIsNotConstructed)
}

func (c ImportItemsCommand) Session() kernel.Session { return c.session }
func (c ImportItemsCommand) Rows() []ImportRow       { return c.rows }
