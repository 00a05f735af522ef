package commands

import (
	"errors"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/guard"
)

var ErrUpsertItemCommandIsNotConstructed = errors.New(
	"UpsertItemCommand must be created via NewUpsertItemCommand constructor",
)

// ItemRow is one catalog entry as typed or imported. Inactive rows stay in
// the catalog but are hidden from pickers.
type ItemRow struct {
	Number       string
	Name         string
	Unit         string
	Manufacturer string
	Vendor       string
	Active       bool
}

type UpsertItemCommand struct { //nolint:recvcheck //using for validation
	session kernel.Session
	row     ItemRow

	guard guard.ConstructorGuard
}

func NewUpsertItemCommand(session kernel.Session, row ItemRow) (UpsertItemCommand, error) {
	if err := session.Validate(); err != nil {
		return UpsertItemCommand{}, err
	}
	return UpsertItemCommand{
		session: session,
		row:     row,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpsertItemCommand) Validate() error {
	return c.guard.Validate(ErrUpsertItemCommandIsNotConstructed)
}

func (c UpsertItemCommand) Session() kernel.Session { return c.session }
func (c UpsertItemCommand) Row() ItemRow            { return c.row }
