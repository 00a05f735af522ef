package commands

import (
	"errors"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand hard-deletes a shipment record. Admin only.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	session kernel.Session
	id      string

	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(session kernel.Session, id string) (DeleteShipmentCommand, error) {
	if err := session.Validate(); err != nil {
		return DeleteShipmentCommand{}, err
	}
	n, err := sequence.Shipment.ParseID(id)
	if err != nil {
		return DeleteShipmentCommand{}, err
	}
	normalized, err := sequence.Shipment.FormatID(n)
	if err != nil {
		return DeleteShipmentCommand{}, err
	}

	return DeleteShipmentCommand{
		session: session,
		id:      normalized,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

func (c DeleteShipmentCommand) Session() kernel.Session {
	return c.session
}

func (c DeleteShipmentCommand) ID() string {
	return c.id
}
