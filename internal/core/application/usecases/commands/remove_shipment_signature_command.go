package commands

import (
	"errors"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/pkg/guard"
)

var ErrRemoveShipmentSignatureCommandIsNotConstructed = errors.New(
	"RemoveShipmentSignatureCommand must be created via NewRemoveShipmentSignatureCommand constructor",
)

// RemoveShipmentSignatureCommand withdraws one party's signature, moving the
// record back one state.
type RemoveShipmentSignatureCommand struct { //nolint:recvcheck //using for validation
	session kernel.Session
	id      string
	party   shipment.Party

	guard guard.ConstructorGuard
}

func NewRemoveShipmentSignatureCommand(
	session kernel.Session,
	id string,
	party shipment.Party,
) (RemoveShipmentSignatureCommand, error) {
	cmd := RemoveShipmentSignatureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setID(id),
		cmd.setParty(party),
	); err != nil {
		return RemoveShipmentSignatureCommand{}, err
	}

	return cmd, nil
}

func (c RemoveShipmentSignatureCommand) Validate() error {
	return c.guard.Validate(ErrRemoveShipmentSignatureCommandIsNotConstructed)
}

func (c RemoveShipmentSignatureCommand) Session() kernel.Session {
	return c.session
}

func (c RemoveShipmentSignatureCommand) ID() string {
	return c.id
}

func (c RemoveShipmentSignatureCommand) Party() shipment.Party {
	return c.party
}

func (c *RemoveShipmentSignatureCommand) setSession(session kernel.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	c.session = session
	return nil
}

func (c *RemoveShipmentSignatureCommand) setID(id string) error {
	n, err := sequence.Shipment.ParseID(id)
	if err != nil {
		return err
	}
	c.id, err = sequence.Shipment.FormatID(n)
	return err
}

func (c *RemoveShipmentSignatureCommand) setParty(party shipment.Party) error {
	if err := party.Validate(); err != nil {
		return err
	}
	c.party = party
	return nil
}
