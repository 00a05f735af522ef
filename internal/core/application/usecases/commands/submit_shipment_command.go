package commands

import (
	"errors"
	"strings"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/pkg/guard"
)

var ErrSubmitShipmentCommandIsNotConstructed = errors.New(
	"SubmitShipmentCommand must be created via NewSubmitShipmentCommand constructor",
)

// SubmitShipmentCommand saves a shipment form. Without an id it creates a
// new record (which must carry the base fields and the receiver block);
// with an id it applies the changes of the party whose turn it is.
//
// Example:
//
//	cmd, err := NewSubmitShipmentCommand(session, "SHP-000042", shipment.Changes{
//	    Inspector: &shipment.PartyChanges{Name: &name, Signature: blob},
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type SubmitShipmentCommand struct { //nolint:recvcheck //using for validation
	session kernel.Session
	id      string
	changes shipment.Changes

	guard guard.ConstructorGuard
}

func NewSubmitShipmentCommand(session kernel.Session, id string, changes shipment.Changes) (SubmitShipmentCommand, error) {
	cmd := SubmitShipmentCommand{
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setID(id),
	); err != nil {
		return SubmitShipmentCommand{}, err
	}

	return cmd, nil
}

func (c SubmitShipmentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitShipmentCommandIsNotConstructed)
}

func (c SubmitShipmentCommand) Session() kernel.Session {
	return c.session
}

// ID is empty for a new record.
func (c SubmitShipmentCommand) ID() string {
	return c.id
}

func (c SubmitShipmentCommand) IsCreate() bool {
	return c.id == ""
}

func (c SubmitShipmentCommand) Changes() shipment.Changes {
	return c.changes
}

func (c *SubmitShipmentCommand) setSession(session kernel.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	c.session = session
	return nil
}

func (c *SubmitShipmentCommand) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	n, err := sequence.Shipment.ParseID(id)
	if err != nil {
		return err
	}
	c.id, _ = sequence.Shipment.FormatID(n)
	return nil
}
