package commands

import (
	"errors"

	"shipflow/internal/core/domain/model/batch"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/guard"
)

var ErrCreateBatchFormCommandIsNotConstructed = errors.New(
	"CreateBatchFormCommand must be created via NewCreateBatchFormCommand constructor",
)

// CreateBatchFormCommand records a blending, filling or packaging form
// signed by its operator. Field checks happen in batch.NewForm.
type CreateBatchFormCommand struct { //nolint:recvcheck //using for validation
	session      kernel.Session
	fields       batch.Fields
	operatorName string
	signature    []byte

	guard guard.ConstructorGuard
}

func NewCreateBatchFormCommand(
	session kernel.Session,
	fields batch.Fields,
	operatorName string,
	signature []byte,
) (CreateBatchFormCommand, error) {
	if err := session.Validate(); err != nil {
		return CreateBatchFormCommand{}, err
	}
	return CreateBatchFormCommand{
		session:      session,
		fields:       fields,
		operatorName: operatorName,
		signature:    signature,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBatchFormCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchFormCommandIsNotConstructed)
}

func (c CreateBatchFormCommand) Session() kernel.Session { return c.session }
func (c CreateBatchFormCommand) Fields() batch.Fields    { return c.fields }
func (c CreateBatchFormCommand) OperatorName() string    { return c.operatorName }
func (c CreateBatchFormCommand) Signature() []byte       { return c.signature }
