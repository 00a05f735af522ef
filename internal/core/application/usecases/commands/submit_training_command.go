package commands

import (
	"errors"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/guard"
)

var ErrSubmitTrainingCommandIsNotConstructed = errors.New(
	"SubmitTrainingCommand must be created via NewSubmitTrainingCommand constructor",
)

// SubmitTrainingCommand is a trainee signing off their own SOP training.
// Field-level checks happen in training.NewRecord so that every missing
// field is reported together.
type SubmitTrainingCommand struct { //nolint:recvcheck //using for validation
	session      kernel.Session
	sopCode      string
	sopTitle     string
	trainingDate time.Time
	traineeName  string
	signature    []byte

	guard guard.ConstructorGuard
}

func NewSubmitTrainingCommand(
	session kernel.Session,
	sopCode, sopTitle string,
	trainingDate time.Time,
	traineeName string,
	signature []byte,
) (SubmitTrainingCommand, error) {
	if err := session.Validate(); err != nil {
		return SubmitTrainingCommand{}, err
	}
	return SubmitTrainingCommand{
		session:      session,
		sopCode:      sopCode,
		sopTitle:     sopTitle,
		trainingDate: trainingDate,
		traineeName:  traineeName,
		signature:    signature,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitTrainingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitTrainingCommandIsNotConstructed)
}

func (c SubmitTrainingCommand) Session() kernel.Session { return c.session }
func (c SubmitTrainingCommand) SOPCode() string         { return c.sopCode }
func (c SubmitTrainingCommand) SOPTitle() string        { return c.sopTitle }
func (c SubmitTrainingCommand) TrainingDate() time.Time { return c.trainingDate }
func (c SubmitTrainingCommand) TraineeName() string     { return c.traineeName }
func (c SubmitTrainingCommand) Signature() []byte       { return c.signature }
