package commands

import (
	"errors"
	"strings"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/pkg/guard"
)

var ErrReviewTrainingCommandIsNotConstructed = errors.New(
	"ReviewTrainingCommand must be created via NewReviewTrainingCommand constructor",
)

// ReviewTrainingCommand is a manager approving or rejecting a training record.
type ReviewTrainingCommand struct { //nolint:recvcheck //using for validation
	session      kernel.Session
	id           string
	decision     training.Decision
	reviewerName string
	signature    []byte
	notes        string

	guard guard.ConstructorGuard
}

func NewReviewTrainingCommand(
	session kernel.Session,
	id string,
	decision training.Decision,
	reviewerName string,
	signature []byte,
	notes string,
) (ReviewTrainingCommand, error) {
	cmd := ReviewTrainingCommand{
		decision:     decision,
		reviewerName: strings.TrimSpace(reviewerName),
		signature:    signature,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setID(id),
	); err != nil {
		return ReviewTrainingCommand{}, err
	}
	return cmd, nil
}

func (c ReviewTrainingCommand) Validate() error {
	return c.guard.Validate(ErrReviewTrainingCommandIsNotConstructed)
}

func (c ReviewTrainingCommand) Session() kernel.Session     { return c.session }
func (c ReviewTrainingCommand) ID() string                  { return c.id }
func (c ReviewTrainingCommand) Decision() training.Decision { return c.decision }
func (c ReviewTrainingCommand) ReviewerName() string        { return c.reviewerName }
func (c ReviewTrainingCommand) Signature() []byte           { return c.signature }
func (c ReviewTrainingCommand) Notes() string               { return c.notes }

func (c *ReviewTrainingCommand) setSession(session kernel.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	c.session = session
	return nil
}

func (c *ReviewTrainingCommand) setID(id string) error {
	n, err := sequence.Training.ParseID(id)
	if err != nil {
		return err
	}
	c.id, err = sequence.Training.FormatID(n)
	return err
}
