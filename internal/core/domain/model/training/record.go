// Package training tracks SOP training: a trainee signs that they were
// trained on a procedure, and a manager later approves or rejects the record
// with their own signoff.
package training

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/pkg/errs"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Status is derived from the review block: no reviewer signature means Pending.
type Status int

const (
	Unknown Status = iota
	Pending
	Approved
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Approved: "Approved",
		Rejected: "Rejected",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(str, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid training status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Decision is what a reviewer can decide. Only Approved and Rejected are valid.
type Decision = Status

// Record is a trainee's self-submitted training record.
type Record struct {
	id             string
	sequenceNumber int64

	trainee      kernel.UUID
	sopCode      string
	sopTitle     string
	trainingDate time.Time
	traineeSign  kernel.Signoff

	decision    Decision
	reviewer    *kernel.UUID
	reviewSign  kernel.Signoff
	reviewNotes string

	createdAt time.Time

	isConstructed bool
}

// NewRecord creates a pending record. The trainee signoff must be complete.
func NewRecord(
	trainee kernel.UUID,
	sopCode, sopTitle string,
	trainingDate time.Time,
	signoff kernel.Signoff,
	now time.Time,
) (*Record, error) {
	var missing []string
	if strings.TrimSpace(sopCode) == "" {
		missing = append(missing, "sopCode")
	}
	if strings.TrimSpace(sopTitle) == "" {
		missing = append(missing, "sopTitle")
	}
	if trainingDate.IsZero() {
		missing = append(missing, "trainingDate")
	}
	if signoff.Name() == "" {
		missing = append(missing, "trainee.name")
	}
	if !signoff.IsSigned() {
		missing = append(missing, "trainee.signature")
	}
	var fieldsErr error
	if len(missing) > 0 {
		fieldsErr = errs.NewMissingFieldsError(missing...)
	}
	if err := errors.Join(trainee.Validate(), fieldsErr); err != nil {
		return nil, err
	}

	return &Record{
		trainee:       trainee,
		sopCode:       strings.ToUpper(strings.TrimSpace(sopCode)),
		sopTitle:      strings.TrimSpace(sopTitle),
		trainingDate:  time.Date(trainingDate.Year(), trainingDate.Month(), trainingDate.Day(), 0, 0, 0, 0, time.UTC),
		traineeSign:   signoff,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreParams carries a persisted record back into the domain.
type RestoreParams struct {
	ID             string
	SequenceNumber int64
	Trainee        kernel.UUID
	SOPCode        string
	SOPTitle       string
	TrainingDate   time.Time
	TraineeSignoff kernel.Signoff
	Decision       Decision
	Reviewer       *kernel.UUID
	ReviewSignoff  kernel.Signoff
	ReviewNotes    string
	CreatedAt      time.Time
}

func RestoreRecord(p RestoreParams) (*Record, error) {
	expectedID, err := sequence.Training.FormatID(p.SequenceNumber)
	if err != nil {
		return nil, err
	}
	if expectedID != p.ID {
		return nil, errs.NewValueIsInvalidErrorWithCause("training id is invalid",
			fmt.Errorf("%q does not match sequence number %d", p.ID, p.SequenceNumber))
	}
	if p.ReviewSignoff.IsSigned() && p.Decision != Approved && p.Decision != Rejected {
		return nil, errs.NewValueIsInvalidErrorWithCause("decision is invalid",
			fmt.Errorf("reviewed record %s has decision %s", p.ID, p.Decision))
	}
	return &Record{
		id:             p.ID,
		sequenceNumber: p.SequenceNumber,
		trainee:        p.Trainee,
		sopCode:        p.SOPCode,
		sopTitle:       p.SOPTitle,
		trainingDate:   p.TrainingDate,
		traineeSign:    p.TraineeSignoff,
		decision:       p.Decision,
		reviewer:       p.Reviewer,
		reviewSign:     p.ReviewSignoff,
		reviewNotes:    p.ReviewNotes,
		createdAt:      p.CreatedAt,
		isConstructed:  true,
	}, nil
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// AssignSequence gives a new record its sequence number and identifier.
func (r *Record) AssignSequence(n int64) error {
	if r.sequenceNumber != 0 {
		return errs.NewValueIsInvalidErrorWithCause("sequence number is invalid",
			fmt.Errorf("%s already has sequence number %d", r.id, r.sequenceNumber))
	}
	id, err := sequence.Training.FormatID(n)
	if err != nil {
		return err
	}
	r.sequenceNumber = n
	r.id = id
	return nil
}

// Review records the reviewer's decision. A record is reviewed once, never
// by its own trainee, and a rejection must say why.
func (r *Record) Review(reviewer kernel.UUID, decision Decision, signoff kernel.Signoff, notes string) error {
	if err := errors.Join(r.Validate(), reviewer.Validate()); err != nil {
		return err
	}
	if r.Status() != Pending {
		return errs.NewPermissionError("training record %s was already %s", r.id, strings.ToLower(r.Status().String()))
	}
	if reviewer.IsEqual(r.trainee) {
		return errs.NewPermissionError("a trainee cannot review their own training record")
	}
	if decision != Approved && decision != Rejected {
		return errs.NewValueIsInvalidErrorWithCause("decision is invalid", fmt.Errorf("%s is not a review decision", decision))
	}

	var missing []string
	if signoff.Name() == "" {
		missing = append(missing, "reviewer.name")
	}
	if !signoff.IsSigned() {
		missing = append(missing, "reviewer.signature")
	}
	notes = strings.TrimSpace(notes)
	if decision == Rejected && notes == "" {
		missing = append(missing, "notes")
	}
	if len(missing) > 0 {
		return errs.NewMissingFieldsError(missing...)
	}

	r.decision = decision
	r.reviewer = &reviewer
	r.reviewSign = signoff
	r.reviewNotes = notes
	return nil
}

// Status is Pending until a reviewer has signed, then the decision.
func (r *Record) Status() Status {
	if !r.reviewSign.IsSigned() {
		return Pending
	}
	return r.decision
}

func (r *Record) ID() string                     { return r.id }
func (r *Record) SequenceNumber() int64          { return r.sequenceNumber }
func (r *Record) Trainee() kernel.UUID           { return r.trainee }
func (r *Record) SOPCode() string                { return r.sopCode }
func (r *Record) SOPTitle() string               { return r.sopTitle }
func (r *Record) TrainingDate() time.Time        { return r.trainingDate }
func (r *Record) TraineeSignoff() kernel.Signoff { return r.traineeSign }
func (r *Record) Decision() Decision             { return r.decision }
func (r *Record) ReviewSignoff() kernel.Signoff  { return r.reviewSign }
func (r *Record) ReviewNotes() string            { return r.reviewNotes }
func (r *Record) CreatedAt() time.Time           { return r.createdAt }

func (r *Record) Reviewer() *kernel.UUID {
	if r.reviewer == nil {
		return nil
	}
	id := *r.reviewer
	return &id
}
