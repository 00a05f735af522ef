package http

import (
	"net/http"
	"time"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/training"

	"github.com/labstack/echo/v4"
)

func signer(b *signoffBody) (string, []byte) {
	if b == nil {
		return "", nil
	}
	return deref(b.Name), b.Signature
}

// ListTrainingRecords handles GET /api/v1/training.
func (s *Server) ListTrainingRecords(ctx echo.Context, params ListTrainingRecordsParams) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var trainee *kernel.UUID
	if params.Trainee != nil {
		id, parseErr := kernel.UUIDFromString(params.Trainee.String())
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		trainee = &id
	}

	query, err := queries.NewListTrainingRecordsQuery(session, deref(params.Status), trainee, deref(params.Limit))
	if err != nil {
		return s.fail(ctx, err)
	}
	records, err := s.h.ListTrainingRecords.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]trainingRecordBody, len(records))
	for i, r := range records {
		response[i] = trainingRecordBody{
			ID:           r.ID,
			Status:       r.Status,
			SOPCode:      r.SOPCode,
			SOPTitle:     r.SOPTitle,
			TrainingDate: r.TrainingDate.Format(dateLayout),
			TraineeID:    r.TraineeID,
			TraineeName:  r.TraineeName,
			ReviewerName: r.ReviewerName,
			Notes:        r.Notes,
			CreatedAt:    r.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// SubmitTraining handles POST /api/v1/training.
func (s *Server) SubmitTraining(ctx echo.Context) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body trainingSubmitBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	var trainingDate time.Time
	if d := dateOf(body.TrainingDate); d != nil {
		trainingDate = *d
	}
	name, signature := signer(body.Trainee)

	cmd, err := commands.NewSubmitTrainingCommand(session, body.SOPCode, body.SOPTitle, trainingDate, name, signature)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := s.h.SubmitTraining.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdBody{ID: id})
}

// ReviewTraining handles POST /api/v1/training/{id}/review.
func (s *Server) ReviewTraining(ctx echo.Context, id string) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body trainingReviewBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	decision, err := training.ParseStatus(body.Decision)
	if err != nil {
		return s.fail(ctx, err)
	}
	name, signature := signer(body.Reviewer)

	cmd, err := commands.NewReviewTrainingCommand(session, id, decision, name, signature, body.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := s.h.ReviewTraining.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"id": cmd.ID(), "status": status.String()})
}
