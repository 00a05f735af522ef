package queries

import (
	"errors"
	"strings"
	"time"

	"shipflow/internal/core/domain/model/batch"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListBatchFormsQueryIsNotConstructed = errors.New(
	"ListBatchFormsQuery must be created via NewListBatchFormsQuery constructor",
)

// ListBatchFormsQuery lists batch forms by DP number, newest first. An empty
// form type lists every type.
type ListBatchFormsQuery struct {
	session  kernel.Session
	formType string
	limit    int

	guard guard.ConstructorGuard
}

func NewListBatchFormsQuery(session kernel.Session, formType string, limit int) (ListBatchFormsQuery, error) {
	if err := session.Validate(); err != nil {
		return ListBatchFormsQuery{}, err
	}
	q := ListBatchFormsQuery{session: session, limit: normalizeLimit(limit), guard: guard.NewConstructorGuard()}
	if strings.TrimSpace(formType) != "" {
		ft, err := batch.ParseFormType(formType)
		if err != nil {
			return ListBatchFormsQuery{}, err
		}
		q.formType = ft.String()
	}
	return q, nil
}

func (q ListBatchFormsQuery) Validate() error {
	return q.guard.Validate(ErrListBatchFormsQueryIsNotConstructed)
}

func (q ListBatchFormsQuery) Session() kernel.Session { return q.session }
func (q ListBatchFormsQuery) FormType() string        { return q.formType }
func (q ListBatchFormsQuery) Limit() int              { return q.limit }

type BatchFormSummary struct {
	ID              string
	FormType        string
	ItemNumber      string
	ProductName     string
	LotNumber       string
	BatchQuantity   decimal.Decimal
	ManufactureDate time.Time
	OperatorName    string
	CreatedAt       time.Time
}
