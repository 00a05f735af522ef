package queries

import (
	"errors"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ListShipmentsQuery lists shipment records, newest first, optionally
// restricted to some statuses.
//
// Example:
//
//	query, err := NewListShipmentsQuery(session, []string{"pending_inspection"}, 20)
//	if err != nil {
//	    return err
//	}
//	rows, err := handler.Handle(ctx, query)
type ListShipmentsQuery struct {
	session  kernel.Session
	statuses []string
	limit    int

	guard guard.ConstructorGuard
}

// NewListShipmentsQuery accepts statuses in display or compact form. A
// limit of zero or less means DefaultLimit; larger than MaxLimit is capped.
func NewListShipmentsQuery(session kernel.Session, statuses []string, limit int) (ListShipmentsQuery, error) {
	if err := session.Validate(); err != nil {
		return ListShipmentsQuery{}, err
	}

	parsed := make([]string, 0, len(statuses))
	var invalid []error
	for _, s := range statuses {
		status, err := shipment.ParseStatus(s)
		if err != nil {
			invalid = append(invalid, err)
			continue
		}
		parsed = append(parsed, status.String())
	}
	if err := errors.Join(invalid...); err != nil {
		return ListShipmentsQuery{}, err
	}

	return ListShipmentsQuery{
		session:  session,
		statuses: parsed,
		limit:    normalizeLimit(limit),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Session() kernel.Session { return q.session }
func (q ListShipmentsQuery) Statuses() []string     { return q.statuses }
func (q ListShipmentsQuery) Limit() int             { return q.limit }

// ShipmentSummary is one row of the shipment list.
type ShipmentSummary struct {
	ID            string
	Code          string
	Status        string
	ShipmentDate  time.Time
	ItemNumber    string
	ItemName      string
	LotNumber     string
	Quantity      decimal.Decimal
	Unit          string
	ReceiverName  string
	InspectorName string
	ApproverName  string
	UpdatedAt     time.Time
}
