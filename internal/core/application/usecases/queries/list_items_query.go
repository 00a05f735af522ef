package queries

import (
	"errors"
	"strings"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/guard"
)

var ErrListItemsQueryIsNotConstructed = errors.New(
	"ListItemsQuery must be created via NewListItemsQuery constructor",
)

// ListItemsQuery searches the item master by number or name prefix. The
// shipment form uses it to fill item details from an item number.
type ListItemsQuery struct {
	session         kernel.Session
	search          string
	includeInactive bool
	limit           int

	guard guard.ConstructorGuard
}

func NewListItemsQuery(session kernel.Session, search string, includeInactive bool, limit int) (ListItemsQuery, error) {
	if err := session.Validate(); err != nil {
		return ListItemsQuery{}, err
	}
	return ListItemsQuery{
		session:         session,
		search:          strings.TrimSpace(search),
		includeInactive: includeInactive,
		limit:           normalizeLimit(limit),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (q ListItemsQuery) Validate() error {
	return q.guard.Validate(ErrListItemsQueryIsNotConstructed)
}

func (q ListItemsQuery) Session() kernel.Session { return q.session }
func (q ListItemsQuery) Search() string          { return q.search }
func (q ListItemsQuery) IncludeInactive() bool   { return q.includeInactive }
func (q ListItemsQuery) Limit() int              { return q.limit }

type ItemSummary struct {
	Number       string
	Name         string
	Unit         string
	Manufacturer string
	Vendor       string
	Active       bool
}
