package queries

import (
	"context"
	"strings"

	"shipflow/internal/core/domain/services"
)

type ListItemsQueryHandler struct {
	dbs    Databases
	policy services.AccessPolicy
}

func NewListItemsQueryHandler(dbs Databases, policy services.AccessPolicy) ListItemsQueryHandler {
	return ListItemsQueryHandler{dbs: dbs, policy: policy}
}

// Handle orders items by number. The search matches the start of the
// number or anywhere in the name, case-insensitively.
func (h ListItemsQueryHandler) Handle(ctx context.Context, query ListItemsQuery) ([]ItemSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(query.Session(), services.ViewItems); err != nil {
		return nil, err
	}
	db, err := h.dbs.For(query.Session().Environment())
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if !query.IncludeInactive() {
		where = append(where, "active")
	}
	if query.Search() != "" {
		pattern := escapeLike(query.Search())
		where = append(where, "(number ILIKE ? OR name ILIKE ?)")
		args = append(args, pattern+"%", "%"+pattern+"%")
	}

	sql := `
		SELECT
			number,
			name,
			COALESCE(unit, ''),
			COALESCE(manufacturer, ''),
			COALESCE(vendor, ''),
			active
		FROM items`
	if len(where) > 0 {
		sql += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	sql += "\n\t\tORDER BY number\n\t\tLIMIT ?"
	args = append(args, query.Limit())

	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, readError("list items", err)
	}
	defer rows.Close()

	items := make([]ItemSummary, 0)
	for rows.Next() {
		var i ItemSummary
		if err = rows.Scan(&i.Number, &i.Name, &i.Unit, &i.Manufacturer, &i.Vendor, &i.Active); err != nil {
			return nil, readError("list items", err)
		}
		items = append(items, i)
	}
	if err = rows.Err(); err != nil {
		return nil, readError("list items", err)
	}

	return items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
