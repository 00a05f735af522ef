// Package item holds the item master catalog that shipments and batch forms
// pick their item number, name and unit from.
package item

import (
	"errors"
	"strings"

	"shipflow/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a catalog entry keyed by its item number.
type Item struct {
	number       string
	name         string
	unit         string
	manufacturer string
	vendor       string
	active       bool

	isConstructed bool
}

// NormalizeNumber trims and upper-cases an item number.
func NormalizeNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// NewItem creates an active catalog entry. Number and name are required.
func NewItem(number, name, unit, manufacturer, vendor string) (*Item, error) {
	number = NormalizeNumber(number)
	name = strings.TrimSpace(name)

	var missing []string
	if number == "" {
		missing = append(missing, "number")
	}
	if name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return nil, errs.NewMissingFieldsError(missing...)
	}

	return &Item{
		number:        number,
		name:          name,
		unit:          strings.TrimSpace(unit),
		manufacturer:  strings.TrimSpace(manufacturer),
		vendor:        strings.TrimSpace(vendor),
		active:        true,
		isConstructed: true,
	}, nil
}

func RestoreItem(number, name, unit, manufacturer, vendor string, active bool) *Item {
	return &Item{
		number:        number,
		name:          name,
		unit:          unit,
		manufacturer:  manufacturer,
		vendor:        vendor,
		active:        active,
		isConstructed: true,
	}
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) Deactivate() {
	i.active = false
}

func (i *Item) Number() string       { return i.number }
func (i *Item) Name() string         { return i.name }
func (i *Item) Unit() string         { return i.unit }
func (i *Item) Manufacturer() string { return i.manufacturer }
func (i *Item) Vendor() string       { return i.vendor }
func (i *Item) Active() bool         { return i.active }
