// Package xlsx reads item master workbooks.
package xlsx

import (
	"io"
	"strings"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/pkg/errs"

	"github.com/xuri/excelize/v2"
)

// Column order of the item master sheet.
const (
	colNumber = iota
	colName
	colUnit
	colManufacturer
	colVendor
)

// ReadItems returns the data rows of the first worksheet. The first row is
// a header and blank rows are skipped. Line numbers are 1-based sheet rows.
// Imported items are active.
func ReadItems(r io.Reader) ([]commands.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errs.NewValidationError("workbook has no worksheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("workbook", err)
	}

	var out []commands.ImportRow
	for i, cells := range rows {
		if i == 0 || blank(cells) {
			continue
		}
		out = append(out, commands.ImportRow{
			Line: i + 1,
			Item: commands.ItemRow{
				Number:       cell(cells, colNumber),
				Name:         cell(cells, colName),
				Unit:         cell(cells, colUnit),
				Manufacturer: cell(cells, colManufacturer),
				Vendor:       cell(cells, colVendor),
				Active:       true,
			},
		})
	}
	return out, nil
}

func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
