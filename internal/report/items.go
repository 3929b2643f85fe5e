// Package report renders registry exports for administrators.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kwamena/ugrecover/internal/model"
)

// itemsHeader is the column layout of the item registry export.
var itemsHeader = []string{
	"ID",
	"Name",
	"Category",
	"Status",
	"Collection Point",
	"Found At",
	"Found Date",
	"Keyed In",
	"Retention (days)",
	"Days Until Expiry",
	"Urgency",
	"Logged By",
}

// ItemsWorkbook renders the given items as an XLSX workbook. The items
// are expected to carry their expiry annotations already.
func ItemsWorkbook(items []model.LostItem) ([]byte, error) {
	f := excelize.NewFile()

	const sheet = "Lost Items"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, h := range itemsHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("naming header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for row, it := range items {
		values := []any{
			it.ID,
			it.Name,
			it.Category,
			it.Status,
			it.CheckpointOffice,
			it.FoundAt,
			it.FoundDate.Format(time.DateOnly),
			it.KeyedInDate.Format(time.DateOnly),
			it.RetentionDays,
			it.DaysUntilExpiry,
			it.UrgencyTier,
			it.Founder,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("naming cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("writing row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
