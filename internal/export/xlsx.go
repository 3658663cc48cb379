// Package export writes call-history reports to disk.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"vapi-dashboard-tui/internal/models"
)

var reportHeader = []string{"Date", "Phone", "Duration", "Turns", "Outcome", "Cost", "Summary"}

// WriteCallReport writes the given calls (typically the currently
// filtered set) to a timestamped .xlsx file in dir and returns the
// file path.
func WriteCallReport(dir string, calls []models.Call) (string, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}

	for i, call := range calls {
		row := i + 2
		values := []any{
			call.Date,
			call.Phone(),
			call.Duration,
			call.Messages,
			call.Evaluation.String(),
			call.Cost,
			call.Summary,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return "", fmt.Errorf("build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	name := fmt.Sprintf("vapi-calls-%s.xlsx", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}
