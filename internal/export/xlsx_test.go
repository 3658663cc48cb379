package export

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"vapi-dashboard-tui/internal/models"
)

func TestWriteCallReport(t *testing.T) {
	dir := t.TempDir()

	calls := []models.Call{
		{
			Date:       "Mar 1, 2024, 10:00 AM",
			Duration:   "2:30",
			Messages:   6,
			Evaluation: models.EvaluationSuccessful,
			Summary:    "Asked about pricing.",
			Cost:       1.25,
			ClientData: map[string]string{"Phone": "+15551234567"},
		},
		{
			Date:       "Mar 2, 2024, 11:15 AM",
			Duration:   "0:05",
			Messages:   1,
			Evaluation: models.EvaluationNoAnswer,
			Summary:    "No summary generated.",
			ClientData: map[string]string{"Phone": "Unknown"},
		},
	}

	path, err := WriteCallReport(dir, calls)
	if err != nil {
		t.Fatalf("WriteCallReport: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("path %q not under %q", path, dir)
	}
	if !strings.HasSuffix(path, ".xlsx") {
		t.Errorf("path %q missing .xlsx suffix", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Errorf("close report: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus 2 calls", len(rows))
	}

	wantHeader := []string{"Date", "Phone", "Duration", "Turns", "Outcome", "Cost", "Summary"}
	for i, title := range wantHeader {
		if rows[0][i] != title {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], title)
		}
	}

	if rows[1][0] != "Mar 1, 2024, 10:00 AM" {
		t.Errorf("date cell = %q", rows[1][0])
	}
	if rows[1][1] != "+15551234567" {
		t.Errorf("phone cell = %q", rows[1][1])
	}
	if rows[1][4] != "Successful" {
		t.Errorf("outcome cell = %q", rows[1][4])
	}
	if rows[2][4] != "No answer" {
		t.Errorf("outcome cell = %q", rows[2][4])
	}
}

func TestWriteCallReportEmpty(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteCallReport(dir, nil)
	if err != nil {
		t.Fatalf("WriteCallReport: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Errorf("close report: %v", err)
		}
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}

func TestWriteCallReportBadDir(t *testing.T) {
	if _, err := WriteCallReport("/nonexistent/path/for/sure", []models.Call{{}}); err == nil {
		t.Error("expected error for unwritable directory")
	}
}
