// Package xlsx はダッシュボードの内容を Excel ブックに書き出します。
package xlsx

import (
	"fmt"
	"io"

	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"github.com/xuri/excelize/v2"
)

const (
	SheetOnboarding = "Onboarding"
	SheetSummary    = "Summary"
)

var detailHeader = []string{
	"Name",
	"Email",
	"Phone",
	"Address",
	"Location",
	"Job Title",
	"Department",
	"Manager",
	"Start Date",
}

var detailWidths = []float64{22, 28, 18, 30, 16, 20, 18, 20, 12}

// Header はオンボーディングシートの見出し行を返します。チェック項目はカードと同じ表記です。
func Header() []string {
	header := append([]string{}, detailHeader...)
	for _, item := range (worker.Checklist{}).Items() {
		header = append(header, item.Label)
	}
	return append(header, "Status")
}

// WriteWorkers はレコード一覧と集計値をブックとして w に書き出します。
func WriteWorkers(w io.Writer, workers []*worker.Worker) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetOnboarding)
	if err != nil {
		return fmt.Errorf("xlsx: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("xlsx: delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: create header style: %w", err)
	}

	if err := writeOnboardingSheet(f, headerStyle, workers); err != nil {
		return err
	}
	if err := writeSummarySheet(f, headerStyle, worker.Summarize(workers)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

func writeOnboardingSheet(f *excelize.File, headerStyle int, workers []*worker.Worker) error {
	header := Header()
	if err := writeRow(f, SheetOnboarding, 1, toAny(header)); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("xlsx: header range: %w", err)
	}
	if err := f.SetCellStyle(SheetOnboarding, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: set header style: %w", err)
	}

	for i := range header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx: column name: %w", err)
		}
		width := 14.0
		if i < len(detailWidths) {
			width = detailWidths[i]
		}
		if err := f.SetColWidth(SheetOnboarding, col, col, width); err != nil {
			return fmt.Errorf("xlsx: set column width: %w", err)
		}
	}

	for i, w := range workers {
		row := []any{
			w.Name,
			w.EmailAddress,
			w.PhoneNumber,
			w.Address,
			w.Location,
			w.JobTitle,
			w.Department,
			w.Manager,
			w.StartDate,
		}
		for _, item := range w.Checklist.Items() {
			row = append(row, yesNo(item.Done))
		}
		row = append(row, string(worker.Status(w)))

		if err := writeRow(f, SheetOnboarding, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetOnboarding, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx: freeze panes: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, headerStyle int, s worker.Summary) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("xlsx: create sheet: %w", err)
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Total Workers", s.Total},
		{"Onboarding Complete", s.Completed},
		{"Onboarding Incomplete", s.Incomplete},
		{"Overall Progress", s.ProgressLabel()},
	}
	for i, r := range rows {
		if err := writeRow(f, SheetSummary, i+1, r); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(SheetSummary, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("xlsx: set header style: %w", err)
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 24); err != nil {
		return fmt.Errorf("xlsx: set column width: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: write row %d: %w", row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
