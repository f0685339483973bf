package out

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	progressout "exodus/internal/modules/progress/port/out"
)

const gridSheet = "Sheet1"

// XLSXExporter writes the progress grid as a workbook: one row per date, one
// column per discipline. Cells a discipline does not apply to are left blank.
type XLSXExporter struct{}

var _ progressout.GridExporter = XLSXExporter{}

func (XLSXExporter) Export(path string, grid progressout.Grid) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	header := make([]any, 0, len(grid.Columns)+1)
	header = append(header, "Date")
	for _, c := range grid.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(gridSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range grid.Rows {
		values := make([]any, 0, len(row.Cells)+1)
		values = append(values, row.Date)
		for _, cell := range row.Cells {
			values = append(values, cell)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(gridSheet, axis, &values); err != nil {
			return fmt.Errorf("write row %s: %w", row.Date, err)
		}
	}
	if err := f.SetColWidth(gridSheet, "A", "A", 12); err != nil {
		return fmt.Errorf("size date column: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
