package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/tablescan/model"
)

// SheetName returns the worksheet name used for the i-th table (0-indexed).
func SheetName(i int) string {
	return fmt.Sprintf("Table%d", i+1)
}

// NewWorkbook builds a workbook with one sheet per grid. A workbook for no
// grids holds a single empty sheet. The caller must Close the result.
func NewWorkbook(grids []model.TextGrid) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName(0)); err != nil {
		f.Close()
		return nil, err
	}

	for i, g := range grids {
		sheet := SheetName(i)
		if i > 0 {
			if _, err := f.NewSheet(sheet); err != nil {
				f.Close()
				return nil, err
			}
		}
		for r, row := range g {
			for c, cell := range row {
				if !cell.Valid {
					continue
				}
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					f.Close()
					return nil, err
				}
				if err := f.SetCellStr(sheet, ref, cell.Text); err != nil {
					f.Close()
					return nil, err
				}
			}
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteXLSX writes the grids as an XLSX workbook.
func WriteXLSX(w io.Writer, grids []model.TextGrid) error {
	f, err := NewWorkbook(grids)
	if err != nil {
		return fmt.Errorf("export: build workbook: %w", err)
	}
	defer f.Close()
	return f.Write(w)
}
