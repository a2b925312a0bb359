package fileio

import (
	"bytes"
	"io"
	"strconv"

	excelize "github.com/xuri/excelize/v2"

	"profit-service/internal/profit/model"
)

// readXLSX reads the first sheet. Numeric cells come back as float64 so that
// amounts never go through display formatting; everything else is text.
func readXLSX(r io.Reader, headerRow int) (*model.Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, raw := range row {
			cells[j] = typedCell(f, sheet, i, j, raw)
		}
		out[i] = cells
	}
	return toTable(out, headerRow), nil
}

func typedCell(f *excelize.File, sheet string, row, col int, raw string) any {
	if raw == "" {
		return nil
	}
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return normalizeCell(raw)
	}
	typ, err := f.GetCellType(sheet, name)
	if err == nil && (typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset) {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return normalizeCell(raw)
}
