package fileio

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	xls "github.com/extrame/xls"

	"profit-service/internal/profit/model"
)

// legacy marketplace exports are often saved in cp1252
var xlsCharsets = []string{"utf-8", "windows-1252", "iso-8859-1"}

// readXLS reads the first sheet of a BIFF workbook. The library only hands
// out formatted text, so plain decimal cells are turned back into float64 to
// match what readXLSX returns.
func readXLS(r io.Reader, headerRow int) (*model.Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	wb, err := openXLS(b)
	if err != nil {
		return nil, err
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return &model.Table{Rows: []map[string]any{}}, nil
	}

	width := sheetWidth(sheet)
	rows := make([][]any, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		cells := make([]any, width)
		if row := sheet.Row(i); row != nil {
			for j := range cells {
				cells[j] = xlsCell(row.Col(j))
			}
		}
		rows = append(rows, cells)
	}
	return toTable(rows, headerRow), nil
}

func openXLS(b []byte) (*xls.WorkBook, error) {
	var lastErr error
	for _, cs := range xlsCharsets {
		wb, err := xls.OpenReader(bytes.NewReader(b), cs)
		if err == nil && wb != nil {
			return wb, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("xls: failed to open workbook")
	}
	return nil, lastErr
}

// sheetWidth probes each row up to a fixed number of columns; Row.LastCol()
// is unreliable on exported files.
func sheetWidth(sheet *xls.WorkSheet) int {
	const probe = 256
	width := 1
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		for j := probe - 1; j >= width; j-- {
			if normalizeCell(row.Col(j)) != "" {
				width = j + 1
				break
			}
		}
	}
	return width
}

func xlsCell(raw string) any {
	s := normalizeCell(raw)
	if s == "" {
		return nil
	}
	// "R$ 1.234,56", codes like "0042" and other formatted text stay strings
	if !plainDecimal(s) {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func plainDecimal(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || (len(digits) > 1 && digits[0] == '0' && digits[1] != '.') {
		return false
	}
	dots := 0
	for _, c := range digits {
		switch {
		case c == '.':
			dots++
		case c < '0' || c > '9':
			return false
		}
	}
	return dots <= 1
}
