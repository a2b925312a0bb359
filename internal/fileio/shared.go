package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"profit-service/internal/profit/model"
)

// ReadTable picks a parser by file extension and returns the sheet as ordered
// headers plus one map per data row. headerRow is 1-based.
func ReadTable(r io.Reader, filename string, headerRow int) (*model.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv", ".txt":
		return readCSV(r, headerRow)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

// pickHeader: берёт строку заголовков и подставляет Column N для пустых.
func pickHeader(rows [][]any, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		return nil
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, v := range h {
		s := strings.TrimSpace(fmt.Sprint(cellOrEmpty(v)))
		if s == "" {
			s = fmt.Sprintf("Column %d", i+1)
		}
		// duplicate headers would silently overwrite each other in the row map
		if n := seen[s]; n > 0 {
			seen[s] = n + 1
			s = fmt.Sprintf("%s (%d)", s, n+1)
		} else {
			seen[s] = 1
		}
		out[i] = s
	}
	return out
}

// toTable converts rows below the header into maps, skipping rows that are
// completely empty.
func toTable(rows [][]any, headerRow int) *model.Table {
	if headerRow < 1 {
		headerRow = 1
	}
	t := &model.Table{Headers: pickHeader(rows, headerRow), Rows: []map[string]any{}}
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]any, len(t.Headers))
		empty := true
		for c, h := range t.Headers {
			var v any
			if c < len(rec) {
				v = rec[c]
			}
			if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
				v = nil
			}
			if v != nil {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			t.Rows = append(t.Rows, m)
		}
	}
	return t
}

func cellOrEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}

// normalizeCell trims a text cell and drops NBSP padding.
func normalizeCell(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

func stringRows(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		row := make([]any, len(r))
		for j, v := range r {
			row[j] = v
		}
		out[i] = row
	}
	return out
}
