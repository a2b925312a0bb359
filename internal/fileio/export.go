package fileio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"profit-service/internal/profit/model"
	"profit-service/internal/utils"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, true
	case FormatJSON, FormatXLSX, FormatCSV, FormatHTML:
		return f, true
	case "xls":
		return FormatHTML, true
	default:
		return "", false
	}
}

// FormatFromPath guesses the export format from an output file name.
func FormatFromPath(path string) (Format, bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", false
	}
	return ParseFormat(path[i+1:])
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		// opens straight in Excel as a legacy workbook
		return "application/vnd.ms-excel; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

func (f Format) Ext() string {
	if f == FormatHTML {
		return ".xls"
	}
	return "." + string(f)
}

// Export column layout: the order fields as imported, then the computed ones.
var orderHeaders = []string{
	model.ColSKU,
	model.ColName,
	model.ColPrice,
	model.ColCoupon,
	model.ColCommission,
	model.ColRevenue,
	"Peças",
	"Frete",
	"A receber final",
	"Custo",
	"Margem de contribuição",
	"Lucro Bruto",
}

// WriteOrders serializes a processing result in the requested format.
func WriteOrders(w io.Writer, f Format, res model.Result) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, res)
	case FormatCSV:
		return WriteCSV(w, res.Rows)
	case FormatHTML:
		return WriteHTML(w, res.Rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

func optional(v *float64) any {
	if v == nil {
		return model.NoCost
	}
	return *v
}

func orderValues(r model.ProcessedOrder) []any {
	return []any{
		r.SKU, r.Name, r.Price, r.Coupon, r.Commission, r.Revenue,
		r.Pieces, r.Shipping, r.NetReceivable,
		optional(r.Cost), optional(r.Margin), optional(r.GrossProfit),
	}
}

func plain(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

// WriteCSV writes UTF-8 CSV with a BOM so Excel picks the right encoding.
func WriteCSV(w io.Writer, rows []model.ProcessedOrder) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(orderHeaders); err != nil {
		return err
	}
	rec := make([]string, len(orderHeaders))
	for _, r := range rows {
		for i, v := range orderValues(r) {
			rec[i] = plain(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var htmlTable = template.Must(template.New("orders").Funcs(template.FuncMap{
	"cell": func(v any) string {
		switch x := v.(type) {
		case float64:
			return utils.FormatBRL(x)
		default:
			return fmt.Sprint(x)
		}
	},
}).Parse(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel">
<head><meta charset="utf-8"><title>Pedidos Processados</title></head>
<body>
<table border="1">
<thead><tr>{{range .Headers}}<th style="background:#366092;color:#fff">{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{cell .}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// WriteHTML renders an HTML table that spreadsheet programs open as a sheet.
func WriteHTML(w io.Writer, rows []model.ProcessedOrder) error {
	data := struct {
		Headers []string
		Rows    [][]any
	}{Headers: orderHeaders}
	for _, r := range rows {
		data.Rows = append(data.Rows, orderValues(r))
	}
	return htmlTable.Execute(w, data)
}

// WriteCostsCSV exports a cost reference table.
func WriteCostsCSV(w io.Writer, entries []model.CostEntry) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"SKU", "Custo Unitário"})
	for _, e := range entries {
		_ = cw.Write([]string{e.SKU, strconv.FormatFloat(e.UnitCost, 'f', -1, 64)})
	}
	cw.Flush()
	return cw.Error()
}
