package fileio

import (
	"io"
	"strconv"

	excelize "github.com/xuri/excelize/v2"

	"profit-service/internal/profit/model"
)

const (
	SheetAll      = "Todos os Dados"
	SheetSummary  = "Resumo"
	SheetWithCost = "Com Custos"
	SheetNoCost   = "Sem Custos"
	SheetMissing  = "SKUs sem Custo"
	SheetCosts    = "Tabela de Custos"
)

var moneyFmt = `"R$ "#,##0.00`

// column widths in characters, same order as orderHeaders
var orderWidths = []float64{20, 40, 15, 12, 12, 18, 8, 8, 15, 15, 18, 12}

type styles struct {
	header int
	money  int
	bold   int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  styles
		err error
	)
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return st, err
	}
	st.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return st, err
	}
	st.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	return st, err
}

// WriteXLSX builds the report workbook: every order, a summary, and the
// orders split by whether a cost was found.
func WriteXLSX(w io.Writer, res model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetName(f.GetSheetName(0), SheetAll); err != nil {
		return err
	}
	if err := writeOrderSheet(f, SheetAll, res.Rows, st); err != nil {
		return err
	}
	if err := writeSummarySheet(f, res, st); err != nil {
		return err
	}

	var with, without []model.ProcessedOrder
	for _, r := range res.Rows {
		if r.Cost != nil {
			with = append(with, r)
		} else {
			without = append(without, r)
		}
	}
	if len(with) > 0 {
		if err := addOrderSheet(f, SheetWithCost, with, st); err != nil {
			return err
		}
	}
	if len(without) > 0 {
		if err := addOrderSheet(f, SheetNoCost, without, st); err != nil {
			return err
		}
	}
	if len(res.MissingSKUs) > 0 {
		if _, err := f.NewSheet(SheetMissing); err != nil {
			return err
		}
		_ = f.SetCellValue(SheetMissing, "A1", "SKU")
		_ = f.SetCellStyle(SheetMissing, "A1", "A1", st.header)
		_ = f.SetColWidth(SheetMissing, "A", "A", 40)
		for i, sku := range res.MissingSKUs {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			_ = f.SetCellValue(SheetMissing, cell, sku)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func addOrderSheet(f *excelize.File, name string, rows []model.ProcessedOrder, st styles) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeOrderSheet(f, name, rows, st)
}

func writeOrderSheet(f *excelize.File, sheet string, rows []model.ProcessedOrder, st styles) error {
	header := make([]any, len(orderHeaders))
	for i, h := range orderHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(orderHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", last, st.header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		vals := orderValues(r)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}

	if n := len(rows) + 1; n > 1 {
		// Preço..Receita and Frete..Lucro Bruto hold amounts
		for _, span := range [][2]string{{"C", "F"}, {"H", "L"}} {
			if err := f.SetCellStyle(sheet, span[0]+"2", span[1]+strconv.Itoa(n), st.money); err != nil {
				return err
			}
		}
	}

	for i, wdt := range orderWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, wdt); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummarySheet(f *excelize.File, res model.Result, st styles) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	s := res.Summary
	source := "Arquivo de custos fornecido"
	if res.CostSource == model.SourceFallback {
		source = "Dados de custo fixos internos"
	}
	lines := [][]any{
		{"RESUMO GERAL"},
		{},
		{"Métrica", "Valor"},
		{"Total de Pedidos", s.Orders},
		{},
		{"DADOS ORIGINAIS"},
		{"Total Receita Estimada", s.TotalRevenue},
		{"Total Comissões", s.TotalCommission},
		{},
		{"CAMPOS CALCULADOS"},
		{"Total a Receber Final", s.TotalNetReceivable},
		{"Total Margem de Contribuição", s.TotalMargin},
		{"Total Lucro Bruto", s.TotalGrossProfit},
		{},
		{"ANÁLISE DE CUSTOS"},
		{"SKUs com Custo", s.WithCost},
		{"SKUs sem Custo", s.WithoutCost},
		{"Correspondências Exatas", res.Stats.ExactMatches},
		{"Correspondências Parciais", res.Stats.PartialMatches},
		{"Correspondências Similares", res.Stats.FuzzyMatches},
		{"Sem Correspondência", res.Stats.NoMatches},
		{"Eficiência (%)", s.Efficiency},
		{"Fonte dos Custos", source},
		{"Linhas Ignoradas", len(res.Skipped)},
	}
	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &line); err != nil {
			return err
		}
	}
	for _, row := range []int{1, 3, 6, 10, 15} {
		_ = f.SetCellStyle(SheetSummary, "A"+strconv.Itoa(row), "B"+strconv.Itoa(row), st.bold)
	}
	_ = f.SetCellStyle(SheetSummary, "B7", "B8", st.money)
	_ = f.SetCellStyle(SheetSummary, "B11", "B13", st.money)
	_ = f.SetColWidth(SheetSummary, "A", "A", 30)
	return f.SetColWidth(SheetSummary, "B", "B", 22)
}

// WriteCostsXLSX exports a cost reference table as a single sheet.
func WriteCostsXLSX(w io.Writer, entries []model.CostEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetName(f.GetSheetName(0), SheetCosts); err != nil {
		return err
	}
	_ = f.SetSheetRow(SheetCosts, "A1", &[]any{"SKU", "Custo Unitário"})
	_ = f.SetCellStyle(SheetCosts, "A1", "B1", st.header)
	for i, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetCosts, cell, &[]any{e.SKU, e.UnitCost}); err != nil {
			return err
		}
	}
	if len(entries) > 0 {
		_ = f.SetCellStyle(SheetCosts, "B2", "B"+strconv.Itoa(len(entries)+1), st.money)
	}
	_ = f.SetColWidth(SheetCosts, "A", "A", 32)
	_ = f.SetColWidth(SheetCosts, "B", "B", 16)
	return f.Write(w)
}
