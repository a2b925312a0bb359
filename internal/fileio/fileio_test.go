package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"profit-service/internal/profit/model"
)

func TestReadCSVLatin1Semicolon(t *testing.T) {
	src := "Relatório de custos\nNúmero do produto;Custo Unitário\nVESTIDO-ARO-;18,00\n;\nCONJ-BADDIE;\"1.018,50\"\n"
	enc, err := charmap.Windows1252.NewEncoder().String(src)
	require.NoError(t, err)

	tbl, err := ReadTable(strings.NewReader(enc), "custos.csv", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Número do produto", "Custo Unitário"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "VESTIDO-ARO-", tbl.Rows[0]["Número do produto"])
	assert.Equal(t, "1.018,50", tbl.Rows[1]["Custo Unitário"])
}

func TestReadCSVUTF8WithBOM(t *testing.T) {
	src := "\ufeffSKU,Custo\nVestido-Agua-Viva,15\nsem-custo,\n"
	tbl, err := ReadTable(strings.NewReader(src), "custos.CSV", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"SKU", "Custo"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Vestido-Agua-Viva", tbl.Rows[0]["SKU"])
	assert.Nil(t, tbl.Rows[1]["Custo"])
}

func TestReadCSVEmpty(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader(""), "vazio.csv", 1)
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
}

func TestReadTableUnsupported(t *testing.T) {
	_, err := ReadTable(strings.NewReader("x"), "pedidos.pdf", 1)
	assert.Error(t, err)
}

func TestPickHeaderFillsBlanksAndDuplicates(t *testing.T) {
	h := pickHeader([][]any{{"SKU", "", "SKU", nil}}, 1)
	assert.Equal(t, []string{"SKU", "Column 2", "SKU (2)", "Column 4"}, h)
	assert.Nil(t, pickHeader([][]any{{"a"}}, 3))
}

func TestReadXLSXKeepsNumbers(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Pedidos exportados"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{
		model.ColSKU, model.ColName, model.ColPrice, model.ColCoupon, model.ColCommission, model.ColRevenue,
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"VESTIDO-VEGAS", "Vestido Vegas", 59.9, 0, 12.5, 100}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"0123", "Texto", "R$ 41,50", "", "", ""}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	tbl, err := ReadTable(&buf, "pedidos.xlsx", 2)
	require.NoError(t, err)
	assert.Equal(t, model.RequiredOrderColumns, tbl.Headers)
	require.Len(t, tbl.Rows, 2)

	first := tbl.Rows[0]
	assert.Equal(t, "VESTIDO-VEGAS", first[model.ColSKU])
	assert.Equal(t, 59.9, first[model.ColPrice])
	assert.Equal(t, 12.5, first[model.ColCommission])
	assert.Equal(t, 100.0, first[model.ColRevenue])

	second := tbl.Rows[1]
	assert.Equal(t, "0123", second[model.ColSKU])
	assert.Equal(t, "R$ 41,50", second[model.ColPrice])
}

func TestReadXLSXBroken(t *testing.T) {
	_, err := ReadTable(strings.NewReader("not a zip"), "custos.xlsx", 1)
	assert.Error(t, err)
}

func TestXLSCell(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", nil},
		{" ", nil},
		{"59.9", 59.9},
		{"-4", -4.0},
		{"0.5", 0.5},
		{"0042", "0042"},
		{"R$ 1.234,56", "R$ 1.234,56"},
		{"1.2.3", "1.2.3"},
		{"NaN", "NaN"},
		{" VESTIDO-VEGAS ", "VESTIDO-VEGAS"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, xlsCell(tt.in), tt.in)
	}
}
