package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"profit-service/internal/fileio"
	"profit-service/internal/profit/model"
)

func writeOrdersCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "pedidos.csv")
	data := "Pedidos exportados\n" +
		strings.Join(model.RequiredOrderColumns, ";") + "\n" +
		"MAC-SABONETEIRA;Macacão;79,90;0;12,00;70,00\n" +
		"SEM-CADASTRO-1;Blusa;19,90;0;2,00;20,00\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(zerolog.Nop())
	app.Writer = &out
	err := app.Run(append([]string{"profitcli"}, args...))
	return out.String(), err
}

func TestProcessPrintsSummary(t *testing.T) {
	orders := writeOrdersCSV(t, t.TempDir())

	out, err := run(t, "process", "--orders", orders)
	require.NoError(t, err)
	assert.Contains(t, out, "Pedidos:              2")
	assert.Contains(t, out, "Fonte de custos:      fallback")
	assert.Contains(t, out, "SEM-CADASTRO-1")
}

func TestProcessWritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	orders := writeOrdersCSV(t, dir)
	costs := filepath.Join(dir, "custos.csv")
	require.NoError(t, os.WriteFile(costs, []byte("Codigo,Custo\nSEM-CADASTRO-1,\"5,00\"\n"), 0o644))
	report := filepath.Join(dir, "relatorio.xlsx")

	_, err := run(t, "process", "--orders", orders, "--costs", costs, "--out", report)
	require.NoError(t, err)

	f, err := excelize.OpenFile(report)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), fileio.SheetAll)

	missing, err := f.GetRows(fileio.SheetMissing)
	require.NoError(t, err)
	require.NotEmpty(t, missing)
	assert.Equal(t, "MAC-SABONETEIRA", missing[len(missing)-1][0])
}

func TestProcessRejectsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pedidos.csv")
	require.NoError(t, os.WriteFile(path, []byte("titulo\nSKU;Preço\nA;1\n"), 0o644))

	_, err := run(t, "process", "--orders", path)
	assert.Error(t, err)
}

func TestCostsCommand(t *testing.T) {
	out, err := run(t, "costs", "--search", "baddie")
	require.NoError(t, err)
	assert.Contains(t, out, "CONJ-BADDIE-")
	assert.Contains(t, out, "2 SKUs")

	report := filepath.Join(t.TempDir(), "custos.csv")
	_, err = run(t, "costs", "--out", report)
	require.NoError(t, err)
	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Custo Unitário")
}
