package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"profit-service/internal/fileio"
	"profit-service/internal/profit/model"
	profitSvc "profit-service/internal/profit/service"
	"profit-service/internal/utils"
)

func newApp(logger zerolog.Logger) *cli.App {
	return &cli.App{
		Name:  "profitcli",
		Usage: "Compute per-order profit from a marketplace export",
		Commands: []*cli.Command{
			{
				Name:  "process",
				Usage: "Resolve SKU costs and write the profit report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "orders",
						Usage:    "Order export (.xlsx, .xls or .csv)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "costs",
						Usage: "Cost table; the built-in table is used when omitted",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Report file; the format follows the extension (.xlsx, .csv, .xls, .json)",
					},
					&cli.IntFlag{
						Name:    "order-header-row",
						Usage:   "1-based header row of the order export",
						Value:   2,
						EnvVars: []string{"ORDER_HEADER_ROW"},
					},
					&cli.IntFlag{
						Name:    "cost-header-row",
						Usage:   "1-based header row of the cost table",
						Value:   1,
						EnvVars: []string{"COST_HEADER_ROW"},
					},
					&cli.StringFlag{
						Name:    "collision",
						Usage:   "Duplicate cost keys: last | lowest",
						Value:   "last",
						EnvVars: []string{"COST_COLLISION"},
					},
				},
				Action: func(c *cli.Context) error { return runProcess(c, logger) },
			},
			{
				Name:  "costs",
				Usage: "Show or export the built-in cost table",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "search",
						Usage: "Case-insensitive SKU filter",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Export file (.xlsx or .csv)",
					},
				},
				Action: runCosts,
			},
		},
	}
}

func runProcess(c *cli.Context, logger zerolog.Logger) error {
	orders, err := readTable(c.String("orders"), c.Int("order-header-row"))
	if err != nil {
		return fmt.Errorf("read orders: %w", err)
	}

	var costs *profitSvc.CostInput
	if path := c.String("costs"); path != "" {
		tbl, err := readTable(path, c.Int("cost-header-row"))
		costs = &profitSvc.CostInput{Table: tbl, Err: err}
	}

	engine := profitSvc.NewEngine(logger,
		profitSvc.WithCollisionPolicy(profitSvc.ParseCollisionPolicy(c.String("collision"))))
	res, err := engine.Run(orders, costs)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		printSummary(c.App.Writer, res)
		return nil
	}
	format, ok := fileio.FormatFromPath(out)
	if !ok {
		return fmt.Errorf("unknown report format: %s", out)
	}
	if err := writeFile(out, func(w io.Writer) error { return fileio.WriteOrders(w, format, res) }); err != nil {
		return err
	}
	logger.Info().Str("out", out).Int("rows", len(res.Rows)).Msg("report written")
	return nil
}

func runCosts(c *cli.Context) error {
	entries := profitSvc.SearchCosts(profitSvc.DefaultCosts(), c.String("search"))

	out := c.String("out")
	if out == "" {
		for _, e := range entries {
			fmt.Fprintf(c.App.Writer, "%-32s %s\n", e.SKU, utils.FormatBRL(e.UnitCost))
		}
		st := profitSvc.SummarizeCosts(entries)
		fmt.Fprintf(c.App.Writer, "%d SKUs, média %s, mín %s, máx %s\n",
			st.Count, utils.FormatBRL(st.Average), utils.FormatBRL(st.Min), utils.FormatBRL(st.Max))
		return nil
	}

	format, _ := fileio.FormatFromPath(out)
	switch format {
	case fileio.FormatCSV:
		return writeFile(out, func(w io.Writer) error { return fileio.WriteCostsCSV(w, entries) })
	case fileio.FormatXLSX:
		return writeFile(out, func(w io.Writer) error { return fileio.WriteCostsXLSX(w, entries) })
	case fileio.FormatJSON:
		return writeFile(out, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		})
	default:
		return fmt.Errorf("unsupported cost table format: %s", out)
	}
}

func readTable(path string, headerRow int) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fileio.ReadTable(f, filepath.Base(path), headerRow)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(w io.Writer, res model.Result) {
	s := res.Summary
	fmt.Fprintf(w, "Pedidos:              %d\n", s.Orders)
	fmt.Fprintf(w, "Receita:              %s\n", utils.FormatBRL(s.TotalRevenue))
	fmt.Fprintf(w, "Comissão:             %s\n", utils.FormatBRL(s.TotalCommission))
	fmt.Fprintf(w, "A receber:            %s\n", utils.FormatBRL(s.TotalNetReceivable))
	fmt.Fprintf(w, "Margem:               %s\n", utils.FormatBRL(s.TotalMargin))
	fmt.Fprintf(w, "Lucro bruto:          %s\n", utils.FormatBRL(s.TotalGrossProfit))
	fmt.Fprintf(w, "Com custo/sem custo:  %d/%d\n", s.WithCost, s.WithoutCost)
	fmt.Fprintf(w, "Eficiência:           %.1f%%\n", s.Efficiency)
	fmt.Fprintf(w, "Fonte de custos:      %s\n", res.CostSource)
	if res.CostFileError != "" {
		fmt.Fprintf(w, "Erro no arquivo:      %s\n", res.CostFileError)
	}
	if len(res.MissingSKUs) > 0 {
		fmt.Fprintf(w, "SKUs sem custo (%d):\n", len(res.MissingSKUs))
		for _, sku := range res.MissingSKUs {
			fmt.Fprintf(w, "  %s\n", sku)
		}
	}
	for _, sk := range res.Skipped {
		fmt.Fprintf(w, "Linha %d ignorada (%s): %s\n", sk.Line, sk.SKU, sk.Reason)
	}
}
