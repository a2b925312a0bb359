package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"profit-service/internal/profit/model"
	"profit-service/internal/utils"
)

// Process turns order rows into ProcessedOrders, resolving each SKU against
// idx. A row that cannot be read is skipped and reported; it never stops the
// batch.
func Process(t *model.Table, cols OrderColumns, idx *CostIndex, log zerolog.Logger) model.Batch {
	b := model.Batch{
		Rows:        make([]model.ProcessedOrder, 0, len(t.Rows)),
		MissingSKUs: []string{},
		Skipped:     []model.SkippedRow{},
	}
	seenMissing := make(map[string]struct{})

	for i, row := range t.Rows {
		po, err := processRow(row, cols, idx)
		if err != nil {
			sku := strings.TrimSpace(cellString(row[cols.SKU]))
			log.Warn().
				Int("line", i+1).
				Str("sku", sku).
				Err(err).
				Msg("order row skipped")
			b.Skipped = append(b.Skipped, model.SkippedRow{Line: i + 1, SKU: sku, Reason: err.Error()})
			continue
		}

		b.Stats.TotalSKUs++
		switch po.Match {
		case model.TierExact, model.TierNormalized:
			b.Stats.ExactMatches++
		case model.TierPartial:
			b.Stats.PartialMatches++
		case model.TierFuzzy:
			b.Stats.FuzzyMatches++
		default:
			b.Stats.NoMatches++
			if _, dup := seenMissing[po.SKU]; !dup && po.SKU != "" {
				seenMissing[po.SKU] = struct{}{}
				b.MissingSKUs = append(b.MissingSKUs, po.SKU)
			}
		}
		b.Rows = append(b.Rows, po)
	}
	return b
}

func processRow(row map[string]any, cols OrderColumns, idx *CostIndex) (po model.ProcessedOrder, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	sku, err := textCell(row, cols.SKU)
	if err != nil {
		return po, err
	}
	sku = strings.TrimSpace(sku)
	// the marketplace export repeats its header on some pages
	if sku == model.ColSKU {
		return po, errRepeatedHeader
	}
	name, err := textCell(row, cols.Name)
	if err != nil {
		return po, err
	}

	var amounts [4]float64
	for i, col := range []string{cols.Price, cols.Coupon, cols.Commission, cols.Revenue} {
		if amounts[i], err = moneyCell(row, col); err != nil {
			return po, err
		}
	}

	po = model.ProcessedOrder{
		SKU:        sku,
		Name:       strings.TrimSpace(name),
		Price:      amounts[0],
		Coupon:     amounts[1],
		Commission: amounts[2],
		Revenue:    amounts[3],
		Pieces:     model.Pieces,
		Shipping:   model.Shipping,
	}
	net := utils.Money(po.Revenue).Sub(utils.Money(po.Commission))
	po.NetReceivable = net.InexactFloat64()

	m := Resolve(sku, idx)
	po.Match = m.Tier
	if m.Cost != nil {
		margin := net.Sub(utils.Money(*m.Cost))
		gross := margin.Div(decimal.NewFromInt(model.Pieces))
		po.Cost = ptr(*m.Cost)
		po.Margin = ptr(margin.InexactFloat64())
		po.GrossProfit = ptr(gross.InexactFloat64())
	}
	return po, nil
}

var errRepeatedHeader = errors.New("repeated header row")

func textCell(row map[string]any, col string) (string, error) {
	switch v := row[col].(type) {
	case nil, string, float64, int, int64:
		return cellString(v), nil
	default:
		return "", fmt.Errorf("column %q: unexpected value type %T", col, v)
	}
}

func moneyCell(row map[string]any, col string) (float64, error) {
	switch v := row[col].(type) {
	case nil, string, float64, float32, int, int64, decimal.Decimal:
		return utils.ParseBRL(v), nil
	default:
		return 0, fmt.Errorf("column %q: unexpected value type %T", col, v)
	}
}

func ptr(v float64) *float64 { return &v }
