package service

import (
	"github.com/shopspring/decimal"

	"profit-service/internal/profit/model"
	"profit-service/internal/utils"
)

// Summarize totals a batch. Margin and gross profit only add up rows whose
// cost is known.
func Summarize(b model.Batch) model.Summary {
	var revenue, commission, net, margin, gross decimal.Decimal
	s := model.Summary{Orders: len(b.Rows), Efficiency: b.Stats.Efficiency()}

	for _, r := range b.Rows {
		revenue = revenue.Add(utils.Money(r.Revenue))
		commission = commission.Add(utils.Money(r.Commission))
		net = net.Add(utils.Money(r.NetReceivable))
		if r.Cost == nil {
			s.WithoutCost++
			continue
		}
		s.WithCost++
		if r.Margin != nil {
			margin = margin.Add(utils.Money(*r.Margin))
		}
		if r.GrossProfit != nil {
			gross = gross.Add(utils.Money(*r.GrossProfit))
		}
	}

	s.TotalRevenue = revenue.InexactFloat64()
	s.TotalCommission = commission.InexactFloat64()
	s.TotalNetReceivable = net.InexactFloat64()
	s.TotalMargin = margin.InexactFloat64()
	s.TotalGrossProfit = gross.InexactFloat64()
	return s
}
