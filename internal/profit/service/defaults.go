package service

import (
	"math"
	"strings"

	"profit-service/internal/profit/model"
)

// defaultCosts is the built-in reference table used when no cost file is
// uploaded. Keys are SKU prefixes as they appear in the marketplace export.
var defaultCosts = [...]model.CostEntry{
	{SKU: "CONJ-TRANSPASSADO-TOP-", UnitCost: 22},
	{SKU: "CONJ-BUTTERFLY-TOP-SAIA-", UnitCost: 14},
	{SKU: "CONJ-BUTTERFLY-TOP-SAIA", UnitCost: 14},
	{SKU: "Vestido-Agua-Viva", UnitCost: 15},
	{SKU: "1Vestido-Agua-Viva-", UnitCost: 15},
	{SKU: "1Vestido-Agua-Viva", UnitCost: 15},
	{SKU: "3Vestido-Agua-Viva-", UnitCost: 15},
	{SKU: "VESTIDO-ARO-", UnitCost: 18},
	{SKU: "VEST-CURTINHO-RIBANA-", UnitCost: 15},
	{SKU: "VEST-RIBANA-FECHADO-ALCINHA-", UnitCost: 15},
	{SKU: "VEST-ALCINHA-FENDA-RIBANA-", UnitCost: 15},
	{SKU: "VEST-TOMAQUECAIA-LONGO-", UnitCost: 15},
	{SKU: "Vest-Longo-Bojo-Romano-", UnitCost: 18},
	{SKU: "VEST-ROMANOO-", UnitCost: 18},
	{SKU: "REGATA-INFLUENCER-", UnitCost: 10},
	{SKU: "CONJ-FEND-TOP", UnitCost: 18},
	{SKU: "Vest-Longo-Bojo-Romano", UnitCost: 18},
	{SKU: "CROPPED-RIBANINHA-", UnitCost: 6},
	{SKU: "MAC-SEM-MANGA", UnitCost: 15},
	{SKU: "VESTIDO-MIDI-", UnitCost: 16.5},
	{SKU: "CONJ-BADDIE-", UnitCost: 18},
	{SKU: "VESTIDO-VEGAS", UnitCost: 18},
	{SKU: "CONJ-TRANSPASSADO-", UnitCost: 18},
	{SKU: "MACACAO-MANG-COMPRID-TUMBLR", UnitCost: 22},
	{SKU: "VESTIDO-TUBO-ALCINHA-", UnitCost: 14},
	{SKU: "VEST-TOP-SAIIA-", UnitCost: 16},
	{SKU: "CROPPED-RIBANINHA-", UnitCost: 16},
	{SKU: "stillVEST-LONG-TOP-SAI-FEND", UnitCost: 16},
	{SKU: "1stillVEST-LONG-TOP-SAI-FEND", UnitCost: 16},
	{SKU: "VEST-TOMAQUECAIA-LONGO-", UnitCost: 18},
	{SKU: "TOP-DECOTADO-FAIXA", UnitCost: 11},
	{SKU: "VEST-LONG-TOP-SAI-FEND", UnitCost: 18},
	{SKU: "VEST-LONGo-TOP-SAI", UnitCost: 18},
	{SKU: "VEST-LONG-TOP-SAI-FEND-", UnitCost: 18},
	{SKU: "1VEST-LONG-TOP-SAI-FEND-", UnitCost: 18},
	{SKU: "CONJ-AFRODITE-TOP-ASSIMET-", UnitCost: 18},
	{SKU: "MAC-MANGA-LONG-FRANZIDO-", UnitCost: 18},
	{SKU: "MAC-SABONETEIRA", UnitCost: 18},
	{SKU: "VESTIDO-MADRID-", UnitCost: 16},
	{SKU: "VESTIDO-ELEGANTE-MANGA-", UnitCost: 18},
	{SKU: "CONJ-BADDIE", UnitCost: 18},
	{SKU: "CROPPED-DECOTADO-", UnitCost: 10},
}

// DefaultCosts returns a fresh copy of the built-in reference table.
func DefaultCosts() []model.CostEntry {
	out := make([]model.CostEntry, len(defaultCosts))
	copy(out, defaultCosts[:])
	return out
}

// SearchCosts keeps the entries whose SKU contains q, ignoring case.
// An empty query returns everything.
func SearchCosts(entries []model.CostEntry, q string) []model.CostEntry {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return entries
	}
	out := make([]model.CostEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.SKU), q) {
			out = append(out, e)
		}
	}
	return out
}

type CostTableStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

func SummarizeCosts(entries []model.CostEntry) CostTableStats {
	if len(entries) == 0 {
		return CostTableStats{}
	}
	st := CostTableStats{Count: len(entries), Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, e := range entries {
		sum += e.UnitCost
		st.Min = math.Min(st.Min, e.UnitCost)
		st.Max = math.Max(st.Max, e.UnitCost)
	}
	st.Average = sum / float64(len(entries))
	return st
}
