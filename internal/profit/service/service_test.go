package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profit-service/internal/profit/model"
)

func TestEngineRunRejectsBadInput(t *testing.T) {
	e := NewEngine(zerolog.Nop())

	_, err := e.Run(nil, nil)
	assert.ErrorIs(t, err, ErrNoOrderFile)

	_, err = e.Run(&model.Table{Headers: model.RequiredOrderColumns}, nil)
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = e.Run(&model.Table{
		Headers: []string{model.ColSKU},
		Rows:    []map[string]any{{model.ColSKU: "X"}},
	}, nil)
	var mce *MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Len(t, mce.Columns, 5)
}

func TestEngineRunUsesFallback(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	res, err := e.Run(orderTable(orderRow("VESTIDO-VEGAS", "100", "10")), nil)
	require.NoError(t, err)

	assert.Equal(t, model.SourceFallback, res.CostSource)
	assert.Equal(t, len(DefaultCosts()), res.CostEntries)
	require.Len(t, res.Rows, 1)
	require.NotNil(t, res.Rows[0].Margin)
	assert.Equal(t, 72.0, *res.Rows[0].Margin)
	assert.Equal(t, 100.0, res.Summary.Efficiency)
}

func TestEngineCostFileReplacesFallback(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	costs := &CostInput{Table: &model.Table{
		Headers: []string{"SKU", "Custo"},
		Rows: []map[string]any{
			{"SKU": "outro-sku", "Custo": "5,00"},
			{"SKU": "MAIS-UM", "Custo": "7"},
			{"SKU": "QUEBRADO", "Custo": "abc"},
		},
	}}

	idx, res := e.BuildIndex(costs)
	assert.Equal(t, model.SourceFile, res.CostSource)
	assert.Equal(t, 2, res.CostEntries)
	assert.Equal(t, 1, res.CostDropped)
	// two entries, "outro-sku" adds a normalized twin, "MAIS-UM" is already normalized
	assert.Equal(t, []string{"outro-sku", "OUTRO-SKU", "MAIS-UM"}, idx.Keys())
	_, ok := idx.Lookup("VESTIDO-VEGAS")
	assert.False(t, ok)

	res, err := e.Run(orderTable(orderRow("VESTIDO-VEGAS", "100", "10")), costs)
	require.NoError(t, err)
	assert.Equal(t, []string{"VESTIDO-VEGAS"}, res.MissingSKUs)
	assert.Equal(t, 1, res.Stats.NoMatches)
}

func TestEngineEmptyCostFileStillReplaces(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	costs := &CostInput{Table: &model.Table{Headers: []string{"SKU", "Custo"}}}
	idx, res := e.BuildIndex(costs)
	assert.Equal(t, model.SourceFile, res.CostSource)
	assert.Zero(t, idx.Len())
}

func TestEngineUnreadableCostFileFallsBack(t *testing.T) {
	e := NewEngine(zerolog.Nop(), WithFallback([]model.CostEntry{{SKU: "VESTIDO-VEGAS", UnitCost: 20}}))
	res, err := e.Run(
		orderTable(orderRow("VESTIDO-VEGAS", "100", "10")),
		&CostInput{Err: errors.New("zip: not a valid zip file")},
	)
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, res.CostSource)
	assert.Equal(t, "zip: not a valid zip file", res.CostFileError)
	require.NotNil(t, res.Rows[0].Cost)
	assert.Equal(t, 20.0, *res.Rows[0].Cost)
}

func TestEngineCollisionPolicy(t *testing.T) {
	fixture := []model.CostEntry{
		{SKU: "vestido-vegas", UnitCost: 12},
		{SKU: "VESTIDO-VEGAS", UnitCost: 18},
	}
	tbl := orderTable(orderRow("Vestido Vegas", "100", "0"))

	res, err := NewEngine(zerolog.Nop(), WithFallback(fixture)).Run(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, 18.0, *res.Rows[0].Cost)

	res, err = NewEngine(zerolog.Nop(), WithFallback(fixture), WithCollisionPolicy(KeepLowest)).Run(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, 12.0, *res.Rows[0].Cost)
}

func TestSummarize(t *testing.T) {
	margin := 72.5
	cost := 15.0
	b := model.Batch{
		Rows: []model.ProcessedOrder{
			{Revenue: 100, Commission: 12.5, NetReceivable: 87.5, Cost: &cost, Margin: &margin, GrossProfit: &margin},
			{Revenue: 0.1, Commission: 0, NetReceivable: 0.1},
			{Revenue: 0.2, Commission: 0, NetReceivable: 0.2},
		},
		Stats: model.CostMatchingStats{TotalSKUs: 3, ExactMatches: 1, NoMatches: 2},
	}
	s := Summarize(b)
	assert.Equal(t, 3, s.Orders)
	assert.Equal(t, 100.3, s.TotalRevenue)
	assert.Equal(t, 12.5, s.TotalCommission)
	assert.Equal(t, 87.8, s.TotalNetReceivable)
	assert.Equal(t, 72.5, s.TotalMargin)
	assert.Equal(t, 72.5, s.TotalGrossProfit)
	assert.Equal(t, 1, s.WithCost)
	assert.Equal(t, 2, s.WithoutCost)
	assert.InDelta(t, 33.333, s.Efficiency, 0.001)
}

func TestDefaultCostsIsACopy(t *testing.T) {
	a := DefaultCosts()
	a[0].UnitCost = 999
	assert.NotEqual(t, 999.0, DefaultCosts()[0].UnitCost)
	assert.Len(t, a, 42)
}

func TestSearchAndSummarizeCosts(t *testing.T) {
	all := DefaultCosts()
	found := SearchCosts(all, "agua-viva")
	assert.Len(t, found, 4)
	assert.Len(t, SearchCosts(all, "  "), len(all))
	assert.Empty(t, SearchCosts(all, "inexistente"))

	st := SummarizeCosts(found)
	assert.Equal(t, CostTableStats{Count: 4, Average: 15, Min: 15, Max: 15}, st)
	assert.Equal(t, CostTableStats{}, SummarizeCosts(nil))

	st = SummarizeCosts(all)
	assert.Equal(t, 6.0, st.Min)
	assert.Equal(t, 22.0, st.Max)
}
