package service

import (
	"time"

	"github.com/rs/zerolog"

	"profit-service/internal/profit/model"
)

// CostInput is what the caller managed to read from the optional cost file.
// A nil *CostInput means no file was sent; Err means the file was sent but
// could not be parsed.
type CostInput struct {
	Table *model.Table
	Err   error
}

type Engine struct {
	fallback  []model.CostEntry
	collision CollisionPolicy
	log       zerolog.Logger
}

type Option func(*Engine)

// WithFallback replaces the built-in reference table.
func WithFallback(entries []model.CostEntry) Option {
	return func(e *Engine) { e.fallback = entries }
}

func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(e *Engine) { e.collision = p }
}

func NewEngine(log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{fallback: DefaultCosts(), log: log}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Fallback() []model.CostEntry { return e.fallback }

// BuildIndex picks the cost source for one run. A readable cost file replaces
// the fallback table entirely, even when few of its rows are usable.
func (e *Engine) BuildIndex(costs *CostInput) (*CostIndex, model.Result) {
	var res model.Result
	switch {
	case costs == nil:
		res.CostSource = model.SourceFallback
		res.CostEntries = len(e.fallback)
		return NewCostIndex(e.fallback, e.collision), res

	case costs.Err != nil:
		e.log.Error().Err(costs.Err).Msg("cost file unreadable, using built-in table")
		res.CostSource = model.SourceFallback
		res.CostEntries = len(e.fallback)
		res.CostFileError = costs.Err.Error()
		return NewCostIndex(e.fallback, e.collision), res
	}

	entries, dropped := CostEntriesFromRows(costs.Table)
	if len(entries) == 0 {
		e.log.Warn().Int("dropped", dropped).Msg("cost file has no usable rows")
	}
	res.CostSource = model.SourceFile
	res.CostEntries = len(entries)
	res.CostDropped = dropped
	return NewCostIndex(entries, e.collision), res
}

// Run validates the order sheet, builds the cost index and processes every
// row. Only structural problems (no sheet, empty sheet, missing columns) are
// returned as errors.
func (e *Engine) Run(orders *model.Table, costs *CostInput) (model.Result, error) {
	start := time.Now()
	if orders == nil {
		return model.Result{}, ErrNoOrderFile
	}
	if len(orders.Rows) == 0 {
		return model.Result{}, ErrEmptySheet
	}
	cols, err := ResolveOrderColumns(orders.Headers)
	if err != nil {
		return model.Result{}, err
	}

	idx, res := e.BuildIndex(costs)
	res.Batch = Process(orders, cols, idx, e.log)
	res.Summary = Summarize(res.Batch)

	e.log.Info().
		Int("rows", len(orders.Rows)).
		Int("processed", len(res.Rows)).
		Int("skipped", len(res.Skipped)).
		Str("cost_source", res.CostSource).
		Int("index_keys", idx.Len()).
		Int("exact", res.Stats.ExactMatches).
		Int("partial", res.Stats.PartialMatches).
		Int("fuzzy", res.Stats.FuzzyMatches).
		Int("none", res.Stats.NoMatches).
		Dur("elapsed", time.Since(start)).
		Msg("orders processed")
	return res, nil
}
