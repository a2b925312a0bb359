package service

import (
	"strconv"
	"strings"

	"profit-service/internal/profit/model"
	"profit-service/internal/utils"
)

// CollisionPolicy decides what happens when two entries land on the same key.
// Distinct raw SKUs often share a normalized form.
type CollisionPolicy int

const (
	LastWriteWins CollisionPolicy = iota
	KeepLowest
)

func ParseCollisionPolicy(s string) CollisionPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowest", "keep-lowest", "min":
		return KeepLowest
	default:
		return LastWriteWins
	}
}

func (p CollisionPolicy) String() string {
	if p == KeepLowest {
		return "lowest"
	}
	return "last"
}

// CostIndex maps SKU strings to unit costs. Every entry is stored under its
// trimmed raw key and under its normalized key. Iteration follows the order in
// which keys were first inserted; overwriting a key keeps its position.
type CostIndex struct {
	costs  map[string]float64
	keys   []string
	norm   map[string]string // key -> NormalizeSKU(key), computed once
	policy CollisionPolicy
}

// NewCostIndex builds the index from entries. Entries with an empty key or a
// non-positive cost are skipped.
func NewCostIndex(entries []model.CostEntry, policy CollisionPolicy) *CostIndex {
	idx := &CostIndex{
		costs:  make(map[string]float64, len(entries)*2),
		keys:   make([]string, 0, len(entries)*2),
		norm:   make(map[string]string, len(entries)*2),
		policy: policy,
	}
	for _, e := range entries {
		key := strings.TrimSpace(e.SKU)
		if key == "" || !(e.UnitCost > 0) {
			continue
		}
		idx.put(key, e.UnitCost)
		if nk := NormalizeSKU(key); nk != "" {
			idx.put(nk, e.UnitCost)
		}
	}
	return idx
}

func (idx *CostIndex) put(key string, cost float64) {
	old, exists := idx.costs[key]
	if !exists {
		idx.keys = append(idx.keys, key)
		idx.norm[key] = NormalizeSKU(key)
		idx.costs[key] = cost
		return
	}
	if idx.policy == KeepLowest && old <= cost {
		return
	}
	idx.costs[key] = cost
}

func (idx *CostIndex) Lookup(key string) (float64, bool) {
	c, ok := idx.costs[key]
	return c, ok
}

// Len is the number of distinct keys (raw and normalized together).
func (idx *CostIndex) Len() int { return len(idx.keys) }

func (idx *CostIndex) Keys() []string {
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Each walks keys in insertion order until fn returns false.
func (idx *CostIndex) Each(fn func(key, normKey string, cost float64) bool) {
	for _, k := range idx.keys {
		if !fn(k, idx.norm[k], idx.costs[k]) {
			return
		}
	}
}

// CostEntriesFromRows turns a parsed cost sheet into entries. Key and value
// columns are found through model.CostKeyAliases / model.CostValueAliases.
// Rows without a key or with a non-positive cost are dropped and counted.
func CostEntriesFromRows(t *model.Table) (entries []model.CostEntry, dropped int) {
	if t == nil {
		return nil, 0
	}
	keyCol := resolveColumn(t.Headers, model.CostKeyAliases, true)
	valCol := resolveColumnExcept(t.Headers, model.CostValueAliases, keyCol)
	if keyCol == "" || valCol == "" {
		return nil, len(t.Rows)
	}

	entries = make([]model.CostEntry, 0, len(t.Rows))
	for _, row := range t.Rows {
		key := strings.TrimSpace(cellString(row[keyCol]))
		cost := utils.ParseBRL(row[valCol])
		if key == "" || !(cost > 0) {
			dropped++
			continue
		}
		entries = append(entries, model.CostEntry{SKU: key, UnitCost: cost})
	}
	return entries, dropped
}

// cellString coerces a cell to text the way a spreadsheet shows it.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}
