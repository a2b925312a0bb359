package service

import (
	"strings"

	"profit-service/internal/profit/model"
)

const (
	// substring matches only count when the shorter side is longer than this
	partialMinLen = 5
	// fuzzy candidates must score strictly above this
	fuzzyThreshold = 0.7
)

// Resolve finds the unit cost of one order SKU. Tiers run in order and the
// first hit wins:
//
//  1. the normalized SKU is a key ("exact" when the raw SKU is a key as well,
//     "normalized" otherwise);
//  2. the raw SKU is a key ("exact");
//  3. a key contains, or is contained in, the normalized SKU ("partial");
//     the first such key in index order wins;
//  4. the most similar key above fuzzyThreshold ("fuzzy"); on equal scores
//     the first key in index order wins.
//
// No hit yields TierNone with a nil cost.
func Resolve(orderSKU string, idx *CostIndex) model.MatchResult {
	if idx == nil {
		return model.MatchResult{Tier: model.TierNone}
	}
	norm := NormalizeSKU(orderSKU)

	if cost, ok := idx.Lookup(norm); ok && norm != "" {
		tier := model.TierNormalized
		if _, raw := idx.Lookup(orderSKU); raw {
			tier = model.TierExact
		}
		return hit(cost, tier, norm, nil)
	}
	if cost, ok := idx.Lookup(orderSKU); ok {
		return hit(cost, model.TierExact, orderSKU, nil)
	}
	if norm == "" {
		return model.MatchResult{Tier: model.TierNone}
	}

	if key, cost, ok := partialMatch(norm, idx); ok {
		return hit(cost, model.TierPartial, key, nil)
	}
	if key, cost, score, ok := fuzzyMatch(norm, idx); ok {
		return hit(cost, model.TierFuzzy, key, &score)
	}
	return model.MatchResult{Tier: model.TierNone}
}

func partialMatch(norm string, idx *CostIndex) (key string, cost float64, ok bool) {
	idx.Each(func(k, nk string, c float64) bool {
		if nk == "" || min(len(norm), len(nk)) <= partialMinLen {
			return true
		}
		if strings.Contains(norm, nk) || strings.Contains(nk, norm) {
			key, cost, ok = k, c, true
			return false
		}
		return true
	})
	return key, cost, ok
}

func fuzzyMatch(norm string, idx *CostIndex) (key string, cost, score float64, ok bool) {
	best := fuzzyThreshold
	idx.Each(func(k, nk string, c float64) bool {
		if s := Similarity(norm, nk); s > best {
			best = s
			key, cost, score, ok = k, c, s, true
		}
		return true
	})
	return key, cost, score, ok
}

func hit(cost float64, tier model.Tier, key string, score *float64) model.MatchResult {
	c := cost
	return model.MatchResult{Cost: &c, Tier: tier, Key: key, Score: score}
}
