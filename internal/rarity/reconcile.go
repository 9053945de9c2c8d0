// Package rarity merges filter-derived card rarities with market-price
// signals into the classification shown to the player.
package rarity

import (
	"divistash/internal/filter"
	"divistash/internal/store"
)

// Thresholds are the chaos-value cutoffs per rarity class. A card worth at
// least Top chaos is RarityTop, at least High is RarityHigh, at least Mid is
// RarityMid, anything below is RarityCommon.
type Thresholds struct {
	Top  float64
	High float64
	Mid  float64
}

// FromChaos buckets a chaos value into a rarity class.
func FromChaos(value float64, t Thresholds) filter.Rarity {
	switch {
	case value >= t.Top:
		return filter.RarityTop
	case value >= t.High:
		return filter.RarityHigh
	case value >= t.Mid:
		return filter.RarityMid
	default:
		return filter.RarityCommon
	}
}

// Reconcile merges the two rarity signals over the union of their cards.
// The filter author's judgment wins for any card the filter tiers; cards
// known only from the price snapshot get a price-derived rarity. The result
// is never nil.
func Reconcile(filterRarities map[string]filter.Rarity, prices []store.CardPrice, t Thresholds) map[string]filter.Rarity {
	merged := make(map[string]filter.Rarity, len(filterRarities)+len(prices))

	for _, p := range prices {
		merged[p.Card] = FromChaos(p.ChaosValue, t)
	}
	for card, r := range filterRarities {
		merged[card] = r
	}
	return merged
}
