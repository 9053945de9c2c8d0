package filter

// buildRarityMap folds tier blocks into a single card->rarity map. Blocks
// without a rarity are skipped entirely, so their cards never enter the map.
// When a card appears under several tiers the numerically smallest (rarest)
// value wins, which makes the result independent of block order.
func buildRarityMap(blocks []TierBlock) map[string]Rarity {
	rarities := make(map[string]Rarity)
	for _, block := range blocks {
		if block.Rarity == RarityNone {
			continue
		}
		for _, card := range block.Cards {
			if current, ok := rarities[card]; !ok || block.Rarity < current {
				rarities[card] = block.Rarity
			}
		}
	}
	return rarities
}
