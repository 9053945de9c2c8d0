package filter

import "strings"

// Rarity classifies a divination card by approximate market value.
// Lower is rarer: 1 is the extremely-rare class, 4 is common.
type Rarity int

const (
	RarityNone   Rarity = iota // tier ignored or unrecognized
	RarityTop                  // t1
	RarityHigh                 // t2, t3, tnew
	RarityMid                  // t4c
	RarityCommon               // t4, t5, t5c, restex
)

// tierRarities maps community filter tier tags to rarity levels.
// Stack tiers (exstack, excustomstack) are deliberately absent: cards in
// those blocks are duplicates of cards tiered elsewhere and must not be
// classified through them.
var tierRarities = map[string]Rarity{
	"t1":     RarityTop,
	"t2":     RarityHigh,
	"t3":     RarityHigh,
	"tnew":   RarityHigh,
	"t4c":    RarityMid,
	"t5c":    RarityCommon,
	"t4":     RarityCommon,
	"t5":     RarityCommon,
	"restex": RarityCommon,
}

// MapTierToRarity resolves a tier tag to its rarity level. The lookup is
// case-insensitive. The second return is false for ignored tiers (exstack,
// excustomstack) and for tags that are not in the table at all.
func MapTierToRarity(tier string) (Rarity, bool) {
	r, ok := tierRarities[strings.ToLower(tier)]
	return r, ok
}

// TierMapping returns a copy of the tier table. Mutating the returned map
// has no effect on subsequent lookups.
func TierMapping() map[string]Rarity {
	m := make(map[string]Rarity, len(tierRarities))
	for tier, r := range tierRarities {
		m[tier] = r
	}
	return m
}
