package filter

import (
	"regexp"
	"strings"
)

// TierBlock is one Show/Hide rule block tagged with a divination tier.
// Rarity is RarityNone for ignored or unrecognized tiers. Cards keeps
// duplicates and preserves order of first appearance.
type TierBlock struct {
	Tier   string
	Rarity Rarity
	Cards  []string
}

var (
	// Block start: a Show/Hide line annotated with the divination tier tag,
	// e.g. `Show # $type->divination $tier->t1`.
	blockStartPattern = regexp.MustCompile(`(?i)^\s*(show|hide)\b.*\$type->divination\s+\$tier->([a-z0-9_]+)`)

	// BaseType property line, with or without the equality operator.
	baseTypePattern = regexp.MustCompile(`(?i)^\s*BaseType\b`)

	// Continuation line: nothing but whitespace and quoted names.
	continuationPattern = regexp.MustCompile(`^\s*(?:"[^"]*"\s*)+$`)

	quotedNamePattern = regexp.MustCompile(`"([^"]*)"`)
)

// parseTierBlocks walks the section body and collects every tier-tagged rule
// block together with the card names declared inside it. Block order mirrors
// source order. Cosmetic properties and comments inside a block are ignored
// without closing it; only a new block start or end of input closes a block.
func parseTierBlocks(lines []string) []TierBlock {
	var blocks []TierBlock
	var open *TierBlock
	// True while the previous captured line was a BaseType or continuation
	// line; only then may a bare quoted line extend the card list.
	inCards := false

	for _, line := range lines {
		if m := blockStartPattern.FindStringSubmatch(line); m != nil {
			if open != nil {
				blocks = append(blocks, *open)
			}
			tier := strings.ToLower(m[2])
			rarity, _ := MapTierToRarity(tier)
			open = &TierBlock{Tier: tier, Rarity: rarity}
			inCards = false
			continue
		}
		if open == nil {
			continue
		}

		switch {
		case baseTypePattern.MatchString(line):
			open.Cards = append(open.Cards, extractCardNames(line)...)
			inCards = true
		case inCards && continuationPattern.MatchString(line):
			open.Cards = append(open.Cards, extractCardNames(line)...)
		default:
			inCards = false
		}
	}

	if open != nil {
		blocks = append(blocks, *open)
	}
	return blocks
}

// extractCardNames returns every non-empty double-quoted substring in the
// line, trimmed of surrounding whitespace inside the quotes, in left-to-right
// order. Returns nil when the line carries no names.
func extractCardNames(line string) []string {
	var names []string
	for _, m := range quotedNamePattern.FindAllStringSubmatch(line, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
