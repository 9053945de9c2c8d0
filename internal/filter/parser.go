// Package filter parses community-authored loot filter files and extracts
// the divination card section as a card->rarity map.
//
// Filters follow a line-oriented convention: a table of contents near the
// top lists section ids as [[NNNN]] markers, and each section body is a run
// of Show/Hide rule blocks annotated with $type->divination $tier-><tag>.
// Filters are hand-edited and highly variable, so every failure mode
// degrades to a well-defined empty result instead of an error.
package filter

import (
	"os"
	"strings"
	"unicode/utf8"
)

// Result is the outcome of parsing one filter.
//
// HasDivinationSection is true when the table of contents declares a
// divination card section, even if the section body is missing or empty.
// TotalCards always equals len(CardRarities). CardRarities is never nil.
type Result struct {
	HasDivinationSection bool
	TotalCards           int
	CardRarities         map[string]Rarity
}

// Parse parses in-memory filter text. It never fails: when the table of
// contents has no divination card entry the result is empty with
// HasDivinationSection false, and when the entry exists but no matching
// section body does, the result is empty with HasDivinationSection true
// (callers are expected to default unmapped cards to the common rarity).
func Parse(content string) Result {
	lines := splitLines(content)

	sectionID := findDivinationSectionID(lines)
	if sectionID == "" {
		return Result{CardRarities: map[string]Rarity{}}
	}

	headerIdx := findSectionStart(lines, sectionID)
	if headerIdx < 0 {
		return Result{HasDivinationSection: true, CardRarities: map[string]Rarity{}}
	}

	body := extractSectionLines(lines, headerIdx)
	rarities := buildRarityMap(parseTierBlocks(body))

	return Result{
		HasDivinationSection: true,
		TotalCards:           len(rarities),
		CardRarities:         rarities,
	}
}

// ParseFile reads path and parses it. Any read failure, including a file
// that is not valid UTF-8, yields the same empty result as a filter with no
// divination section, so callers have a single fallback path.
func ParseFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return Result{CardRarities: map[string]Rarity{}}
	}
	return Parse(string(data))
}

// splitLines splits on LF and strips a trailing CR per line, normalizing
// both line ending conventions.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
