package filter

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTierBlocksBasic(t *testing.T) {
	lines := []string{
		"Show # $type->divination $tier->t1",
		`	SetTextColor 255 0 0 255`,
		`	BaseType == "The Doctor" "House of Mirrors"`,
		`	PlayAlertSound 1 300`,
		"",
		"Hide # $type->divination $tier->T5",
		`	BaseType == "The Carrion Crow"`,
	}

	blocks := parseTierBlocks(lines)
	want := []TierBlock{
		{Tier: "t1", Rarity: RarityTop, Cards: []string{"The Doctor", "House of Mirrors"}},
		{Tier: "t5", Rarity: RarityCommon, Cards: []string{"The Carrion Crow"}},
	}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Errorf("parseTierBlocks() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTierBlocksContinuationLines(t *testing.T) {
	lines := []string{
		"Show # $type->divination $tier->t4",
		`	BaseType == "Card 0"`,
	}
	var want []string
	want = append(want, "Card 0")
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("\t\t%q", fmt.Sprintf("Card %d", i)))
		want = append(want, fmt.Sprintf("Card %d", i))
	}

	blocks := parseTierBlocks(lines)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if diff := cmp.Diff(want, blocks[0].Cards); diff != "" {
		t.Errorf("continuation cards mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTierBlocksQuotedLineAfterUnrelatedProperty(t *testing.T) {
	lines := []string{
		"Show # $type->divination $tier->t3",
		`	BaseType == "The Cartographer"`,
		`	SetFontSize 45`,
		`	"The Wretched"`, // not a continuation anymore
	}

	blocks := parseTierBlocks(lines)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	want := []string{"The Cartographer"}
	if diff := cmp.Diff(want, blocks[0].Cards); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}
}

// Some filter generators emit two BaseType lines in one block; both belong
// to the same block.
func TestParseTierBlocksTwoBaseTypeLines(t *testing.T) {
	lines := []string{
		"Show # $type->divination $tier->t2",
		`	BaseType == "The Nurse"`,
		`	BaseType == "The Fiend"`,
	}

	blocks := parseTierBlocks(lines)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	want := []string{"The Nurse", "The Fiend"}
	if diff := cmp.Diff(want, blocks[0].Cards); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTierBlocksIgnoredTierKeepsNoRarity(t *testing.T) {
	lines := []string{
		"Show # $type->divination $tier->exstack",
		`	BaseType == "Rain of Chaos"`,
	}

	blocks := parseTierBlocks(lines)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Rarity != RarityNone {
		t.Errorf("exstack block rarity = %d, want RarityNone", blocks[0].Rarity)
	}
	if len(blocks[0].Cards) != 1 {
		t.Errorf("exstack block cards = %q, names are still collected", blocks[0].Cards)
	}
}

func TestParseTierBlocksUnterminatedBlockEmittedAtEOF(t *testing.T) {
	lines := []string{
		"Show # $type->divination $tier->t5c",
		`	BaseType == "The Hermit"`,
		// no trailing blank line
	}

	blocks := parseTierBlocks(lines)
	if len(blocks) != 1 || len(blocks[0].Cards) != 1 {
		t.Fatalf("open block not emitted at EOF: %+v", blocks)
	}
}

func TestParseTierBlocksUntaggedLinesIgnored(t *testing.T) {
	lines := []string{
		"# some comment",
		"Show", // untagged rule block, not a divination tier block
		`	BaseType == "Maze of the Minotaur"`,
	}

	if blocks := parseTierBlocks(lines); len(blocks) != 0 {
		t.Errorf("got %d blocks from untagged rules, want 0", len(blocks))
	}
}

func TestExtractCardNames(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"operator form", `	BaseType == "The Doctor" "House of Mirrors"`, []string{"The Doctor", "House of Mirrors"}},
		{"bare form", `	BaseType "Rain of Chaos"`, []string{"Rain of Chaos"}},
		{"internal whitespace trimmed", `" The Hermit  "`, []string{"The Hermit"}},
		{"empty quotes skipped", `"" "The Fiend" "   "`, []string{"The Fiend"}},
		{"no names", `SetFontSize 45`, nil},
		{"empty line", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, extractCardNames(tt.line)); diff != "" {
				t.Errorf("extractCardNames(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

// Repeated calls must not leak matching state into each other.
func TestExtractCardNamesIsSelfContained(t *testing.T) {
	line := `	BaseType == "The Doctor" "House of Mirrors"`
	first := extractCardNames(line)
	second := extractCardNames(line)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second call differs from first (-first +second):\n%s", diff)
	}
}

func TestBuildRarityMap(t *testing.T) {
	blocks := []TierBlock{
		{Tier: "t5", Rarity: RarityCommon, Cards: []string{"The Union", "The Hermit"}},
		{Tier: "t1", Rarity: RarityTop, Cards: []string{"The Union"}},
		{Tier: "exstack", Rarity: RarityNone, Cards: []string{"Stacked Deck Only"}},
	}

	rarities := buildRarityMap(blocks)
	if rarities["The Union"] != RarityTop {
		t.Errorf("The Union = %d, want %d (rarest wins)", rarities["The Union"], RarityTop)
	}
	if rarities["The Hermit"] != RarityCommon {
		t.Errorf("The Hermit = %d, want %d", rarities["The Hermit"], RarityCommon)
	}
	if _, ok := rarities["Stacked Deck Only"]; ok {
		t.Error("card reachable only through an ignored tier must not be mapped")
	}
}

func TestBuildRarityMapNeverUpgrades(t *testing.T) {
	forward := buildRarityMap([]TierBlock{
		{Tier: "t5", Rarity: RarityCommon, Cards: []string{"The Union"}},
		{Tier: "t1", Rarity: RarityTop, Cards: []string{"The Union"}},
	})
	backward := buildRarityMap([]TierBlock{
		{Tier: "t1", Rarity: RarityTop, Cards: []string{"The Union"}},
		{Tier: "t5", Rarity: RarityCommon, Cards: []string{"The Union"}},
	})

	if forward["The Union"] != RarityTop || backward["The Union"] != RarityTop {
		t.Errorf("order dependence: forward=%d backward=%d, want both %d",
			forward["The Union"], backward["The Union"], RarityTop)
	}
}
