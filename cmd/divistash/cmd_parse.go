package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"divistash/internal/filter"
)

var (
	parsePersist  bool
	parseFilterID string
)

// parseCmd parses a loot filter and reports the divination card rarities.
var parseCmd = &cobra.Command{
	Use:   "parse [filter-file]",
	Short: "Parse a loot filter's divination card section",
	Long: `Parses the divination card section of a loot filter file and prints
the card -> rarity classification. With --persist the result is written to
the local cache under the configured filter id.

A filter without a divination card section (or an unreadable file) yields
an empty result rather than an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parsePersist, "persist", false, "store the rarity map in the local cache")
	parseCmd.Flags().StringVar(&parseFilterID, "filter-id", "", "filter id to store under (defaults to config)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := cfg.Filter.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no filter file given and filter.path not configured")
	}

	result := filter.ParseFile(path)
	logger.Debug("filter parsed",
		zap.String("path", path),
		zap.Bool("has_section", result.HasDivinationSection),
		zap.Int("cards", result.TotalCards))

	if !result.HasDivinationSection {
		fmt.Println("no divination card section found")
		return nil
	}

	fmt.Printf("divination cards: %d\n", result.TotalCards)
	cards := make([]string, 0, len(result.CardRarities))
	for card := range result.CardRarities {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	for _, card := range cards {
		fmt.Printf("  [%d] %s\n", result.CardRarities[card], card)
	}

	if !parsePersist {
		return nil
	}

	filterID := parseFilterID
	if filterID == "" {
		filterID = cfg.Filter.FilterID
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveFilterRarities(filterID, result.CardRarities); err != nil {
		return err
	}
	logger.Info("filter rarities stored",
		zap.String("filter_id", filterID), zap.Int("cards", result.TotalCards))
	return nil
}
