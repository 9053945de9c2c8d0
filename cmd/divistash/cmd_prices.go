package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"divistash/internal/prices"
	"divistash/internal/rarity"
	"divistash/internal/store"
)

var pricesCached bool

// pricesCmd fetches (or prints) a card price snapshot for a league.
var pricesCmd = &cobra.Command{
	Use:   "prices [league]",
	Short: "Fetch a divination card price snapshot",
	Long: `Fetches the current divination card price overview for a league and
merges it into the local cache. With --cached the cached snapshot is
printed without touching the network.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrices,
}

func init() {
	pricesCmd.Flags().BoolVar(&pricesCached, "cached", false, "print the cached snapshot only")
}

func runPrices(cmd *cobra.Command, args []string) error {
	leagueID := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	client := prices.NewClient(cfg.API.PricesURL, cfg.API.UserAgent, cfg.APITimeout())
	svc := prices.NewService(client, st, logger)

	var rows []store.CardPrice
	if pricesCached {
		rows, err = svc.Cached(leagueID)
	} else {
		rows, err = svc.Snapshot(cmd.Context(), leagueID)
	}
	if err != nil {
		return err
	}

	thresholds := rarity.Thresholds{
		Top:  cfg.Filter.Thresholds.Top,
		High: cfg.Filter.Thresholds.High,
		Mid:  cfg.Filter.Thresholds.Mid,
	}
	for _, p := range rows {
		fmt.Printf("  [%d] %-30s %8.1fc (%d listings)\n",
			rarity.FromChaos(p.ChaosValue, thresholds), p.Card, p.ChaosValue, p.ListingCount)
	}
	fmt.Printf("%d cards\n", len(rows))
	return nil
}
