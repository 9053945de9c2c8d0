package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"divistash/internal/league"
	"divistash/internal/prices"
)

// refreshCmd refreshes the league list and a league's price snapshot in one
// shot, fetching both concurrently.
var refreshCmd = &cobra.Command{
	Use:   "refresh [league]",
	Short: "Refresh league list and price snapshot together",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		leagueID := args[0]
		runID := uuid.NewString()
		log := logger.With(zap.String("run_id", runID))

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		leagueSvc := league.NewService(
			league.NewClient(cfg.API.LeaguesURL, cfg.API.UserAgent, cfg.APITimeout()),
			st, cfg.LeagueTTL(), log)
		priceSvc := prices.NewService(
			prices.NewClient(cfg.API.PricesURL, cfg.API.UserAgent, cfg.APITimeout()),
			st, log)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			_, err := leagueSvc.Leagues(ctx)
			return err
		})
		g.Go(func() error {
			_, err := priceSvc.Snapshot(ctx, leagueID)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		stats, err := st.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("refreshed: %d leagues, %d cached prices\n",
			stats["leagues"], stats["card_prices"])
		return nil
	},
}
