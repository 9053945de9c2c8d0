package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"divistash/internal/league"
)

// leaguesCmd lists the current leagues, from cache when fresh.
var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List game leagues (cached)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		client := league.NewClient(cfg.API.LeaguesURL, cfg.API.UserAgent, cfg.APITimeout())
		svc := league.NewService(client, st, cfg.LeagueTTL(), logger)

		leagues, err := svc.Leagues(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list leagues: %w", err)
		}

		for _, l := range leagues {
			fmt.Printf("%s\t%s\n", l.ID, l.Realm)
		}
		return nil
	},
}
