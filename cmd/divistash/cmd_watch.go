package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"divistash/internal/filter"
	"divistash/internal/watch"
)

// watchCmd keeps the cached rarity map in sync with the filter file.
var watchCmd = &cobra.Command{
	Use:   "watch [filter-file]",
	Short: "Watch a loot filter and keep the cached rarities in sync",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Filter.Path
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no filter file given and filter.path not configured")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		filterID := cfg.Filter.FilterID
		persist := func(result filter.Result) {
			if !result.HasDivinationSection {
				logger.Warn("filter has no divination section, cache left untouched")
				return
			}
			if err := st.SaveFilterRarities(filterID, result.CardRarities); err != nil {
				logger.Error("failed to store rarities", zap.Error(err))
			}
		}

		// Seed the cache before waiting for changes.
		persist(filter.ParseFile(path))

		w, err := watch.New(path, logger, persist)
		if err != nil {
			return err
		}
		if err := w.Start(cmd.Context()); err != nil {
			return err
		}
		defer w.Stop()

		fmt.Printf("watching %s (filter id %q), Ctrl-C to stop\n", path, filterID)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		return nil
	},
}
