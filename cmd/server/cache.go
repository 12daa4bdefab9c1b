package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/platform/db"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache maintenance",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cache rows that expired more than --older-than ago",
	RunE: func(cmd *cobra.Command, args []string) error {
		grace, _ := cmd.Flags().GetDuration("older-than")
		if !cmd.Flags().Changed("older-than") {
			grace = cfg.Cache.PruneGrace
		}

		gdb, err := di.OpenDB(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		store := di.NewCacheStore(cfg.DB.Driver, gdb, nil)
		engine := di.NewEngine(store, cfg.Cache)
		n, err := engine.Prune(cmd.Context(), engine.Now().Add(-grace))
		if err != nil {
			return fmt.Errorf("prune: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d cache rows\n", n)
		return nil
	},
}

func init() {
	cachePruneCmd.Flags().Duration("older-than", 24*time.Hour, "prune rows expired longer ago than this (default: cache.prune_grace)")
	cacheCmd.AddCommand(cachePruneCmd)
}
