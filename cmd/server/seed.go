package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stock_dashboard/internal/app/di"
	watchlistadapters "stock_dashboard/internal/feature/watchlist/adapters"
	watchlistusecase "stock_dashboard/internal/feature/watchlist/usecase"
	"stock_dashboard/internal/platform/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the default watchlist (adds missing symbols, reactivates removed ones)",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := di.OpenDB(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		// 既存の銘柄確認は不要なので QuoteFinder は渡さない
		uc := watchlistusecase.NewWatchlistUsecase(watchlistadapters.NewStockRepository(gdb), nil)
		n, err := uc.SeedDefaults(cmd.Context())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seed completed: %d symbols added or reactivated\n", n)
		return nil
	},
}
