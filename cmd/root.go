package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lasosearch/lasso/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lasso",
	Short: "Draw-a-polygon place search backend",
	Long:  "Serves the lasso map app: freehand polygon geometry, viewport fitting, place search within drawn boundaries, and preset area management.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
