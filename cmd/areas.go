package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lasosearch/lasso/internal/areas"
	"github.com/lasosearch/lasso/internal/store"
)

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Manage preset search areas",
}

var areasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored preset areas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		list, err := st.ListAreas(ctx)
		if err != nil {
			return err
		}

		if len(list) == 0 {
			fmt.Println("no preset areas stored")
			return nil
		}
		for _, a := range list {
			fmt.Printf("%-30s %3d vertices  %12.0f m²\n", a.Name, a.Ring.DistinctVertices(), a.Ring.Area())
		}
		return nil
	},
}

var areasLoadCmd = &cobra.Command{
	Use:   "load <boundaries.shp>",
	Short: "Import preset areas from a shapefile",
	Long: `Reads polygons from a shapefile and upserts each exterior ring as a named
preset area. The attribute named by --name-field supplies the area name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		nameField, _ := cmd.Flags().GetString("name-field")

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		loader := areas.NewLoader(st)
		n, err := loader.Load(ctx, args[0], nameField)
		if err != nil {
			return err
		}

		zap.L().Info("loaded preset areas", zap.Int("count", n), zap.String("shapefile", args[0]))
		fmt.Printf("loaded %d areas from %s\n", n, args[0])
		return nil
	},
}

func init() {
	areasLoadCmd.Flags().String("name-field", "NAME", "shapefile attribute holding the area name")
	areasCmd.AddCommand(areasListCmd)
	areasCmd.AddCommand(areasLoadCmd)
	rootCmd.AddCommand(areasCmd)
}
