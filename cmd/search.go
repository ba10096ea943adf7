package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lasosearch/lasso/internal/places"
)

var searchCmd = &cobra.Command{
	Use:   "search <polygon.geojson>",
	Short: "Search for places inside a drawn polygon",
	Long: `Queries the places provider with the polygon's bounding circle, then
filters results to the exact boundary (with a small edge tolerance).
Use "-" to read the polygon from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ring, err := readRing(args[0])
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		limit, _ := cmd.Flags().GetInt("limit")
		sortBy, _ := cmd.Flags().GetString("sort")
		asJSON, _ := cmd.Flags().GetBool("json")

		client := places.NewClient(places.Options{
			BaseURL:           cfg.Places.BaseURL,
			APIKey:            cfg.Places.Key,
			RequestsPerSecond: cfg.Places.RatePerSec,
			PageConcurrency:   cfg.Places.MaxConcurrency,
			Timeout:           time.Duration(cfg.Places.TimeoutSecs) * time.Second,
		})

		circle := ring.BoundingCircle()
		zap.L().Debug("searching",
			zap.Float64("center_lat", circle.Center.Lat),
			zap.Float64("center_lng", circle.Center.Lng),
			zap.Float64("radius_m", circle.Radius),
		)

		results, err := client.SearchCircle(ctx, circle, places.SearchOptions{
			Category: category,
			Limit:    limit,
		})
		if err != nil {
			return err
		}

		filtered := places.FilterRing(results, ring)
		switch sortBy {
		case "name":
			places.SortByName(filtered)
		case "rating":
			places.SortByRating(filtered)
		case "distance":
			places.SortByDistance(filtered, circle.Center)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(filtered)
		}

		fmt.Printf("%d places inside polygon (%.0f m², %d candidates in circle)\n",
			len(filtered), ring.Area(), len(results))
		for _, p := range filtered {
			line := p.Name
			if p.Category != "" {
				line += "  [" + p.Category + "]"
			}
			if p.Rating > 0 {
				line += fmt.Sprintf("  %.1f", p.Rating)
			}
			fmt.Println("  " + line)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().String("category", "", "filter by provider category")
	searchCmd.Flags().Int("limit", 0, "cap total results (0 = provider default)")
	searchCmd.Flags().String("sort", "", "sort order: name, rating, or distance")
	searchCmd.Flags().Bool("json", false, "print results as JSON")
	rootCmd.AddCommand(searchCmd)
}
