package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/lasosearch/lasso/internal/viewport"
)

var fitCmd = &cobra.Command{
	Use:   "fit <polygon.geojson>",
	Short: "Compute the camera pose that frames a polygon",
	Long: `Reads a GeoJSON Polygon and prints the center and fractional zoom that
fit it inside the given canvas, honoring per-edge padding and an optional
bottom results panel. Use "-" to read the polygon from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ring, err := readRing(args[0])
		if err != nil {
			return err
		}

		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")
		padding, _ := cmd.Flags().GetFloat64("padding")
		panel, _ := cmd.Flags().GetFloat64("panel")
		refZoom, _ := cmd.Flags().GetFloat64("ref-zoom")
		floor, _ := cmd.Flags().GetFloat64("draw-zoom-floor")

		if padding == 0 {
			padding = cfg.Map.PaddingPx
		}
		if panel == 0 {
			panel = cfg.Map.PanelPx
		}
		if refZoom == 0 {
			refZoom = cfg.Map.RefZoom
		}

		pad := viewport.Uniform(padding)
		pad.Bottom += panel

		proj := viewport.NewMercator(cfg.Map.TileSize)
		pose := viewport.Fit(proj, ring, viewport.Size{Width: width, Height: height}, refZoom, pad)
		if cmd.Flags().Changed("draw-zoom-floor") {
			pose.Zoom = viewport.ClampToDrawContext(pose.Zoom, floor)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pose)
	},
}

func init() {
	fitCmd.Flags().Float64("width", 1280, "canvas width in pixels")
	fitCmd.Flags().Float64("height", 800, "canvas height in pixels")
	fitCmd.Flags().Float64("padding", 0, "uniform padding in pixels (default from config)")
	fitCmd.Flags().Float64("panel", 0, "bottom panel height in pixels (default from config)")
	fitCmd.Flags().Float64("ref-zoom", 0, "reference zoom for projection (default from config)")
	fitCmd.Flags().Float64("draw-zoom-floor", 0, "clamp the result into [floor, floor+1)")
	rootCmd.AddCommand(fitCmd)
}
