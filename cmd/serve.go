package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lasosearch/lasso/internal/places"
	"github.com/lasosearch/lasso/internal/server"
	"github.com/lasosearch/lasso/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lasso API and front-end server",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		client := places.NewClient(places.Options{
			BaseURL:           cfg.Places.BaseURL,
			APIKey:            cfg.Places.Key,
			RequestsPerSecond: cfg.Places.RatePerSec,
			PageConcurrency:   cfg.Places.MaxConcurrency,
			Timeout:           time.Duration(cfg.Places.TimeoutSecs) * time.Second,
		})

		var proxy *server.TileProxy
		if cfg.Tiles.UpstreamURL != "" {
			cache := server.NewTileCache(cfg.Tiles.CacheSize, time.Duration(cfg.Tiles.CacheTTLMins)*time.Minute)
			proxy = server.NewTileProxy(cfg.Tiles.UpstreamURL, cfg.Tiles.Format, cache)
		}

		srv := server.New(st, client, server.Options{
			StaticDir:      cfg.Server.StaticDir,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			TileSize:       cfg.Map.TileSize,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           srv.Router(proxy),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = httpSrv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("store", cfg.Store.Driver),
			zap.String("static_dir", cfg.Server.StaticDir),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
