package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Places PlacesConfig `yaml:"places" mapstructure:"places"`
	Tiles  TilesConfig  `yaml:"tiles" mapstructure:"tiles"`
	Map    MapConfig    `yaml:"map" mapstructure:"map"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// PlacesConfig holds places provider API settings.
type PlacesConfig struct {
	Key            string  `yaml:"key" mapstructure:"key"`
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	RatePerSec     float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	MaxConcurrency int     `yaml:"max_concurrency" mapstructure:"max_concurrency"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// TilesConfig configures the basemap tile proxy.
type TilesConfig struct {
	UpstreamURL  string `yaml:"upstream_url" mapstructure:"upstream_url"`
	Format       string `yaml:"format" mapstructure:"format"`
	CacheSize    int    `yaml:"cache_size" mapstructure:"cache_size"`
	CacheTTLMins int    `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
}

// MapConfig holds projection and fit defaults shared by the serve and fit
// commands.
type MapConfig struct {
	TileSize  float64 `yaml:"tile_size" mapstructure:"tile_size"`
	RefZoom   float64 `yaml:"ref_zoom" mapstructure:"ref_zoom"`
	PaddingPx float64 `yaml:"padding_px" mapstructure:"padding_px"`
	PanelPx   float64 `yaml:"panel_px" mapstructure:"panel_px"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	StaticDir      string   `yaml:"static_dir" mapstructure:"static_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LASSO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "lasso.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.static_dir", "web")
	v.SetDefault("places.base_url", "https://api.placekit.dev")
	v.SetDefault("places.rate_per_sec", 5)
	v.SetDefault("places.max_concurrency", 4)
	v.SetDefault("places.timeout_secs", 15)
	v.SetDefault("tiles.upstream_url", "https://tile.openstreetmap.org")
	v.SetDefault("tiles.format", "png")
	v.SetDefault("tiles.cache_size", 10000)
	v.SetDefault("tiles.cache_ttl_mins", 60)
	v.SetDefault("map.tile_size", 256)
	v.SetDefault("map.ref_zoom", 15)
	v.SetDefault("map.padding_px", 40)
	v.SetDefault("map.panel_px", 0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
