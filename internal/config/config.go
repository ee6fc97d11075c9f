package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all application settings, read from app.env or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	DBSource      string `mapstructure:"DB_SOURCE"`

	PlacesAPIKey  string        `mapstructure:"PLACES_API_KEY"`
	PlacesBaseURL string        `mapstructure:"PLACES_BASE_URL"`
	PlacesTimeout time.Duration `mapstructure:"PLACES_TIMEOUT"`

	NearbyCacheTTL      time.Duration `mapstructure:"NEARBY_CACHE_TTL"`
	NearbyCacheSize     int           `mapstructure:"NEARBY_CACHE_SIZE"`
	DetailsCacheTTL     time.Duration `mapstructure:"DETAILS_CACHE_TTL"`
	DetailsCacheSize    int           `mapstructure:"DETAILS_CACHE_SIZE"`
	ReviewsCacheTTL     time.Duration `mapstructure:"REVIEWS_CACHE_TTL"`
	ReviewsCacheSize    int           `mapstructure:"REVIEWS_CACHE_SIZE"`
	TextSearchCacheTTL  time.Duration `mapstructure:"TEXTSEARCH_CACHE_TTL"`
	TextSearchCacheSize int           `mapstructure:"TEXTSEARCH_CACHE_SIZE"`
}

// LoadConfig reads configuration from the app.env file in path, with
// environment variables taking precedence. A missing file is not an error so
// the service can run on env vars alone.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api")
	viper.SetDefault("PLACES_TIMEOUT", "5s")
	viper.SetDefault("NEARBY_CACHE_TTL", "6h")
	viper.SetDefault("NEARBY_CACHE_SIZE", 5000)
	viper.SetDefault("DETAILS_CACHE_TTL", "6h")
	viper.SetDefault("DETAILS_CACHE_SIZE", 5000)
	viper.SetDefault("REVIEWS_CACHE_TTL", "6h")
	viper.SetDefault("REVIEWS_CACHE_SIZE", 5000)
	viper.SetDefault("TEXTSEARCH_CACHE_TTL", "6h")
	viper.SetDefault("TEXTSEARCH_CACHE_SIZE", 5000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
