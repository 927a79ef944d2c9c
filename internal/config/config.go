package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Geocoding provider A is keyed and optional: with no key configured the
	// chain starts at the keyless provider.
	GoogleGeocodingAPIKey string `mapstructure:"GOOGLE_GEOCODING_API_KEY"`
	NominatimBaseURL      string `mapstructure:"NOMINATIM_BASE_URL"`
	NominatimUserAgent    string `mapstructure:"NOMINATIM_USER_AGENT"`
	OSRMBaseURL           string `mapstructure:"OSRM_BASE_URL"`

	// Timeout on every outbound HTTP call; the upstream behavior set none.
	HTTPTimeoutSeconds int `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Operational hub used as the reference point for area validation.
	HubLat          float64 `mapstructure:"HUB_LAT"`
	HubLng          float64 `mapstructure:"HUB_LNG"`
	HubLabel        string  `mapstructure:"HUB_LABEL"`
	ServiceRadiusKm float64 `mapstructure:"SERVICE_RADIUS_KM"`

	GeocodeCacheTTLSeconds int `mapstructure:"GEOCODE_CACHE_TTL_SECONDS"`
	// Fixed-window budget for the keyless geocoding provider, per its usage
	// policy. Enforced only when Redis is configured.
	NominatimWindowLimit   int `mapstructure:"NOMINATIM_WINDOW_LIMIT"`
	NominatimWindowSeconds int `mapstructure:"NOMINATIM_WINDOW_SECONDS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CLIENT_ORIGIN", "*")
	viper.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("NOMINATIM_USER_AGENT", "storefront-delivery/1.0")
	viper.SetDefault("OSRM_BASE_URL", "https://router.project-osrm.org")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 8)
	viper.SetDefault("HUB_LAT", 14.9746)
	viper.SetDefault("HUB_LNG", 120.5282)
	viper.SetDefault("HUB_LABEL", "Bacolor Town Center")
	viper.SetDefault("SERVICE_RADIUS_KM", 15)
	viper.SetDefault("GEOCODE_CACHE_TTL_SECONDS", 3600)
	viper.SetDefault("NOMINATIM_WINDOW_LIMIT", 60)
	viper.SetDefault("NOMINATIM_WINDOW_SECONDS", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("REDIS_DB", 0)

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if key := os.Getenv("GOOGLE_GEOCODING_API_KEY"); key != "" {
		cfg.GoogleGeocodingAPIKey = key
	}

	return &cfg, nil
}
