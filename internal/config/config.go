// README: Config loader with env defaults for HTTP, DB, Redis, routing, and dispatch settings.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DispatchConfig struct {
	// TriggerThreshold is the pending-request count that starts a clustering run.
	TriggerThreshold int
	// BuildParallelism bounds concurrent route-builder calls per run.
	BuildParallelism int
}

type RoutingConfig struct {
	// Provider selects the road-routing backend: "ors", "google", or "none".
	Provider         string
	ORSKey           string
	ORSBaseURL       string
	GoogleKey        string
	Timeout          time.Duration
	FallbackSpeedKmh float64
}

type FeedConfig struct {
	// URL of the authoritative active-routes feed; empty disables polling.
	URL      string
	Interval time.Duration
	Timeout  time.Duration
	// RetireAfter is how many consecutive polls a key may be absent from
	// the feed before its route is retired from the published view.
	RetireAfter int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN for the request archive; empty disables archiving.
		DSN string
	}
	Redis struct {
		// Addr of the Redis used for fleet tracking; empty disables it.
		Addr string
	}
	Dispatch DispatchConfig
	Routing  RoutingConfig
	Feed     FeedConfig
}

func Load() (Config, error) {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("LM_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("LM_DB_DSN")
	cfg.Redis.Addr = os.Getenv("LM_REDIS_ADDR")

	cfg.Dispatch.TriggerThreshold = envOrDefaultInt("LM_DISPATCH_THRESHOLD", 3)
	cfg.Dispatch.BuildParallelism = envOrDefaultInt("LM_DISPATCH_PARALLELISM", 4)

	cfg.Routing.Provider = envOrDefault("LM_ROUTING_PROVIDER", "none")
	cfg.Routing.ORSKey = os.Getenv("LM_ORS_API_KEY")
	cfg.Routing.ORSBaseURL = envOrDefault("LM_ORS_BASE_URL", "https://api.openrouteservice.org")
	cfg.Routing.GoogleKey = os.Getenv("LM_GOOGLE_MAPS_KEY")
	cfg.Routing.Timeout = time.Duration(envOrDefaultInt("LM_ROUTING_TIMEOUT_SECONDS", 5)) * time.Second
	cfg.Routing.FallbackSpeedKmh = envOrDefaultFloat("LM_FALLBACK_SPEED_KMH", 45.0)

	cfg.Feed.URL = os.Getenv("LM_FEED_URL")
	cfg.Feed.Interval = time.Duration(envOrDefaultInt("LM_FEED_INTERVAL_SECONDS", 4)) * time.Second
	cfg.Feed.Timeout = time.Duration(envOrDefaultInt("LM_FEED_TIMEOUT_SECONDS", 3)) * time.Second
	cfg.Feed.RetireAfter = envOrDefaultInt("LM_FEED_RETIRE_AFTER", 2)

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
