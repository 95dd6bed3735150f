package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	DBPath        string
	BlocksFile    string
	CropsFile     string
	DefaultYear   int
	DefaultWeek   int
	SessionTTL    time.Duration
	RangeSingular string
	RangePlural   string
	RangeThrough  string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function, falling back to defaults
// for empty or malformed values.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		v := getenv(k)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("[cfg] %s=%q is not a number, using %d", k, v, def)
			return def
		}
		return n
	}
	getDur := func(k string, def time.Duration) time.Duration {
		v := getenv(k)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("[cfg] %s=%q is not a duration, using %s", k, v, def)
			return def
		}
		return d
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		DBPath:        get("DB_PATH", "estufas.db"),
		BlocksFile:    get("BLOCKS_FILE", ""),
		CropsFile:     get("CROPS_FILE", ""),
		DefaultYear:   getInt("DEFAULT_YEAR", 2025),
		DefaultWeek:   getInt("DEFAULT_WEEK", 48),
		SessionTTL:    getDur("SESSION_TTL", 12*time.Hour),
		RangeSingular: get("RANGE_SINGULAR", "Nave"),
		RangePlural:   get("RANGE_PLURAL", "Naves"),
		RangeThrough:  get("RANGE_THROUGH", "a"),
	}
	if cfg.DefaultWeek < 1 || cfg.DefaultWeek > 53 {
		log.Printf("[cfg] DEFAULT_WEEK=%d outside 1..53, using 48", cfg.DefaultWeek)
		cfg.DefaultWeek = 48
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
