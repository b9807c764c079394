package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                  string
	DatabaseURL          string
	RedisURL             string
	StoreTimeout         time.Duration // upper bound for a single unit of work against the store
	BalanceCacheTTL      time.Duration
	DistributionInterval time.Duration
	SweepInterval        time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL_DEV")
	}

	return &Config{
		Env:                  env,
		DatabaseURL:          dbURL,
		RedisURL:             viper.GetString("REDIS_URL"),
		StoreTimeout:         msOrDefault("STORE_TIMEOUT_MS", 5000),
		BalanceCacheTTL:      msOrDefault("BALANCE_CACHE_TTL_MS", 30000),
		DistributionInterval: minOrDefault("DISTRIBUTION_INTERVAL_MIN", 24*60),
		SweepInterval:        minOrDefault("SWEEP_INTERVAL_MIN", 15),
	}, nil
}

func msOrDefault(key string, def int64) time.Duration {
	v := viper.GetInt64(key)
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Millisecond
}

func minOrDefault(key string, def int64) time.Duration {
	v := viper.GetInt64(key)
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Minute
}
