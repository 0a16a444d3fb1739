package main

import (
	"os"
	"strconv"
	"time"

	"github.com/squareblocks/backend/config"
	"github.com/squareblocks/backend/pkg/xcontext"
)

func (s *srv) loadConfig() {
	configs := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "squareblocks"),
			User:     getEnv("MYSQL_USER", "squareblocks"),
			Password: getEnv("MYSQL_PASSWORD", "squareblocks"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("API_HOST", ""),
			Port: getEnv("API_PORT", "8080"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", time.Hour*24),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Feed: config.FeedConfigs{
			BaseURL:      getEnv("FEED_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports"),
			PollInterval: getEnvDuration("FEED_POLL_INTERVAL", time.Minute),
			LeaguesFile:  getEnv("FEED_LEAGUES_FILE", ""),
		},
		Blocks: config.BlocksConfigs{
			DefaultGridSize:      getEnvInt("BLOCKS_DEFAULT_GRID_SIZE", 10),
			MaxGridSize:          getEnvInt("BLOCKS_MAX_GRID_SIZE", 10),
			DefaultPricePerBlock: getEnvFloat("BLOCKS_DEFAULT_PRICE", 10),
			DefaultPrizeTotal:    getEnvFloat("BLOCKS_DEFAULT_PRIZE_TOTAL", 500),
			RandomizeAxes:        getEnvBool("BLOCKS_RANDOMIZE_AXES", true),
			GridCacheTTL:         getEnvDuration("BLOCKS_GRID_CACHE_TTL", 10*time.Second),
		},
	}

	if err := configs.Feed.LoadLeagues(); err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(s.ctx, configs)
}

func getEnv(key, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return def
}

func getEnvInt(key string, def int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}

	return def
}

func getEnvFloat(key string, def float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}

	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return def
}
