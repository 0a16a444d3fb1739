package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/squareblocks/backend/config"
	"github.com/squareblocks/backend/migration"
	"github.com/squareblocks/backend/pkg/authenticator"
	"github.com/squareblocks/backend/pkg/logger"
	"github.com/squareblocks/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context backed by a fresh in-memory database with
// all migrations applied.
func MockContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine("secret"))
	ctx = xcontext.WithDB(ctx, db)

	require.NoError(t, migration.Migrate(ctx))

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Feed: config.FeedConfigs{
			BaseURL:      "http://localhost",
			PollInterval: time.Minute,
			Leagues: []config.LeagueConfigs{
				{League: "nfl", Sport: "football"},
			},
		},
		Blocks: config.BlocksConfigs{
			DefaultGridSize:      10,
			MaxGridSize:          10,
			DefaultPricePerBlock: 10,
			DefaultPrizeTotal:    500,
			RandomizeAxes:        false,
			GridCacheTTL:         time.Minute,
		},
	}
}
