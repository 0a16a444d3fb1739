package main

import (
	"context"
	"net/http"

	"github.com/squareblocks/backend/internal/client"
	"github.com/squareblocks/backend/internal/domain"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/migration"
	"github.com/squareblocks/backend/pkg/authenticator"
	"github.com/squareblocks/backend/pkg/logger"
	"github.com/squareblocks/backend/pkg/router"
	"github.com/squareblocks/backend/pkg/xcontext"
	"github.com/squareblocks/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo        repository.UserRepository
	sportsEventRepo repository.SportsEventRepository
	blocksGameRepo  repository.BlocksGameRepository
	blockRepo       repository.BlockRepository
	winnerRepo      repository.WinnerRepository
	transactionRepo repository.TransactionRepository
	promoCodeRepo   repository.PromoCodeRepository

	blocksGameDomain  domain.BlocksGameDomain
	settlementDomain  domain.SettlementDomain
	sportsEventDomain domain.SportsEventDomain
	userDomain        domain.UserDomain
	promoCodeDomain   domain.PromoCodeDomain

	redisClient      xredis.Client
	scoreboardClient client.ScoreboardClient

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	level := logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadTokenEngine() {
	secret := xcontext.Configs(s.ctx).Auth.TokenSecret
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(secret))
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, caching is disabled: %v", err)
		return
	}

	s.redisClient = redisClient
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.sportsEventRepo = repository.NewSportsEventRepository()
	s.blocksGameRepo = repository.NewBlocksGameRepository()
	s.blockRepo = repository.NewBlockRepository()
	s.winnerRepo = repository.NewWinnerRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.promoCodeRepo = repository.NewPromoCodeRepository()
}

func (s *srv) loadDomains() {
	s.blocksGameDomain = domain.NewBlocksGameDomain(
		s.blocksGameRepo, s.blockRepo, s.sportsEventRepo, s.transactionRepo,
		s.promoCodeRepo, s.userRepo, s.redisClient)
	s.settlementDomain = domain.NewSettlementDomain(
		s.blocksGameRepo, s.blockRepo, s.winnerRepo, s.transactionRepo,
		s.userRepo, s.redisClient)
	s.sportsEventDomain = domain.NewSportsEventDomain(s.sportsEventRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.transactionRepo)
	s.promoCodeDomain = domain.NewPromoCodeDomain(s.promoCodeRepo)
}

func (s *srv) loadScoreboardClient() {
	s.scoreboardClient = client.NewScoreboardClient()
}
