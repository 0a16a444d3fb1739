package main

import (
	"net/http"

	"github.com/squareblocks/backend/internal/middleware"
	"github.com/squareblocks/backend/pkg/router"
	"github.com/squareblocks/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadTokenEngine()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	apiServer := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    apiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.WithAuth())

	// Public API.
	router.GET(s.router, "/getSportsEvent", s.sportsEventDomain.Get)
	router.GET(s.router, "/getListSportsEvent", s.sportsEventDomain.GetList)
	router.GET(s.router, "/getBlocksGame", s.blocksGameDomain.Get)
	router.GET(s.router, "/getListBlocksGame", s.blocksGameDomain.GetList)
	router.GET(s.router, "/getGrid", s.blocksGameDomain.GetGrid)
	router.GET(s.router, "/getWinners", s.settlementDomain.GetWinners)

	// These following APIs need authentication.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.MustAuth())
	{
		router.POST(authRouter, "/purchaseBlocks", s.blocksGameDomain.Purchase)
		router.GET(authRouter, "/getMyWinners", s.settlementDomain.GetMyWinners)
		router.GET(authRouter, "/getBalance", s.userDomain.GetBalance)
		router.GET(authRouter, "/getMyTransactions", s.userDomain.GetMyTransactions)
		router.POST(authRouter, "/deposit", s.userDomain.Deposit)
		router.POST(authRouter, "/withdraw", s.userDomain.Withdraw)
	}

	// Admin API.
	adminRouter := s.router.Branch()
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.POST(adminRouter, "/createBlocksGame", s.blocksGameDomain.Create)
		router.POST(adminRouter, "/lockBlocksGame", s.blocksGameDomain.Lock)
		router.POST(adminRouter, "/settleBoundary", s.settlementDomain.Settle)
		router.POST(adminRouter, "/createPromoCode", s.promoCodeDomain.Create)
	}
}
