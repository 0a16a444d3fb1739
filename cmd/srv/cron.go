package main

import (
	"github.com/squareblocks/backend/internal/domain/cron"
	"github.com/squareblocks/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadScoreboardClient()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Start(s.ctx,
		cron.NewPollScoresCronJob(
			s.scoreboardClient, s.sportsEventRepo, s.blocksGameRepo,
			s.blocksGameDomain, s.settlementDomain,
			xcontext.Configs(s.ctx).Feed.PollInterval),
	)

	return nil
}
