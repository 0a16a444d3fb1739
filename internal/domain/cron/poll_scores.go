package cron

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/squareblocks/backend/config"
	"github.com/squareblocks/backend/internal/client"
	"github.com/squareblocks/backend/internal/domain"
	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/model"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// PollScoresCronJob drives the whole game lifecycle from the scoreboard
// feed: it mirrors events into the database, locks games when play begins,
// and settles every quarter boundary the feed has passed. All downstream
// operations are idempotent, so a poll observing the same state twice is
// harmless.
type PollScoresCronJob struct {
	scoreboardClient client.ScoreboardClient
	sportsEventRepo  repository.SportsEventRepository
	blocksGameRepo   repository.BlocksGameRepository
	blocksGameDomain domain.BlocksGameDomain
	settlementDomain domain.SettlementDomain
	interval         time.Duration
}

func NewPollScoresCronJob(
	scoreboardClient client.ScoreboardClient,
	sportsEventRepo repository.SportsEventRepository,
	blocksGameRepo repository.BlocksGameRepository,
	blocksGameDomain domain.BlocksGameDomain,
	settlementDomain domain.SettlementDomain,
	interval time.Duration,
) *PollScoresCronJob {
	return &PollScoresCronJob{
		scoreboardClient: scoreboardClient,
		sportsEventRepo:  sportsEventRepo,
		blocksGameRepo:   blocksGameRepo,
		blocksGameDomain: blocksGameDomain,
		settlementDomain: settlementDomain,
		interval:         interval,
	}
}

func (job *PollScoresCronJob) Do(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for _, league := range xcontext.Configs(ctx).Feed.Leagues {
		league := league
		g.Go(func() error {
			// A failing league must not cancel its siblings.
			if err := job.pollLeague(gctx, league); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot poll league %s: %v", league.League, err)
			}

			return nil
		})
	}

	g.Wait()
}

func (job *PollScoresCronJob) RunNow() bool {
	return true
}

func (job *PollScoresCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}

func (job *PollScoresCronJob) pollLeague(ctx context.Context, league config.LeagueConfigs) error {
	events, err := job.scoreboardClient.GetScoreboard(ctx, league.Sport, league.League)
	if err != nil {
		return err
	}

	for i := range events {
		if err := job.syncEvent(ctx, league, &events[i]); err != nil {
			xcontext.Logger(ctx).Errorf(
				"Cannot sync event %s: %v", events[i].ExternalID, err)
		}
	}

	return nil
}

func (job *PollScoresCronJob) syncEvent(
	ctx context.Context, league config.LeagueConfigs, feedEvent *client.FeedEvent,
) error {
	status := convertFeedStatus(feedEvent.Status)

	stored, err := job.sportsEventRepo.GetByExternalID(ctx, feedEvent.ExternalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return job.trackEvent(ctx, league, feedEvent, status)
	}

	if err != nil {
		return err
	}

	err = job.sportsEventRepo.UpdateScore(ctx, stored.ID, repository.ScoreUpdate{
		HomeScore:   feedEvent.HomeScore,
		AwayScore:   feedEvent.AwayScore,
		HomeQuarter: feedEvent.HomeScoreByQuarter,
		AwayQuarter: feedEvent.AwayScoreByQuarter,
		Quarter:     feedEvent.Quarter,
		Clock:       feedEvent.Clock,
		Status:      status,
	})
	if err != nil {
		return err
	}

	if status == entity.SportsEventScheduled {
		return nil
	}

	games, err := job.blocksGameRepo.GetBySportsEventID(ctx, stored.ID)
	if err != nil {
		return err
	}

	for i := range games {
		job.advanceGame(ctx, &games[i], feedEvent, status)
	}

	return nil
}

// trackEvent mirrors a newly seen feed event and opens the default public
// blocks game for it, owned by the system account. Events first observed
// mid-play get no game; there is nothing meaningful to sell.
func (job *PollScoresCronJob) trackEvent(
	ctx context.Context,
	league config.LeagueConfigs,
	feedEvent *client.FeedEvent,
	status entity.SportsEventStatus,
) error {
	event := &entity.SportsEvent{
		Base:           entity.Base{ID: uuid.NewString()},
		ExternalID:     feedEvent.ExternalID,
		Sport:          league.Sport,
		League:         league.League,
		Name:           feedEvent.Name,
		HomeTeamName:   feedEvent.HomeTeamName,
		HomeTeamAbbr:   feedEvent.HomeTeamAbbr,
		HomeTeamRecord: feedEvent.HomeTeamRecord,
		HomeTeamColor:  feedEvent.HomeTeamColor,
		HomeTeamLogo:   feedEvent.HomeTeamLogo,
		AwayTeamName:   feedEvent.AwayTeamName,
		AwayTeamAbbr:   feedEvent.AwayTeamAbbr,
		AwayTeamRecord: feedEvent.AwayTeamRecord,
		AwayTeamColor:  feedEvent.AwayTeamColor,
		AwayTeamLogo:   feedEvent.AwayTeamLogo,
		HomeScore:      feedEvent.HomeScore,
		AwayScore:      feedEvent.AwayScore,
		Quarter:        feedEvent.Quarter,
		Clock:          feedEvent.Clock,
		Status:         status,
		StartsAt:       feedEvent.StartsAt,
	}

	if err := job.sportsEventRepo.Create(ctx, event); err != nil {
		return err
	}

	if status != entity.SportsEventScheduled {
		return nil
	}

	cfg := xcontext.Configs(ctx).Blocks
	_, err := job.blocksGameDomain.Create(ctx, &model.CreateBlocksGameRequest{
		SportsEventID: event.ID,
		PricePerBlock: cfg.DefaultPricePerBlock,
		PrizeTotal:    cfg.DefaultPrizeTotal,
		PrizeQ1:       cfg.DefaultPrizeTotal * 0.2,
		PrizeQ2:       cfg.DefaultPrizeTotal * 0.2,
		PrizeQ3:       cfg.DefaultPrizeTotal * 0.2,
		PrizeQ4:       cfg.DefaultPrizeTotal * 0.4,
	})
	if err != nil {
		return err
	}

	return nil
}

func (job *PollScoresCronJob) advanceGame(
	ctx context.Context,
	game *entity.BlocksGame,
	feedEvent *client.FeedEvent,
	status entity.SportsEventStatus,
) {
	if game.State == entity.BlocksGameOpen {
		_, err := job.blocksGameDomain.Lock(ctx, &model.LockBlocksGameRequest{GameID: game.ID})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot lock game %s: %v", game.ID, err)
			return
		}
	}

	for _, boundary := range passedBoundaries(feedEvent, status) {
		if boundary.quarter <= game.LastSettledQuarter {
			continue
		}

		_, err := job.settlementDomain.Settle(ctx, &model.SettleBoundaryRequest{
			GameID:    game.ID,
			Quarter:   boundary.quarter,
			HomeScore: boundary.homeScore,
			AwayScore: boundary.awayScore,
			Final:     boundary.final,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf(
				"Cannot settle quarter %d of game %s: %v", boundary.quarter, game.ID, err)
			return
		}

		game.LastSettledQuarter = boundary.quarter
	}
}

type boundary struct {
	quarter   int
	homeScore int
	awayScore int
	final     bool
}

// passedBoundaries lists the quarter boundaries the event has fully played.
// A live event in quarter N has passed N-1 boundaries, but never the fourth:
// that one pays on the final score, so it waits for the feed to report the
// event final even when overtime is running.
func passedBoundaries(feedEvent *client.FeedEvent, status entity.SportsEventStatus) []boundary {
	var passed int
	switch status {
	case entity.SportsEventLive:
		passed = feedEvent.Quarter - 1
		if passed > 3 {
			passed = 3
		}
	case entity.SportsEventFinal:
		passed = 4
	default:
		return nil
	}

	boundaries := make([]boundary, 0, passed)
	for q := 1; q <= passed; q++ {
		b := boundary{
			quarter:   q,
			homeScore: feedEvent.HomeScoreByQuarter[q-1],
			awayScore: feedEvent.AwayScoreByQuarter[q-1],
		}

		if status == entity.SportsEventFinal && q == passed {
			// The final boundary settles on the final score, overtime
			// included.
			b.homeScore = feedEvent.HomeScore
			b.awayScore = feedEvent.AwayScore
			b.final = true
		}

		boundaries = append(boundaries, b)
	}

	return boundaries
}

func convertFeedStatus(state string) entity.SportsEventStatus {
	switch state {
	case client.FeedStatusIn:
		return entity.SportsEventLive
	case client.FeedStatusPost:
		return entity.SportsEventFinal
	default:
		return entity.SportsEventScheduled
	}
}
