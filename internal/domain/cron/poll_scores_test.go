package cron

import (
	"context"
	"testing"
	"time"

	"github.com/squareblocks/backend/internal/client"
	"github.com/squareblocks/backend/internal/domain"
	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type fakeScoreboardClient struct {
	events []client.FeedEvent
}

func (c *fakeScoreboardClient) GetScoreboard(
	ctx context.Context, sport, league string,
) ([]client.FeedEvent, error) {
	return c.events, nil
}

func newTestPollScoresJob(feed *fakeScoreboardClient) *PollScoresCronJob {
	blocksGameRepo := repository.NewBlocksGameRepository()
	blockRepo := repository.NewBlockRepository()
	sportsEventRepo := repository.NewSportsEventRepository()
	transactionRepo := repository.NewTransactionRepository()
	userRepo := repository.NewUserRepository()

	blocksGameDomain := domain.NewBlocksGameDomain(
		blocksGameRepo, blockRepo, sportsEventRepo, transactionRepo,
		repository.NewPromoCodeRepository(), userRepo, nil)
	settlementDomain := domain.NewSettlementDomain(
		blocksGameRepo, blockRepo, repository.NewWinnerRepository(),
		transactionRepo, userRepo, nil)

	return NewPollScoresCronJob(
		feed, sportsEventRepo, blocksGameRepo, blocksGameDomain, settlementDomain,
		time.Minute)
}

func Test_PollScoresCronJob_Lifecycle(t *testing.T) {
	ctx := testutil.MockContext(t)
	feed := &fakeScoreboardClient{}
	job := newTestPollScoresJob(feed)

	// First poll: a scheduled event appears. It is mirrored and gets the
	// default game, owned by the system account.
	feed.events = []client.FeedEvent{{
		ExternalID:   "espn-1",
		Name:         "Away Owls at Home Hawks",
		HomeTeamName: "Home Hawks",
		AwayTeamName: "Away Owls",
		Status:       client.FeedStatusPre,
		StartsAt:     time.Now().Add(time.Hour),
	}}
	job.Do(ctx)

	event, err := repository.NewSportsEventRepository().GetByExternalID(ctx, "espn-1")
	require.NoError(t, err)
	require.Equal(t, entity.SportsEventScheduled, event.Status)

	games, err := repository.NewBlocksGameRepository().GetBySportsEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, entity.BlocksGameOpen, games[0].State)
	require.Equal(t, entity.SystemUserID, games[0].CreatedBy)

	count, err := repository.NewBlockRepository().CountByGameID(ctx, games[0].ID)
	require.NoError(t, err)
	require.EqualValues(t, 100, count)

	// Polling the same scheduled event again creates nothing new.
	job.Do(ctx)
	games, err = repository.NewBlocksGameRepository().GetBySportsEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, games, 1)

	// Second poll: the event is live in Q2. The game locks and the Q1
	// boundary settles (forfeited, nothing was sold).
	feed.events[0].Status = client.FeedStatusIn
	feed.events[0].Quarter = 2
	feed.events[0].HomeScore = 13
	feed.events[0].AwayScore = 7
	feed.events[0].HomeScoreByQuarter = [4]int{13, 13, 13, 13}
	feed.events[0].AwayScoreByQuarter = [4]int{7, 7, 7, 7}
	job.Do(ctx)

	event, err = repository.NewSportsEventRepository().GetByExternalID(ctx, "espn-1")
	require.NoError(t, err)
	require.Equal(t, entity.SportsEventLive, event.Status)
	require.Equal(t, 13, event.HomeScore)

	game, err := repository.NewBlocksGameRepository().GetByID(ctx, games[0].ID)
	require.NoError(t, err)
	require.Equal(t, entity.BlocksGameSettling, game.State)
	require.Equal(t, 1, game.LastSettledQuarter)

	// Final poll: the event ends. All remaining boundaries settle and the
	// game closes.
	feed.events[0].Status = client.FeedStatusPost
	feed.events[0].Quarter = 4
	feed.events[0].HomeScore = 33
	feed.events[0].AwayScore = 27
	feed.events[0].HomeScoreByQuarter = [4]int{13, 20, 26, 33}
	feed.events[0].AwayScoreByQuarter = [4]int{7, 17, 24, 27}
	job.Do(ctx)

	event, err = repository.NewSportsEventRepository().GetByExternalID(ctx, "espn-1")
	require.NoError(t, err)
	require.Equal(t, entity.SportsEventFinal, event.Status)

	game, err = repository.NewBlocksGameRepository().GetByID(ctx, games[0].ID)
	require.NoError(t, err)
	require.Equal(t, entity.BlocksGameClosed, game.State)
	require.Equal(t, 4, game.LastSettledQuarter)

	// Re-polling the final event changes nothing.
	job.Do(ctx)
	game, err = repository.NewBlocksGameRepository().GetByID(ctx, games[0].ID)
	require.NoError(t, err)
	require.Equal(t, entity.BlocksGameClosed, game.State)
}

func Test_PollScoresCronJob_Overtime(t *testing.T) {
	ctx := testutil.MockContext(t)
	feed := &fakeScoreboardClient{}
	job := newTestPollScoresJob(feed)

	feed.events = []client.FeedEvent{{
		ExternalID:   "espn-3",
		Name:         "Away Owls at Home Hawks",
		HomeTeamName: "Home Hawks",
		AwayTeamName: "Away Owls",
		Status:       client.FeedStatusPre,
		StartsAt:     time.Now().Add(time.Hour),
	}}
	job.Do(ctx)

	event, err := repository.NewSportsEventRepository().GetByExternalID(ctx, "espn-3")
	require.NoError(t, err)
	games, err := repository.NewBlocksGameRepository().GetBySportsEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, games, 1)

	// The event goes to overtime. In-progress overtime points fold into the
	// fourth cumulative slot, so the fourth boundary must not settle yet; it
	// pays on the final score.
	feed.events[0].Status = client.FeedStatusIn
	feed.events[0].Quarter = 5
	feed.events[0].HomeScore = 30
	feed.events[0].AwayScore = 27
	feed.events[0].HomeScoreByQuarter = [4]int{7, 14, 21, 30}
	feed.events[0].AwayScoreByQuarter = [4]int{7, 14, 21, 27}
	job.Do(ctx)

	game, err := repository.NewBlocksGameRepository().GetByID(ctx, games[0].ID)
	require.NoError(t, err)
	require.Equal(t, entity.BlocksGameSettling, game.State)
	require.Equal(t, 3, game.LastSettledQuarter)

	// The event ends. The fourth boundary settles on the final score and the
	// game closes.
	feed.events[0].Status = client.FeedStatusPost
	feed.events[0].HomeScore = 33
	feed.events[0].HomeScoreByQuarter = [4]int{7, 14, 21, 33}
	job.Do(ctx)

	game, err = repository.NewBlocksGameRepository().GetByID(ctx, games[0].ID)
	require.NoError(t, err)
	require.Equal(t, entity.BlocksGameClosed, game.State)
	require.Equal(t, 4, game.LastSettledQuarter)
}

func Test_PollScoresCronJob_EventFirstSeenLiveGetsNoGame(t *testing.T) {
	ctx := testutil.MockContext(t)
	feed := &fakeScoreboardClient{events: []client.FeedEvent{{
		ExternalID: "espn-2",
		Name:       "Late discovery",
		Status:     client.FeedStatusIn,
		Quarter:    3,
	}}}
	job := newTestPollScoresJob(feed)

	job.Do(ctx)

	event, err := repository.NewSportsEventRepository().GetByExternalID(ctx, "espn-2")
	require.NoError(t, err)
	require.Equal(t, entity.SportsEventLive, event.Status)

	games, err := repository.NewBlocksGameRepository().GetBySportsEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Empty(t, games)
}
