package domain

import (
	"context"
	"testing"
	"time"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/model"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/pkg/errorx"
	"github.com/squareblocks/backend/pkg/testutil"
	"github.com/squareblocks/backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func newTestBlocksGameDomain() *blocksGameDomain {
	return NewBlocksGameDomain(
		repository.NewBlocksGameRepository(),
		repository.NewBlockRepository(),
		repository.NewSportsEventRepository(),
		repository.NewTransactionRepository(),
		repository.NewPromoCodeRepository(),
		repository.NewUserRepository(),
		nil,
	)
}

func createTestGame(
	t *testing.T, ctx context.Context, d BlocksGameDomain, init model.CreateBlocksGameRequest,
) string {
	if init.SportsEventID == "" {
		init.SportsEventID = testutil.Event1ID
	}
	if init.PricePerBlock == 0 {
		init.PricePerBlock = 10
	}
	if init.PrizeTotal == 0 {
		init.PrizeTotal = 500
		init.PrizeQ1, init.PrizeQ2, init.PrizeQ3, init.PrizeQ4 = 100, 100, 100, 200
	}

	resp, err := d.Create(ctx, &init)
	require.NoError(t, err)
	return resp.ID
}

func requireErrorCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, code, errx.Code)
}

func Test_blocksGameDomain_Create(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)
	d := newTestBlocksGameDomain()

	gameID := createTestGame(t, ctx, d, model.CreateBlocksGameRequest{})

	// Dimensions default from configuration and the grid is fully
	// initialized as unsold.
	got, err := d.Get(ctx, &model.GetBlocksGameRequest{ID: gameID})
	require.NoError(t, err)
	require.Equal(t, 10, got.Game.GridWidth)
	require.Equal(t, 10, got.Game.GridHeight)
	require.Equal(t, string(entity.BlocksGameOpen), got.Game.State)
	require.Equal(t, entity.SystemUserID, got.Game.CreatedBy)

	grid, err := d.GetGrid(ctx, &model.GetGridRequest{GameID: gameID})
	require.NoError(t, err)
	require.Len(t, grid.Blocks, 100)
	for _, block := range grid.Blocks {
		require.Equal(t, string(entity.BlockUnsold), block.State)
	}

	// Oversized grid.
	_, err = d.Create(ctx, &model.CreateBlocksGameRequest{
		SportsEventID: testutil.Event1ID,
		GridWidth:     50,
		GridHeight:    10,
		PrizeTotal:    500,
	})
	requireErrorCode(t, err, errorx.BadRequest)

	// Quarter prizes must fit in the total.
	_, err = d.Create(ctx, &model.CreateBlocksGameRequest{
		SportsEventID: testutil.Event1ID,
		PrizeTotal:    100,
		PrizeQ1:       60, PrizeQ2: 60,
	})
	requireErrorCode(t, err, errorx.BadRequest)

	// Unknown event.
	_, err = d.Create(ctx, &model.CreateBlocksGameRequest{
		SportsEventID: "no-such-event",
		PrizeTotal:    500,
	})
	requireErrorCode(t, err, errorx.NotFound)

	games, err := d.GetList(ctx, &model.GetListBlocksGameRequest{
		SportsEventID: testutil.Event1ID,
	})
	require.NoError(t, err)
	require.Len(t, games.Games, 1)
}

func Test_blocksGameDomain_Purchase(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)
	d := newTestBlocksGameDomain()
	gameID := createTestGame(t, ctx, d, model.CreateBlocksGameRequest{})

	// A score of 23-7 lands on block (3,7); user1 takes it plus the origin.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1ID)
	resp, err := d.Purchase(ctxUser1, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 3, Y: 7}, {X: 0, Y: 0}},
	})
	require.NoError(t, err)
	require.Equal(t, float64(20), resp.TotalCharged)
	require.Len(t, resp.Blocks, 2)

	user1, err := repository.NewUserRepository().GetByID(ctx, testutil.User1ID)
	require.NoError(t, err)
	require.Equal(t, float64(980), user1.Balance)

	game, err := repository.NewBlocksGameRepository().GetByID(ctx, gameID)
	require.NoError(t, err)
	require.Equal(t, 2, game.BlocksSold)

	entries, err := repository.NewTransactionRepository().GetByUserID(ctx, testutil.User1ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Equal(t, entity.TransactionPurchase, entry.Type)
		require.Equal(t, entity.TransactionCompleted, entry.Status)
		require.Equal(t, float64(10), entry.Amount)
	}

	// user2 wants an overlapping set; nothing of it may go through.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2ID)
	_, err = d.Purchase(ctxUser2, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 3, Y: 7}, {X: 5, Y: 5}},
	})
	requireErrorCode(t, err, errorx.BlockUnavailable)
	require.Contains(t, err.Error(), "(3,7)")

	block, err := repository.NewBlockRepository().Get(ctx, gameID, 5, 5)
	require.NoError(t, err)
	require.Equal(t, entity.BlockUnsold, block.State)

	user2, err := repository.NewUserRepository().GetByID(ctx, testutil.User2ID)
	require.NoError(t, err)
	require.Equal(t, float64(1000), user2.Balance)

	// Validation failures.
	_, err = d.Purchase(ctxUser1, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 10, Y: 0}},
	})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.Purchase(ctxUser1, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 1, Y: 1}, {X: 1, Y: 1}},
	})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.Purchase(ctx, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 1, Y: 1}},
	})
	requireErrorCode(t, err, errorx.Unauthenticated)
}

func Test_blocksGameDomain_PurchaseLockedGame(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)
	d := newTestBlocksGameDomain()
	gameID := createTestGame(t, ctx, d, model.CreateBlocksGameRequest{})

	_, err := d.Lock(ctx, &model.LockBlocksGameRequest{GameID: gameID})
	require.NoError(t, err)

	// Locking again is a no-op.
	_, err = d.Lock(ctx, &model.LockBlocksGameRequest{GameID: gameID})
	require.NoError(t, err)

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1ID)
	_, err = d.Purchase(ctxUser1, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 1, Y: 1}},
	})
	requireErrorCode(t, err, errorx.GameLocked)
}

func Test_blocksGameDomain_LockRandomizesAxes(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)
	d := newTestBlocksGameDomain()

	randomize := true
	gameID := createTestGame(t, ctx, d, model.CreateBlocksGameRequest{
		RandomizeAxes: &randomize,
	})

	_, err := d.Lock(ctx, &model.LockBlocksGameRequest{GameID: gameID})
	require.NoError(t, err)

	game, err := repository.NewBlocksGameRepository().GetByID(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, game.HomeDigits, 10)
	require.Len(t, game.AwayDigits, 10)
	require.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, []int(game.HomeDigits))
	require.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, []int(game.AwayDigits))
}

func Test_blocksGameDomain_PurchaseWithPromoCode(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)
	d := newTestBlocksGameDomain()
	gameID := createTestGame(t, ctx, d, model.CreateBlocksGameRequest{})

	_, err := testutil.SamplePromoCode(ctx, &entity.PromoCode{
		Code:       "SAVE20",
		PercentOff: 20,
		MaxUses:    1,
	})
	require.NoError(t, err)

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1ID)
	_, err = d.Purchase(ctxUser1, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 0, Y: 0}},
		PromoCode:   "NO-SUCH-CODE",
	})
	requireErrorCode(t, err, errorx.InvalidPromoCode)

	resp, err := d.Purchase(ctxUser1, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 0, Y: 0}},
		PromoCode:   "SAVE20",
	})
	require.NoError(t, err)
	require.Equal(t, float64(8), resp.TotalCharged)
	require.Equal(t, "SAVE20", resp.Blocks[0].PromoCodeApplied)

	// The single use is consumed.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2ID)
	_, err = d.Purchase(ctxUser2, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 1, Y: 0}},
		PromoCode:   "SAVE20",
	})
	requireErrorCode(t, err, errorx.InvalidPromoCode)
}

func Test_blocksGameDomain_GridCache(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)

	var setKeys, delKeys []string
	hit := false
	redisClient := &testutil.MockRedisClient{
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			setKeys = append(setKeys, key)
			return nil
		},
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			if !hit {
				return xredis.ErrNil
			}

			grid := v.(*model.GetGridResponse)
			grid.GridWidth, grid.GridHeight = 2, 2
			return nil
		},
		DelFunc: func(ctx context.Context, key ...string) error {
			delKeys = append(delKeys, key...)
			return nil
		},
	}

	d := NewBlocksGameDomain(
		repository.NewBlocksGameRepository(),
		repository.NewBlockRepository(),
		repository.NewSportsEventRepository(),
		repository.NewTransactionRepository(),
		repository.NewPromoCodeRepository(),
		repository.NewUserRepository(),
		redisClient,
	)
	gameID := createTestGame(t, ctx, d, model.CreateBlocksGameRequest{})
	cacheKey := "grid:" + gameID

	// A miss reads the database and fills the cache.
	grid, err := d.GetGrid(ctx, &model.GetGridRequest{GameID: gameID})
	require.NoError(t, err)
	require.Len(t, grid.Blocks, 100)
	require.Equal(t, []string{cacheKey}, setKeys)

	// A hit is served straight out of the cache.
	hit = true
	grid, err = d.GetGrid(ctx, &model.GetGridRequest{GameID: gameID})
	require.NoError(t, err)
	require.Equal(t, 2, grid.GridWidth)
	require.Empty(t, grid.Blocks)

	// Purchase invalidates the cached grid.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1ID)
	_, err = d.Purchase(ctxUser1, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 3, Y: 7}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{cacheKey}, delKeys)

	// So does settlement.
	settlementDomain := NewSettlementDomain(
		repository.NewBlocksGameRepository(),
		repository.NewBlockRepository(),
		repository.NewWinnerRepository(),
		repository.NewTransactionRepository(),
		repository.NewUserRepository(),
		redisClient,
	)
	_, err = settlementDomain.Settle(ctx, &model.SettleBoundaryRequest{
		GameID:    gameID,
		Quarter:   1,
		HomeScore: 23,
		AwayScore: 7,
	})
	require.NoError(t, err)
	require.Equal(t, []string{cacheKey, cacheKey}, delKeys)
}

func Test_blocksGameDomain_PurchaseInsufficientFunds(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)
	d := newTestBlocksGameDomain()
	gameID := createTestGame(t, ctx, d, model.CreateBlocksGameRequest{})

	require.NoError(t, repository.NewUserRepository().Create(ctx, &entity.User{
		Base:     entity.Base{ID: "broke"},
		Email:    "broke@example.com",
		Role:     entity.RoleUser,
		IsActive: true,
		Balance:  5,
	}))

	ctxBroke := testutil.MockContextWithUserID(ctx, "broke")
	_, err := d.Purchase(ctxBroke, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 2, Y: 2}},
	})
	requireErrorCode(t, err, errorx.InsufficientFunds)

	// The failed purchase must leave no trace.
	block, err := repository.NewBlockRepository().Get(ctx, gameID, 2, 2)
	require.NoError(t, err)
	require.Equal(t, entity.BlockUnsold, block.State)

	game, err := repository.NewBlocksGameRepository().GetByID(ctx, gameID)
	require.NoError(t, err)
	require.Equal(t, 0, game.BlocksSold)
}
