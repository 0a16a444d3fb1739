package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/squareblocks/backend/internal/domain/gridmath"
	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/model"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/pkg/errorx"
	"github.com/squareblocks/backend/pkg/xcontext"
	"github.com/squareblocks/backend/pkg/xredis"
	"gorm.io/gorm"
)

type SettlementDomain interface {
	Settle(context.Context, *model.SettleBoundaryRequest) (*model.SettleBoundaryResponse, error)
	GetWinners(context.Context, *model.GetWinnersRequest) (*model.GetWinnersResponse, error)
	GetMyWinners(context.Context, *model.GetMyWinnersRequest) (*model.GetMyWinnersResponse, error)
}

type settlementDomain struct {
	blocksGameRepo  repository.BlocksGameRepository
	blockRepo       repository.BlockRepository
	winnerRepo      repository.WinnerRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	redisClient     xredis.Client
}

func NewSettlementDomain(
	blocksGameRepo repository.BlocksGameRepository,
	blockRepo repository.BlockRepository,
	winnerRepo repository.WinnerRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *settlementDomain {
	return &settlementDomain{
		blocksGameRepo:  blocksGameRepo,
		blockRepo:       blockRepo,
		winnerRepo:      winnerRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		redisClient:     redisClient,
	}
}

// Settle processes one quarter boundary. It is idempotent per (game,
// quarter): the feed redelivers boundary events at least once, so a prior
// winner makes this a no-op returning the existing record. Boundaries are
// keyed by quarter number, not sequence; a skipped quarter never blocks later
// ones.
//
// An unsold winning block forfeits the quarter prize to the pool operator:
// no winner row, no ledger entry, no error. The boundary still advances
// LastSettledQuarter so the poller does not redeliver it.
func (d *settlementDomain) Settle(
	ctx context.Context, req *model.SettleBoundaryRequest,
) (*model.SettleBoundaryResponse, error) {
	if req.Quarter < 1 {
		return nil, errorx.New(errorx.BadRequest, "Quarter must be a positive number")
	}

	if req.HomeScore < 0 || req.AwayScore < 0 {
		return nil, errorx.New(errorx.BadRequest, "Scores must not be negative")
	}

	game, err := d.blocksGameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found blocks game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get blocks game: %v", err)
		return nil, errorx.Unknown
	}

	existing, err := d.winnerRepo.GetByGameAndQuarter(ctx, game.ID, req.Quarter)
	if err == nil {
		// A redelivery can carry the final flag the first delivery lacked,
		// for example when the boundary was settled manually before the feed
		// reported the event final. The game must still close.
		if req.Final {
			err := d.blocksGameRepo.ChangeState(
				ctx, game.ID, entity.BlocksGameSettling, entity.BlocksGameClosed)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Errorf("Cannot close blocks game: %v", err)
				return nil, errorx.Unknown
			}
		}

		winner := convertWinner(existing)
		return &model.SettleBoundaryResponse{Winner: &winner}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get existing winner: %v", err)
		return nil, errorx.Unknown
	}

	rawX, rawY := gridmath.Coordinate(req.HomeScore, req.AwayScore, game.GridWidth, game.GridHeight)
	x := gridmath.PositionOf(game.HomeDigits, rawX)
	y := gridmath.PositionOf(game.AwayDigits, rawY)
	if x < 0 || y < 0 {
		xcontext.Logger(ctx).Errorf(
			"Axis permutation of game %s does not cover digits (%d,%d)", game.ID, rawX, rawY)
		return nil, errorx.Unknown
	}

	block, err := d.blockRepo.Get(ctx, game.ID, x, y)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winning block: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The first settled boundary moves the game into settling. An open game
	// reaching a boundary means the lock event was missed; settle implies
	// locked. A transition finding no row in its source state is the normal
	// case, any other failure aborts.
	err = d.blocksGameRepo.ChangeState(ctx, game.ID, entity.BlocksGameOpen, entity.BlocksGameLocked)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot lock game on settle: %v", err)
		return nil, errorx.Unknown
	}

	err = d.blocksGameRepo.ChangeState(ctx, game.ID, entity.BlocksGameLocked, entity.BlocksGameSettling)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot move game into settling: %v", err)
		return nil, errorx.Unknown
	}

	if block.State != entity.BlockSold || !block.UserID.Valid {
		if err := d.finishBoundary(ctx, game, req); err != nil {
			return nil, err
		}

		xcontext.WithCommitDBTransaction(ctx)
		return &model.SettleBoundaryResponse{Forfeited: true}, nil
	}

	amount := game.PrizeForQuarter(req.Quarter) +
		game.TouchPrizeForQuarter(req.Quarter)*float64(req.TouchCount)

	winner := &entity.Winner{
		Base:         entity.Base{ID: uuid.NewString()},
		BlocksGameID: game.ID,
		Quarter:      req.Quarter,
		BlockID:      block.ID,
		UserID:       block.UserID.String,
		X:            rawX,
		Y:            rawY,
		Amount:       amount,
		TouchCount:   req.TouchCount,
	}

	if err := d.winnerRepo.Create(ctx, winner); err != nil {
		// A concurrent delivery of the same boundary lost the race on the
		// (game, quarter) unique index. Roll back and return the record the
		// other delivery wrote.
		xcontext.WithRollbackDBTransaction(ctx)

		existing, getErr := d.winnerRepo.GetByGameAndQuarter(ctx, game.ID, req.Quarter)
		if getErr == nil {
			converted := convertWinner(existing)
			return &model.SettleBoundaryResponse{Winner: &converted}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot create winner: %v", err)
		return nil, errorx.Unknown
	}

	ledgerEntry := newLedgerEntry(winner.UserID, entity.TransactionPayout, amount)
	ledgerEntry.BlocksGameID = nullString(game.ID)
	ledgerEntry.BlockID = nullString(block.ID)
	if err := d.transactionRepo.Create(ctx, ledgerEntry); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create payout ledger entry: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseBalance(ctx, winner.UserID, amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit winner: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.finishBoundary(ctx, game, req); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	if d.redisClient != nil {
		if err := d.redisClient.Del(ctx, gridCacheKey(game.ID)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate grid cache: %v", err)
		}
	}

	converted := convertWinner(winner)
	return &model.SettleBoundaryResponse{Winner: &converted}, nil
}

func (d *settlementDomain) finishBoundary(
	ctx context.Context, game *entity.BlocksGame, req *model.SettleBoundaryRequest,
) error {
	if err := d.blocksGameRepo.AdvanceSettledQuarter(ctx, game.ID, req.Quarter); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot advance settled quarter: %v", err)
		return errorx.Unknown
	}

	if req.Final {
		err := d.blocksGameRepo.ChangeState(
			ctx, game.ID, entity.BlocksGameSettling, entity.BlocksGameClosed)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot close blocks game: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

func (d *settlementDomain) GetWinners(
	ctx context.Context, req *model.GetWinnersRequest,
) (*model.GetWinnersResponse, error) {
	winners, err := d.winnerRepo.GetByGameID(ctx, req.GameID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winners: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetWinnersResponse{Winners: []model.Winner{}}
	for i := range winners {
		resp.Winners = append(resp.Winners, convertWinner(&winners[i]))
	}

	return resp, nil
}

func (d *settlementDomain) GetMyWinners(
	ctx context.Context, req *model.GetMyWinnersRequest,
) (*model.GetMyWinnersResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allow an unauthenticated user")
	}

	winners, err := d.winnerRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winners of user: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyWinnersResponse{Winners: []model.Winner{}}
	for i := range winners {
		resp.Winners = append(resp.Winners, convertWinner(&winners[i]))
	}

	return resp, nil
}
