package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

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

type BlocksGameDomain interface {
	Create(context.Context, *model.CreateBlocksGameRequest) (*model.CreateBlocksGameResponse, error)
	Get(context.Context, *model.GetBlocksGameRequest) (*model.GetBlocksGameResponse, error)
	GetList(context.Context, *model.GetListBlocksGameRequest) (*model.GetListBlocksGameResponse, error)
	GetGrid(context.Context, *model.GetGridRequest) (*model.GetGridResponse, error)
	Purchase(context.Context, *model.PurchaseBlocksRequest) (*model.PurchaseBlocksResponse, error)
	Lock(context.Context, *model.LockBlocksGameRequest) (*model.LockBlocksGameResponse, error)
}

type blocksGameDomain struct {
	blocksGameRepo  repository.BlocksGameRepository
	blockRepo       repository.BlockRepository
	sportsEventRepo repository.SportsEventRepository
	transactionRepo repository.TransactionRepository
	promoCodeRepo   repository.PromoCodeRepository
	userRepo        repository.UserRepository
	redisClient     xredis.Client
}

func NewBlocksGameDomain(
	blocksGameRepo repository.BlocksGameRepository,
	blockRepo repository.BlockRepository,
	sportsEventRepo repository.SportsEventRepository,
	transactionRepo repository.TransactionRepository,
	promoCodeRepo repository.PromoCodeRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *blocksGameDomain {
	return &blocksGameDomain{
		blocksGameRepo:  blocksGameRepo,
		blockRepo:       blockRepo,
		sportsEventRepo: sportsEventRepo,
		transactionRepo: transactionRepo,
		promoCodeRepo:   promoCodeRepo,
		userRepo:        userRepo,
		redisClient:     redisClient,
	}
}

func gridCacheKey(gameID string) string {
	return "grid:" + gameID
}

func (d *blocksGameDomain) Create(
	ctx context.Context, req *model.CreateBlocksGameRequest,
) (*model.CreateBlocksGameResponse, error) {
	cfg := xcontext.Configs(ctx).Blocks

	width, height := req.GridWidth, req.GridHeight
	if width == 0 && height == 0 {
		width, height = cfg.DefaultGridSize, cfg.DefaultGridSize
	}

	if width <= 0 || height <= 0 || width > cfg.MaxGridSize || height > cfg.MaxGridSize {
		return nil, errorx.New(errorx.BadRequest,
			"Grid dimensions must be within 1x1 and %dx%d", cfg.MaxGridSize, cfg.MaxGridSize)
	}

	if req.PricePerBlock < 0 {
		return nil, errorx.New(errorx.BadRequest, "Price per block must not be negative")
	}

	quarterTotal := req.PrizeQ1 + req.PrizeQ2 + req.PrizeQ3 + req.PrizeQ4
	if quarterTotal > req.PrizeTotal {
		return nil, errorx.New(errorx.BadRequest,
			"Sum of quarter prizes must not exceed the prize total")
	}

	event, err := d.sportsEventRepo.GetByID(ctx, req.SportsEventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found sports event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get sports event: %v", err)
		return nil, errorx.Unknown
	}

	if event.Status != entity.SportsEventScheduled {
		return nil, errorx.New(errorx.Unavailable,
			"Cannot create a blocks game for an event already in progress")
	}

	createdBy := xcontext.RequestUserID(ctx)
	if createdBy == "" {
		createdBy = entity.SystemUserID
	}

	randomizeAxes := cfg.RandomizeAxes
	if req.RandomizeAxes != nil {
		randomizeAxes = *req.RandomizeAxes
	}

	game := &entity.BlocksGame{
		Base:            entity.Base{ID: uuid.NewString()},
		SportsEventID:   event.ID,
		GridWidth:       width,
		GridHeight:      height,
		PricePerBlock:   req.PricePerBlock,
		PrizeTotal:      req.PrizeTotal,
		PrizeQ1:         req.PrizeQ1,
		PrizeQ2:         req.PrizeQ2,
		PrizeQ3:         req.PrizeQ3,
		PrizeQ4:         req.PrizeQ4,
		AllowsTouches:   req.AllowsTouches,
		PrizePerTouchQ1: req.PrizePerTouchQ1,
		PrizePerTouchQ2: req.PrizePerTouchQ2,
		PrizePerTouchQ3: req.PrizePerTouchQ3,
		PrizePerTouchQ4: req.PrizePerTouchQ4,
		IsPrivate:       req.IsPrivate,
		IsActive:        true,
		CreatedBy:       createdBy,
		State:           entity.BlocksGameOpen,
		RandomizeAxes:   randomizeAxes,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	count, err := d.blockRepo.CountByGameID(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count blocks: %v", err)
		return nil, errorx.Unknown
	}

	if count > 0 {
		return nil, errorx.New(errorx.AlreadyExists, "Grid is already initialized")
	}

	if err := d.blocksGameRepo.Create(ctx, game); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create blocks game: %v", err)
		return nil, errorx.Unknown
	}

	blocks := make([]*entity.Block, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			blocks = append(blocks, &entity.Block{
				Base:         entity.Base{ID: uuid.NewString()},
				BlocksGameID: game.ID,
				X:            x,
				Y:            y,
				State:        entity.BlockUnsold,
			})
		}
	}

	if err := d.blockRepo.CreateMany(ctx, blocks); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot initialize grid: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateBlocksGameResponse{ID: game.ID}, nil
}

func (d *blocksGameDomain) Get(
	ctx context.Context, req *model.GetBlocksGameRequest,
) (*model.GetBlocksGameResponse, error) {
	game, err := d.blocksGameRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found blocks game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get blocks game: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBlocksGameResponse{Game: convertBlocksGame(game)}, nil
}

func (d *blocksGameDomain) GetList(
	ctx context.Context, req *model.GetListBlocksGameRequest,
) (*model.GetListBlocksGameResponse, error) {
	games, err := d.blocksGameRepo.GetList(ctx, repository.BlocksGameFilter{
		SportsEventID: req.SportsEventID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get blocks games: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListBlocksGameResponse{Games: []model.BlocksGame{}}
	for i := range games {
		resp.Games = append(resp.Games, convertBlocksGame(&games[i]))
	}

	return resp, nil
}

func (d *blocksGameDomain) GetGrid(
	ctx context.Context, req *model.GetGridRequest,
) (*model.GetGridResponse, error) {
	if d.redisClient != nil {
		var cached model.GetGridResponse
		err := d.redisClient.GetObj(ctx, gridCacheKey(req.GameID), &cached)
		if err == nil {
			return &cached, nil
		}

		if !errors.Is(err, xredis.ErrNil) {
			xcontext.Logger(ctx).Warnf("Cannot read grid cache: %v", err)
		}
	}

	game, err := d.blocksGameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found blocks game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get blocks game: %v", err)
		return nil, errorx.Unknown
	}

	blocks, err := d.blockRepo.GetByGameID(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get blocks: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetGridResponse{
		GridWidth:  game.GridWidth,
		GridHeight: game.GridHeight,
		Blocks:     []model.Block{},
	}
	for i := range blocks {
		resp.Blocks = append(resp.Blocks, convertBlock(&blocks[i]))
	}

	if d.redisClient != nil {
		ttl := xcontext.Configs(ctx).Blocks.GridCacheTTL
		if err := d.redisClient.SetObj(ctx, gridCacheKey(req.GameID), resp, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot write grid cache: %v", err)
		}
	}

	return resp, nil
}

func (d *blocksGameDomain) Purchase(
	ctx context.Context, req *model.PurchaseBlocksRequest,
) (*model.PurchaseBlocksResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	if len(req.Coordinates) == 0 {
		return nil, errorx.New(errorx.BadRequest, "No coordinates requested")
	}

	game, err := d.blocksGameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found blocks game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get blocks game: %v", err)
		return nil, errorx.Unknown
	}

	if !game.IsActive {
		return nil, errorx.New(errorx.Unavailable, "This game is not active")
	}

	if game.State != entity.BlocksGameOpen {
		return nil, errorx.New(errorx.GameLocked, "This game no longer accepts purchases")
	}

	seen := map[model.Coordinate]bool{}
	for _, c := range req.Coordinates {
		if c.X < 0 || c.X >= game.GridWidth || c.Y < 0 || c.Y >= game.GridHeight {
			return nil, errorx.New(errorx.BadRequest,
				"Coordinate (%d,%d) is out of the %dx%d grid",
				c.X, c.Y, game.GridWidth, game.GridHeight)
		}

		if seen[c] {
			return nil, errorx.New(errorx.BadRequest, "Duplicated coordinate (%d,%d)", c.X, c.Y)
		}
		seen[c] = true
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	price := game.PricePerBlock
	promoCode := ""
	if req.PromoCode != "" {
		promo, err := d.promoCodeRepo.GetByCode(ctx, req.PromoCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.InvalidPromoCode, "Unknown promo code")
			}

			xcontext.Logger(ctx).Errorf("Cannot get promo code: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.promoCodeRepo.CheckAndUse(ctx, req.PromoCode); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.InvalidPromoCode, "Promo code is expired or exhausted")
			}

			xcontext.Logger(ctx).Errorf("Cannot use promo code: %v", err)
			return nil, errorx.Unknown
		}

		price = math.Round(price*(100-promo.PercentOff)) / 100
		promoCode = promo.Code
	}

	// The set is sold as one all-or-nothing unit. Every conditional
	// unsold->sold update is attempted so a conflict response can name all
	// contended coordinates, then the transaction is rolled back.
	var conflicts []string
	for _, c := range req.Coordinates {
		err := d.blockRepo.Sell(ctx, game.ID, c.X, c.Y, userID, price, promoCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				conflicts = append(conflicts, fmt.Sprintf("(%d,%d)", c.X, c.Y))
				continue
			}

			xcontext.Logger(ctx).Errorf("Cannot sell block: %v", err)
			return nil, errorx.Unknown
		}
	}

	if len(conflicts) > 0 {
		return nil, errorx.New(errorx.BlockUnavailable,
			"Blocks %s are no longer available", strings.Join(conflicts, ", "))
	}

	total := math.Round(price*float64(len(req.Coordinates))*100) / 100
	if total > 0 {
		if err := d.userRepo.IncreaseBalance(ctx, userID, -total); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.InsufficientFunds, "Insufficient account balance")
			}

			xcontext.Logger(ctx).Errorf("Cannot charge user: %v", err)
			return nil, errorx.Unknown
		}
	}

	resp := &model.PurchaseBlocksResponse{TotalCharged: total}
	for _, c := range req.Coordinates {
		block, err := d.blockRepo.Get(ctx, game.ID, c.X, c.Y)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get sold block: %v", err)
			return nil, errorx.Unknown
		}

		ledgerEntry := newLedgerEntry(userID, entity.TransactionPurchase, price)
		ledgerEntry.BlocksGameID = nullString(game.ID)
		ledgerEntry.BlockID = nullString(block.ID)
		ledgerEntry.PaymentRef = req.PaymentRef
		if err := d.transactionRepo.Create(ctx, ledgerEntry); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create purchase ledger entry: %v", err)
			return nil, errorx.Unknown
		}

		resp.Blocks = append(resp.Blocks, convertBlock(block))
	}

	if err := d.blocksGameRepo.IncreaseSold(ctx, game.ID, len(req.Coordinates)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase sold counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if d.redisClient != nil {
		if err := d.redisClient.Del(ctx, gridCacheKey(game.ID)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate grid cache: %v", err)
		}
	}

	return resp, nil
}

// Lock freezes purchases once the tracked event starts and fixes the axis
// digit permutations. Safe to call repeatedly; only the open->locked
// transition has any effect.
func (d *blocksGameDomain) Lock(
	ctx context.Context, req *model.LockBlocksGameRequest,
) (*model.LockBlocksGameResponse, error) {
	game, err := d.blocksGameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found blocks game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get blocks game: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.blocksGameRepo.ChangeState(ctx, game.ID, entity.BlocksGameOpen, entity.BlocksGameLocked)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already locked or further along; redelivered lock events are
			// no-ops.
			return &model.LockBlocksGameResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot lock blocks game: %v", err)
		return nil, errorx.Unknown
	}

	if game.RandomizeAxes && len(game.HomeDigits) == 0 {
		err := d.blocksGameRepo.SetAxisPermutations(ctx, game.ID,
			gridmath.NewPermutation(game.GridWidth), gridmath.NewPermutation(game.GridHeight))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set axis permutations: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.LockBlocksGameResponse{}, nil
}
