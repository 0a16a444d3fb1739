package repository

import (
	"context"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BlocksGameFilter struct {
	SportsEventID  string
	IncludePrivate bool
	States         []entity.BlocksGameState
}

type BlocksGameRepository interface {
	Create(ctx context.Context, game *entity.BlocksGame) error
	GetByID(ctx context.Context, id string) (*entity.BlocksGame, error)
	GetList(ctx context.Context, filter BlocksGameFilter) ([]entity.BlocksGame, error)
	GetBySportsEventID(ctx context.Context, eventID string) ([]entity.BlocksGame, error)

	// ChangeState performs the conditional state transition; a game not in
	// the from state affects no row and returns gorm.ErrRecordNotFound.
	ChangeState(ctx context.Context, id string, from, to entity.BlocksGameState) error

	SetAxisPermutations(ctx context.Context, id string, home, away []int) error
	IncreaseSold(ctx context.Context, id string, count int) error

	// AdvanceSettledQuarter raises LastSettledQuarter to quarter if it is
	// currently lower.
	AdvanceSettledQuarter(ctx context.Context, id string, quarter int) error
}

type blocksGameRepository struct{}

func NewBlocksGameRepository() *blocksGameRepository {
	return &blocksGameRepository{}
}

func (r *blocksGameRepository) Create(ctx context.Context, game *entity.BlocksGame) error {
	return xcontext.DB(ctx).Create(game).Error
}

func (r *blocksGameRepository) GetByID(ctx context.Context, id string) (*entity.BlocksGame, error) {
	var result entity.BlocksGame
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *blocksGameRepository) GetList(
	ctx context.Context, filter BlocksGameFilter,
) ([]entity.BlocksGame, error) {
	db := xcontext.DB(ctx).Order("created_at DESC")
	if filter.SportsEventID != "" {
		db = db.Where("sports_event_id=?", filter.SportsEventID)
	}

	if !filter.IncludePrivate {
		db = db.Where("is_private=?", false)
	}

	if len(filter.States) > 0 {
		db = db.Where("state IN (?)", filter.States)
	}

	var result []entity.BlocksGame
	if err := db.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *blocksGameRepository) GetBySportsEventID(
	ctx context.Context, eventID string,
) ([]entity.BlocksGame, error) {
	var result []entity.BlocksGame
	err := xcontext.DB(ctx).Find(&result, "sports_event_id=?", eventID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *blocksGameRepository) ChangeState(
	ctx context.Context, id string, from, to entity.BlocksGameState,
) error {
	tx := xcontext.DB(ctx).Model(&entity.BlocksGame{}).
		Where("id=? AND state=?", id, from).
		Update("state", to)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *blocksGameRepository) SetAxisPermutations(
	ctx context.Context, id string, home, away []int,
) error {
	return xcontext.DB(ctx).Model(&entity.BlocksGame{}).
		Where("id=?", id).
		Updates(map[string]any{
			"home_digits": entity.Array[int](home),
			"away_digits": entity.Array[int](away),
		}).Error
}

func (r *blocksGameRepository) IncreaseSold(ctx context.Context, id string, count int) error {
	tx := xcontext.DB(ctx).Model(&entity.BlocksGame{}).
		Where("id=?", id).
		Update("blocks_sold", gorm.Expr("blocks_sold+?", count))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *blocksGameRepository) AdvanceSettledQuarter(
	ctx context.Context, id string, quarter int,
) error {
	return xcontext.DB(ctx).Model(&entity.BlocksGame{}).
		Where("id=? AND last_settled_quarter < ?", id, quarter).
		Update("last_settled_quarter", quarter).Error
}
