package repository

import (
	"context"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/xcontext"
)

type WinnerRepository interface {
	Create(ctx context.Context, winner *entity.Winner) error
	GetByGameAndQuarter(ctx context.Context, gameID string, quarter int) (*entity.Winner, error)
	GetByGameID(ctx context.Context, gameID string) ([]entity.Winner, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Winner, error)
}

type winnerRepository struct{}

func NewWinnerRepository() *winnerRepository {
	return &winnerRepository{}
}

func (r *winnerRepository) Create(ctx context.Context, winner *entity.Winner) error {
	return xcontext.DB(ctx).Create(winner).Error
}

func (r *winnerRepository) GetByGameAndQuarter(
	ctx context.Context, gameID string, quarter int,
) (*entity.Winner, error) {
	var result entity.Winner
	err := xcontext.DB(ctx).
		Take(&result, "blocks_game_id=? AND quarter=?", gameID, quarter).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *winnerRepository) GetByGameID(ctx context.Context, gameID string) ([]entity.Winner, error) {
	var result []entity.Winner
	err := xcontext.DB(ctx).Order("quarter ASC").
		Find(&result, "blocks_game_id=?", gameID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *winnerRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Winner, error) {
	var result []entity.Winner
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}
