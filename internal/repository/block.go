package repository

import (
	"context"
	"database/sql"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BlockRepository interface {
	CreateMany(ctx context.Context, blocks []*entity.Block) error
	Get(ctx context.Context, gameID string, x, y int) (*entity.Block, error)
	GetByGameID(ctx context.Context, gameID string) ([]entity.Block, error)
	CountByGameID(ctx context.Context, gameID string) (int64, error)

	// Sell is the race arbiter: the unsold->sold transition succeeds only if
	// the block is exactly unsold at update time. A lost race affects no row
	// and returns gorm.ErrRecordNotFound.
	Sell(ctx context.Context, gameID string, x, y int, userID string, amount float64, promoCode string) error
}

type blockRepository struct{}

func NewBlockRepository() *blockRepository {
	return &blockRepository{}
}

func (r *blockRepository) CreateMany(ctx context.Context, blocks []*entity.Block) error {
	return xcontext.DB(ctx).CreateInBatches(blocks, 100).Error
}

func (r *blockRepository) Get(ctx context.Context, gameID string, x, y int) (*entity.Block, error) {
	var result entity.Block
	err := xcontext.DB(ctx).
		Take(&result, "blocks_game_id=? AND x=? AND y=?", gameID, x, y).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *blockRepository) GetByGameID(ctx context.Context, gameID string) ([]entity.Block, error) {
	var result []entity.Block
	err := xcontext.DB(ctx).Order("y ASC, x ASC").
		Find(&result, "blocks_game_id=?", gameID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *blockRepository) CountByGameID(ctx context.Context, gameID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Block{}).
		Where("blocks_game_id=?", gameID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *blockRepository) Sell(
	ctx context.Context, gameID string, x, y int,
	userID string, amount float64, promoCode string,
) error {
	updates := map[string]any{
		"state":           entity.BlockSold,
		"user_id":         userID,
		"purchase_amount": amount,
	}
	if promoCode != "" {
		updates["promo_code_applied"] = sql.NullString{String: promoCode, Valid: true}
	}

	tx := xcontext.DB(ctx).Model(&entity.Block{}).
		Where("blocks_game_id=? AND x=? AND y=? AND state=?", gameID, x, y, entity.BlockUnsold).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
