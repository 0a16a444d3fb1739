package repository

import (
	"context"
	"time"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PromoCodeRepository interface {
	Create(ctx context.Context, promo *entity.PromoCode) error
	GetByCode(ctx context.Context, code string) (*entity.PromoCode, error)

	// CheckAndUse consumes one use of a valid code; an exhausted or expired
	// code affects no row and returns gorm.ErrRecordNotFound.
	CheckAndUse(ctx context.Context, code string) error
}

type promoCodeRepository struct{}

func NewPromoCodeRepository() *promoCodeRepository {
	return &promoCodeRepository{}
}

func (r *promoCodeRepository) Create(ctx context.Context, promo *entity.PromoCode) error {
	return xcontext.DB(ctx).Create(promo).Error
}

func (r *promoCodeRepository) GetByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	var result entity.PromoCode
	if err := xcontext.DB(ctx).Take(&result, "code=?", code).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *promoCodeRepository) CheckAndUse(ctx context.Context, code string) error {
	tx := xcontext.DB(ctx).Model(&entity.PromoCode{}).
		Where("code=? AND used_count < max_uses AND expired_at > ?", code, time.Now()).
		Update("used_count", gorm.Expr("used_count+?", 1))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
