package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/model"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/pkg/errorx"
	"github.com/squareblocks/backend/pkg/xcontext"
)

type PromoCodeDomain interface {
	Create(context.Context, *model.CreatePromoCodeRequest) (*model.CreatePromoCodeResponse, error)
}

type promoCodeDomain struct {
	promoCodeRepo repository.PromoCodeRepository
}

func NewPromoCodeDomain(promoCodeRepo repository.PromoCodeRepository) *promoCodeDomain {
	return &promoCodeDomain{promoCodeRepo: promoCodeRepo}
}

func (d *promoCodeDomain) Create(
	ctx context.Context, req *model.CreatePromoCodeRequest,
) (*model.CreatePromoCodeResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty code")
	}

	if req.PercentOff <= 0 || req.PercentOff > 100 {
		return nil, errorx.New(errorx.BadRequest, "Percent off must be in range (0, 100]")
	}

	if req.MaxUses <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Max uses must be a positive number")
	}

	if req.ExpiredAt.Before(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, "Expiration must be in the future")
	}

	promo := &entity.PromoCode{
		Base:       entity.Base{ID: uuid.NewString()},
		Code:       code,
		PercentOff: req.PercentOff,
		MaxUses:    req.MaxUses,
		ExpiredAt:  req.ExpiredAt,
	}

	if err := d.promoCodeRepo.Create(ctx, promo); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create promo code: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "Duplicated promo code")
	}

	return &model.CreatePromoCodeResponse{ID: promo.ID}, nil
}
