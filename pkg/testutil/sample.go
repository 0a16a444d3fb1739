package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/repository"
)

var farFuture = time.Now().AddDate(10, 0, 0)

// SampleSportsEvent creates a scheduled sports event with randomized fields.
// Non-zero fields of init overwrite the sample.
func SampleSportsEvent(ctx context.Context, init *entity.SportsEvent) (entity.SportsEvent, error) {
	sample := &entity.SportsEvent{
		Base:         entity.Base{ID: uuid.NewString()},
		ExternalID:   uuid.NewString(),
		Sport:        "football",
		League:       "nfl",
		Name:         uuid.NewString(),
		HomeTeamName: uuid.NewString(),
		AwayTeamName: uuid.NewString(),
		Status:       entity.SportsEventScheduled,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewSportsEventRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

// SamplePromoCode creates a promo code valid for one hundred uses.
// Non-zero fields of init overwrite the sample.
func SamplePromoCode(ctx context.Context, init *entity.PromoCode) (entity.PromoCode, error) {
	sample := &entity.PromoCode{
		Base:       entity.Base{ID: uuid.NewString()},
		Code:       uuid.NewString(),
		PercentOff: 10,
		MaxUses:    100,
		ExpiredAt:  farFuture,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewPromoCodeRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
