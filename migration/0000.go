package migration

import (
	"context"
	"errors"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// migrate0000 creates the schema and the reserved system account.
func migrate0000(ctx context.Context) error {
	err := xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.SportsEvent{},
		&entity.BlocksGame{},
		&entity.Block{},
		&entity.Winner{},
		&entity.Transaction{},
		&entity.PromoCode{},
	)
	if err != nil {
		return err
	}

	var system entity.User
	err = xcontext.DB(ctx).Take(&system, "id=?", entity.SystemUserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xcontext.DB(ctx).Create(&entity.User{
			Base:     entity.Base{ID: entity.SystemUserID},
			Name:     "system",
			Email:    "system@squareblocks.internal",
			Role:     entity.RoleAdmin,
			IsActive: true,
		}).Error
	}

	return err
}
