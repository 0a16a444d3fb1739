package migration

import (
	"context"
	"errors"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Migrate applies every migration not yet recorded in the migration table.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	migrators := []struct {
		version string
		migrate func(context.Context) error
	}{
		{"0000", migrate0000},
	}

	for _, m := range migrators {
		version, migrator := m.version, m.migrate
		var record entity.Migration
		err := xcontext.DB(ctx).Take(&record, "version=?", version).Error
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := migrator(ctx); err != nil {
			return err
		}

		if err := xcontext.DB(ctx).Create(&entity.Migration{Version: version}).Error; err != nil {
			return err
		}

		xcontext.Logger(ctx).Infof("Applied migration %s", version)
	}

	return nil
}
