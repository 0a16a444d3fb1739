package entity

import (
	"database/sql"

	"github.com/squareblocks/backend/pkg/enum"
)

type BlockState string

var (
	BlockUnsold = enum.New(BlockState("unsold"))
	BlockSold   = enum.New(BlockState("sold"))
)

// Block is one grid cell. The composite unique index makes coordinate
// duplication impossible and the conditional unsold->sold update is the
// purchase race arbiter.
type Block struct {
	Base

	BlocksGameID string `gorm:"uniqueIndex:idx_block_game_x_y"`
	X            int    `gorm:"uniqueIndex:idx_block_game_x_y"`
	Y            int    `gorm:"uniqueIndex:idx_block_game_x_y"`

	State  BlockState
	UserID sql.NullString

	PurchaseAmount   float64
	PromoCodeApplied sql.NullString
}
