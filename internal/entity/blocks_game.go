package entity

import "github.com/squareblocks/backend/pkg/enum"

type BlocksGameState string

var (
	BlocksGameOpen     = enum.New(BlocksGameState("open"))
	BlocksGameLocked   = enum.New(BlocksGameState("locked"))
	BlocksGameSettling = enum.New(BlocksGameState("settling"))
	BlocksGameClosed   = enum.New(BlocksGameState("closed"))
)

type BlocksGame struct {
	Base

	SportsEventID string
	SportsEvent   SportsEvent `gorm:"foreignKey:SportsEventID"`

	// Grid dimensions are fixed at creation.
	GridWidth  int
	GridHeight int

	PricePerBlock float64
	PrizeTotal    float64
	PrizeQ1       float64
	PrizeQ2       float64
	PrizeQ3       float64
	PrizeQ4       float64

	AllowsTouches   bool
	PrizePerTouchQ1 float64
	PrizePerTouchQ2 float64
	PrizePerTouchQ3 float64
	PrizePerTouchQ4 float64

	IsPrivate bool
	IsActive  bool
	CreatedBy string

	BlocksSold int

	// State transitions: open -> locked -> settling -> closed. Purchases are
	// accepted only while open.
	State BlocksGameState

	// LastSettledQuarter records the highest quarter boundary already
	// processed, including forfeited ones.
	LastSettledQuarter int

	// Axis digit permutations, generated at lock time when RandomizeAxes is
	// set. Empty means identity mapping.
	RandomizeAxes bool
	HomeDigits    Array[int]
	AwayDigits    Array[int]
}

// PrizeForQuarter returns the configured base prize for a quarter boundary.
// Quarters beyond the fourth pay the Q4 prize (overtime).
func (g *BlocksGame) PrizeForQuarter(quarter int) float64 {
	switch quarter {
	case 1:
		return g.PrizeQ1
	case 2:
		return g.PrizeQ2
	case 3:
		return g.PrizeQ3
	default:
		return g.PrizeQ4
	}
}

// TouchPrizeForQuarter returns the per-touch bonus for a quarter boundary.
func (g *BlocksGame) TouchPrizeForQuarter(quarter int) float64 {
	if !g.AllowsTouches {
		return 0
	}

	switch quarter {
	case 1:
		return g.PrizePerTouchQ1
	case 2:
		return g.PrizePerTouchQ2
	case 3:
		return g.PrizePerTouchQ3
	default:
		return g.PrizePerTouchQ4
	}
}
