package entity

// Winner is the audit record of one settled quarter boundary. At most one
// winner exists per (game, quarter); the unique index is the idempotency
// backstop against redelivered boundary events. Never mutated.
type Winner struct {
	Base

	BlocksGameID string `gorm:"uniqueIndex:idx_winner_game_quarter"`
	Quarter      int    `gorm:"uniqueIndex:idx_winner_game_quarter"`

	BlockID string
	UserID  string

	// Raw score digits at the boundary, before axis permutation.
	X int
	Y int

	Amount     float64
	TouchCount int
}
