package model

type Winner struct {
	ID           string  `json:"id"`
	BlocksGameID string  `json:"blocks_game_id"`
	Quarter      int     `json:"quarter"`
	UserID       string  `json:"user_id"`
	X            int     `json:"x"`
	Y            int     `json:"y"`
	Amount       float64 `json:"amount"`
	TouchCount   int     `json:"touch_count"`
}

type SettleBoundaryRequest struct {
	GameID     string `json:"game_id"`
	Quarter    int    `json:"quarter"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	TouchCount int    `json:"touch_count"`

	// Final marks the last boundary of the event; the game closes after it
	// settles.
	Final bool `json:"final"`
}

type SettleBoundaryResponse struct {
	Winner *Winner `json:"winner,omitempty"`

	// Forfeited is set when the winning block was unsold: the quarter prize
	// stays with the pool operator and no ledger entry is written.
	Forfeited bool `json:"forfeited"`
}

type GetWinnersRequest struct {
	GameID string `json:"game_id"`
}

type GetWinnersResponse struct {
	Winners []Winner `json:"winners"`
}

type GetMyWinnersRequest struct{}

type GetMyWinnersResponse struct {
	Winners []Winner `json:"winners"`
}
