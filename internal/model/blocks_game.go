package model

type BlocksGame struct {
	ID            string `json:"id"`
	SportsEventID string `json:"sports_event_id"`

	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`

	PricePerBlock float64 `json:"price_per_block"`
	PrizeTotal    float64 `json:"prize_total"`
	PrizeQ1       float64 `json:"prize_q1"`
	PrizeQ2       float64 `json:"prize_q2"`
	PrizeQ3       float64 `json:"prize_q3"`
	PrizeQ4       float64 `json:"prize_q4"`

	AllowsTouches bool `json:"allows_touches"`

	IsPrivate bool   `json:"is_private"`
	IsActive  bool   `json:"is_active"`
	CreatedBy string `json:"created_by"`

	BlocksSold         int    `json:"blocks_sold"`
	State              string `json:"state"`
	LastSettledQuarter int    `json:"last_settled_quarter"`

	RandomizeAxes bool  `json:"randomize_axes"`
	HomeDigits    []int `json:"home_digits,omitempty"`
	AwayDigits    []int `json:"away_digits,omitempty"`
}

type Block struct {
	X                int     `json:"x"`
	Y                int     `json:"y"`
	State            string  `json:"state"`
	UserID           string  `json:"user_id,omitempty"`
	PurchaseAmount   float64 `json:"purchase_amount,omitempty"`
	PromoCodeApplied string  `json:"promo_code_applied,omitempty"`
}

type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type CreateBlocksGameRequest struct {
	SportsEventID string `json:"sports_event_id"`

	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`

	PricePerBlock float64 `json:"price_per_block"`
	PrizeTotal    float64 `json:"prize_total"`
	PrizeQ1       float64 `json:"prize_q1"`
	PrizeQ2       float64 `json:"prize_q2"`
	PrizeQ3       float64 `json:"prize_q3"`
	PrizeQ4       float64 `json:"prize_q4"`

	AllowsTouches   bool    `json:"allows_touches"`
	PrizePerTouchQ1 float64 `json:"prize_per_touch_q1"`
	PrizePerTouchQ2 float64 `json:"prize_per_touch_q2"`
	PrizePerTouchQ3 float64 `json:"prize_per_touch_q3"`
	PrizePerTouchQ4 float64 `json:"prize_per_touch_q4"`

	IsPrivate     bool  `json:"is_private"`
	RandomizeAxes *bool `json:"randomize_axes"`
}

type CreateBlocksGameResponse struct {
	ID string `json:"id"`
}

type GetBlocksGameRequest struct {
	ID string `json:"id"`
}

type GetBlocksGameResponse struct {
	Game BlocksGame `json:"game"`
}

type GetListBlocksGameRequest struct {
	SportsEventID string `json:"sports_event_id"`
}

type GetListBlocksGameResponse struct {
	Games []BlocksGame `json:"games"`
}

type GetGridRequest struct {
	GameID string `json:"game_id"`
}

type GetGridResponse struct {
	GridWidth  int     `json:"grid_width"`
	GridHeight int     `json:"grid_height"`
	Blocks     []Block `json:"blocks"`
}

type PurchaseBlocksRequest struct {
	GameID      string       `json:"game_id"`
	Coordinates []Coordinate `json:"coordinates"`
	PromoCode   string       `json:"promo_code"`
	PaymentRef  string       `json:"payment_ref"`
}

type PurchaseBlocksResponse struct {
	Blocks       []Block `json:"blocks"`
	TotalCharged float64 `json:"total_charged"`
}

type LockBlocksGameRequest struct {
	GameID string `json:"game_id"`
}

type LockBlocksGameResponse struct{}
