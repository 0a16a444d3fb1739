package model

import "time"

type Transaction struct {
	ID           int64      `json:"id"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Amount       float64    `json:"amount"`
	BlocksGameID string     `json:"blocks_game_id,omitempty"`
	BlockID      string     `json:"block_id,omitempty"`
	PaymentRef   string     `json:"payment_ref,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type GetBalanceRequest struct{}

type GetBalanceResponse struct {
	Balance float64 `json:"balance"`

	// ProjectedBalance is re-derived from the ledger history and must equal
	// Balance.
	ProjectedBalance float64 `json:"projected_balance"`
}

type GetMyTransactionsRequest struct{}

type GetMyTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type DepositRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	PaymentRef    string  `json:"payment_ref"`
}

type DepositResponse struct {
	TransactionID int64 `json:"transaction_id"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount"`
}

type WithdrawResponse struct {
	TransactionID int64 `json:"transaction_id"`
}
