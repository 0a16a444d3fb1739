package entity

import (
	"database/sql"

	"github.com/squareblocks/backend/pkg/enum"
)

type TransactionType string

var (
	TransactionPurchase   = enum.New(TransactionType("purchase"))
	TransactionRefund     = enum.New(TransactionType("refund"))
	TransactionPayout     = enum.New(TransactionType("payout"))
	TransactionDeposit    = enum.New(TransactionType("deposit"))
	TransactionWithdrawal = enum.New(TransactionType("withdrawal"))
)

type TransactionStatus string

var (
	TransactionPending   = enum.New(TransactionStatus("pending"))
	TransactionCompleted = enum.New(TransactionStatus("completed"))
	TransactionFailed    = enum.New(TransactionStatus("failed"))
	TransactionRefunded  = enum.New(TransactionStatus("refunded"))
)

// Transaction is an append-only ledger entry. Entries are never deleted;
// status may only move pending -> completed|failed|refunded.
type Transaction struct {
	SnowflakeBase

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	BlocksGameID sql.NullString
	BlockID      sql.NullString

	Type   TransactionType
	Status TransactionStatus
	Amount float64

	PaymentMethod string
	PaymentRef    string
	CompletedAt   sql.NullTime
}

// IsCredit reports whether a completed entry of this type increases the
// user's balance.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TransactionPayout, TransactionDeposit, TransactionRefund:
		return true
	default:
		return false
	}
}
