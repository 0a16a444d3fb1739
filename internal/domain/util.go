package domain

import (
	"database/sql"
	"time"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/idutil"
)

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}

	return sql.NullString{String: s, Valid: true}
}

// newLedgerEntry builds a completed ledger entry. Callers fill in the linked
// game/block and payment fields before persisting.
func newLedgerEntry(userID string, t entity.TransactionType, amount float64) *entity.Transaction {
	return &entity.Transaction{
		SnowflakeBase: entity.SnowflakeBase{ID: idutil.NextID()},
		UserID:        userID,
		Type:          t,
		Status:        entity.TransactionCompleted,
		Amount:        amount,
		CompletedAt:   sql.NullTime{Time: time.Now(), Valid: true},
	}
}

// newPendingLedgerEntry builds an entry awaiting completion. Payment-backed
// flows complete it together with the balance update.
func newPendingLedgerEntry(userID string, t entity.TransactionType, amount float64) *entity.Transaction {
	return &entity.Transaction{
		SnowflakeBase: entity.SnowflakeBase{ID: idutil.NextID()},
		UserID:        userID,
		Type:          t,
		Status:        entity.TransactionPending,
		Amount:        amount,
	}
}
