package repository

import (
	"context"
	"time"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Transaction, error)

	// ChangeStatus moves an entry out of pending; any other prior status
	// affects no row and returns gorm.ErrRecordNotFound. Entries are never
	// deleted.
	ChangeStatus(ctx context.Context, id int64, to entity.TransactionStatus) error

	// ProjectBalance derives the balance from the full ledger history: sum
	// of completed credits minus completed debits.
	ProjectBalance(ctx context.Context, userID string) (float64, error)
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	return xcontext.DB(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	var result entity.Transaction
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *transactionRepository) GetByUserID(
	ctx context.Context, userID string,
) ([]entity.Transaction, error) {
	var result []entity.Transaction
	err := xcontext.DB(ctx).Order("id DESC").Find(&result, "user_id=?", userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *transactionRepository) ChangeStatus(
	ctx context.Context, id int64, to entity.TransactionStatus,
) error {
	updates := map[string]any{"status": to}
	if to == entity.TransactionCompleted {
		updates["completed_at"] = time.Now()
	}

	tx := xcontext.DB(ctx).Model(&entity.Transaction{}).
		Where("id=? AND status=?", id, entity.TransactionPending).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *transactionRepository) ProjectBalance(
	ctx context.Context, userID string,
) (float64, error) {
	creditTypes := []entity.TransactionType{
		entity.TransactionPayout,
		entity.TransactionDeposit,
		entity.TransactionRefund,
	}

	var result float64
	err := xcontext.DB(ctx).Model(&entity.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type IN (?) THEN amount ELSE -amount END), 0)", creditTypes).
		Where("user_id=? AND status=?", userID, entity.TransactionCompleted).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
