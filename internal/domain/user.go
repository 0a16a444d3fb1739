package domain

import (
	"context"
	"errors"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/model"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/pkg/errorx"
	"github.com/squareblocks/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetBalance(context.Context, *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
	GetMyTransactions(context.Context, *model.GetMyTransactionsRequest) (*model.GetMyTransactionsResponse, error)
	Deposit(context.Context, *model.DepositRequest) (*model.DepositResponse, error)
	Withdraw(context.Context, *model.WithdrawRequest) (*model.WithdrawResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
) *userDomain {
	return &userDomain{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

// GetBalance returns the maintained balance alongside one re-derived from the
// ledger history. A mismatch means drift and is logged, not hidden.
func (d *userDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allow an unauthenticated user")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	projected, err := d.transactionRepo.ProjectBalance(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot project balance: %v", err)
		return nil, errorx.Unknown
	}

	if projected != user.Balance {
		xcontext.Logger(ctx).Errorf(
			"Balance drift for user %s: maintained=%f projected=%f",
			userID, user.Balance, projected)
	}

	return &model.GetBalanceResponse{
		Balance:          user.Balance,
		ProjectedBalance: projected,
	}, nil
}

func (d *userDomain) GetMyTransactions(
	ctx context.Context, req *model.GetMyTransactionsRequest,
) (*model.GetMyTransactionsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allow an unauthenticated user")
	}

	transactions, err := d.transactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get transactions: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyTransactionsResponse{Transactions: []model.Transaction{}}
	for i := range transactions {
		resp.Transactions = append(resp.Transactions, convertTransaction(&transactions[i]))
	}

	return resp, nil
}

func (d *userDomain) Deposit(
	ctx context.Context, req *model.DepositRequest,
) (*model.DepositResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allow an unauthenticated user")
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be a positive number")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	entry := newPendingLedgerEntry(userID, entity.TransactionDeposit, req.Amount)
	entry.PaymentMethod = req.PaymentMethod
	entry.PaymentRef = req.PaymentRef
	if err := d.transactionRepo.Create(ctx, entry); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create deposit ledger entry: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseBalance(ctx, userID, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit user: %v", err)
		return nil, errorx.Unknown
	}

	err := d.transactionRepo.ChangeStatus(ctx, entry.ID, entity.TransactionCompleted)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete deposit ledger entry: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DepositResponse{TransactionID: entry.ID}, nil
}

func (d *userDomain) Withdraw(
	ctx context.Context, req *model.WithdrawRequest,
) (*model.WithdrawResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allow an unauthenticated user")
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be a positive number")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	entry := newPendingLedgerEntry(userID, entity.TransactionWithdrawal, req.Amount)
	if err := d.transactionRepo.Create(ctx, entry); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create withdrawal ledger entry: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseBalance(ctx, userID, -req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientFunds, "Not enough balance to withdraw")
		}

		xcontext.Logger(ctx).Errorf("Cannot debit user: %v", err)
		return nil, errorx.Unknown
	}

	err := d.transactionRepo.ChangeStatus(ctx, entry.ID, entity.TransactionCompleted)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete withdrawal ledger entry: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.WithdrawResponse{TransactionID: entry.ID}, nil
}
