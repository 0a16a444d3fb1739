package domain

import (
	"testing"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/model"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/pkg/errorx"
	"github.com/squareblocks/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestUserDomain() *userDomain {
	return NewUserDomain(repository.NewUserRepository(), repository.NewTransactionRepository())
}

func Test_userDomain_DepositWithdraw(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)
	userDomain := newTestUserDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1ID)

	depositResp, err := userDomain.Deposit(ctxUser1, &model.DepositRequest{
		Amount:        50,
		PaymentMethod: "card",
		PaymentRef:    "pay_123",
	})
	require.NoError(t, err)
	require.NotZero(t, depositResp.TransactionID)

	balance, err := userDomain.GetBalance(ctxUser1, &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(1050), balance.Balance)

	_, err = userDomain.Withdraw(ctxUser1, &model.WithdrawRequest{Amount: 100})
	require.NoError(t, err)

	balance, err = userDomain.GetBalance(ctxUser1, &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(950), balance.Balance)

	// Overdrawing fails and leaves no completed entry behind.
	_, err = userDomain.Withdraw(ctxUser1, &model.WithdrawRequest{Amount: 2000})
	requireErrorCode(t, err, errorx.InsufficientFunds)

	balance, err = userDomain.GetBalance(ctxUser1, &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(950), balance.Balance)

	_, err = userDomain.Deposit(ctxUser1, &model.DepositRequest{Amount: -5})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = userDomain.Deposit(ctx, &model.DepositRequest{Amount: 5})
	requireErrorCode(t, err, errorx.Unauthenticated)

	transactions, err := userDomain.GetMyTransactions(ctxUser1, &model.GetMyTransactionsRequest{})
	require.NoError(t, err)
	require.Len(t, transactions.Transactions, 2)
	// Newest first.
	require.Equal(t, string(entity.TransactionWithdrawal), transactions.Transactions[0].Type)
	require.Equal(t, string(entity.TransactionDeposit), transactions.Transactions[1].Type)
	require.Equal(t, "pay_123", transactions.Transactions[1].PaymentRef)

	// Payment-backed entries start pending and complete together with the
	// balance update.
	for _, transaction := range transactions.Transactions {
		require.Equal(t, string(entity.TransactionCompleted), transaction.Status)
		require.NotNil(t, transaction.CompletedAt)
	}
}

// The fixture users start with a balance but no ledger history, so the
// projection check runs against an account built from scratch.
func Test_userDomain_LedgerProjectionMatchesBalance(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertFixtures(t, ctx)
	userDomain := newTestUserDomain()
	blocksGameDomain := newTestBlocksGameDomain()
	settlementDomain := newTestSettlementDomain()

	require.NoError(t, repository.NewUserRepository().Create(ctx, &entity.User{
		Base:     entity.Base{ID: "fresh"},
		Email:    "fresh@example.com",
		Role:     entity.RoleUser,
		IsActive: true,
	}))

	ctxFresh := testutil.MockContextWithUserID(ctx, "fresh")
	_, err := userDomain.Deposit(ctxFresh, &model.DepositRequest{Amount: 200})
	require.NoError(t, err)

	gameID := createTestGame(t, ctx, blocksGameDomain, model.CreateBlocksGameRequest{})
	_, err = blocksGameDomain.Purchase(ctxFresh, &model.PurchaseBlocksRequest{
		GameID:      gameID,
		Coordinates: []model.Coordinate{{X: 3, Y: 7}, {X: 4, Y: 4}},
	})
	require.NoError(t, err)

	_, err = settlementDomain.Settle(ctx, &model.SettleBoundaryRequest{
		GameID:    gameID,
		Quarter:   1,
		HomeScore: 13,
		AwayScore: 17,
	})
	require.NoError(t, err)

	_, err = userDomain.Withdraw(ctxFresh, &model.WithdrawRequest{Amount: 30})
	require.NoError(t, err)

	// 200 deposit - 20 purchases + 100 payout - 30 withdrawal.
	balance, err := userDomain.GetBalance(ctxFresh, &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(250), balance.Balance)
	require.Equal(t, balance.Balance, balance.ProjectedBalance)
}
