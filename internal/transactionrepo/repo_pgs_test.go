//go:build integration

package transactionrepo_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-petr/atm-ledger/internal/accountrepo"
	"github.com/go-petr/atm-ledger/internal/domain"
	"github.com/go-petr/atm-ledger/internal/integrationtest"
	"github.com/go-petr/atm-ledger/internal/test"
	"github.com/go-petr/atm-ledger/internal/transactionrepo"
	"github.com/go-petr/atm-ledger/pkg/errorspkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var dbSource string

func TestMain(m *testing.M) {
	ctx := context.Background()

	pg, err := integrationtest.StartPostgres(ctx)
	if err != nil {
		log.Fatal("cannot start postgres:", err)
	}

	dbSource = pg.Source

	code := m.Run()

	if err := pg.Stop(); err != nil {
		log.Print("cannot stop postgres:", err)
	}

	os.Exit(code)
}

var (
	compareDecimal   = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })
	compareCreatedAt = cmpopts.EquateApproxTime(time.Second)
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name    string
		amount  string
		kind    domain.TransactionKind
		missing bool
		wantErr error
	}{
		{
			name:   "Deposit",
			amount: "12.34",
			kind:   domain.Deposit,
		},
		{
			name:   "Withdraw",
			amount: "0.01",
			kind:   domain.Withdraw,
		},
		{
			name:    "ZeroAmount",
			amount:  "0",
			kind:    domain.Deposit,
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "InvalidKind",
			amount:  "1",
			kind:    domain.TransactionKind("transfer"),
			wantErr: domain.ErrInvalidTransactionKind,
		},
		{
			name:    "AccountNotFound",
			amount:  "1",
			kind:    domain.Deposit,
			missing: true,
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbSource)

			accountID := int64(-1)
			if !tc.missing {
				accountID = test.SeedAccount(t, tx).ID
			}

			transactionRepo := transactionrepo.NewTxRepoPGS(tx)
			amount := decimal.RequireFromString(tc.amount)

			got, err := transactionRepo.Create(context.Background(), accountID, amount, tc.kind)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			want := domain.Transaction{
				AccountID: accountID,
				Amount:    amount,
				Kind:      tc.kind,
				CreatedAt: time.Now(),
			}

			ignoreID := cmpopts.IgnoreFields(domain.Transaction{}, "ID")
			if diff := cmp.Diff(want, got, ignoreID, compareDecimal, compareCreatedAt); diff != "" {
				t.Errorf("transactionRepo.Create(ctx, %v, %v, %v) returned unexpected difference (-want +got):\n%s",
					accountID, amount, tc.kind, diff)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Run("NewestFirst", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbSource)
		account := test.SeedAccount(t, tx)
		other := test.SeedAccount(t, tx)

		seeded := test.SeedTransactions(t, tx, 5, account.ID)
		test.SeedTransactions(t, tx, 2, other.ID)

		transactionRepo := transactionrepo.NewTxRepoPGS(tx)

		got, err := transactionRepo.List(context.Background(), account.ID)
		require.NoError(t, err)

		// All rows share the transaction timestamp, so ids break the tie.
		want := make([]domain.Transaction, len(seeded))
		for i := range seeded {
			want[i] = seeded[len(seeded)-1-i]
		}

		if diff := cmp.Diff(want, got, compareDecimal, compareCreatedAt); diff != "" {
			t.Errorf("transactionRepo.List(ctx, %v) returned unexpected difference (-want +got):\n%s", account.ID, diff)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbSource)
		account := test.SeedAccount(t, tx)
		transactionRepo := transactionrepo.NewTxRepoPGS(tx)

		got, err := transactionRepo.List(context.Background(), account.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}

func TestApply(t *testing.T) {
	db := integrationtest.SetupDB(t, dbSource)
	account := test.SeedAccountWithBalance(t, db, "100")
	transactionRepo := transactionrepo.NewRepoPGS(db)
	accountRepo := accountrepo.NewRepoPGS(db)
	ctx := context.Background()

	testCases := []struct {
		name        string
		amount      string
		kind        domain.TransactionKind
		wantBalance string
		wantErr     error
	}{
		{
			name:        "Deposit",
			amount:      "50",
			kind:        domain.Deposit,
			wantBalance: "150",
		},
		{
			name:        "Withdraw",
			amount:      "30.5",
			kind:        domain.Withdraw,
			wantBalance: "119.5",
		},
		{
			name:        "InsufficientBalance",
			amount:      "119.51",
			kind:        domain.Withdraw,
			wantBalance: "119.5",
			wantErr:     domain.ErrInsufficientBalance,
		},
		{
			name:        "NegativeAmount",
			amount:      "-1",
			kind:        domain.Deposit,
			wantBalance: "119.5",
			wantErr:     domain.ErrInvalidAmount,
		},
		{
			name:        "InvalidKind",
			amount:      "1",
			kind:        domain.TransactionKind("refund"),
			wantBalance: "119.5",
			wantErr:     domain.ErrInvalidTransactionKind,
		},
		{
			name:        "WithdrawAll",
			amount:      "119.5",
			kind:        domain.Withdraw,
			wantBalance: "0",
		},
	}

	wantLedger := 0

	// Cases share the account and run in order.
	for _, tc := range testCases {
		arg := domain.ApplyTransactionParams{
			AccountID: account.ID,
			Amount:    decimal.RequireFromString(tc.amount),
			Kind:      tc.kind,
		}

		got, err := transactionRepo.Apply(ctx, arg)
		if tc.wantErr != nil {
			require.ErrorIs(t, err, tc.wantErr, tc.name)
		} else {
			require.NoError(t, err, tc.name)
			wantLedger++

			require.True(t, got.Account.Balance.Equal(decimal.RequireFromString(tc.wantBalance)), tc.name)
			require.Equal(t, account.ID, got.Transaction.AccountID, tc.name)
			require.Equal(t, tc.kind, got.Transaction.Kind, tc.name)
			require.True(t, got.Transaction.Amount.Equal(arg.Amount), tc.name)
		}

		stored, err := accountRepo.Get(ctx, account.ID)
		require.NoError(t, err, tc.name)
		require.True(t, stored.Balance.Equal(decimal.RequireFromString(tc.wantBalance)),
			"%s: stored balance %v, want %v", tc.name, stored.Balance, tc.wantBalance)

		ledger, err := transactionRepo.List(ctx, account.ID)
		require.NoError(t, err, tc.name)
		require.Len(t, ledger, wantLedger, tc.name)
	}
}

func TestApplyAccountNotFound(t *testing.T) {
	db := integrationtest.SetupDB(t, dbSource)
	transactionRepo := transactionrepo.NewRepoPGS(db)

	arg := domain.ApplyTransactionParams{AccountID: -1, Amount: decimal.NewFromInt(1), Kind: domain.Deposit}

	_, err := transactionRepo.Apply(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestApplyRollsBackOnFailedAppend(t *testing.T) {
	db := integrationtest.SetupDB(t, dbSource)
	account := test.SeedAccountWithBalance(t, db, "10")
	transactionRepo := transactionrepo.NewRepoPGS(db)
	accountRepo := accountrepo.NewRepoPGS(db)
	ctx := context.Background()

	// Make the ledger append fail after the balance update succeeded.
	_, err := db.ExecContext(ctx, `ALTER TABLE transactions ADD CONSTRAINT reject_amount CHECK (amount <> 13.37)`)
	require.NoError(t, err)

	t.Cleanup(func() {
		if _, err := db.ExecContext(ctx, `ALTER TABLE transactions DROP CONSTRAINT reject_amount`); err != nil {
			t.Errorf("cannot drop constraint: %v", err)
		}
	})

	arg := domain.ApplyTransactionParams{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("13.37"),
		Kind:      domain.Deposit,
	}

	_, err = transactionRepo.Apply(ctx, arg)
	require.ErrorIs(t, err, errorspkg.ErrInternal)

	stored, err := accountRepo.Get(ctx, account.ID)
	require.NoError(t, err)
	require.True(t, stored.Balance.Equal(decimal.NewFromInt(10)), "stored balance %v, want 10", stored.Balance)

	ledger, err := transactionRepo.List(ctx, account.ID)
	require.NoError(t, err)
	require.Empty(t, ledger)
}

func TestApplyConcurrentWithdrawals(t *testing.T) {
	db := integrationtest.SetupDB(t, dbSource)
	account := test.SeedAccountWithBalance(t, db, "100")
	transactionRepo := transactionrepo.NewRepoPGS(db)
	accountRepo := accountrepo.NewRepoPGS(db)
	ctx := context.Background()

	const n = 15

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	// Only ten withdrawals of 10 fit into the balance.
	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			arg := domain.ApplyTransactionParams{
				AccountID: account.ID,
				Amount:    decimal.NewFromInt(10),
				Kind:      domain.Withdraw,
			}

			_, err := transactionRepo.Apply(ctx, arg)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	require.Equal(t, 10, succeeded)

	stored, err := accountRepo.Get(ctx, account.ID)
	require.NoError(t, err)
	require.True(t, stored.Balance.IsZero(), "stored balance %v, want 0", stored.Balance)

	ledger, err := transactionRepo.List(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 10)
}
