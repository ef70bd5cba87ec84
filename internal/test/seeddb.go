// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/go-petr/atm-ledger/internal/accountrepo"
	"github.com/go-petr/atm-ledger/internal/domain"
	"github.com/go-petr/atm-ledger/internal/transactionrepo"
	"github.com/go-petr/atm-ledger/pkg/dbpkg"
	"github.com/go-petr/atm-ledger/pkg/passpkg"
	"github.com/go-petr/atm-ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// SeedAccount creates random Account with zero balance inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface) domain.Account {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.Password())
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.Password()) returned error: %v", err)
	}

	username := randompkg.Username()

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), username, hashedPassword)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v, hashedPassword) returned error: %v", username, err)
	}

	return account
}

// SeedAccountWithBalance creates random Account and credits it with balance.
func SeedAccountWithBalance(t *testing.T, tx dbpkg.SQLInterface, balance string) domain.Account {
	t.Helper()

	account := SeedAccount(t, tx)
	amount := decimal.RequireFromString(balance)

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.AddBalance(context.Background(), amount, account.ID)
	if err != nil {
		t.Fatalf("accountRepo.AddBalance(context.Background(), %v, %v) returned error: %v", amount, account.ID, err)
	}

	return account
}

// SeedTransaction creates Transaction inside a test transaction.
//
// The account balance is left untouched.
func SeedTransaction(t *testing.T, tx dbpkg.SQLInterface, accountID int64, amount decimal.Decimal, kind domain.TransactionKind) domain.Transaction {
	t.Helper()

	transactionRepo := transactionrepo.NewTxRepoPGS(tx)

	transaction, err := transactionRepo.Create(context.Background(), accountID, amount, kind)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %v, %v, %v) returned error: %v",
			accountID, amount, kind, err)
	}

	return transaction
}

// SeedTransactions creates count deposits with random amounts inside a test transaction.
func SeedTransactions(t *testing.T, tx dbpkg.SQLInterface, count int, accountID int64) []domain.Transaction {
	t.Helper()

	transactions := make([]domain.Transaction, count)

	for i := range transactions {
		transactions[i] = SeedTransaction(t, tx, accountID, randompkg.MoneyAmountBetween(1, 1000), domain.Deposit)
	}

	return transactions
}
