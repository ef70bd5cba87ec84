package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the type of balance change.
type TransactionKind string

// Supported transaction kinds.
const (
	Deposit  TransactionKind = "deposit"
	Withdraw TransactionKind = "withdraw"
)

// IsValid reports whether k is a known kind.
func (k TransactionKind) IsValid() bool {
	return k == Deposit || k == Withdraw
}

// Delta returns the signed balance change caused by amount of kind k.
func (k TransactionKind) Delta(amount decimal.Decimal) decimal.Decimal {
	if k == Withdraw {
		return amount.Neg()
	}

	return amount
}

// Transaction is an immutable ledger record of a balance change.
type Transaction struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"` // always positive
	Kind      TransactionKind `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}

// ApplyTransactionParams is the input data for the apply transaction.
type ApplyTransactionParams struct {
	AccountID int64
	Amount    decimal.Decimal
	Kind      TransactionKind
}

// ApplyTransactionResult is the result of the apply transaction.
type ApplyTransactionResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}
