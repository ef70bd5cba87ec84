package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameAlreadyExists indicates that the account with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account holds the user's credential and balance.
type Account struct {
	ID             int64           `json:"id"`
	Username       string          `json:"username"`
	HashedPassword string          `json:"hashed_password"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AccountWithoutPassword is Account data excluding password data.
type AccountWithoutPassword struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// WithoutPassword returns the account with removed sensitive data.
func (a Account) WithoutPassword() AccountWithoutPassword {
	return AccountWithoutPassword{
		ID:        a.ID,
		Username:  a.Username,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}
