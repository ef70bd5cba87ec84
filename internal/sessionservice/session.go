package sessionservice

import (
	"context"
	"errors"

	"github.com/go-petr/atm-ledger/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Session is the in-memory view of one authenticated account.
//
// The cached balance follows the stored balance after every successful
// mutation. A Session is not safe for concurrent use.
type Session struct {
	accountID     int64
	username      string
	balance       decimal.Decimal
	authenticated bool

	accountService AccountService
	repo           Repo
}

// IsAuthenticated reports whether the session can perform account operations.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.authenticated
}

// AccountID returns the id of the session's account.
func (s *Session) AccountID() int64 {
	if !s.IsAuthenticated() {
		return 0
	}

	return s.accountID
}

// Username returns the username of the session's account.
func (s *Session) Username() string {
	if !s.IsAuthenticated() {
		return ""
	}

	return s.username
}

// Balance returns the cached balance without reading the store.
func (s *Session) Balance() decimal.Decimal {
	if !s.IsAuthenticated() {
		return decimal.Zero
	}

	return s.balance
}

func (s *Session) logger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx).With().Int64("account_id", s.accountID).Logger()
	return &l
}

// CheckBalance reads the balance from the store, refreshes the cache and returns it.
func (s *Session) CheckBalance(ctx context.Context) (decimal.Decimal, error) {
	if !s.IsAuthenticated() {
		return decimal.Zero, domain.ErrNotAuthenticated
	}

	account, err := s.accountService.Get(ctx, s.accountID)
	if err != nil {
		s.logger(ctx).Error().Err(err).Msg("cannot read balance")
		return decimal.Zero, err
	}

	s.balance = account.Balance

	return s.balance, nil
}

// Deposit adds amount to the account and records it in the ledger.
// It returns the new balance.
func (s *Session) Deposit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if !s.IsAuthenticated() {
		return decimal.Zero, domain.ErrNotAuthenticated
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	return s.apply(ctx, amount, domain.Deposit)
}

// Withdraw takes amount from the account and records it in the ledger.
// It returns the new balance.
//
// Amounts above the cached balance are rejected without touching the store.
// The store enforces the non-negative balance on its own as well.
func (s *Session) Withdraw(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if !s.IsAuthenticated() {
		return decimal.Zero, domain.ErrNotAuthenticated
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	if amount.GreaterThan(s.balance) {
		return decimal.Zero, domain.ErrInsufficientBalance
	}

	balance, err := s.apply(ctx, amount, domain.Withdraw)
	if errors.Is(err, domain.ErrInsufficientBalance) {
		// The cache was stale. Resync it so the next pre-check is accurate.
		if _, refreshErr := s.CheckBalance(ctx); refreshErr != nil {
			s.logger(ctx).Warn().Err(refreshErr).Msg("cannot refresh stale balance")
		}
	}

	return balance, err
}

func (s *Session) apply(ctx context.Context, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	l := s.logger(ctx)

	arg := domain.ApplyTransactionParams{
		AccountID: s.accountID,
		Amount:    amount,
		Kind:      kind,
	}

	result, err := s.repo.Apply(ctx, arg)
	if err != nil {
		l.Warn().Err(err).Str("kind", string(kind)).Str("amount", amount.String()).Msg("transaction rejected")
		return decimal.Zero, err
	}

	s.balance = result.Account.Balance

	l.Info().
		Int64("transaction_id", result.Transaction.ID).
		Str("kind", string(kind)).
		Str("amount", amount.String()).
		Str("balance", s.balance.String()).
		Msg("transaction applied")

	return s.balance, nil
}

// History returns the account's transactions, newest first.
func (s *Session) History(ctx context.Context) ([]domain.Transaction, error) {
	if !s.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	return s.repo.List(ctx, s.accountID)
}

// Logout ends the session and discards the cached state.
func (s *Session) Logout() error {
	if !s.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}

	*s = Session{}

	return nil
}
