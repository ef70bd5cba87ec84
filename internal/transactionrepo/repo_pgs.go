// Package transactionrepo manages repository layer of the transaction ledger.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/atm-ledger/internal/accountrepo"
	"github.com/go-petr/atm-ledger/internal/domain"
	"github.com/go-petr/atm-ledger/pkg/dbpkg"
	"github.com/go-petr/atm-ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an existing db transaction.
//
// Apply is not available on it.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with connection to start db transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_id, amount, kind)
VALUES
    ($1, $2, $3)
RETURNING id, account_id, amount, kind, created_at
`

// Create appends the transaction to the account's ledger and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID int64, amount decimal.Decimal, kind domain.TransactionKind) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, amount, string(kind))

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.Kind,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %v, %v, %v)", accountID, amount, kind)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return domain.Transaction{}, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return domain.Transaction{}, domain.ErrInvalidAmount
			case "transactions_kind_check":
				return domain.Transaction{}, domain.ErrInvalidTransactionKind
			}
		}

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT 
	id, account_id, amount, kind, created_at 
FROM transactions
WHERE account_id = $1
ORDER BY created_at DESC, id DESC
`

// List returns all transactions of the given account, newest first.
func (r *RepoPGS) List(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Amount,
			&t.Kind,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// Apply changes the account's balance and records the change in the ledger.
//
// Both writes happen within a single db transaction: if either fails, neither
// is persisted. The non-negative balance rule is checked by the balance update
// itself, under the row lock it takes.
func (r *RepoPGS) Apply(ctx context.Context, arg domain.ApplyTransactionParams) (domain.ApplyTransactionResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.ApplyTransactionResult

	if !arg.Kind.IsValid() {
		return result, domain.ErrInvalidTransactionKind
	}

	if arg.Amount.LessThanOrEqual(decimal.Zero) {
		return result, domain.ErrInvalidAmount
	}

	if r.conn == nil {
		l.Error().Msg("Apply called on a repo without connection")
		return result, errorspkg.ErrInternal
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := NewTxRepoPGS(tx)

	result.Account, err = accountRepo.AddBalance(ctx, arg.Kind.Delta(arg.Amount), arg.AccountID)
	if err != nil {
		return domain.ApplyTransactionResult{}, err
	}

	result.Transaction, err = transactionRepo.Create(ctx, arg.AccountID, arg.Amount, arg.Kind)
	if err != nil {
		return domain.ApplyTransactionResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.ApplyTransactionResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
