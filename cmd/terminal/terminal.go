// Package terminal wires the ATM layers together behind a text terminal.
package terminal

import (
	"database/sql"
	"io"

	"github.com/rs/zerolog"

	"github.com/go-petr/atm-ledger/internal/accountrepo"
	"github.com/go-petr/atm-ledger/internal/accountservice"
	"github.com/go-petr/atm-ledger/internal/clidelivery"
	"github.com/go-petr/atm-ledger/internal/sessionservice"
	"github.com/go-petr/atm-ledger/internal/transactionrepo"
)

// Terminal holds db connection and the services behind the menu.
type Terminal struct {
	DB      *sql.DB
	Service *sessionservice.Service
	logger  zerolog.Logger
}

// New creates Terminal with instantiated repositories and services.
func New(conn *sql.DB, logger zerolog.Logger) *Terminal {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	sessionService := sessionservice.New(accountService, transactionRepo)

	return &Terminal{
		DB:      conn,
		Service: sessionService,
		logger:  logger,
	}
}

// Handler returns a menu handler reading from in and writing to out.
//
// Each handler keeps its own session.
func (t *Terminal) Handler(in io.Reader, out io.Writer) *clidelivery.Handler {
	return clidelivery.NewHandler(t.Service, t.logger, in, out)
}
