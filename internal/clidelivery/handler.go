// Package clidelivery manages the text menu delivery layer of the ATM.
package clidelivery

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-petr/atm-ledger/internal/domain"
	"github.com/go-petr/atm-ledger/internal/middleware"
	"github.com/go-petr/atm-ledger/internal/sessionservice"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service provides service layer interface needed by cli delivery layer.
type Service interface {
	Register(ctx context.Context, username, password string) (domain.AccountWithoutPassword, error)
	Login(ctx context.Context, username, password string) (*sessionservice.Session, error)
}

// Handler runs the ATM menu loop for one terminal.
//
// It owns the terminal's session for the lifetime of the loop.
type Handler struct {
	service  Service
	logger   zerolog.Logger
	validate *validator.Validate

	in  *bufio.Scanner
	out io.Writer

	session *sessionservice.Session
}

// NewHandler returns cli handler reading commands from in and writing to out.
func NewHandler(s Service, logger zerolog.Logger, in io.Reader, out io.Writer) *Handler {
	return &Handler{
		service:  s,
		logger:   logger,
		validate: newValidator(),
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

type credentialsForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type amountForm struct {
	Amount string `validate:"required,amount,cents"`
}

// errExit stops the menu loop.
var errExit = errors.New("exit")

// Run shows the menu until the user exits or the input ends.
func (h *Handler) Run(ctx context.Context) error {
	for {
		var err error
		if h.session.IsAuthenticated() {
			err = h.accountMenu(ctx)
		} else {
			err = h.mainMenu(ctx)
		}

		if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func (h *Handler) mainMenu(ctx context.Context) error {
	h.println("\n--- ATM Management System ---")
	h.println("1. Register")
	h.println("2. Login")
	h.println("3. Exit")

	choice, err := h.prompt("Choose an option: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return h.run(ctx, "register", h.register)
	case "2":
		return h.run(ctx, "login", h.login)
	case "3":
		h.println("Goodbye!")
		return errExit
	default:
		h.println("Invalid choice. Try again.")
		return nil
	}
}

func (h *Handler) accountMenu(ctx context.Context) error {
	h.printf("\n--- Welcome, %s ---\n", h.session.Username())
	h.println("1. Check Balance")
	h.println("2. Deposit")
	h.println("3. Withdraw")
	h.println("4. Transaction History")
	h.println("5. Logout")

	choice, err := h.prompt("Choose an option: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return h.run(ctx, "check_balance", h.checkBalance)
	case "2":
		return h.run(ctx, "deposit", h.deposit)
	case "3":
		return h.run(ctx, "withdraw", h.withdraw)
	case "4":
		return h.run(ctx, "history", h.history)
	case "5":
		return h.run(ctx, "logout", h.logout)
	default:
		h.println("Invalid choice. Try again.")
		return nil
	}
}

// run executes the command and prints its error, if any. Only input errors
// are returned to stop the loop.
func (h *Handler) run(ctx context.Context, name string, fn middleware.CommandFunc) error {
	err := middleware.CommandLogger(ctx, h.logger, name, fn)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return err
	}

	// The account is gone, the session cannot be used anymore.
	if errors.Is(err, domain.ErrAccountNotFound) {
		h.session = nil
	}

	h.println(errorMessage(name, err))

	return nil
}

func (h *Handler) register(ctx context.Context) error {
	form, err := h.readCredentials()
	if err != nil {
		return err
	}

	if err := h.validate.Struct(form); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		return domain.ErrValidation
	}

	if _, err := h.service.Register(ctx, form.Username, form.Password); err != nil {
		return err
	}

	h.println("Registration successful!")

	return nil
}

func (h *Handler) login(ctx context.Context) error {
	form, err := h.readCredentials()
	if err != nil {
		return err
	}

	sess, err := h.service.Login(ctx, form.Username, form.Password)
	if err != nil {
		return err
	}

	h.session = sess
	h.println("Login successful!")

	return nil
}

func (h *Handler) checkBalance(ctx context.Context) error {
	balance, err := h.session.CheckBalance(ctx)
	if err != nil {
		return err
	}

	h.printf("Your current balance is: $%s\n", balance.StringFixed(2))

	return nil
}

func (h *Handler) deposit(ctx context.Context) error {
	amount, err := h.readAmount(ctx, "Enter deposit amount: ")
	if err != nil {
		return err
	}

	balance, err := h.session.Deposit(ctx, amount)
	if err != nil {
		return err
	}

	h.printf("Deposited $%s. New balance: $%s\n", amount.StringFixed(2), balance.StringFixed(2))

	return nil
}

func (h *Handler) withdraw(ctx context.Context) error {
	amount, err := h.readAmount(ctx, "Enter withdrawal amount: ")
	if err != nil {
		return err
	}

	balance, err := h.session.Withdraw(ctx, amount)
	if err != nil {
		return err
	}

	h.printf("Withdrew $%s. New balance: $%s\n", amount.StringFixed(2), balance.StringFixed(2))

	return nil
}

func (h *Handler) history(ctx context.Context) error {
	transactions, err := h.session.History(ctx)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		h.println("No transactions found.")
		return nil
	}

	h.println("Transaction History:")

	for _, t := range transactions {
		kind := string(t.Kind)
		h.printf("%s - %s: $%s\n",
			t.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			strings.ToUpper(kind[:1])+kind[1:],
			t.Amount.StringFixed(2),
		)
	}

	return nil
}

func (h *Handler) logout(_ context.Context) error {
	if err := h.session.Logout(); err != nil {
		return err
	}

	h.session = nil
	h.println("Logged out successfully.")

	return nil
}

func (h *Handler) readCredentials() (credentialsForm, error) {
	var (
		form credentialsForm
		err  error
	)

	if form.Username, err = h.prompt("Enter username: "); err != nil {
		return form, err
	}

	if form.Password, err = h.prompt("Enter password: "); err != nil {
		return form, err
	}

	return form, nil
}

var (
	// errNotANumber indicates amount input that cannot be parsed.
	errNotANumber = errors.New("not a number")
	// errTooManyDecimals indicates amount input finer than a cent.
	errTooManyDecimals = errors.New("too many decimal places")
)

func (h *Handler) readAmount(ctx context.Context, label string) (decimal.Decimal, error) {
	input, err := h.prompt(label)
	if err != nil {
		return decimal.Zero, err
	}

	form := amountForm{Amount: input}
	if err := h.validate.Struct(form); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "cents" {
			return decimal.Zero, errTooManyDecimals
		}

		return decimal.Zero, errNotANumber
	}

	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		return decimal.Zero, errNotANumber
	}

	return amount, nil
}

// prompt prints label and returns the next trimmed input line.
func (h *Handler) prompt(label string) (string, error) {
	fmt.Fprint(h.out, label)

	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return strings.TrimSpace(h.in.Text()), nil
}

func (h *Handler) println(s string) {
	fmt.Fprintln(h.out, s)
}

func (h *Handler) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.out, format, args...)
}
