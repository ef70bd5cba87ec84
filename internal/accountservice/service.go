// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"errors"
	"sync"

	"github.com/go-petr/atm-ledger/internal/domain"
	"github.com/go-petr/atm-ledger/pkg/errorspkg"
	"github.com/go-petr/atm-ledger/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, username, hashedPassword string) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// dummyHash is compared against on unknown usernames so that both failed
// login paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, err := passpkg.Hash("unknown-username")
	if err != nil {
		panic(err)
	}
	return h
})

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Register creates the account with zero balance.
//
// It does not authenticate the caller.
func (s *Service) Register(ctx context.Context, username, password string) (domain.AccountWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.AccountWithoutPassword

	if username == "" {
		return result, domain.ErrEmptyUsername
	}

	if password == "" {
		return result, domain.ErrEmptyPassword
	}

	if len(password) > passpkg.MaxLength {
		return result, domain.ErrPasswordTooLong
	}

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	account, err := s.repo.Create(ctx, username, hashedPassword)
	if err != nil {
		return result, err
	}

	l.Info().Int64("account_id", account.ID).Str("username", account.Username).Msg("account registered")

	return account.WithoutPassword(), nil
}

// Authenticate returns the account if the password is valid for the given username.
//
// Unknown username and wrong password both result in ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.AccountWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.AccountWithoutPassword

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			passpkg.Verify(password, dummyHash())
			l.Info().Str("username", username).Msg("login for unknown username")
			return result, domain.ErrInvalidCredentials
		}

		return result, err
	}

	if !passpkg.Verify(password, account.HashedPassword) {
		l.Info().Str("username", username).Msg("login with wrong password")
		return result, domain.ErrInvalidCredentials
	}

	return account.WithoutPassword(), nil
}

// Get returns the account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.AccountWithoutPassword, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.AccountWithoutPassword{}, err
	}

	return account.WithoutPassword(), nil
}
