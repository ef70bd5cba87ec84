// Package sessionservice manages the authenticated account session and the
// deposit and withdrawal orchestration on top of it.
package sessionservice

import (
	"context"

	"github.com/go-petr/atm-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// AccountService provides account business logic needed by session service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type AccountService interface {
	Register(ctx context.Context, username, password string) (domain.AccountWithoutPassword, error)
	Authenticate(ctx context.Context, username, password string) (domain.AccountWithoutPassword, error)
	Get(ctx context.Context, id int64) (domain.AccountWithoutPassword, error)
}

// Repo provides ledger data access layer interface needed by session service layer.
type Repo interface {
	Apply(ctx context.Context, arg domain.ApplyTransactionParams) (domain.ApplyTransactionResult, error)
	List(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Service facilitates registration and login.
type Service struct {
	accountService AccountService
	repo           Repo
}

// New returns session service struct to manage session bussines logic.
func New(as AccountService, tr Repo) *Service {
	return &Service{
		accountService: as,
		repo:           tr,
	}
}

// Register creates an account. The caller stays anonymous.
func (s *Service) Register(ctx context.Context, username, password string) (domain.AccountWithoutPassword, error) {
	return s.accountService.Register(ctx, username, password)
}

// Login authenticates the account and returns a session caching its balance.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accountService.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	l.Info().Int64("account_id", account.ID).Msg("logged in")

	return &Session{
		accountID:      account.ID,
		username:       account.Username,
		balance:        account.Balance,
		authenticated:  true,
		accountService: s.accountService,
		repo:           s.repo,
	}, nil
}
