package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Augustwise/fullstack-task-manager/internal/auth"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	model "github.com/Augustwise/fullstack-task-manager/internal/models"
	repository "github.com/Augustwise/fullstack-task-manager/internal/repositories"
)

type AuthService struct {
	accounts *repository.AccountRepository
	hasher   *auth.PasswordHasher
	logger   *slog.Logger
}

func NewAuthService(accounts *repository.AccountRepository, hasher *auth.PasswordHasher, logger *slog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		logger:   logger,
	}
}

// Register creates an account. The Cyrillic rule is checked before
// anything else, so it wins over a duplicate email.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.Account, error) {
	if auth.ContainsCyrillic(password) {
		return nil, apperrors.ErrCyrillicPassword
	}
	if email == "" || password == "" {
		return nil, apperrors.ErrEmailRequired
	}

	n, err := s.accounts.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		s.logger.WarnContext(ctx, "signup rejected, email already registered", "email", email)
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return s.accounts.Create(ctx, email, hash)
}

// Authenticate tells an unknown email (ErrAccountNotFound) apart from a
// wrong password (ErrWrongPassword).
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			s.logger.WarnContext(ctx, "login failed, email not found", "email", email)
		}
		return nil, err
	}

	if !s.hasher.Compare(account.PasswordHash, password) {
		s.logger.WarnContext(ctx, "login failed, invalid password", "account_id", account.ID)
		return nil, apperrors.ErrWrongPassword
	}

	return account, nil
}
