// Package services contains server-side business logic. This file implements
// UserService: signup, login, password reset and token-based identity lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/knothost/siteapi/internal/common"
	"github.com/knothost/siteapi/internal/logging"
	"github.com/knothost/siteapi/internal/server/auth"
	"github.com/knothost/siteapi/internal/server/models"
	"github.com/knothost/siteapi/internal/server/repositories/repomanager"
)

// SignupInput is the data required to create an account.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.Hasher
	tokens      auth.TokenIssuer
	mailer      Mailer
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	hasher auth.Hasher,
	tokens auth.TokenIssuer,
	mailer Mailer,
	logger logging.Logger,
) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		mailer:      mailer,
		logger:      logger.With("module", "users"),
	}
}

// Signup creates a verified account and sends a confirmation email.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = models.NormalizeEmail(in.Email)

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, common.NewValidationError("First name, last name, email, and password are required")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error(ctx, "hash password", "error", err)
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Verified:     true,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateKey) {
			return nil, common.ErrDuplicateAccount
		}
		s.logger.Error(ctx, "create user", "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.mailer.SendConfirmation(ctx, user.Email); err != nil {
		s.logger.Warn(ctx, "confirmation email failed", "to", user.Email, "error", err)
	}
	s.logger.Info(ctx, "user signed up", "user_id", user.ID)

	return user, nil
}

// Login checks credentials and returns a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyDigest())
			return "", common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "find user", "error", err)
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.logger.Error(ctx, "issue token", "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}

// EmailExists reports whether an account is registered for email.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}

	ok, err := s.repomanager.Users(s.db).Exists(ctx, email)
	if err != nil {
		s.logger.Error(ctx, "check email", "error", err)
		return false, common.ErrorInternal
	}
	return ok, nil
}

// ForgotPassword stores a fresh reset token and mails it when the account
// exists. The result does not reveal whether it did.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	if email == "" {
		return common.NewValidationError("Email required")
	}

	token, err := common.MakeRandHexString(common.ResetTokenSize)
	if err != nil {
		s.logger.Error(ctx, "generate reset token", "error", err)
		return common.ErrorInternal
	}

	// Only the token column is written, so a concurrent reset keeps its hash.
	if err := s.repomanager.Users(s.db).SetResetToken(ctx, email, token); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		s.logger.Error(ctx, "save reset token", "error", err)
		return common.ErrorInternal
	}

	if err := s.mailer.SendPasswordReset(ctx, email, token); err != nil {
		s.logger.Warn(ctx, "reset email failed", "to", email, "error", err)
	}
	return nil
}

// ResetPassword replaces the password of the account and clears any
// pending reset token.
func (s *UserService) ResetPassword(ctx context.Context, email, password string) error {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return common.NewValidationError("Email and password required")
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "hash password", "error", err)
		return common.ErrorInternal
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrAccountNotFound
		}
		s.logger.Error(ctx, "reset password", "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "password reset", "email", email)
	return nil
}

// WhoAmI resolves a session token to its account.
func (s *UserService) WhoAmI(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	email, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "error", err)
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "find user", "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

// dummyDigest is compared against on unknown-email logins so that path
// costs one bcrypt comparison like the real one.
func (s *UserService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("knothost-dummy-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return common.NewValidationError("Invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) > auth.MaxPasswordBytes {
		return common.NewValidationError(fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes))
	}
	return nil
}
