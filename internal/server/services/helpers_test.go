package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/knothost/siteapi/internal/dbx"
	"github.com/knothost/siteapi/internal/logging"
	"github.com/knothost/siteapi/internal/server/auth"
	"github.com/knothost/siteapi/internal/server/models"
	"github.com/knothost/siteapi/internal/server/repositories/memory"
	"github.com/knothost/siteapi/internal/server/repositories/messages"
	"github.com/knothost/siteapi/internal/server/repositories/repomanager"
	"github.com/knothost/siteapi/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var errDB = errors.New("db error: connection refused")

// hookManager wraps a repository manager and runs a callback right before
// the first reset-token or password write reaches the store.
type hookManager struct {
	*memory.RepositoryManager
	beforeSetToken       func()
	beforeUpdatePassword func()
}

func (m *hookManager) Users(db dbx.DBTX) users.Repository {
	return &hookUsers{Repository: m.RepositoryManager.Users(db), m: m}
}

type hookUsers struct {
	users.Repository
	m *hookManager
}

func (u *hookUsers) SetResetToken(ctx context.Context, email, token string) error {
	if fn := u.m.beforeSetToken; fn != nil {
		u.m.beforeSetToken = nil
		fn()
	}
	return u.Repository.SetResetToken(ctx, email, token)
}

func (u *hookUsers) UpdatePassword(ctx context.Context, email, hash string) error {
	if fn := u.m.beforeUpdatePassword; fn != nil {
		u.m.beforeUpdatePassword = nil
		fn()
	}
	return u.Repository.UpdatePassword(ctx, email, hash)
}

type sentMail struct {
	to, kind, token string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendConfirmation(_ context.Context, to string) error {
	f.sent = append(f.sent, sentMail{to: to, kind: "confirm"})
	return f.err
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, to, token string) error {
	f.sent = append(f.sent, sentMail{to: to, kind: "reset", token: token})
	return f.err
}

// failingUsers returns err from every call.
type failingUsers struct{ err error }

func (f failingUsers) FindByEmail(context.Context, string) (*models.User, error) { return nil, f.err }
func (f failingUsers) Exists(context.Context, string) (bool, error)               { return false, f.err }
func (f failingUsers) Create(context.Context, *models.User) (*models.User, error) {
	return nil, f.err
}
func (f failingUsers) SetResetToken(context.Context, string, string) error  { return f.err }
func (f failingUsers) UpdatePassword(context.Context, string, string) error { return f.err }

type failingMessages struct{ err error }

func (f failingMessages) Create(context.Context, *models.Message) (*models.Message, error) {
	return nil, f.err
}

type failingManager struct{ err error }

func (m failingManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m failingManager) Users(dbx.DBTX) users.Repository             { return failingUsers{m.err} }
func (m failingManager) Messages(dbx.DBTX) messages.Repository       { return failingMessages{m.err} }

func newTestUserService(db *sql.DB, rm repomanager.RepositoryManager, mailer Mailer) (*UserService, *auth.JWTIssuer) {
	tokens := auth.NewJWTIssuer([]byte("test-secret"), time.Hour)
	s := NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), tokens, mailer, logging.Nop())
	return s, tokens
}
