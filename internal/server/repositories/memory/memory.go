// Package memory provides map-backed repositories with the same semantics
// as the PostgreSQL ones. The DBTX arguments are ignored; each call is
// atomic under the manager's lock.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/knothost/siteapi/internal/common"
	"github.com/knothost/siteapi/internal/dbx"
	"github.com/knothost/siteapi/internal/server/models"
	"github.com/knothost/siteapi/internal/server/repositories/messages"
	"github.com/knothost/siteapi/internal/server/repositories/repomanager"
	"github.com/knothost/siteapi/internal/server/repositories/users"
)

type RepositoryManager struct {
	mu       sync.Mutex
	users    map[string]models.User // keyed by normalized email
	messages map[string]models.Message
	now      func() time.Time
}

var _ repomanager.RepositoryManager = (*RepositoryManager)(nil)

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{
		users:    make(map[string]models.User),
		messages: make(map[string]models.Message),
		now:      time.Now,
	}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *RepositoryManager) Users(dbx.DBTX) users.Repository { return (*userRepo)(m) }

func (m *RepositoryManager) Messages(dbx.DBTX) messages.Repository { return (*messageRepo)(m) }

// MessageCount returns the number of stored contact messages.
func (m *RepositoryManager) MessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

type userRepo RepositoryManager

func (r *userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[models.NormalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *userRepo) Exists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[models.NormalizeEmail(email)]
	return ok, nil
}

func (r *userRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = models.NormalizeEmail(user.Email)
	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrDuplicateKey
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := r.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.Email] = *user
	return user, nil
}

func (r *userRepo) SetResetToken(_ context.Context, email, token string) error {
	return r.update(email, func(u *models.User) { u.ResetToken = token })
}

func (r *userRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	return r.update(email, func(u *models.User) {
		u.PasswordHash = passwordHash
		u.ResetToken = ""
	})
}

// update applies fn to the stored user under the lock.
func (r *userRepo) update(email string, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := models.NormalizeEmail(email)
	u, ok := r.users[key]
	if !ok {
		return common.ErrorNotFound
	}
	fn(&u)
	u.UpdatedAt = r.now().UTC()
	r.users[key] = u
	return nil
}

type messageRepo RepositoryManager

func (r *messageRepo) Create(_ context.Context, msg *models.Message) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	now := r.now().UTC()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	r.messages[msg.ID] = *msg
	return msg, nil
}
