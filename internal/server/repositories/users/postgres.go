package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/knothost/siteapi/internal/common"
	"github.com/knothost/siteapi/internal/dbx"
	"github.com/knothost/siteapi/internal/server/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, email, first_name, last_name, password_hash, verified, reset_token, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id
		 `

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = models.NormalizeEmail(user.Email)
	now := r.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.Verified, nullString(user.ResetToken), user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		// ON CONFLICT DO NOTHING yields no row when the email is taken.
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return nil, common.ErrDuplicateKey
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, first_name, last_name, password_hash, verified, reset_token, created_at, updated_at
		 FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	var resetToken sql.NullString

	err := r.db.QueryRowContext(ctx, query, models.NormalizeEmail(email)).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.PasswordHash,
		&user.Verified, &resetToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ResetToken = resetToken.String
	return user, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, models.NormalizeEmail(email)).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, email, token string) error {
	query :=
		`UPDATE users
		 SET reset_token = $2, updated_at = $3
		 WHERE email = $1
		 `

	return r.updateOne(ctx, query, models.NormalizeEmail(email), nullString(token), r.now().UTC())
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	query :=
		`UPDATE users
		 SET password_hash = $2, reset_token = NULL, updated_at = $3
		 WHERE email = $1
		 `

	return r.updateOne(ctx, query, models.NormalizeEmail(email), passwordHash, r.now().UTC())
}

// updateOne runs a single-row UPDATE, mapping "no row matched" to
// common.ErrorNotFound.
func (r *PostgresRepository) updateOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
