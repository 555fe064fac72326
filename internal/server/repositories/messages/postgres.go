package messages

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/knothost/siteapi/internal/dbx"
	"github.com/knothost/siteapi/internal/server/models"
)

type PostgresRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (id, name, email, phone, details, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	now := r.now().UTC()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	phone := sql.NullString{String: msg.Phone, Valid: msg.Phone != ""}

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, phone, msg.Details, msg.CreatedAt, msg.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}
