// Package session persists the CLI's login between runs in a local SQLite
// database.
package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/knothost/siteapi/internal/client/migrations"
	"github.com/knothost/siteapi/internal/client/repositories/metadata"
	"github.com/knothost/siteapi/internal/dbx"
	"github.com/knothost/siteapi/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const (
	keyEmail = "session_email"
	keyToken = "session_token"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite file at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session db migration: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns the saved session; both values are empty when none is saved.
func (s *Store) Load(ctx context.Context) (email, token string, err error) {
	repo := metadata.NewSQLiteRepository(s.db)

	e, err := repo.Get(ctx, keyEmail)
	if err != nil {
		return "", "", err
	}
	t, err := repo.Get(ctx, keyToken)
	if err != nil {
		return "", "", err
	}
	return string(e), string(t), nil
}

func (s *Store) Save(ctx context.Context, email, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyEmail, []byte(email)); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, []byte(token))
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Clear(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
