// Package sqlite implements the point store on a local SQLite database.
// It is the default driver for the "local" build target.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"

	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/store"
)

//go:embed schema.sql
var schemaDDL string

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode. ":memory:" is accepted for tests.
func Open(path string) (*sql.DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// a second pooled connection would see a fresh empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database, applies the schema, and returns a store.Store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

// NewWithDB wraps an existing connection without touching the schema.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Points() store.Points { return &points{db: s.db} }

func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close() error { return s.db.Close() }

type points struct{ db *sql.DB }

const pointColumns = `id, name, coordinates, date, accuration, photo_url, created_at, updated_at, user_id`

func (p *points) Create(ctx context.Context, in *model.Point) (*model.Point, error) {
	out := *in
	out.ID = store.NewPointID()
	out.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	_, err := p.db.ExecContext(ctx, `
        INSERT INTO points (`+pointColumns+`)
        VALUES (?,?,?,?,?,?,?,?,?)
    `, out.ID, out.Name, out.Coordinates, out.Date, out.Accuration, out.PhotoURL, out.CreatedAt, out.UpdatedAt, out.UserID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *points) Get(ctx context.Context, id string) (*model.Point, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+pointColumns+` FROM points WHERE id=?`, id)
	return scanPoint(row)
}

func (p *points) List(ctx context.Context) ([]model.Point, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+pointColumns+` FROM points ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Point
	for rows.Next() {
		var pt model.Point
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Coordinates, &pt.Date, &pt.Accuration, &pt.PhotoURL, &pt.CreatedAt, &pt.UpdatedAt, &pt.UserID); err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, rows.Err()
}

func (p *points) Update(ctx context.Context, id string, patch model.PointPatch) (*model.Point, error) {
	updatedAt := time.Now().UTC().Format(time.RFC3339)
	res, err := p.db.ExecContext(ctx, `
        UPDATE points SET
            name        = COALESCE(?, name),
            coordinates = COALESCE(?, coordinates),
            date        = COALESCE(?, date),
            accuration  = COALESCE(?, accuration),
            photo_url   = COALESCE(?, photo_url),
            updated_at  = ?
        WHERE id = ?
    `, patch.Name, patch.Coordinates, patch.Date, patch.Accuration, patch.PhotoURL, updatedAt, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, id)
}

func (p *points) Delete(ctx context.Context, id string) error {
	// Idempotent: affecting zero rows is success.
	_, err := p.db.ExecContext(ctx, `DELETE FROM points WHERE id=?`, id)
	return err
}

func scanPoint(row *sql.Row) (*model.Point, error) {
	var pt model.Point
	err := row.Scan(&pt.ID, &pt.Name, &pt.Coordinates, &pt.Date, &pt.Accuration, &pt.PhotoURL, &pt.CreatedAt, &pt.UpdatedAt, &pt.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pt, nil
}
