// Package postgres implements the point store on PostgreSQL via the pgx
// stdlib driver. It backs the "cloud" build target.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/grest/greenspace-server/internal/model"
	"github.com/grest/greenspace-server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database, applies the schema, and returns a store.Store.
func New(dsn string) (store.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &pgStore{db: db}, nil
}

// NewWithDB wraps an existing connection without touching the schema.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

const schemaDDL = `
CREATE TABLE IF NOT EXISTS points (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL DEFAULT '',
    coordinates TEXT NOT NULL DEFAULT '',
    date        TEXT NOT NULL DEFAULT '',
    accuration  TEXT NOT NULL DEFAULT '',
    photo_url   TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL DEFAULT '',
    updated_at  TEXT NOT NULL DEFAULT '',
    user_id     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_points_created_at ON points (created_at);
`

type pgStore struct{ db *sql.DB }

func (s *pgStore) Points() store.Points { return &points{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *pgStore) Close() error { return s.db.Close() }

type points struct{ db *sql.DB }

const pointColumns = `id, name, coordinates, date, accuration, photo_url, created_at, updated_at, user_id`

func (p *points) Create(ctx context.Context, in *model.Point) (*model.Point, error) {
	out := *in
	out.ID = store.NewPointID()
	out.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	_, err := p.db.ExecContext(ctx, `
        INSERT INTO points (`+pointColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, out.ID, out.Name, out.Coordinates, out.Date, out.Accuration, out.PhotoURL, out.CreatedAt, out.UpdatedAt, out.UserID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *points) Get(ctx context.Context, id string) (*model.Point, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+pointColumns+` FROM points WHERE id=$1`, id)
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
            name        = COALESCE($1, name),
            coordinates = COALESCE($2, coordinates),
            date        = COALESCE($3, date),
            accuration  = COALESCE($4, accuration),
            photo_url   = COALESCE($5, photo_url),
            updated_at  = $6
        WHERE id = $7
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
	_, err := p.db.ExecContext(ctx, `DELETE FROM points WHERE id=$1`, id)
	return err
}
