package snapshot

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/b2bnews/pkg/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the schema needed by the Postgres backend.
func Migrations() fs.FS {
	sub, _ := fs.Sub(migrations, "migrations")
	return sub
}

// Postgres stores snapshots as jsonb rows keyed by collection name.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres applies the snapshot migrations and returns the backend.
// Close closes the pool.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool, migrationsTable string, log *slog.Logger) (*Postgres, error) {
	if err := db.Migrate(ctx, pool, Migrations(), migrationsTable, log); err != nil {
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

const (
	selectSnapshot = `SELECT data FROM snapshots WHERE key = $1`
	upsertSnapshot = `INSERT INTO snapshots (key, data, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	var data []byte
	err := p.pool.QueryRow(ctx, selectSnapshot, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	return data, nil
}

func (p *Postgres) Save(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, upsertSnapshot, key, string(data)); err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
