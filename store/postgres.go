package store

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

const documentsTable = "site_documents"

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS site_documents (
	name TEXT PRIMARY KEY,
	body JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresBackend keeps every document as one JSONB row. It is meant for
// hosts where the local disk does not survive a redeploy.
type PostgresBackend struct {
	DB *goqu.Database
}

func NewPostgresBackend(db *goqu.Database) *PostgresBackend {
	return &PostgresBackend{DB: db}
}

func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.DB.ExecContext(ctx, createDocumentsTable)
	return err
}

func (b *PostgresBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var body string
	found, err := b.DB.From(documentsTable).
		Select("body").
		Where(goqu.C("name").Eq(name)).
		ScanValContext(ctx, &body)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotExist
	}
	return []byte(body), nil
}

func (b *PostgresBackend) Save(ctx context.Context, name string, data []byte) error {
	now := time.Now().UTC()
	insert := b.DB.Insert(documentsTable).
		Rows(goqu.Record{"name": name, "body": string(data), "updated_at": now}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{"body": string(data), "updated_at": now})).
		Executor()

	_, err := insert.ExecContext(ctx)
	return err
}

// Quarantine renames the row so the next save starts a fresh document.
func (b *PostgresBackend) Quarantine(ctx context.Context, name string) (string, error) {
	target := corruptName(name)
	update := b.DB.Update(documentsTable).
		Set(goqu.Record{"name": target}).
		Where(goqu.C("name").Eq(name)).
		Executor()

	if _, err := update.ExecContext(ctx); err != nil {
		return "", err
	}
	return target, nil
}
