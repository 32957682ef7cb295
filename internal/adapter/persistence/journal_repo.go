package persistence

import (
	"context"
	"fmt"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS hashtable_operations (
		id          BIGSERIAL PRIMARY KEY,
		method      TEXT        NOT NULL,
		operation   TEXT        NOT NULL,
		value       BIGINT      NOT NULL,
		success     BOOLEAN     NOT NULL,
		slot        BIGINT      NOT NULL,
		collisions  BIGINT      NOT NULL,
		size        BIGINT      NOT NULL,
		steps       BYTEA,
		error       TEXT        NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	ALTER TABLE hashtable_operations
		ALTER COLUMN value TYPE BIGINT,
		ALTER COLUMN slot TYPE BIGINT,
		ALTER COLUMN collisions TYPE BIGINT,
		ALTER COLUMN size TYPE BIGINT;
	CREATE INDEX IF NOT EXISTS hashtable_operations_method_id
		ON hashtable_operations (method, id DESC);`

type JournalRepo struct {
	pool *pgxpool.Pool
}

func NewJournalRepo(pool *pgxpool.Pool) ports.JournalRepository {
	return &JournalRepo{pool: pool}
}

// EnsureSchema creates the journal table if it is missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create journal schema: %w", err)
	}
	return nil
}

// RecordBatch inserts records in a single round trip.
func (r *JournalRepo) RecordBatch(ctx context.Context, records []models.OperationRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO hashtable_operations (method, operation, value, success, slot, collisions, size, steps, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	batch := &pgx.Batch{}
	for _, rec := range records {
		steps, err := encodeSteps(rec.Steps)
		if err != nil {
			return fmt.Errorf("encode steps: %w", err)
		}
		batch.Queue(query, rec.Strategy, rec.Operation, rec.Key, rec.Success, rec.Index,
			rec.Collisions, rec.Capacity, steps, rec.Error, rec.CreatedAt)
	}

	return r.pool.SendBatch(ctx, batch).Close()
}

// Recent returns up to limit records for strategy, newest first.
func (r *JournalRepo) Recent(ctx context.Context, strategy string, limit int) ([]models.OperationRecord, error) {
	query := `SELECT id, method, operation, value, success, slot, collisions, size, steps, error, created_at
			  FROM hashtable_operations WHERE method = $1 ORDER BY id DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, strategy, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.OperationRecord{}
	for rows.Next() {
		var (
			rec   models.OperationRecord
			steps []byte
		)
		err := rows.Scan(&rec.ID, &rec.Strategy, &rec.Operation, &rec.Key, &rec.Success, &rec.Index,
			&rec.Collisions, &rec.Capacity, &steps, &rec.Error, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		if rec.Steps, err = decodeSteps(steps); err != nil {
			return nil, fmt.Errorf("decode steps for record %d: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close is a no-op; the pool belongs to the caller.
func (r *JournalRepo) Close() error { return nil }
