// Package repo provides postgres access for batch records
package repo

import (
	"context"
	"time"

	"obitwatch/internal/modkit/repokit"
	"obitwatch/internal/services/batch/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

const cols = `id::text, COALESCE(input_file, ''), created_at, total_queries, total_results`

// Insert persists one batch record
func (s *pg) Insert(ctx context.Context, b domain.Batch) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO batches (id, input_file, created_at, total_queries, total_results)
		VALUES ($1, NULLIF($2,''), $3, $4, $5)`,
		b.ID, b.InputFile, b.CreatedAt.UTC(), b.TotalQueries, b.TotalResults,
	)
	return err
}

// Get returns one batch by id
func (s *pg) Get(ctx context.Context, id string) (domain.Batch, bool, error) {
	return s.one(ctx, `SELECT `+cols+` FROM batches WHERE id = $1`, id)
}

// Latest returns the most recent batch
func (s *pg) Latest(ctx context.Context) (domain.Batch, bool, error) {
	return s.one(ctx, `SELECT `+cols+` FROM batches ORDER BY created_at DESC LIMIT 1`)
}

// List returns recent batches, newest first
func (s *pg) List(ctx context.Context, limit int) ([]domain.Batch, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+cols+` FROM batches ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Batch
	for rows.Next() {
		var b domain.Batch
		var created time.Time
		if err := rows.Scan(&b.ID, &b.InputFile, &created, &b.TotalQueries, &b.TotalResults); err != nil {
			return nil, err
		}
		b.CreatedAt = created.UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *pg) one(ctx context.Context, sql string, args ...any) (domain.Batch, bool, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return domain.Batch{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return domain.Batch{}, false, rows.Err()
	}

	var b domain.Batch
	var created time.Time
	if err := rows.Scan(&b.ID, &b.InputFile, &created, &b.TotalQueries, &b.TotalResults); err != nil {
		return domain.Batch{}, false, err
	}
	b.CreatedAt = created.UTC()
	return b, true, nil
}
