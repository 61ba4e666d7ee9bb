// Package repo provides postgres access for exclusions
package repo

import (
	"context"
	"time"

	"obitwatch/internal/modkit/repokit"
	"obitwatch/internal/services/exclusions/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

const cols = `
id::text, scope::text,
COALESCE(search_key, ''), COALESCE(fingerprint_excluded, ''),
COALESCE(url_excluded, ''), COALESCE(name_excluded, ''),
COALESCE(reason, ''), created_at`

// Insert persists x unless a row already exists for the same
// (scope, search_key, fingerprint, url) tuple. The partial unique index on
// that tuple makes the ON CONFLICT a no-op for duplicates; the follow-up
// read returns whichever row won.
func (s *pg) Insert(ctx context.Context, x domain.Exclusion) (domain.Exclusion, bool, error) {
	tag, err := s.q.Exec(ctx, `
		INSERT INTO exclusions
			(id, scope, search_key, fingerprint_excluded, url_excluded, name_excluded, reason, created_at)
		VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), $8)
		ON CONFLICT (scope, (COALESCE(search_key,'')), (COALESCE(fingerprint_excluded,'')), (COALESCE(url_excluded,'')))
		DO NOTHING`,
		x.ID, string(x.Scope), x.SearchKey, x.Fingerprint, x.URL, x.Name, x.Reason, x.CreatedAt,
	)
	if err != nil {
		return domain.Exclusion{}, false, err
	}
	isNew := tag.RowsAffected() > 0
	if isNew {
		return x, true, nil
	}

	row := s.q.QueryRow(ctx, `
		SELECT `+cols+`
		FROM exclusions
		WHERE scope = $1
		  AND COALESCE(search_key,'') = $2
		  AND COALESCE(fingerprint_excluded,'') = $3
		  AND COALESCE(url_excluded,'') = $4`,
		string(x.Scope), x.SearchKey, x.Fingerprint, x.URL,
	)
	got, err := scanOne(row)
	if err != nil {
		return domain.Exclusion{}, false, err
	}
	return got, false, nil
}

// Delete removes one exclusion by id
func (s *pg) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM exclusions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// FindMatching returns the per-query exclusion for (searchKey, fingerprint)
func (s *pg) FindMatching(ctx context.Context, searchKey, fp string) (domain.Exclusion, bool, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+cols+`
		FROM exclusions
		WHERE scope = 'per-query' AND search_key = $1 AND fingerprint_excluded = $2
		LIMIT 1`,
		searchKey, fp,
	)
	if err != nil {
		return domain.Exclusion{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return domain.Exclusion{}, false, rows.Err()
	}
	x, err := scanRow(rows)
	return x, err == nil, err
}

// ForSearchKey returns per-query exclusions scoped to searchKey
func (s *pg) ForSearchKey(ctx context.Context, searchKey string) ([]domain.Exclusion, error) {
	return s.list(ctx, `
		SELECT `+cols+`
		FROM exclusions
		WHERE scope = 'per-query' AND search_key = $1
		ORDER BY created_at DESC`, searchKey)
}

// Global returns every global-scope exclusion
func (s *pg) Global(ctx context.Context) ([]domain.Exclusion, error) {
	return s.list(ctx, `
		SELECT `+cols+`
		FROM exclusions
		WHERE scope = 'global'
		ORDER BY created_at DESC`)
}

// All returns every exclusion, newest first
func (s *pg) All(ctx context.Context) ([]domain.Exclusion, error) {
	return s.list(ctx, `
		SELECT `+cols+`
		FROM exclusions
		ORDER BY created_at DESC`)
}

// Stats counts rows by scope and rule kind
func (s *pg) Stats(ctx context.Context) (domain.Stats, error) {
	row := s.q.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE scope = 'per-query'),
			count(*) FILTER (WHERE scope = 'global'),
			count(*) FILTER (WHERE url_excluded IS NOT NULL),
			count(*) FILTER (WHERE fingerprint_excluded IS NOT NULL)
		FROM exclusions`)
	var st domain.Stats
	if err := row.Scan(&st.Total, &st.PerQuery, &st.Global, &st.WithURL, &st.WithFinger); err != nil {
		return domain.Stats{}, err
	}
	return st, nil
}

func (s *pg) list(ctx context.Context, sql string, args ...any) ([]domain.Exclusion, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Exclusion
	for rows.Next() {
		x, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanRow(r scanner) (domain.Exclusion, error) {
	var x domain.Exclusion
	var scope string
	var created time.Time
	if err := r.Scan(&x.ID, &scope, &x.SearchKey, &x.Fingerprint, &x.URL, &x.Name, &x.Reason, &created); err != nil {
		return domain.Exclusion{}, err
	}
	x.Scope = domain.Scope(scope)
	x.CreatedAt = created.UTC()
	return x, nil
}

func scanOne(r repokit.Row) (domain.Exclusion, error) { return scanRow(r) }
