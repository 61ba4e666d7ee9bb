// Package repo provides postgres access for the search engine's persisted
// nickname variants. The code-seeded table in core/normalize is always
// sufficient on its own; this augmentation just folds in pairs operators
// have added since.
package repo

import (
	"context"

	"obitwatch/internal/modkit/repokit"
)

// VariantPair is one persisted first-name equivalence
type VariantPair struct {
	Name    string
	Variant string
}

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Variants] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Variants { return &pg{q: q} }

// Variants reads the name_first_variant table
type Variants interface {
	Pairs(ctx context.Context) ([]VariantPair, error)
}

type pg struct{ q repokit.Queryer }

// Pairs returns every persisted nickname pair
func (s *pg) Pairs(ctx context.Context) ([]VariantPair, error) {
	rows, err := s.q.Query(ctx, `SELECT name_first, name_variant FROM name_first_variant`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VariantPair
	for rows.Next() {
		var p VariantPair
		if err := rows.Scan(&p.Name, &p.Variant); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
