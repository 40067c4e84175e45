package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleared-dev/mayores/internal/model"
)

// CatalogStore persists the shared chart of accounts.
type CatalogStore struct {
	db *DB
}

// List returns every stored account in insertion order.
func (s *CatalogStore) List(ctx context.Context) ([]model.CatalogEntry, error) {
	rows, err := s.db.db.QueryContext(ctx,
		`SELECT cuenta, clasificacion, descripcion FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []model.CatalogEntry
	for rows.Next() {
		var (
			e     model.CatalogEntry
			class string
		)
		if err := rows.Scan(&e.Name, &class, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		e.Classification = model.ParseClassification(class)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return out, nil
}

// Add stores a new account. A name that already exists, in any casing, is
// left untouched and the call still succeeds.
func (s *CatalogStore) Add(ctx context.Context, e model.CatalogEntry) error {
	if e.Name == "" {
		return errors.New("adding account: name is required")
	}
	_, err := s.db.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO accounts (cuenta, clasificacion, descripcion) VALUES (?, ?, ?)`,
		e.Name, string(e.Classification), e.Description)
	if err != nil {
		return fmt.Errorf("adding account %q: %w", e.Name, err)
	}
	return nil
}

// Update overwrites the classification and description of an existing account.
func (s *CatalogStore) Update(ctx context.Context, e model.CatalogEntry) error {
	res, err := s.db.db.ExecContext(ctx,
		`UPDATE accounts SET clasificacion = ?, descripcion = ? WHERE cuenta = ?`,
		string(e.Classification), e.Description, e.Name)
	if err != nil {
		return fmt.Errorf("updating account %q: %w", e.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating account %q: %w", e.Name, err)
	}
	if n == 0 {
		return fmt.Errorf("account %q: %w", e.Name, ErrNotFound)
	}
	return nil
}

// Seed adds entries in one transaction, skipping names already present.
func (s *CatalogStore) Seed(ctx context.Context, entries []model.CatalogEntry) error {
	return s.db.transaction(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO accounts (cuenta, clasificacion, descripcion) VALUES (?, ?, ?)`,
				e.Name, string(e.Classification), e.Description); err != nil {
				return fmt.Errorf("seeding account %q: %w", e.Name, err)
			}
		}
		return nil
	})
}
