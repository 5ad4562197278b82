package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/sakila-admin/internal/model"
)

// LanguageRepo reads the language reference table used by the film forms.
type LanguageRepo struct {
	db *sql.DB
}

func NewLanguageRepo(db *sql.DB) *LanguageRepo {
	return &LanguageRepo{db: db}
}

// List returns all languages ordered by id.
func (r *LanguageRepo) List(ctx context.Context) ([]model.Language, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT language_id, name FROM language ORDER BY language_id")
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()

	out := []model.Language{}
	for rows.Next() {
		var l model.Language
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate languages: %w", err)
	}
	return out, nil
}
