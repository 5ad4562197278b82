package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/sakila-admin/internal/model"
)

// FilmFilter holds the optional filters of the film search form.  A zero
// value matches every film.
type FilmFilter struct {
	Title             string // substring of the title
	MaxRentalDuration *int   // inclusive upper bound on rental_duration
}

// whereBuilder accumulates predicate/argument pairs.  Predicates are fixed
// strings owned by this package; only args carry caller values.
type whereBuilder struct {
	preds []string
	args  []any
}

func (b *whereBuilder) add(pred string, arg any) {
	b.preds = append(b.preds, pred)
	b.args = append(b.args, arg)
}

// build returns the WHERE condition and its arguments in clause order.
func (b *whereBuilder) build() (string, []any) {
	cond := "1=1"
	if len(b.preds) > 0 {
		cond += " AND " + strings.Join(b.preds, " AND ")
	}
	return cond, b.args
}

func (f FilmFilter) where() (string, []any) {
	var b whereBuilder
	if f.Title != "" {
		b.add("title LIKE ?", "%"+f.Title+"%")
	}
	if f.MaxRentalDuration != nil {
		b.add("rental_duration <= ?", *f.MaxRentalDuration)
	}
	return b.build()
}

// Search returns the films matching every filter that is set, ordered by id.
func (r *FilmRepo) Search(ctx context.Context, f FilmFilter) ([]model.Film, error) {
	cond, args := f.where()
	q := `SELECT film_id, title, description, release_year, language_id, rental_duration
	      FROM film WHERE ` + cond + ` ORDER BY film_id`
	films, err := r.queryFilms(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	return films, nil
}
