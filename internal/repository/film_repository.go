package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/sakila-admin/internal/model"
)

// FilmRepo encapsulates queries against film and its film_actor links.
type FilmRepo struct {
	db *sql.DB
}

// NewFilmRepo constructs a FilmRepo with the provided DB handle.
func NewFilmRepo(db *sql.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

const filmColumns = "film_id, title, description, release_year, language_id, rental_duration"

// List returns every film ordered by id.
func (r *FilmRepo) List(ctx context.Context) ([]model.Film, error) {
	films, err := r.queryFilms(ctx, "SELECT "+filmColumns+" FROM film ORDER BY film_id")
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	return films, nil
}

func (r *FilmRepo) queryFilms(ctx context.Context, q string, args ...any) ([]model.Film, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Film{}
	for rows.Next() {
		var f model.Film
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.ReleaseYear, &f.LanguageID, &f.RentalDuration); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByID fetches a film row.  It returns ErrFilmNotFound if no row is found.
func (r *FilmRepo) GetByID(ctx context.Context, id int64) (*model.Film, error) {
	var f model.Film
	err := r.db.QueryRowContext(ctx, "SELECT "+filmColumns+" FROM film WHERE film_id = ?", id).
		Scan(&f.ID, &f.Title, &f.Description, &f.ReleaseYear, &f.LanguageID, &f.RentalDuration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, fmt.Errorf("get film %d: %w", id, err)
	}
	return &f, nil
}

// GetDetail fetches a film joined with its language.  It returns
// ErrFilmNotFound if no row is found.
func (r *FilmRepo) GetDetail(ctx context.Context, id int64) (*model.FilmDetail, error) {
	const q = `SELECT f.film_id, f.title, f.description, f.release_year, f.language_id, f.rental_duration, l.name
	           FROM film f
	           JOIN language l ON f.language_id = l.language_id
	           WHERE f.film_id = ?`
	var d model.FilmDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Title, &d.Description, &d.ReleaseYear, &d.LanguageID, &d.RentalDuration, &d.Language)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, fmt.Errorf("get film detail %d: %w", id, err)
	}
	return &d, nil
}

// CurrentActorIDs returns the ids of the actors linked to a film.
func (r *FilmRepo) CurrentActorIDs(ctx context.Context, filmID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT actor_id FROM film_actor WHERE film_id = ? ORDER BY actor_id", filmID)
	if err != nil {
		return nil, fmt.Errorf("query film_actor for film %d: %w", filmID, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan film_actor: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate film_actor: %w", err)
	}
	return ids, nil
}

// Create inserts the film, sets f.ID to the generated identifier and links
// one film_actor row per actor id.  The whole operation is one transaction.
func (r *FilmRepo) Create(ctx context.Context, f *model.Film, actorIDs []int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = "INSERT INTO film (title, description, release_year, language_id) VALUES (?, ?, ?, ?)"
		res, err := tx.ExecContext(ctx, q, f.Title, f.Description, f.ReleaseYear, f.LanguageID)
		if err != nil {
			return fmt.Errorf("insert film: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert film: %w", err)
		}
		if err := insertFilmActors(ctx, tx, id, actorIDs); err != nil {
			return err
		}
		f.ID = id
		return nil
	})
}

// Update overwrites the film's columns and replaces its actor links so that
// afterwards film_actor holds exactly actorIDs for this film.  Old links are
// deleted and new ones inserted one statement at a time, all inside a single
// transaction: a failed insert rolls back to the previous set.
func (r *FilmRepo) Update(ctx context.Context, f model.Film, actorIDs []int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = "UPDATE film SET title = ?, description = ?, release_year = ?, language_id = ? WHERE film_id = ?"
		if _, err := tx.ExecContext(ctx, q, f.Title, f.Description, f.ReleaseYear, f.LanguageID, f.ID); err != nil {
			return fmt.Errorf("update film %d: %w", f.ID, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM film_actor WHERE film_actor.film_id = ?", f.ID); err != nil {
			return fmt.Errorf("clear film_actor for film %d: %w", f.ID, err)
		}
		return insertFilmActors(ctx, tx, f.ID, actorIDs)
	})
}

func insertFilmActors(ctx context.Context, tx *sql.Tx, filmID int64, actorIDs []int64) error {
	const q = "INSERT INTO film_actor (actor_id, film_id) VALUES (?, ?)"
	for _, actorID := range actorIDs {
		if _, err := tx.ExecContext(ctx, q, actorID, filmID); err != nil {
			return fmt.Errorf("link actor %d to film %d: %w", actorID, filmID, err)
		}
	}
	return nil
}
