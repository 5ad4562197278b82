package repository

import (
	"context"      // context carries request cancellation into every statement
	"database/sql" // sql provides the pool, transactions and ErrNoRows
	"errors"       // errors.Is maps ErrNoRows to ErrActorNotFound
	"fmt"          // fmt wraps store faults with the failing operation

	"github.com/iliyamo/sakila-admin/internal/model"
)

// ActorRepo encapsulates all database queries related to actors.  It depends
// on a sql.DB pool which is opened once at start-up and shared.
type ActorRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewActorRepo constructs an ActorRepo with the provided DB handle.
func NewActorRepo(db *sql.DB) *ActorRepo {
	return &ActorRepo{db: db}
}

// List returns every actor ordered by id.
func (r *ActorRepo) List(ctx context.Context) ([]model.Actor, error) {
	const q = "SELECT actor_id, first_name, last_name FROM actor ORDER BY actor_id"
	return r.query(ctx, q)
}

// ListByFilm returns the actors linked to a film through film_actor.
func (r *ActorRepo) ListByFilm(ctx context.Context, filmID int64) ([]model.Actor, error) {
	const q = `SELECT a.actor_id, a.first_name, a.last_name
	           FROM film_actor fa
	           JOIN actor a ON fa.actor_id = a.actor_id
	           WHERE fa.film_id = ?
	           ORDER BY a.actor_id`
	return r.query(ctx, q, filmID)
}

func (r *ActorRepo) query(ctx context.Context, q string, args ...any) ([]model.Actor, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query actors: %w", err)
	}
	defer rows.Close()

	out := []model.Actor{}
	for rows.Next() {
		var a model.Actor
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actors: %w", err)
	}
	return out, nil
}

// GetByID fetches a single actor.  It returns ErrActorNotFound if no row is found.
func (r *ActorRepo) GetByID(ctx context.Context, id int64) (*model.Actor, error) {
	const q = "SELECT actor_id, first_name, last_name FROM actor WHERE actor_id = ?"
	var a model.Actor
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("get actor %d: %w", id, err)
	}
	return &a, nil
}

// Create inserts a new actor and sets a.ID to the generated identifier.
func (r *ActorRepo) Create(ctx context.Context, a *model.Actor) error {
	const q = "INSERT INTO actor (first_name, last_name) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, q, a.FirstName, a.LastName)
	if err != nil {
		return fmt.Errorf("insert actor: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert actor: %w", err)
	}
	a.ID = id
	return nil
}

// Update overwrites the actor's names.  Updating a missing id affects no
// rows and is not an error.
func (r *ActorRepo) Update(ctx context.Context, a model.Actor) error {
	const q = "UPDATE actor SET first_name = ?, last_name = ? WHERE actor_id = ?"
	if _, err := r.db.ExecContext(ctx, q, a.FirstName, a.LastName, a.ID); err != nil {
		return fmt.Errorf("update actor %d: %w", a.ID, err)
	}
	return nil
}

// Delete removes the actor from every film it appears in and then removes
// the actor itself.  Both statements run in one transaction so a failure
// leaves the actor and its film links untouched.
func (r *ActorRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM film_actor WHERE actor_id = ?", id); err != nil {
			return fmt.Errorf("delete film_actor for actor %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM actor WHERE actor_id = ?", id); err != nil {
			return fmt.Errorf("delete actor %d: %w", id, err)
		}
		return nil
	})
}
