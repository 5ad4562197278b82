// Package dbtest builds a small SQLite copy of the sakila tables used by the
// admin so repository and handler tests run against a real SQL engine.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE country (
	country_id INTEGER PRIMARY KEY AUTOINCREMENT,
	country    VARCHAR(50) NOT NULL
);
CREATE TABLE city (
	city_id    INTEGER PRIMARY KEY AUTOINCREMENT,
	city       VARCHAR(50) NOT NULL,
	country_id INTEGER NOT NULL REFERENCES country(country_id)
);
CREATE TABLE language (
	language_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name        CHAR(20) NOT NULL
);
CREATE TABLE actor (
	actor_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name VARCHAR(45) NOT NULL,
	last_name  VARCHAR(45) NOT NULL
);
CREATE TABLE film (
	film_id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title           VARCHAR(128) NOT NULL,
	description     TEXT,
	release_year    INTEGER,
	language_id     INTEGER NOT NULL REFERENCES language(language_id),
	rental_duration INTEGER NOT NULL DEFAULT 3
);
CREATE TABLE film_actor (
	actor_id INTEGER NOT NULL REFERENCES actor(actor_id),
	film_id  INTEGER NOT NULL REFERENCES film(film_id),
	PRIMARY KEY (actor_id, film_id)
);
`

const seed = `
INSERT INTO country (country_id, country) VALUES (1, 'Afghanistan'), (2, 'Algeria'), (3, 'Canada');
INSERT INTO city (city_id, city, country_id) VALUES (1, 'Kabul', 1), (2, 'Algiers', 2), (3, 'Toronto', 3);
INSERT INTO language (language_id, name) VALUES (1, 'English'), (2, 'Italian');
INSERT INTO actor (actor_id, first_name, last_name) VALUES
	(1, 'PENELOPE', 'GUINESS'),
	(2, 'NICK', 'WAHLBERG'),
	(3, 'ED', 'CHASE'),
	(4, 'JENNIFER', 'DAVIS'),
	(5, 'JOHNNY', 'LOLLOBRIGIDA');
INSERT INTO film (film_id, title, description, release_year, language_id, rental_duration) VALUES
	(1, 'ACADEMY DINOSAUR', 'A Epic Drama of a Feminist', 2006, 1, 6),
	(2, 'ACE GOLDFINGER', 'A Astounding Epistle of a Database Administrator', 2006, 1, 3),
	(3, 'ADAPTATION HOLES', 'A Astounding Reflection of a Lumberjack', 2006, 2, 7),
	(4, 'AFFAIR PREJUDICE', NULL, NULL, 1, 5);
INSERT INTO film_actor (actor_id, film_id) VALUES (1, 1), (5, 1), (5, 3), (2, 2), (3, 2);
`

// Open creates a fresh database in t.TempDir(), applies the schema and the
// seed rows and closes it when the test ends.  The pool is capped at one
// connection so the PRAGMA applies to every statement.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "sakila.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	_, err = db.Exec(schema)
	require.NoError(t, err)
	_, err = db.Exec(seed)
	require.NoError(t, err)
	return db
}

// Count runs a COUNT(*) query and returns the result.
func Count(t testing.TB, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

// FilmActorIDs returns the actor ids linked to a film, ascending.
func FilmActorIDs(t testing.TB, db *sql.DB, filmID int64) []int64 {
	t.Helper()
	rows, err := db.Query("SELECT actor_id FROM film_actor WHERE film_id = ? ORDER BY actor_id", filmID)
	require.NoError(t, err)
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}
