package model

import "database/sql"

// Film represents a title in the rental catalogue.  Description and
// ReleaseYear are nullable in sakila and keep their sql.Null wrappers here;
// the view layer flattens them for templates.
//
// Fields:
//
//	ID             – primary key identifier.
//	Title          – film title, at most 128 characters.
//	Description    – free text, may be NULL.
//	ReleaseYear    – YEAR column, may be NULL.
//	LanguageID     – references language.language_id.
//	RentalDuration – rental period in days; used by the search filter.
type Film struct {
	ID             int64          // film.film_id
	Title          string         // film.title
	Description    sql.NullString // film.description
	ReleaseYear    sql.NullInt64  // film.release_year
	LanguageID     int64          // film.language_id
	RentalDuration int            // film.rental_duration
}

// FilmDetail is a film joined with the name of its language.
type FilmDetail struct {
	Film
	Language string // language.name
}

// Language is a row of the `language` table.
type Language struct {
	ID   int64  // language.language_id
	Name string // language.name
}
