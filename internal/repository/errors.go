// Package repository is the data access layer for the sakila admin.  Every
// statement uses positional placeholders; caller-supplied values are never
// concatenated into SQL text.  The sentinel errors below let handlers tell a
// missing row apart from a store fault.
package repository

import "errors"

// ErrActorNotFound is returned when no actor row matches the identifier.
var ErrActorNotFound = errors.New("actor not found")

// ErrCityNotFound is returned when no city row matches the identifier.
var ErrCityNotFound = errors.New("city not found")

// ErrFilmNotFound is returned when no film row matches the identifier.
var ErrFilmNotFound = errors.New("film not found")

// ErrCountryNotFound is returned when a city references a country id that
// does not exist.  Only city creation checks for it.
var ErrCountryNotFound = errors.New("country not found")
