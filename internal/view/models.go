// Package view shapes repository results into the structures the HTML
// templates expect and renders those templates through echo.
//
// The assemblers in this file hold no state and do no validation.  They
// flatten nullable columns into display strings and precompute selection
// flags (selected country, checked actors) so templates stay free of logic.
package view

import (
	"strconv"

	"github.com/iliyamo/sakila-admin/internal/model"
)

// ActorList is the model of the "actors" view.
type ActorList struct {
	Actors []model.Actor
}

// ActorForm is shared by the create and edit actor views.
type ActorForm struct {
	Heading string
	Action  string
	Actor   model.Actor
}

// ActorDelete is the model of the delete confirmation view.
type ActorDelete struct {
	Actor model.Actor
}

// CityList is the model of the "cities" view.
type CityList struct {
	Cities []model.CityRow
}

// Option is an entry of a <select> or checkbox group.
type Option struct {
	ID       int64
	Label    string
	Selected bool
}

// CityForm is shared by the create and update city views.
type CityForm struct {
	Heading   string
	Action    string
	City      model.City
	Countries []Option
}

// FilmRow is a film with its nullable columns flattened for display.
type FilmRow struct {
	ID             int64
	Title          string
	Description    string
	ReleaseYear    string
	LanguageID     int64
	RentalDuration int
}

// FilmList is the model of the "films" view.
type FilmList struct {
	Films []FilmRow
}

// FilmSearch is the model of the "film_search" view.  The query values are
// echoed back so the form keeps what the user typed.
type FilmSearch struct {
	Films             []FilmRow
	Title             string
	MaxRentalDuration string
}

// FilmDetail is the model of the "film_detail" view.
type FilmDetail struct {
	Film     FilmRow
	Language string
	Actors   []model.Actor
}

// FilmForm is shared by the create and update film views.
type FilmForm struct {
	Heading         string
	Action          string
	Film            FilmRow
	Languages       []Option
	Actors          []Option
	CurrentActorIDs []int64
}

func NewActorList(actors []model.Actor) ActorList {
	return ActorList{Actors: actors}
}

// NewActorForm builds the create form when a is nil and the edit form otherwise.
func NewActorForm(a *model.Actor) ActorForm {
	if a == nil {
		return ActorForm{Heading: "Create actor", Action: "/actor/create"}
	}
	return ActorForm{
		Heading: "Edit actor",
		Action:  "/actor/" + strconv.FormatInt(a.ID, 10) + "/edit",
		Actor:   *a,
	}
}

func NewActorDelete(a model.Actor) ActorDelete {
	return ActorDelete{Actor: a}
}

func NewCityList(cities []model.CityRow) CityList {
	return CityList{Cities: cities}
}

// NewCityForm builds the create form when c is nil and the update form
// otherwise, marking the city's current country as selected.
func NewCityForm(c *model.City, countries []model.Country) CityForm {
	form := CityForm{Heading: "Create city", Action: "/city/create"}
	if c != nil {
		form.Heading = "Update city"
		form.Action = "/city/" + strconv.FormatInt(c.ID, 10) + "/update"
		form.City = *c
	}
	form.Countries = make([]Option, 0, len(countries))
	for _, country := range countries {
		form.Countries = append(form.Countries, Option{
			ID:       country.ID,
			Label:    country.Name,
			Selected: c != nil && c.CountryID == country.ID,
		})
	}
	return form
}

func NewFilmRow(f model.Film) FilmRow {
	row := FilmRow{
		ID:             f.ID,
		Title:          f.Title,
		LanguageID:     f.LanguageID,
		RentalDuration: f.RentalDuration,
	}
	if f.Description.Valid {
		row.Description = f.Description.String
	}
	if f.ReleaseYear.Valid {
		row.ReleaseYear = strconv.FormatInt(f.ReleaseYear.Int64, 10)
	}
	return row
}

func filmRows(films []model.Film) []FilmRow {
	rows := make([]FilmRow, 0, len(films))
	for _, f := range films {
		rows = append(rows, NewFilmRow(f))
	}
	return rows
}

func NewFilmList(films []model.Film) FilmList {
	return FilmList{Films: filmRows(films)}
}

func NewFilmSearch(films []model.Film, title, maxRentalDuration string) FilmSearch {
	return FilmSearch{Films: filmRows(films), Title: title, MaxRentalDuration: maxRentalDuration}
}

func NewFilmDetail(d model.FilmDetail, actors []model.Actor) FilmDetail {
	return FilmDetail{Film: NewFilmRow(d.Film), Language: d.Language, Actors: actors}
}

// NewFilmForm builds the create form when f is nil and the update form
// otherwise.  currentActorIDs is the projection of the film's film_actor
// rows; every actor in allActors whose id appears there is pre-checked.
func NewFilmForm(f *model.Film, languages []model.Language, currentActorIDs []int64, allActors []model.Actor) FilmForm {
	form := FilmForm{Heading: "Create film", Action: "/film/create", CurrentActorIDs: currentActorIDs}
	if f != nil {
		form.Heading = "Update film"
		form.Action = "/film/" + strconv.FormatInt(f.ID, 10) + "/update"
		form.Film = NewFilmRow(*f)
	}

	form.Languages = make([]Option, 0, len(languages))
	for _, l := range languages {
		form.Languages = append(form.Languages, Option{
			ID:       l.ID,
			Label:    l.Name,
			Selected: f != nil && f.LanguageID == l.ID,
		})
	}

	current := make(map[int64]bool, len(currentActorIDs))
	for _, id := range currentActorIDs {
		current[id] = true
	}
	form.Actors = make([]Option, 0, len(allActors))
	for _, a := range allActors {
		form.Actors = append(form.Actors, Option{ID: a.ID, Label: a.FullName(), Selected: current[a.ID]})
	}
	return form
}
