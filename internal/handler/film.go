package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sakila-admin/internal/model"
	"github.com/iliyamo/sakila-admin/internal/queue"
	"github.com/iliyamo/sakila-admin/internal/repository"
	"github.com/iliyamo/sakila-admin/internal/view"
)

// filmForm is the body of POST /film/create and POST /film/:film_id/update.
// The actor checkboxes are read separately by selectedActorIDs.
type filmForm struct {
	Title       string `form:"title" validate:"required,max=128"`
	Description string `form:"description"`
	ReleaseYear string `form:"release_year" validate:"omitempty,number"`
	LanguageID  int64  `form:"language_id" validate:"gte=1"`
}

// MySQL YEAR range.
const (
	minReleaseYear = 1901
	maxReleaseYear = 2155
)

func (f filmForm) toModel(id int64) (model.Film, error) {
	film := model.Film{
		ID:          id,
		Title:       f.Title,
		Description: sql.NullString{String: f.Description, Valid: f.Description != ""},
		LanguageID:  f.LanguageID,
	}
	if f.ReleaseYear != "" {
		year, err := strconv.ParseInt(f.ReleaseYear, 10, 64)
		if err != nil || year < minReleaseYear || year > maxReleaseYear {
			return film, echo.NewHTTPError(http.StatusBadRequest, "release_year must be between 1901 and 2155")
		}
		film.ReleaseYear = sql.NullInt64{Int64: year, Valid: true}
	}
	return film, nil
}

// selectedActorIDs normalizes the actor checkboxes to a slice.  Browsers send
// zero, one or many "actors" values (some form libraries use "actors[]");
// all of them become a de-duplicated list in submission order.
func selectedActorIDs(c echo.Context) ([]int64, error) {
	params, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	raw := append(append([]string{}, params["actors"]...), params["actors[]"]...)

	ids := make([]int64, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 1 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid actor id")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ListFilms handles GET /films.
func (h *Handler) ListFilms(c echo.Context) error {
	films, err := h.Films.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "films", view.NewFilmList(films))
}

// filmSearchQuery is the query string of GET /film/search.  Both filters are
// optional; an empty value means the filter is absent.
type filmSearchQuery struct {
	Title             string `query:"title"`
	MaxRentalDuration string `query:"max_rental_duration" validate:"omitempty,number"`
}

// SearchFilms handles GET /film/search.
func (h *Handler) SearchFilms(c echo.Context) error {
	var q filmSearchQuery
	if err := bindForm(c, &q); err != nil {
		return err
	}
	filter := repository.FilmFilter{Title: q.Title}
	if q.MaxRentalDuration != "" {
		d, err := strconv.Atoi(q.MaxRentalDuration)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "max_rental_duration must be a whole number")
		}
		filter.MaxRentalDuration = &d
	}
	films, err := h.Films.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "film_search", view.NewFilmSearch(films, q.Title, q.MaxRentalDuration))
}

// ShowFilm handles GET /film/:film_id.  A missing film is a 404.
func (h *Handler) ShowFilm(c echo.Context) error {
	id, err := parseID(c, "film_id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	film, err := h.Films.GetDetail(ctx, id)
	if errors.Is(err, repository.ErrFilmNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "film not found")
	}
	if err != nil {
		return err
	}
	actors, err := h.Actors.ListByFilm(ctx, id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "film_detail", view.NewFilmDetail(*film, actors))
}

// NewFilm handles GET /film/create and renders the form with languages and actors.
func (h *Handler) NewFilm(c echo.Context) error {
	ctx := c.Request().Context()
	languages, err := h.Languages.List(ctx)
	if err != nil {
		return err
	}
	actors, err := h.Actors.List(ctx)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "film_form", view.NewFilmForm(nil, languages, nil, actors))
}

// CreateFilm handles POST /film/create: insert the film, then one film_actor
// row per selected actor using the generated film id.
func (h *Handler) CreateFilm(c echo.Context) error {
	var form filmForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	film, err := form.toModel(0)
	if err != nil {
		return err
	}
	actorIDs, err := selectedActorIDs(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Films.Create(ctx, &film, actorIDs); err != nil {
		return err
	}
	ev := queue.NewEvent(queue.EntityFilm, queue.ActionCreated, film.ID, film.Title)
	ev.ActorIDs = actorIDs
	h.publish(ctx, ev)
	return c.Redirect(http.StatusSeeOther, "/films")
}

// EditFilm handles GET /film/:film_id/update.  The film's current actors are
// projected to a list of ids to pre-check the checkboxes.
func (h *Handler) EditFilm(c echo.Context) error {
	id, err := parseID(c, "film_id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	film, err := h.Films.GetByID(ctx, id)
	if errors.Is(err, repository.ErrFilmNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "film not found")
	}
	if err != nil {
		return err
	}
	languages, err := h.Languages.List(ctx)
	if err != nil {
		return err
	}
	current, err := h.Films.CurrentActorIDs(ctx, id)
	if err != nil {
		return err
	}
	all, err := h.Actors.List(ctx)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "film_form", view.NewFilmForm(film, languages, current, all))
}

// UpdateFilm handles POST /film/:film_id/update.  Afterwards the film's
// actors are exactly the submitted selection.
func (h *Handler) UpdateFilm(c echo.Context) error {
	id, err := parseID(c, "film_id")
	if err != nil {
		return err
	}
	var form filmForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	film, err := form.toModel(id)
	if err != nil {
		return err
	}
	actorIDs, err := selectedActorIDs(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Films.Update(ctx, film, actorIDs); err != nil {
		return err
	}
	ev := queue.NewEvent(queue.EntityFilm, queue.ActionUpdated, id, film.Title)
	ev.ActorIDs = actorIDs
	h.publish(ctx, ev)
	return c.Redirect(http.StatusSeeOther, "/films")
}
