package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sakila-admin/internal/model"
	"github.com/iliyamo/sakila-admin/internal/queue"
	"github.com/iliyamo/sakila-admin/internal/repository"
	"github.com/iliyamo/sakila-admin/internal/view"
)

// cityForm is the body of POST /city/create and POST /city/:city_id/update.
// CountryID is not range-checked here: an unknown id on create takes the
// country-existence rejection path instead.
type cityForm struct {
	Name      string `form:"city" validate:"required,max=50"`
	CountryID int64  `form:"country_id"`
}

// ListCities handles GET /cities and renders cities joined with their country.
func (h *Handler) ListCities(c echo.Context) error {
	cities, err := h.Cities.ListWithCountry(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "cities", view.NewCityList(cities))
}

// NewCity handles GET /city/create and renders the form with country options.
func (h *Handler) NewCity(c echo.Context) error {
	countries, err := h.Countries.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "city_form", view.NewCityForm(nil, countries))
}

// CreateCity handles POST /city/create.  When the country does not exist the
// user sees a plain-text rejection and nothing is inserted.
func (h *Handler) CreateCity(c echo.Context) error {
	var form cityForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	city := &model.City{Name: form.Name, CountryID: form.CountryID}
	ctx := c.Request().Context()
	err := h.Cities.Create(ctx, city)
	if errors.Is(err, repository.ErrCountryNotFound) {
		return c.String(http.StatusOK, "Country ID does not exist")
	}
	if err != nil {
		return err
	}
	h.publish(ctx, queue.NewEvent(queue.EntityCity, queue.ActionCreated, city.ID, city.Name))
	return c.Redirect(http.StatusSeeOther, "/cities")
}

// EditCity handles GET /city/:city_id/update and renders the pre-filled form.
func (h *Handler) EditCity(c echo.Context) error {
	id, err := parseID(c, "city_id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	city, err := h.Cities.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCityNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "city not found")
	}
	if err != nil {
		return err
	}
	countries, err := h.Countries.List(ctx)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "city_form", view.NewCityForm(city, countries))
}

// UpdateCity handles POST /city/:city_id/update.  The country is not
// re-validated; only creation checks it.
func (h *Handler) UpdateCity(c echo.Context) error {
	id, err := parseID(c, "city_id")
	if err != nil {
		return err
	}
	var form cityForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	ctx := c.Request().Context()
	city := model.City{ID: id, Name: form.Name, CountryID: form.CountryID}
	if err := h.Cities.Update(ctx, city); err != nil {
		return err
	}
	h.publish(ctx, queue.NewEvent(queue.EntityCity, queue.ActionUpdated, id, city.Name))
	return c.Redirect(http.StatusSeeOther, "/cities")
}
