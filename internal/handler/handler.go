package handler // handler package contains the resource controllers of the admin

import (
	"context"      // context carries the request context into publish calls
	"database/sql" // sql.DB is pinged by the health check
	"errors"       // errors.As unwraps validation failures
	"net/http"     // http provides status code constants
	"strconv"      // strconv parses path identifiers

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/sakila-admin/internal/logging"    // logging reports publish failures
	"github.com/iliyamo/sakila-admin/internal/queue"      // queue carries catalog change events
	"github.com/iliyamo/sakila-admin/internal/repository" // repository is the data access layer
	"github.com/iliyamo/sakila-admin/internal/validation" // validation describes rejected forms
)

// Handler bundles the repositories every controller needs plus the event
// publisher that announces committed writes.
type Handler struct {
	Actors    *repository.ActorRepo    // Actors provides actor persistence
	Cities    *repository.CityRepo     // Cities provides city persistence
	Countries *repository.CountryRepo  // Countries lists the country reference table
	Films     *repository.FilmRepo     // Films provides film and film_actor persistence
	Languages *repository.LanguageRepo // Languages lists the language reference table
	Events    queue.Publisher          // Events receives one event per committed write
	db        *sql.DB                  // db is pinged by Health
}

// New builds a Handler over one shared pool.  A nil publisher disables events.
func New(db *sql.DB, events queue.Publisher) *Handler {
	if db == nil { // a handler without a database cannot serve any route
		panic("nil database passed to handler.New")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &Handler{
		Actors:    repository.NewActorRepo(db),
		Cities:    repository.NewCityRepo(db),
		Countries: repository.NewCountryRepo(db),
		Films:     repository.NewFilmRepo(db),
		Languages: repository.NewLanguageRepo(db),
		Events:    events,
		db:        db,
	}
}

// parseID reads the named path parameter as a positive integer.
func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindForm binds the request into dst and runs the struct validator.  Both
// failures become a 400 with a plain-text message.
func bindForm(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(dst); err != nil {
		var fe *validation.FormError
		if errors.As(err, &fe) {
			return echo.NewHTTPError(http.StatusBadRequest, fe.Error())
		}
		return err
	}
	return nil
}

// publish sends ev and only logs a failure; the write it describes is
// already committed.
func (h *Handler) publish(ctx context.Context, ev queue.CatalogEvent) {
	if err := h.Events.Publish(ctx, ev); err != nil {
		logging.Warn().Err(err).Str("entity", ev.Entity).Str("action", ev.Action).Int64("id", ev.ID).Msg("publish catalog event failed")
	}
}

// Health reports "ok" once the database answers a ping.
func (h *Handler) Health(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
