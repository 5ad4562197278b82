package router // package router wires the echo instance and registers the admin routes

import (
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4"                    // echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // echo's stock recover and request-id middleware
	"github.com/redis/go-redis/v9"                   // optional Redis client for cache and rate limit

	"github.com/iliyamo/sakila-admin/internal/config"     // cache and rate-limit settings
	"github.com/iliyamo/sakila-admin/internal/handler"    // resource controllers
	"github.com/iliyamo/sakila-admin/internal/logging"    // request log middleware
	"github.com/iliyamo/sakila-admin/internal/middleware" // Redis-backed middleware
	"github.com/iliyamo/sakila-admin/internal/validation" // form validator
	"github.com/iliyamo/sakila-admin/internal/view"       // template renderer and static assets
)

// Options collects what New needs.  Redis may be nil, in which case the
// cache and the rate limiter pass every request through.
type Options struct {
	Handler   *handler.Handler
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// New builds a fully configured echo instance: renderer, validator, plain-text
// error handler, middleware stack and every route.
func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = view.MustRenderer()
	e.Validator = validation.EchoValidator{}
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger())
	e.Use(middleware.NewTokenBucket(opts.RateLimit, opts.Redis))
	e.Use(middleware.NewRedisCache(opts.Cache, opts.Redis))

	RegisterRoutes(e, opts.Handler)
	return e
}

// RegisterRoutes maps every admin route onto h.  Static paths such as
// /film/create and /film/search take precedence over /film/:film_id.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/healthz", h.Health)
	e.StaticFS("/static", view.Static())
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/films") })

	// ---- Actors ----
	e.GET("/actors", h.ListActors)
	e.GET("/actor/create", h.NewActor)
	e.POST("/actor/create", h.CreateActor)
	e.GET("/actor/:actor_id/edit", h.EditActor)
	e.POST("/actor/:actor_id/edit", h.UpdateActor)
	e.GET("/actor/:actor_id/delete", h.ConfirmDeleteActor)
	e.POST("/actor/:actor_id/delete", h.DeleteActor)

	// ---- Cities ----
	e.GET("/cities", h.ListCities)
	e.GET("/city/create", h.NewCity)
	e.POST("/city/create", h.CreateCity)
	e.GET("/city/:city_id/update", h.EditCity)
	e.POST("/city/:city_id/update", h.UpdateCity)

	// ---- Films ----
	e.GET("/films", h.ListFilms)
	e.GET("/film/search", h.SearchFilms)
	e.GET("/film/create", h.NewFilm)
	e.POST("/film/create", h.CreateFilm)
	e.GET("/film/:film_id", h.ShowFilm)
	e.GET("/film/:film_id/update", h.EditFilm)
	e.POST("/film/:film_id/update", h.UpdateFilm)
}
