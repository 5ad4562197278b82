package logging

import (
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs method, route, status and latency for every request.
// Handler errors are logged here and then passed on to echo's error handler.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err) // commit the response so the status below is final
			}
			req := c.Request()
			res := c.Response()

			ev := Info()
			if res.Status >= 500 {
				ev = Error().Err(err)
			}
			ev.Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")
			return nil
		}
	}
}
