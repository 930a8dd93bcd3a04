package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Logger is a middleware that logs each HTTP request as one structured line.
// It also puts a request-scoped logger carrying request_id into the user
// context, where zerolog.Ctx finds it.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
func Logger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		reqLog := log.With().Str("request_id", rid).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()

		status := responseStatus(c, err)

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = reqLog.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = reqLog.Warn()
		default:
			ev = reqLog.Info()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("http_request")

		return err
	}
}

// responseStatus is the status the client will see, accounting for errors
// that the app ErrorHandler has not rendered yet.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fiberErr, ok := err.(*fiber.Error); ok {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
