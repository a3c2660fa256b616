package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"billingapi/internal/logger"
)

// Logger logs one JSON line per request through the global zerolog logger.
// Fields: request_id, method, path, status and latency in milliseconds.
//
// A request-scoped logger carrying request_id is attached to the user context
// so services can log with logger.FromContext.
func Logger() fiber.Handler {
	return requestLogger(log.Logger)
}

// LoggerWithWriter is Logger writing to w instead of the global output.
func LoggerWithWriter(w io.Writer) fiber.Handler {
	return requestLogger(logger.New(w))
}

func requestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		l := base.With().Str("request_id", rid).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("http_request")

		return err
	}
}
