package middleware

import (
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/render"
)

// Logger creates middleware that logs every render cycle. Successful cycles
// are logged at Info, failed ones at Error with the error code when there
// is one.
func Logger(logger *slog.Logger) render.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return render.MiddlewareFunc(func(c *render.Cycle, next func() error) error {
		start := time.Now()
		err := next()

		attrs := []any{
			"kind", string(c.Kind),
			"regions", c.Regions,
			"bytes", c.Bytes,
			"hooks", c.Hooks,
			"duration", time.Since(start),
		}
		if c.Kind == render.CyclePatch {
			attrs = append(attrs, "merges", c.Merges)
		}

		if err != nil {
			attrs = append(attrs, "code", errorCode(err), "error", err)
			logger.ErrorContext(c.Context(), "render failed", attrs...)
			return err
		}
		logger.InfoContext(c.Context(), "render", attrs...)
		return nil
	})
}

// errorCode returns the code of a structured error, or "internal".
func errorCode(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return "internal"
}
