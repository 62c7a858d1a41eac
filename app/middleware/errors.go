package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// NewErrorHandler returns the boundary for unexpected failures: everything
// that escapes a handler is logged with a correlation id and mapped to a
// generic 500 so internals never reach the client.
func NewErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			message := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok {
				message = s
			}
			_ = c.JSON(he.Code, map[string]string{"error": message})
			return
		}

		correlationID := uuid.New().String()
		logrus.WithError(err).WithFields(logrus.Fields{
			"correlation_id": correlationID,
			"method":         c.Request().Method,
			"uri":            c.Request().RequestURI,
		}).Error("unhandled error")

		_ = c.JSON(http.StatusInternalServerError, map[string]string{
			"error":          "internal server error",
			"correlation_id": correlationID,
		})
	}
}
