package controller

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthController struct {
	db *sql.DB
}

func NewHealthController(db *sql.DB) *HealthController {
	return &HealthController{db: db}
}

func (c *HealthController) Livez(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (c *HealthController) Readyz(ctx echo.Context) error {
	if err := c.db.PingContext(ctx.Request().Context()); err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
