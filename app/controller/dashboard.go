package controller

import (
	"net/http"
	"time"

	dto "github.com/vibast-solutions/ms-go-accounts/app/dto/http"
	"github.com/vibast-solutions/ms-go-accounts/app/middleware"
	"github.com/vibast-solutions/ms-go-accounts/app/repository"

	"github.com/labstack/echo/v4"
)

// DashboardController gathers everything the dashboard page needs in one
// response to keep frontend round trips down.
type DashboardController struct {
	userRepo  *repository.UserRepository
	tokenRepo *repository.ResetTokenRepository
}

func NewDashboardController(userRepo *repository.UserRepository, tokenRepo *repository.ResetTokenRepository) *DashboardController {
	return &DashboardController{userRepo: userRepo, tokenRepo: tokenRepo}
}

func (c *DashboardController) Load(ctx echo.Context) error {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authenticated"})
	}

	reqCtx := ctx.Request().Context()

	total, err := c.userRepo.Count(reqCtx)
	if err != nil {
		return err
	}
	active, err := c.userRepo.CountByActive(reqCtx, true)
	if err != nil {
		return err
	}
	pending, err := c.tokenRepo.CountPending(reqCtx, time.Now())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.DashboardResponse{
		UserStats: dto.UserStats{
			UserID:         user.ID,
			Email:          user.Email,
			AccountCreated: user.CreatedAt.Format(time.RFC3339),
		},
		SystemMetrics: dto.SystemMetrics{
			TotalUsers:         total,
			ActiveUsers:        active,
			PendingResetTokens: pending,
		},
	})
}
