package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

// reportLister is the slice of the report service the user pages need.
type reportLister interface {
	ListByUser(ctx context.Context, username string) ([]domain.PredictionReport, error)
}

type UserHandler struct {
	authService ports.AuthService
	reports     reportLister
}

func NewUserHandler(authService ports.AuthService, reports reportLister) *UserHandler {
	return &UserHandler{authService: authService, reports: reports}
}

// Dashboard returns the landing data for an authenticated user.
//
// @Summary      Dashboard
// @Tags         user
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /dashboard [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	reports, err := h.reports.ListByUser(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Username: username,
		Reports:  len(reports),
	})
}

// Profile returns the caller's account record without the credential hash.
//
// @Summary      Profile
// @Tags         user
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      404  {object}  errorResponse
// @Router       /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	profile, err := h.authService.Profile(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}
