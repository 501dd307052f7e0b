package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	reports reportLister
}

func NewReportHandler(reports reportLister) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// PastReports returns the caller's prediction history, newest first.
//
// @Summary      Prediction history
// @Tags         reports
// @Produce      json
// @Success      200  {object}  pastReportsResponse
// @Router       /past-report [get]
func (h *ReportHandler) PastReports(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	reports, err := h.reports.ListByUser(c.Request().Context(), username)
	if err != nil {
		return err
	}

	items := make([]reportItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, reportItem{
			Image:      r.Image,
			Prediction: r.Prediction,
			Confidence: r.Confidence,
			Timestamp:  r.Timestamp,
		})
	}

	return c.JSON(http.StatusOK, pastReportsResponse{
		Username: username,
		Reports:  items,
	})
}
