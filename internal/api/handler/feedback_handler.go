package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// feedbackSubmitter is the slice of the feedback service the handler needs.
type feedbackSubmitter interface {
	Submit(ctx context.Context, name, email, message string)
}

type FeedbackHandler struct {
	service feedbackSubmitter
}

func NewFeedbackHandler(service feedbackSubmitter) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// ContactForm describes the contact form.
//
// @Summary      Contact form descriptor
// @Tags         contact
// @Produce      json
// @Success      200  {object}  formDescriptor
// @Router       /contact [get]
func (h *FeedbackHandler) ContactForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formDescriptor{
		Action:   "/contact",
		Method:   http.MethodPost,
		Fields:   []string{"name", "email", "message"},
		Required: []string{"name", "email", "message"},
	})
}

// Contact accepts a feedback message. Persistence is fire-and-forget: the
// user is always thanked.
//
// @Summary      Submit feedback
// @Tags         contact
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      contactRequest  true  "Feedback message"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /contact [post]
func (h *FeedbackHandler) Contact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.service.Submit(c.Request().Context(), req.Name, req.Email, req.Message)

	return c.JSON(http.StatusOK, messageResponse{Message: "Thank you for your feedback!"})
}
