package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soyleaf/soyleaf-api/internal/api/metrics"
	"github.com/soyleaf/soyleaf-api/internal/core/domain"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

// ClassifyHandler handles the upload-and-classify page.
type ClassifyHandler struct {
	service ports.ClassifyService
	maxMB   int64
}

func NewClassifyHandler(service ports.ClassifyService, maxMB int64) *ClassifyHandler {
	return &ClassifyHandler{service: service, maxMB: maxMB}
}

// UploadForm describes the upload contract.
//
// @Summary      Upload form descriptor
// @Tags         classify
// @Produce      json
// @Success      200  {object}  uploadFormResponse
// @Router       /upload_img [get]
func (h *ClassifyHandler) UploadForm(c echo.Context) error {
	return c.JSON(http.StatusOK, uploadFormResponse{
		Field:   "image",
		Formats: []string{"jpeg", "png", "gif"},
		MaxMB:   h.maxMB,
	})
}

// Upload classifies a leaf image and records the result.
//
// @Summary      Classify a leaf image
// @Tags         classify
// @Accept       mpfd
// @Produce      json
// @Param        image  formData  file  true  "Leaf image"
// @Success      200    {object}  classifyResponse
// @Failure      400    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /upload_img [post]
func (h *ClassifyHandler) Upload(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader.Filename == "" {
		metrics.PredictionErrorsTotal.WithLabelValues("empty_upload").Inc()
		return domain.ErrEmptyUpload
	}
	if fileHeader.Size > h.maxMB<<20 {
		metrics.PredictionErrorsTotal.WithLabelValues("too_large").Inc()
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image exceeds the upload size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	start := time.Now()
	result, err := h.service.Classify(c.Request().Context(), ports.ClassifyInput{
		Username: username,
		Filename: fileHeader.Filename,
		File:     file,
	})
	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		return err
	}

	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(result.Prediction).Inc()

	return c.JSON(http.StatusOK, classifyResponse{
		Prediction: result.Prediction,
		Confidence: result.Confidence,
		Image:      result.Image,
		Warning:    result.Warning,
	})
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyUpload):
		return "empty_upload"
	case errors.Is(err, domain.ErrImageDecode):
		return "decode"
	case errors.Is(err, domain.ErrEngineUnavailable):
		return "engine_unavailable"
	case errors.Is(err, domain.ErrInference):
		return "inference"
	default:
		return "internal"
	}
}
