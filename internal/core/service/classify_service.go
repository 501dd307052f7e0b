package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soyleaf/soyleaf-api/internal/classifier"
	"github.com/soyleaf/soyleaf-api/internal/core/domain"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

// ClassifyService runs the upload-and-classify pipeline: store the upload,
// preprocess, infer, decode, append the report. A failed report write does
// not discard the computed result; the caller gets the prediction plus a
// warning that history was not saved.
type ClassifyService struct {
	engine          ports.InferenceEngine // nil when the model artifact is absent
	registry        *classifier.Registry
	reports         ports.ReportRepository
	uploadDir       string
	displayDecimals int
	recordDecimals  int
	logger          zerolog.Logger
}

func NewClassifyService(
	engine ports.InferenceEngine,
	registry *classifier.Registry,
	reports ports.ReportRepository,
	uploadDir string,
	displayDecimals, recordDecimals int,
	logger zerolog.Logger,
) *ClassifyService {
	return &ClassifyService{
		engine:          engine,
		registry:        registry,
		reports:         reports,
		uploadDir:       uploadDir,
		displayDecimals: displayDecimals,
		recordDecimals:  recordDecimals,
		logger:          logger,
	}
}

func (s *ClassifyService) Classify(ctx context.Context, in ports.ClassifyInput) (*ports.ClassifyResult, error) {
	if in.File == nil || in.Filename == "" {
		return nil, domain.ErrEmptyUpload
	}
	if s.engine == nil {
		return nil, domain.ErrEngineUnavailable
	}

	stored, path, err := s.saveUpload(in.Filename, in.File)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	tensor, err := s.preprocessFile(path)
	if err != nil {
		s.discard(path)
		return nil, err
	}

	probs, err := s.engine.Classify(ctx, tensor)
	if err != nil {
		s.discard(path)
		return nil, err
	}

	label, confidence := classifier.Decode(probs, s.registry)

	report := &domain.PredictionReport{
		Username:   in.Username,
		Image:      stored,
		Prediction: label,
		Confidence: classifier.RoundConfidence(confidence, s.recordDecimals),
		Timestamp:  time.Now().UTC(),
	}

	result := &ports.ClassifyResult{
		Prediction: label,
		Confidence: classifier.RoundConfidence(confidence, s.displayDecimals),
		Image:      stored,
	}

	if err := s.reports.Append(ctx, report); err != nil {
		s.logger.Error().Err(err).
			Str("username", in.Username).
			Str("prediction", label).
			Msg("failed to save prediction report")
		result.Warning = "prediction succeeded but could not be saved to history"
	}

	s.logger.Info().
		Str("username", in.Username).
		Str("prediction", label).
		Float64("confidence", result.Confidence).
		Msg("image classified")

	return result, nil
}

// saveUpload copies the upload into the upload directory under a fresh UUID
// name, keeping only the original extension. The handle to the stored file is
// closed before preprocessing reopens it.
func (s *ClassifyService) saveUpload(filename string, src io.Reader) (stored, path string, err error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	stored = uuid.NewString() + ext
	path = filepath.Join(s.uploadDir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	_, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr != nil {
		s.discard(path)
		return "", "", copyErr
	}
	if closeErr != nil {
		s.discard(path)
		return "", "", closeErr
	}
	return stored, path, nil
}

func (s *ClassifyService) preprocessFile(path string) (*classifier.Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reopen upload: %w", err)
	}
	defer f.Close()
	return classifier.Preprocess(f, s.engine.ImageSize())
}

// discard removes a stored upload that will never be referenced by a report.
func (s *ClassifyService) discard(path string) {
	if err := os.Remove(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove upload")
	}
}
