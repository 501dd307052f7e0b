package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

// ReportService exposes the per-user prediction history.
type ReportService struct {
	repo   ports.ReportRepository
	logger zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

// ListByUser returns the caller's own reports, newest first. Ownership is
// enforced here by always filtering on the authenticated username.
func (s *ReportService) ListByUser(ctx context.Context, username string) ([]domain.PredictionReport, error) {
	return s.repo.ListByUser(ctx, username)
}
