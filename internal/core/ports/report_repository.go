package ports

import (
	"context"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

// ReportRepository is the append-only store of prediction reports.
type ReportRepository interface {
	Append(ctx context.Context, report *domain.PredictionReport) error
	// ListByUser returns the user's reports ordered by timestamp descending.
	ListByUser(ctx context.Context, username string) ([]domain.PredictionReport, error)
}
