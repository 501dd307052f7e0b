package ports

import (
	"context"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

// FeedbackRepository persists contact-form messages.
type FeedbackRepository interface {
	Insert(ctx context.Context, fb *domain.Feedback) error
}
