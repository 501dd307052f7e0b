package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

// FeedbackService persists contact-form messages. Submission is
// fire-and-forget: a storage failure is logged but the user is still thanked.
type FeedbackService struct {
	repo   ports.FeedbackRepository
	logger zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

func (s *FeedbackService) Submit(ctx context.Context, name, email, message string) {
	fb := &domain.Feedback{
		Name:      name,
		Email:     email,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, fb); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to persist feedback")
		return
	}
	s.logger.Info().Str("email", email).Msg("feedback received")
}
