package service

import (
	"context"

	"github.com/segyhp/reminder-engine/internal/config"
	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/internal/repository"
	customError "github.com/segyhp/reminder-engine/pkg/errors"

	"go.uber.org/zap"
)

// BacklogService writes and reads the change log
type BacklogService struct {
	repo            repository.BacklogRepository
	responsibleUser string
	logger          *zap.Logger
}

func NewBacklogService(repo repository.BacklogRepository, cfg *config.Config, logger *zap.Logger) *BacklogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BacklogService{
		repo:            repo,
		responsibleUser: cfg.Backlog.ResponsibleUser,
		logger:          logger,
	}
}

// Log appends a change-log entry; paymentID may be nil for entries not tied to a payment
func (s *BacklogService) Log(ctx context.Context, paymentID *int64, description string) error {
	entry := &domain.BacklogEntry{
		PaymentID:       paymentID,
		ResponsibleUser: s.responsibleUser,
		Description:     description,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// record logs a mutation that has already been committed; a failure here is reported but not returned
func (s *BacklogService) record(ctx context.Context, paymentID *int64, description string) {
	if err := s.Log(ctx, paymentID, description); err != nil {
		s.logger.Warn("failed to write backlog entry",
			zap.String("description", description),
			zap.Error(err),
		)
	}
}

// List returns entries newest first, optionally only those of one payment
func (s *BacklogService) List(ctx context.Context, paymentID *int64) ([]*domain.BacklogEntry, error) {
	entries, err := s.repo.List(ctx, paymentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return entries, nil
}
