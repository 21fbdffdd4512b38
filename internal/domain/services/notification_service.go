package services

import (
	"context"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
	"github.com/loctime/controldoc/pkg/errors"
)

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string, limit int) ([]*entities.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := s.notificationRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.NewInternalError("failed to list notifications")
	}
	return list, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		return errors.NewNotFoundError("notification not found")
	}
	return nil
}
