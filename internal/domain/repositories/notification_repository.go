package repositories

import (
	"context"

	"github.com/loctime/controldoc/internal/domain/entities"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entities.Notification) error
	GetByUser(ctx context.Context, userID string, limit int) ([]*entities.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
