package repositories

import (
	"context"

	"github.com/loctime/controldoc/internal/domain/entities"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *entities.Submission) error
	GetByID(ctx context.Context, id string) (*entities.Submission, error)
	List(ctx context.Context, filter *entities.SubmissionFilter) ([]*entities.Submission, error)
	// UpdateReview persists a review transition. It only touches rows still
	// in pending status and reports whether a row was updated.
	UpdateReview(ctx context.Context, sub *entities.Submission) (bool, error)
	CountByStatus(ctx context.Context, userID, companyID string) (map[entities.SubmissionStatus]int, error)
}
