package repositories

import (
	"context"

	"github.com/loctime/controldoc/internal/domain/entities"
)

type RequiredDocumentRepository interface {
	Create(ctx context.Context, doc *entities.RequiredDocument) error
	GetByID(ctx context.Context, id string) (*entities.RequiredDocument, error)
	GetByCompany(ctx context.Context, companyID string) ([]*entities.RequiredDocument, error)
	Delete(ctx context.Context, id string) error
}
