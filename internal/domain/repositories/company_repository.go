package repositories

import (
	"context"

	"github.com/loctime/controldoc/internal/domain/entities"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *entities.Company) error
	GetByID(ctx context.Context, id string) (*entities.Company, error)
	GetByAdmin(ctx context.Context, adminID string) ([]*entities.Company, error)
	GetByMember(ctx context.Context, userID string) ([]*entities.Company, error)
	AddUser(ctx context.Context, companyID, userID string) error
	// Delete removes the company; required documents and submissions cascade
	// at the database level.
	Delete(ctx context.Context, id string) error
}
