package repositories

import (
	"context"

	"github.com/loctime/controldoc/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	AddCompanyAssociation(ctx context.Context, userID string, assoc entities.CompanyAssociation) error
	GetByCompany(ctx context.Context, companyID string) ([]*entities.User, error)
}
