package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
	"github.com/loctime/controldoc/internal/utils"
	"github.com/loctime/controldoc/pkg/errors"
)

type CompanyService struct {
	companyRepo repositories.CompanyRepository
	userRepo    repositories.UserRepository
	cache       CacheService
}

func NewCompanyService(companyRepo repositories.CompanyRepository, userRepo repositories.UserRepository, cache CacheService) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

func (s *CompanyService) Create(ctx context.Context, admin *entities.User, name, color string, description *string) (*entities.Company, error) {
	if !admin.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators can create companies")
	}
	if err := utils.ValidateName(name); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := utils.ValidateHexColor(color); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	company := &entities.Company{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       color,
		Description: description,
		AdminID:     admin.ID,
		Users:       []string{},
		CreatedAt:   time.Now(),
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, errors.NewInternalError("failed to create company")
	}

	return company, nil
}

// GetByID reads through the cache; on a miss or a cache failure the company
// comes from the database and the cache is refreshed best-effort.
func (s *CompanyService) GetByID(ctx context.Context, id string) (*entities.Company, error) {
	if company, err := s.cache.GetCompany(ctx, id); err == nil {
		return company, nil
	}

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("company not found")
	}

	s.cache.SetCompany(ctx, company)

	return company, nil
}

// ListForUser returns companies owned by an admin or joined by an employee.
func (s *CompanyService) ListForUser(ctx context.Context, user *entities.User) ([]*entities.Company, error) {
	var (
		companies []*entities.Company
		err       error
	)
	if user.IsAdmin() {
		companies, err = s.companyRepo.GetByAdmin(ctx, user.ID)
	} else {
		companies, err = s.companyRepo.GetByMember(ctx, user.ID)
	}
	if err != nil {
		return nil, errors.NewInternalError("failed to list companies")
	}
	return companies, nil
}

func (s *CompanyService) Delete(ctx context.Context, admin *entities.User, id string) error {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return errors.NewNotFoundError("company not found")
	}

	if company.AdminID != admin.ID {
		return errors.NewForbiddenError("access denied")
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete company")
	}

	s.cache.InvalidateCompany(ctx, id)
	s.cache.InvalidateRequiredDocuments(ctx, id)

	return nil
}

// ListMembers returns a company's users for its admin.
func (s *CompanyService) ListMembers(ctx context.Context, admin *entities.User, companyID string) ([]*entities.User, error) {
	if _, err := s.RequireAdminOf(ctx, admin, companyID); err != nil {
		return nil, err
	}

	members, err := s.userRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list company members")
	}
	return members, nil
}

// RequireAdminOf returns the company when the user administers it.
func (s *CompanyService) RequireAdminOf(ctx context.Context, user *entities.User, companyID string) (*entities.Company, error) {
	company, err := s.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.AdminID != user.ID {
		return nil, errors.NewForbiddenError("access denied")
	}
	return company, nil
}

// RequireMemberOf returns the company when the user belongs to it, either as
// its admin or as an invited employee.
func (s *CompanyService) RequireMemberOf(ctx context.Context, user *entities.User, companyID string) (*entities.Company, error) {
	company, err := s.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.AdminID == user.ID {
		return company, nil
	}
	for _, assoc := range user.Companies {
		if assoc.CompanyID == companyID {
			return company, nil
		}
	}
	return nil, errors.NewForbiddenError("access denied")
}
