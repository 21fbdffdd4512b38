package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
	"github.com/loctime/controldoc/pkg/errors"
)

const fallbackAdminName = "your administrator"

type InvitationService struct {
	companyRepo repositories.CompanyRepository
	userRepo    repositories.UserRepository
	baseURL     string
}

func NewInvitationService(
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	baseURL string,
) *InvitationService {
	return &InvitationService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		baseURL:     baseURL,
	}
}

// Validate decides whether an employee-registration request corresponds to a
// genuine invitation. Two tiers, first match wins:
//
//  1. If the URL carried both company name and color, trust them directly.
//     This keeps links working from browser contexts that cannot reach the
//     backing store (private/incognito sessions); it deliberately does not
//     verify the company/admin pairing beyond the presence of both IDs.
//  2. Otherwise look the company up; valid only when it exists and is owned
//     by the supplied admin.
//
// Missing companyID or adminID is terminal: no registration is possible.
func (s *InvitationService) Validate(ctx context.Context, companyID, adminID, urlCompanyName, urlCompanyColor string) (*entities.Invitation, error) {
	if companyID == "" || adminID == "" {
		return nil, errors.NewInvalidInvitationError("invitation link is missing company or admin identifier")
	}

	invite := &entities.Invitation{
		CompanyID: companyID,
		AdminID:   adminID,
		AdminName: s.resolveAdminName(ctx, adminID),
	}

	if urlCompanyName != "" && urlCompanyColor != "" {
		invite.CompanyName = urlCompanyName
		invite.CompanyColor = urlCompanyColor
		return invite, nil
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, errors.NewInvalidInvitationError("invitation does not match any company")
	}
	if company.AdminID != adminID {
		return nil, errors.NewInvalidInvitationError("invitation does not match the company administrator")
	}

	invite.CompanyName = company.Name
	invite.CompanyColor = company.Color
	return invite, nil
}

// BuildLink produces the shareable registration URL for a company. Name and
// color ride along so the link validates even without store access.
func (s *InvitationService) BuildLink(company *entities.Company) string {
	params := url.Values{}
	params.Set("companyId", company.ID)
	params.Set("adminId", company.AdminID)
	params.Set("companyName", company.Name)
	params.Set("companyColor", company.Color)
	return fmt.Sprintf("%s/register/employee?%s", s.baseURL, params.Encode())
}

func (s *InvitationService) resolveAdminName(ctx context.Context, adminID string) string {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return fallbackAdminName
	}
	return admin.Name
}
