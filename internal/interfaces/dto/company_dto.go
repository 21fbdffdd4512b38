package dto

import "github.com/loctime/controldoc/internal/domain/entities"

type CompanyCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Color       string  `json:"color" binding:"required"`
	Description *string `json:"description"`
}

type CompanyListResponse struct {
	Companies []*entities.Company `json:"companies"`
}

type CompanyDeleteResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type InvitationLinkResponse struct {
	Link string `json:"link"`
}

// CompanyMember is a user projection safe to hand to company admins: no
// password hash, no cross-company associations.
type CompanyMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CompanyMemberListResponse struct {
	Members []CompanyMember `json:"members"`
}
