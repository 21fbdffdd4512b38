package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/services"
	"github.com/loctime/controldoc/internal/interfaces/dto"
)

type CompanyHandler struct {
	companySvc *services.CompanyService
	inviteSvc  *services.InvitationService
	authSvc    *services.AuthService
}

func NewCompanyHandler(
	companySvc *services.CompanyService,
	inviteSvc *services.InvitationService,
	authSvc *services.AuthService,
) *CompanyHandler {
	return &CompanyHandler{
		companySvc: companySvc,
		inviteSvc:  inviteSvc,
		authSvc:    authSvc,
	}
}

// requireUser resolves the session token passed either as a query parameter
// or a bearer-less Authorization header.
func requireUser(c *gin.Context, authSvc *services.AuthService) (*entities.User, bool) {
	token := c.Query("token")
	if token == "" {
		token = c.GetHeader("Authorization")
	}
	if token == "" {
		respondWithError(c, http.StatusUnauthorized, 401, "token is required")
		return nil, false
	}

	user, err := authSvc.ValidateToken(c.Request.Context(), token)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return user, true
}

func (h *CompanyHandler) Create(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	var req dto.CompanyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	company, err := h.companySvc.Create(c.Request.Context(), user, req.Name, req.Color, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, company)
}

func (h *CompanyHandler) GetList(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	companies, err := h.companySvc.ListForUser(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.CompanyListResponse{Companies: companies})
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	company, err := h.companySvc.RequireMemberOf(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	companyID := c.Param("id")
	if err := h.companySvc.Delete(c.Request.Context(), user, companyID); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.CompanyDeleteResponse{ID: companyID, Success: true}, nil)
}

func (h *CompanyHandler) GetMembers(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	members, err := h.companySvc.ListMembers(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	out := make([]dto.CompanyMember, 0, len(members))
	for _, m := range members {
		out = append(out, dto.CompanyMember{ID: m.ID, Name: m.Name, Email: m.Email, Role: string(m.Role)})
	}

	respondWithSuccess(c, nil, dto.CompanyMemberListResponse{Members: out})
}

// InvitationLink hands the admin a shareable registration URL for their
// company.
func (h *CompanyHandler) InvitationLink(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	company, err := h.companySvc.RequireAdminOf(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.InvitationLinkResponse{Link: h.inviteSvc.BuildLink(company)})
}
