package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loctime/controldoc/internal/domain/services"
	"github.com/loctime/controldoc/internal/interfaces/dto"
)

type AuthHandler struct {
	authSvc   *services.AuthService
	inviteSvc *services.InvitationService
}

func NewAuthHandler(authSvc *services.AuthService, inviteSvc *services.InvitationService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, inviteSvc: inviteSvc}
}

func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req dto.RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user, err := h.authSvc.RegisterAdmin(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.RegisterResponse{ID: user.ID, Email: user.Email, Role: string(user.Role)}, nil)
}

// RegisterEmployee validates the invitation carried in the request and
// creates the employee inside the inviting company.
func (h *AuthHandler) RegisterEmployee(c *gin.Context) {
	var req dto.RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	invite, err := h.inviteSvc.Validate(c.Request.Context(), req.CompanyID, req.AdminID, req.CompanyName, req.CompanyColor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := h.authSvc.RegisterEmployee(c.Request.Context(), req.Name, req.Email, req.Password, invite)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.RegisterResponse{ID: user.ID, Email: user.Email, Role: string(user.Role)}, nil)
}

func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	token, err := h.authSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.AuthResponse{Token: token}, nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		respondWithError(c, http.StatusBadRequest, 400, "token is required")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.LogoutResponse{Success: true}, nil)
}

// ValidateInvitation is the public endpoint behind the registration page. It
// never requires a session: incognito visitors hit it before signing up.
func (h *AuthHandler) ValidateInvitation(c *gin.Context) {
	invite, err := h.inviteSvc.Validate(
		c.Request.Context(),
		c.Query("companyId"),
		c.Query("adminId"),
		c.Query("companyName"),
		c.Query("companyColor"),
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.InvitationValidateResponse{
		Valid:        true,
		CompanyName:  invite.CompanyName,
		CompanyColor: invite.CompanyColor,
		AdminName:    invite.AdminName,
	}, nil)
}
