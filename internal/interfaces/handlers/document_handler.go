package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loctime/controldoc/internal/domain/services"
	"github.com/loctime/controldoc/internal/interfaces/dto"
)

// DocumentHandler serves required-document definitions.
type DocumentHandler struct {
	documentSvc *services.DocumentService
	companySvc  *services.CompanyService
	authSvc     *services.AuthService
}

func NewDocumentHandler(
	documentSvc *services.DocumentService,
	companySvc *services.CompanyService,
	authSvc *services.AuthService,
) *DocumentHandler {
	return &DocumentHandler{
		documentSvc: documentSvc,
		companySvc:  companySvc,
		authSvc:     authSvc,
	}
}

func (h *DocumentHandler) Create(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	companyID := c.Param("id")
	if _, err := h.companySvc.RequireAdminOf(c.Request.Context(), user, companyID); err != nil {
		handleServiceError(c, err)
		return
	}

	var req dto.RequiredDocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	doc, err := h.documentSvc.Create(c.Request.Context(),
		companyID,
		req.Name,
		req.Description,
		req.Deadline,
		req.AllowedFileTypes,
		req.ExampleFileRef,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, doc)
}

func (h *DocumentHandler) GetListByCompany(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	companyID := c.Param("id")
	if _, err := h.companySvc.RequireMemberOf(c.Request.Context(), user, companyID); err != nil {
		handleServiceError(c, err)
		return
	}

	docs, err := h.documentSvc.GetByCompany(c.Request.Context(), companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.RequiredDocumentListResponse{Documents: docs})
}

func (h *DocumentHandler) GetByID(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	doc, err := h.documentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if _, err := h.companySvc.RequireMemberOf(c.Request.Context(), user, doc.CompanyID); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	docID := c.Param("id")
	doc, err := h.documentSvc.GetByID(c.Request.Context(), docID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if _, err := h.companySvc.RequireAdminOf(c.Request.Context(), user, doc.CompanyID); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.documentSvc.Delete(c.Request.Context(), docID); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.RequiredDocumentDeleteResponse{ID: docID, Success: true}, nil)
}
