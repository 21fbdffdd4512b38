package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/services"
	"github.com/loctime/controldoc/internal/interfaces/dto"
	"github.com/loctime/controldoc/pkg/logger"
)

// FileStore is the slice of the object store the handler needs: persist an
// upload, resolve a ref for download.
type FileStore interface {
	Save(src io.Reader, originalName string) (string, error)
	Path(ref string) (string, error)
}

type SubmissionHandler struct {
	submissionSvc *services.SubmissionService
	authSvc       *services.AuthService
	store         FileStore
}

func NewSubmissionHandler(submissionSvc *services.SubmissionService, authSvc *services.AuthService, store FileStore) *SubmissionHandler {
	return &SubmissionHandler{
		submissionSvc: submissionSvc,
		authSvc:       authSvc,
		store:         store,
	}
}

// Upload accepts a multipart form with a "file" part and a "meta" part holding
// the JSON-encoded submission metadata, token included.
func (h *SubmissionHandler) Upload(c *gin.Context) {
	metaRaw := c.PostForm("meta")
	if metaRaw == "" {
		respondWithError(c, http.StatusBadRequest, 400, "meta field is required")
		return
	}

	var meta dto.SubmissionMeta
	if err := json.Unmarshal([]byte(metaRaw), &meta); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, "invalid meta field")
		return
	}
	if meta.Token == "" || meta.CompanyID == "" || meta.DocumentID == "" {
		respondWithError(c, http.StatusBadRequest, 400, "token, company_id and document_id are required")
		return
	}

	user, err := h.authSvc.ValidateToken(c.Request.Context(), meta.Token)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, http.StatusBadRequest, 400, "file is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, http.StatusBadRequest, 400, "failed to read uploaded file")
		return
	}
	defer src.Close()

	ref, err := h.store.Save(src, fileHeader.Filename)
	if err != nil {
		logger.Error("failed to store uploaded file", zap.Error(err))
		respondWithError(c, http.StatusInternalServerError, 500, "failed to store file")
		return
	}

	sub, err := h.submissionSvc.Create(
		c.Request.Context(),
		user,
		meta.CompanyID,
		meta.DocumentID,
		ref,
		fileHeader.Filename,
		strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."),
		fileHeader.Size,
		meta.Notes,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, sub)
}

func (h *SubmissionHandler) GetByID(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, sub)
}

// Download streams the stored file of a submission the caller may see.
func (h *SubmissionHandler) Download(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if sub.FileRef == "" {
		respondWithError(c, http.StatusNotFound, 404, "submission has no file")
		return
	}

	path, err := h.store.Path(sub.FileRef)
	if err != nil {
		respondWithError(c, http.StatusNotFound, 404, "file not found")
		return
	}

	c.FileAttachment(path, sub.FileName)
}

// GetOwnList lists the caller's submissions, filterable by company and status.
func (h *SubmissionHandler) GetOwnList(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	subs, err := h.submissionSvc.ListOwn(
		c.Request.Context(),
		user,
		c.Query("companyId"),
		entities.SubmissionStatus(c.Query("status")),
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.SubmissionListResponse{Submissions: subs})
}

// GetReviewList lists a company's submissions for its admin.
func (h *SubmissionHandler) GetReviewList(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	subs, err := h.submissionSvc.ListForReview(
		c.Request.Context(),
		user,
		c.Param("id"),
		entities.SubmissionStatus(c.Query("status")),
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.SubmissionListResponse{Submissions: subs})
}

// Review approves or rejects a pending submission.
func (h *SubmissionHandler) Review(c *gin.Context) {
	var req dto.SubmissionReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	reviewer, err := h.authSvc.ValidateToken(c.Request.Context(), req.Token)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sub, err := h.submissionSvc.Review(
		c.Request.Context(),
		reviewer,
		c.Param("id"),
		entities.SubmissionStatus(req.Status),
		req.ExpirationDate,
		req.Reason,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, sub)
}

// Worklist reports which required documents the caller is missing, has let
// expire, or has satisfied within one company.
func (h *SubmissionHandler) Worklist(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	asOf := time.Now()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, 400, "asOf must be a YYYY-MM-DD date")
			return
		}
		asOf = parsed
	}
	includeSatisfied := c.Query("includeSatisfied") == "true"

	companyID := c.Query("companyId")
	if companyID == "" {
		respondWithError(c, http.StatusBadRequest, 400, "companyId is required")
		return
	}

	entries, err := h.submissionSvc.Worklist(c.Request.Context(), user, companyID, asOf, includeSatisfied)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.WorklistResponse{AsOf: asOf, Entries: entries})
}

// Dashboard aggregates worklist states and per-status submission counts.
func (h *SubmissionHandler) Dashboard(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	companyID := c.Query("companyId")
	if companyID == "" {
		respondWithError(c, http.StatusBadRequest, 400, "companyId is required")
		return
	}

	summary, err := h.submissionSvc.Dashboard(c.Request.Context(), user, companyID, time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, summary)
}
