package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loctime/controldoc/internal/domain/deadline"
	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
	"github.com/loctime/controldoc/pkg/errors"
)

type SubmissionService struct {
	subRepo          repositories.SubmissionRepository
	docSvc           *DocumentService
	companySvc       *CompanyService
	notificationRepo repositories.NotificationRepository
}

func NewSubmissionService(
	subRepo repositories.SubmissionRepository,
	docSvc *DocumentService,
	companySvc *CompanyService,
	notificationRepo repositories.NotificationRepository,
) *SubmissionService {
	return &SubmissionService{
		subRepo:          subRepo,
		docSvc:           docSvc,
		companySvc:       companySvc,
		notificationRepo: notificationRepo,
	}
}

// Create records a new pending submission. The file itself has already been
// stored by the caller; fileRef may be empty when the object store failed,
// which is treated as "no file attached" rather than a fatal error.
func (s *SubmissionService) Create(
	ctx context.Context,
	user *entities.User,
	companyID, requiredDocumentID string,
	fileRef, fileName, fileType string,
	fileSize int64,
	notes *string,
) (*entities.Submission, error) {
	if _, err := s.companySvc.RequireMemberOf(ctx, user, companyID); err != nil {
		return nil, err
	}

	doc, err := s.docSvc.GetByID(ctx, requiredDocumentID)
	if err != nil {
		return nil, err
	}
	if doc.CompanyID != companyID {
		return nil, errors.NewBadRequestError("required document does not belong to this company")
	}
	if !AllowsFileType(doc, fileName) {
		return nil, errors.NewBadRequestError("file type not allowed for this document")
	}

	sub := &entities.Submission{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		CompanyID:          companyID,
		RequiredDocumentID: requiredDocumentID,
		Status:             entities.SubmissionPending,
		FileRef:            fileRef,
		FileName:           fileName,
		FileType:           fileType,
		FileSize:           fileSize,
		Notes:              notes,
		UploadedAt:         time.Now(),
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, errors.NewInternalError("failed to create submission")
	}

	return sub, nil
}

// GetByID returns a submission visible to the caller: its uploader or the
// admin of its company.
func (s *SubmissionService) GetByID(ctx context.Context, user *entities.User, id string) (*entities.Submission, error) {
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("submission not found")
	}

	if sub.UserID == user.ID {
		return sub, nil
	}
	if _, err := s.companySvc.RequireAdminOf(ctx, user, sub.CompanyID); err != nil {
		return nil, errors.NewForbiddenError("access denied")
	}
	return sub, nil
}

// ListOwn lists the caller's submissions, optionally narrowed by company and
// status.
func (s *SubmissionService) ListOwn(ctx context.Context, user *entities.User, companyID string, status entities.SubmissionStatus) ([]*entities.Submission, error) {
	filter := &entities.SubmissionFilter{
		UserID:    user.ID,
		CompanyID: companyID,
		Status:    status,
	}
	subs, err := s.subRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewStoreError("failed to list submissions", err)
	}
	return subs, nil
}

// ListForReview lists a company's submissions for its admin.
func (s *SubmissionService) ListForReview(ctx context.Context, admin *entities.User, companyID string, status entities.SubmissionStatus) ([]*entities.Submission, error) {
	if _, err := s.companySvc.RequireAdminOf(ctx, admin, companyID); err != nil {
		return nil, err
	}

	filter := &entities.SubmissionFilter{
		CompanyID: companyID,
		Status:    status,
	}
	subs, err := s.subRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewStoreError("failed to list submissions", err)
	}
	return subs, nil
}

// Review transitions a pending submission to approved or rejected. Terminal
// states never transition again; a concurrent double-review loses on the
// status guard in the repository and surfaces as a conflict.
func (s *SubmissionService) Review(
	ctx context.Context,
	reviewer *entities.User,
	id string,
	status entities.SubmissionStatus,
	expirationDate *time.Time,
	reason *string,
) (*entities.Submission, error) {
	if status != entities.SubmissionApproved && status != entities.SubmissionRejected {
		return nil, errors.NewBadRequestError("review status must be approved or rejected")
	}

	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("submission not found")
	}

	if _, err := s.companySvc.RequireAdminOf(ctx, reviewer, sub.CompanyID); err != nil {
		return nil, err
	}

	if sub.Status != entities.SubmissionPending {
		return nil, errors.NewConflictError("submission has already been reviewed")
	}

	now := time.Now()
	sub.Status = status
	sub.ReviewedBy = &reviewer.ID
	switch status {
	case entities.SubmissionApproved:
		sub.ApprovedAt = &now
		sub.ExpirationDate = expirationDate
	case entities.SubmissionRejected:
		if reason == nil || *reason == "" {
			return nil, errors.NewBadRequestError("a rejection reason is required")
		}
		sub.RejectedAt = &now
		sub.RejectionReason = reason
	}

	updated, err := s.subRepo.UpdateReview(ctx, sub)
	if err != nil {
		return nil, errors.NewInternalError("failed to update submission")
	}
	if !updated {
		return nil, errors.NewConflictError("submission has already been reviewed")
	}

	s.notifyReview(ctx, sub)

	return sub, nil
}

// Worklist runs the expiration scan for one user within one company: which
// required documents are missing, expired, or satisfied as of the given date.
func (s *SubmissionService) Worklist(ctx context.Context, user *entities.User, companyID string, asOf time.Time, includeSatisfied bool) ([]deadline.WorklistEntry, error) {
	if _, err := s.companySvc.RequireMemberOf(ctx, user, companyID); err != nil {
		return nil, err
	}

	docs, err := s.docSvc.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	subs, err := s.subRepo.List(ctx, &entities.SubmissionFilter{UserID: user.ID, CompanyID: companyID})
	if err != nil {
		return nil, errors.NewStoreError("failed to list submissions", err)
	}

	return deadline.Scan(derefDocs(docs), derefSubs(subs), asOf, includeSatisfied)
}

type DashboardSummary struct {
	Missing   int `json:"missing"`
	Expired   int `json:"expired"`
	Satisfied int `json:"satisfied"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
}

// Dashboard aggregates the scanner output with per-status submission counts.
func (s *SubmissionService) Dashboard(ctx context.Context, user *entities.User, companyID string, asOf time.Time) (*DashboardSummary, error) {
	entries, err := s.Worklist(ctx, user, companyID, asOf, true)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{}
	for _, e := range entries {
		switch e.State {
		case deadline.StateMissing:
			summary.Missing++
		case deadline.StateExpired:
			summary.Expired++
		case deadline.StateSatisfied:
			summary.Satisfied++
		}
	}

	counts, err := s.subRepo.CountByStatus(ctx, user.ID, companyID)
	if err != nil {
		return nil, errors.NewStoreError("failed to count submissions", err)
	}
	summary.Pending = counts[entities.SubmissionPending]
	summary.Approved = counts[entities.SubmissionApproved]
	summary.Rejected = counts[entities.SubmissionRejected]

	return summary, nil
}

// notifyReview writes a notification for the uploader. Best effort: a failed
// notification never rolls back a completed review.
func (s *SubmissionService) notifyReview(ctx context.Context, sub *entities.Submission) {
	n := &entities.Notification{
		ID:                  uuid.NewString(),
		UserID:              sub.UserID,
		RelatedSubmissionID: &sub.ID,
		CreatedAt:           time.Now(),
	}
	switch sub.Status {
	case entities.SubmissionApproved:
		n.Type = entities.NotificationApproval
		n.Title = "Document approved"
		n.Message = fmt.Sprintf("Your document %q has been approved.", sub.FileName)
		if sub.ExpirationDate != nil {
			n.Message = fmt.Sprintf("Your document %q has been approved, valid until %s.", sub.FileName, sub.ExpirationDate.Format("2006-01-02"))
		}
	case entities.SubmissionRejected:
		n.Type = entities.NotificationRejection
		n.Title = "Document rejected"
		n.Message = fmt.Sprintf("Your document %q has been rejected: %s", sub.FileName, *sub.RejectionReason)
	default:
		return
	}

	s.notificationRepo.Create(ctx, n)
}

func derefDocs(docs []*entities.RequiredDocument) []entities.RequiredDocument {
	out := make([]entities.RequiredDocument, len(docs))
	for i, d := range docs {
		out[i] = *d
	}
	return out
}

func derefSubs(subs []*entities.Submission) []entities.Submission {
	out := make([]entities.Submission, len(subs))
	for i, s := range subs {
		out[i] = *s
	}
	return out
}
