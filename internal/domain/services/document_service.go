package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
	"github.com/loctime/controldoc/internal/utils"
	"github.com/loctime/controldoc/pkg/errors"
)

// DocumentService manages required-document definitions: the document types
// administrators expect employees to keep submitted.
type DocumentService struct {
	docRepo repositories.RequiredDocumentRepository
	cache   CacheService
}

func NewDocumentService(docRepo repositories.RequiredDocumentRepository, cache CacheService) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		cache:   cache,
	}
}

func (s *DocumentService) Create(
	ctx context.Context,
	companyID, name, description string,
	deadline entities.RecurrenceRule,
	allowedFileTypes []string,
	exampleFileRef *string,
) (*entities.RequiredDocument, error) {
	if err := utils.ValidateName(name); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	// Malformed rules fail fast at the boundary rather than surfacing later
	// during expiration checks.
	if err := deadline.Validate(); err != nil {
		return nil, err
	}
	if len(allowedFileTypes) == 0 {
		return nil, errors.NewBadRequestError("at least one allowed file type is required")
	}

	doc := &entities.RequiredDocument{
		ID:               uuid.NewString(),
		CompanyID:        companyID,
		Name:             name,
		Description:      description,
		Deadline:         deadline,
		AllowedFileTypes: normalizeFileTypes(allowedFileTypes),
		ExampleFileRef:   exampleFileRef,
		CreatedAt:        time.Now(),
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, errors.NewInternalError("failed to create required document")
	}

	s.cache.InvalidateRequiredDocuments(ctx, companyID)

	return doc, nil
}

func (s *DocumentService) GetByID(ctx context.Context, id string) (*entities.RequiredDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("required document not found")
	}
	return doc, nil
}

func (s *DocumentService) GetByCompany(ctx context.Context, companyID string) ([]*entities.RequiredDocument, error) {
	if docs, err := s.cache.GetRequiredDocuments(ctx, companyID); err == nil {
		return docs, nil
	}

	docs, err := s.docRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, errors.NewStoreError("failed to load required documents", err)
	}

	s.cache.SetRequiredDocuments(ctx, companyID, docs)

	return docs, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return errors.NewNotFoundError("required document not found")
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete required document")
	}

	s.cache.InvalidateRequiredDocuments(ctx, doc.CompanyID)

	return nil
}

// AllowsFileType checks an uploaded filename's extension against the
// document's allow-list. Extensions compare case-insensitively, dot ignored.
func AllowsFileType(doc *entities.RequiredDocument, fileName string) bool {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return false
	}
	ext := strings.ToLower(fileName[idx+1:])
	for _, allowed := range doc.AllowedFileTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}

func normalizeFileTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "."))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
