package dto

import "github.com/loctime/controldoc/internal/domain/entities"

type RequiredDocumentCreateRequest struct {
	Name             string                  `json:"name" binding:"required"`
	Description      string                  `json:"description"`
	Deadline         entities.RecurrenceRule `json:"deadline" binding:"required"`
	AllowedFileTypes []string                `json:"allowed_file_types" binding:"required"`
	ExampleFileRef   *string                 `json:"example_file_ref"`
}

type RequiredDocumentListResponse struct {
	Documents []*entities.RequiredDocument `json:"documents"`
}

type RequiredDocumentDeleteResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}
