package entities

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is one uploaded file instance against a required document.
// Only pending submissions transition; approved and rejected are terminal.
// History is retained: a newer submission supersedes an older one for the
// same (user, required document) pair rather than overwriting it.
type Submission struct {
	ID                 string           `json:"id" db:"id"`
	UserID             string           `json:"user_id" db:"user_id"`
	CompanyID          string           `json:"company_id" db:"company_id"`
	RequiredDocumentID string           `json:"required_document_id" db:"required_document_id"`
	Status             SubmissionStatus `json:"status" db:"status"`
	FileRef            string           `json:"file_ref" db:"file_ref"`
	FileName           string           `json:"file_name" db:"file_name"`
	FileType           string           `json:"file_type" db:"file_type"`
	FileSize           int64            `json:"file_size" db:"file_size"`
	Notes              *string          `json:"notes,omitempty" db:"notes"`
	UploadedAt         time.Time        `json:"uploaded_at" db:"uploaded_at"`
	ApprovedAt         *time.Time       `json:"approved_at,omitempty" db:"approved_at"`
	ExpirationDate     *time.Time       `json:"expiration_date,omitempty" db:"expiration_date"`
	RejectedAt         *time.Time       `json:"rejected_at,omitempty" db:"rejected_at"`
	RejectionReason    *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ReviewedBy         *string          `json:"reviewed_by,omitempty" db:"reviewed_by"`
}

type SubmissionFilter struct {
	UserID             string
	CompanyID          string
	RequiredDocumentID string
	Status             SubmissionStatus
	Limit              int
}
