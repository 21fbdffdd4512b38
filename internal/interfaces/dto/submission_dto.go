package dto

import (
	"time"

	"github.com/loctime/controldoc/internal/domain/deadline"
	"github.com/loctime/controldoc/internal/domain/entities"
)

// SubmissionMeta rides in the "meta" field of the multipart upload form.
type SubmissionMeta struct {
	Token      string  `json:"token" binding:"required"`
	CompanyID  string  `json:"company_id" binding:"required"`
	DocumentID string  `json:"document_id" binding:"required"`
	Notes      *string `json:"notes"`
}

type SubmissionListResponse struct {
	Submissions []*entities.Submission `json:"submissions"`
}

type SubmissionReviewRequest struct {
	Token          string     `json:"token" binding:"required"`
	Status         string     `json:"status" binding:"required"`
	ExpirationDate *time.Time `json:"expiration_date"`
	Reason         *string    `json:"reason"`
}

type WorklistResponse struct {
	AsOf    time.Time                `json:"as_of"`
	Entries []deadline.WorklistEntry `json:"entries"`
}

type NotificationListResponse struct {
	Notifications []*entities.Notification `json:"notifications"`
}

type NotificationReadResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}
