package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
)

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) repositories.SubmissionRepository {
	return &submissionRepository{db: db}
}

const submissionColumns = `id, user_id, company_id, required_document_id, status, file_ref, file_name, file_type, file_size,
	notes, uploaded_at, approved_at, expiration_date, rejected_at, rejection_reason, reviewed_by`

func (r *submissionRepository) Create(ctx context.Context, sub *entities.Submission) error {
	query := `INSERT INTO submissions (` + submissionColumns + `)
		VALUES (:id, :user_id, :company_id, :required_document_id, :status, :file_ref, :file_name, :file_type, :file_size,
			:notes, :uploaded_at, :approved_at, :expiration_date, :rejected_at, :rejection_reason, :reviewed_by)`

	_, err := r.db.NamedExecContext(ctx, query, sub)
	return err
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entities.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	var sub entities.Submission
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *submissionRepository) List(ctx context.Context, filter *entities.SubmissionFilter) ([]*entities.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, filter.UserID)
		argIndex++
	}
	if filter.CompanyID != "" {
		query += fmt.Sprintf(" AND company_id = $%d", argIndex)
		args = append(args, filter.CompanyID)
		argIndex++
	}
	if filter.RequiredDocumentID != "" {
		query += fmt.Sprintf(" AND required_document_id = $%d", argIndex)
		args = append(args, filter.RequiredDocumentID)
		argIndex++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	query += " ORDER BY uploaded_at DESC, id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	var subs []*entities.Submission
	if err := r.db.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, err
	}

	return subs, nil
}

// UpdateReview writes the review outcome. The status guard in the WHERE
// clause makes concurrent double-reviews lose cleanly instead of clobbering
// a terminal state.
func (r *submissionRepository) UpdateReview(ctx context.Context, sub *entities.Submission) (bool, error) {
	query := `UPDATE submissions
		SET status = $1, approved_at = $2, expiration_date = $3, rejected_at = $4, rejection_reason = $5, reviewed_by = $6
		WHERE id = $7 AND status = 'pending'`

	res, err := r.db.ExecContext(ctx, query,
		sub.Status, sub.ApprovedAt, sub.ExpirationDate, sub.RejectedAt, sub.RejectionReason, sub.ReviewedBy, sub.ID,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *submissionRepository) CountByStatus(ctx context.Context, userID, companyID string) (map[entities.SubmissionStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM submissions WHERE user_id = $1 AND company_id = $2 GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query, userID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[entities.SubmissionStatus]int)
	for rows.Next() {
		var (
			status entities.SubmissionStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
