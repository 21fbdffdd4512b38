package repositories

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
)

type requiredDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewRequiredDocumentRepository(pool *pgxpool.Pool) repositories.RequiredDocumentRepository {
	return &requiredDocumentRepository{pool: pool}
}

func (r *requiredDocumentRepository) Create(ctx context.Context, doc *entities.RequiredDocument) error {
	deadline, err := json.Marshal(doc.Deadline)
	if err != nil {
		return err
	}

	query := `INSERT INTO required_documents (id, company_id, name, description, deadline, allowed_file_types, example_file_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.pool.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.Name, doc.Description, deadline,
		doc.AllowedFileTypes, doc.ExampleFileRef, doc.CreatedAt,
	)
	return err
}

func (r *requiredDocumentRepository) GetByID(ctx context.Context, id string) (*entities.RequiredDocument, error) {
	query := `SELECT id, company_id, name, description, deadline, allowed_file_types, example_file_ref, created_at
		FROM required_documents WHERE id = $1`

	return scanRequiredDocument(r.pool.QueryRow(ctx, query, id))
}

func (r *requiredDocumentRepository) GetByCompany(ctx context.Context, companyID string) ([]*entities.RequiredDocument, error) {
	query := `SELECT id, company_id, name, description, deadline, allowed_file_types, example_file_ref, created_at
		FROM required_documents WHERE company_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*entities.RequiredDocument
	for rows.Next() {
		doc, err := scanRequiredDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *requiredDocumentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM required_documents WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func scanRequiredDocument(row pgx.Row) (*entities.RequiredDocument, error) {
	var (
		doc      entities.RequiredDocument
		deadline []byte
	)
	err := row.Scan(&doc.ID, &doc.CompanyID, &doc.Name, &doc.Description, &deadline,
		&doc.AllowedFileTypes, &doc.ExampleFileRef, &doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(deadline, &doc.Deadline); err != nil {
		return nil, err
	}
	return &doc, nil
}
