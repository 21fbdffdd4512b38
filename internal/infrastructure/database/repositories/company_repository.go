package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
)

type companyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) repositories.CompanyRepository {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) Create(ctx context.Context, company *entities.Company) error {
	query := `INSERT INTO companies (id, name, color, description, admin_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		company.ID, company.Name, company.Color, company.Description, company.AdminID, company.CreatedAt,
	)
	return err
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*entities.Company, error) {
	query := `SELECT id, name, color, description, admin_id, created_at FROM companies WHERE id = $1`

	company, err := r.scanCompany(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadMembers(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (r *companyRepository) GetByAdmin(ctx context.Context, adminID string) ([]*entities.Company, error) {
	query := `SELECT id, name, color, description, admin_id, created_at
		FROM companies WHERE admin_id = $1 ORDER BY created_at DESC`
	return r.queryCompanies(ctx, query, adminID)
}

func (r *companyRepository) GetByMember(ctx context.Context, userID string) ([]*entities.Company, error) {
	query := `SELECT c.id, c.name, c.color, c.description, c.admin_id, c.created_at
		FROM companies c
		JOIN company_users cu ON cu.company_id = c.id
		WHERE cu.user_id = $1
		ORDER BY c.created_at DESC`
	return r.queryCompanies(ctx, query, userID)
}

func (r *companyRepository) AddUser(ctx context.Context, companyID, userID string) error {
	query := `INSERT INTO company_users (company_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (company_id, user_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, companyID, userID)
	return err
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM companies WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *companyRepository) queryCompanies(ctx context.Context, query string, arg any) ([]*entities.Company, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*entities.Company
	for rows.Next() {
		company, err := r.scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, company := range companies {
		if err := r.loadMembers(ctx, company); err != nil {
			return nil, err
		}
	}
	return companies, nil
}

func (r *companyRepository) scanCompany(row pgx.Row) (*entities.Company, error) {
	var company entities.Company
	err := row.Scan(&company.ID, &company.Name, &company.Color, &company.Description, &company.AdminID, &company.CreatedAt)
	if err != nil {
		return nil, err
	}
	company.Users = []string{}
	return &company, nil
}

func (r *companyRepository) loadMembers(ctx context.Context, company *entities.Company) error {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM company_users WHERE company_id = $1`, company.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		company.Users = append(company.Users, userID)
	}
	return rows.Err()
}
