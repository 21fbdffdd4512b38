package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
)

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) repositories.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	query := `INSERT INTO users (id, name, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, assoc := range user.Companies {
		if err := r.AddCompanyAssociation(ctx, user.ID, assoc); err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT id, name, email, password, role, created_at, updated_at FROM users WHERE id = $1`

	var user entities.User
	row := r.pool.QueryRow(ctx, query, id)

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.loadAssociations(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT id, name, email, password, role, created_at, updated_at FROM users WHERE email = $1`

	var user entities.User
	row := r.pool.QueryRow(ctx, query, email)

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.loadAssociations(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AddCompanyAssociation(ctx context.Context, userID string, assoc entities.CompanyAssociation) error {
	query := `INSERT INTO company_users (company_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (company_id, user_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, assoc.CompanyID, userID)
	return err
}

func (r *userRepository) GetByCompany(ctx context.Context, companyID string) ([]*entities.User, error) {
	query := `SELECT u.id, u.name, u.email, u.password, u.role, u.created_at, u.updated_at
		FROM users u
		JOIN company_users cu ON cu.user_id = u.id
		WHERE cu.company_id = $1
		ORDER BY u.name ASC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *userRepository) loadAssociations(ctx context.Context, user *entities.User) error {
	query := `SELECT cu.company_id, c.admin_id
		FROM company_users cu
		JOIN companies c ON c.id = cu.company_id
		WHERE cu.user_id = $1`

	rows, err := r.pool.Query(ctx, query, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var assoc entities.CompanyAssociation
		if err := rows.Scan(&assoc.CompanyID, &assoc.AdminID); err != nil {
			return err
		}
		user.Companies = append(user.Companies, assoc)
	}
	return rows.Err()
}
