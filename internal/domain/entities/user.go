package entities

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// CompanyAssociation records which company a user belongs to and which admin
// invited them. Employees may belong to several companies.
type CompanyAssociation struct {
	CompanyID string `json:"company_id"`
	AdminID   string `json:"admin_id"`
}

type User struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Password  string               `json:"-"`
	Role      Role                 `json:"role"`
	Companies []CompanyAssociation `json:"companies,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
