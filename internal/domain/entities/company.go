package entities

import "time"

type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description *string   `json:"description,omitempty"`
	AdminID     string    `json:"admin_id"`
	Users       []string  `json:"users"`
	CreatedAt   time.Time `json:"created_at"`
}

// Invitation is not stored anywhere. It is a capability tuple carried in a
// registration URL and resolved against company records on validation.
type Invitation struct {
	CompanyID    string `json:"company_id"`
	AdminID      string `json:"admin_id"`
	CompanyName  string `json:"company_name"`
	CompanyColor string `json:"company_color"`
	AdminName    string `json:"admin_name"`
}
