package dto

type RegisterAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`

	// Invitation parameters, copied from the registration link.
	CompanyID    string `json:"company_id" binding:"required"`
	AdminID      string `json:"admin_id" binding:"required"`
	CompanyName  string `json:"company_name"`
	CompanyColor string `json:"company_color"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

type InvitationValidateResponse struct {
	Valid        bool   `json:"valid"`
	CompanyName  string `json:"company_name,omitempty"`
	CompanyColor string `json:"company_color,omitempty"`
	AdminName    string `json:"admin_name,omitempty"`
}
