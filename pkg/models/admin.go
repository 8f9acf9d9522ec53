package models

// AdminRole gates which admin pages and actions are permitted.
type AdminRole string

const (
	AdminRoleSupport AdminRole = "SUPPORT"
	AdminRoleGenie   AdminRole = "GENIE"
	AdminRoleSuper   AdminRole = "SUPER"
)

func (r AdminRole) Valid() bool {
	switch r {
	case AdminRoleSupport, AdminRoleGenie, AdminRoleSuper:
		return true
	}
	return false
}

// CanCurateDates reports whether the role may schedule and update dates.
func (r AdminRole) CanCurateDates() bool {
	return r == AdminRoleGenie || r == AdminRoleSuper
}

type Admin struct {
	AdminID string    `json:"adminId" yaml:"admin_id"`
	Email   string    `json:"email" yaml:"email"`
	Name    string    `json:"name" yaml:"name"`
	Role    AdminRole `json:"role" yaml:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Admin        *Admin `json:"admin"`
}
