package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/morphergyx/inquiry-api/internal/config"
)

// AdminAccount is the single configured admin login
type AdminAccount struct {
	id       string
	email    string
	password string
}

func NewAdminAccount(cfg *config.AuthConfig) *AdminAccount {
	return &AdminAccount{
		id:       cfg.AdminID,
		email:    strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		password: cfg.AdminPassword,
	}
}

// Authenticate returns the admin identity when both email and password match.
// Both comparisons always run.
func (a *AdminAccount) Authenticate(email, password string) (*UserContext, bool) {
	if a.email == "" || a.password == "" {
		return nil, false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(a.email))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	if emailOK&passwordOK != 1 {
		return nil, false
	}
	return &UserContext{AdminID: a.id, Email: a.email, Role: RoleAdmin}, true
}
