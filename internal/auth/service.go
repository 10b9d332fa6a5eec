package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login attempt. The
// handler translates it into the French message the front end shows.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

type staticAccount struct {
	password string
	role     string
}

// The fixed staff accounts. Passwords are deliberately simple shared
// secrets rotated by redeploy; this is an internal tool behind a VPN.
var staticAccounts = map[string]staticAccount{
	"icham":     {password: "icham2025", role: RoleIcham},
	"ibrahim":   {password: "ibrahim2025", role: RoleIbrahim},
	"vendeur":   {password: "vendeur2025", role: RoleVendeur},
	"saisie":    {password: "saisie2025", role: RoleDataEntry},
	"direction": {password: "direction2025", role: RoleDirection},
}

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates login/password against the static accounts
// first, then against the database admin.
func (s *Service) Authenticate(ctx context.Context, login, password string) (Session, error) {
	if acct, ok := staticAccounts[login]; ok {
		if subtle.ConstantTimeCompare([]byte(acct.password), []byte(password)) == 1 {
			return Session{Role: acct.role, Landing: Landing(acct.role)}, nil
		}
		return Session{}, ErrInvalidCredentials
	}
	if s.repo == nil {
		return Session{}, ErrInvalidCredentials
	}
	admin, err := s.repo.FindAdminByLogin(ctx, login)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Role: RoleAdmin, Admin: true, Landing: Landing(RoleAdmin)}, nil
}
