package auth

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

type stubRepo struct {
	admin *Admin
}

func (s stubRepo) FindAdminByLogin(_ context.Context, login string) (*Admin, error) {
	if s.admin != nil && s.admin.Login == login {
		return s.admin, nil
	}
	return nil, httpx.ErrNotFound
}

func TestAuthenticateStaticAccount(t *testing.T) {
	svc := NewService(stubRepo{})
	sess, err := svc.Authenticate(context.Background(), "icham", "icham2025")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.Role != RoleIcham || sess.Admin {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Landing != "/icham" {
		t.Fatalf("unexpected landing: %s", sess.Landing)
	}
}

func TestAuthenticateStaticAccountBadPassword(t *testing.T) {
	svc := NewService(stubRepo{})
	if _, err := svc.Authenticate(context.Background(), "icham", "nope"); err != ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc := NewService(stubRepo{admin: &Admin{ID: 1, Login: "chef", PasswordHash: string(hash)}})

	sess, err := svc.Authenticate(context.Background(), "chef", "s3cret")
	if err != nil {
		t.Fatalf("authenticate admin: %v", err)
	}
	if !sess.Admin || sess.Role != RoleAdmin {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if _, err := svc.Authenticate(context.Background(), "chef", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ghost", "s3cret"); err != ErrInvalidCredentials {
		t.Fatalf("unknown login must not leak details, got %v", err)
	}
}

func TestLandingPerRole(t *testing.T) {
	cases := map[string]string{
		RoleIcham:     "/icham",
		RoleIbrahim:   "/ibrahim",
		RoleDataEntry: "/data-entry",
		RoleDirection: "/kpi",
		RoleAdmin:     "/kpi",
		"unknown":     "/login",
	}
	for role, want := range cases {
		if got := Landing(role); got != want {
			t.Fatalf("Landing(%q) = %q, want %q", role, got, want)
		}
	}
}
