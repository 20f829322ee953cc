package authsrv_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/iam/auth/authsrv"
	"github.com/postwave/postwave/pkg/kernel"
)

type memUserRepo struct {
	users []auth.User
}

func (r *memUserRepo) Save(ctx context.Context, u auth.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id kernel.UserID) (*auth.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, auth.NewUserNotFoundError()
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, auth.NewUserNotFoundError()
}

func newTestAuthService() (*authsrv.Service, *memUserRepo) {
	repo := &memUserRepo{}
	tokens := auth.NewJWTService("test-secret", time.Hour, "postwave")
	return authsrv.NewService(repo, tokens), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestAuthService()

	err := svc.Register(context.Background(), authsrv.RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("stored users = %d, want 1", len(repo.users))
	}
	if repo.users[0].PasswordHash == "s3cret" {
		t.Fatal("password stored in the clear")
	}

	result, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Email != "alice@example.com" || result.Token == "" {
		t.Fatalf("Login() = %+v", result)
	}
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	in := authsrv.RegisterInput{Email: "a@example.com", Password: "pw"}

	if err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if err := svc.Register(context.Background(), in); err == nil {
		t.Fatal("second Register() expected email-taken error")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService()
	if err := svc.Register(context.Background(), authsrv.RegisterInput{
		Email: "a@example.com", Password: "right",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, wrongPwErr := svc.Login(context.Background(), "a@example.com", "wrong")
	if unknownErr == nil || wrongPwErr == nil {
		t.Fatal("expected both logins to fail")
	}
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Fatalf("errors differ: %q vs %q", unknownErr, wrongPwErr)
	}
}
