package auth_test

import (
	"testing"
	"time"

	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/kernel"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := auth.NewJWTService("test-secret", time.Hour, "postwave")
	user := auth.User{
		ID:    kernel.NewUserID(),
		Email: "alice@example.com",
		Name:  "Alice",
	}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %v, want %v", claims.UserID, user.ID)
	}
	if claims.Email != user.Email || claims.Name != user.Name {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("ExpiresAt = %v, already expired", claims.ExpiresAt)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewJWTService("secret-a", time.Hour, "postwave")
	verifier := auth.NewJWTService("secret-b", time.Hour, "postwave")

	token, err := issuer.GenerateAccessToken(auth.User{ID: kernel.NewUserID(), Email: "a@b.c"})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := verifier.ValidateAccessToken(token); err == nil {
		t.Fatal("ValidateAccessToken() accepted token signed with another secret")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := auth.NewJWTService("test-secret", -time.Minute, "postwave")

	token, err := svc.GenerateAccessToken(auth.User{ID: kernel.NewUserID(), Email: "a@b.c"})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Fatal("ValidateAccessToken() accepted expired token")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	svc := auth.NewJWTService("test-secret", time.Hour, "postwave")
	if _, err := svc.ValidateAccessToken("not.a.token"); err == nil {
		t.Fatal("ValidateAccessToken() accepted garbage")
	}
}
