package auth

import (
	"testing"
	"time"

	"github.com/David-H-L/Backend/internal/models"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, err := m.Generate("user-1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if claims.Role != models.RoleAdmin {
		t.Fatalf("role = %q", claims.Role)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Generate("user-1", models.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewManager("secret-b", time.Hour).Validate(token); err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("secret", -time.Minute)
	token, err := m.Generate("user-1", models.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Validate(token); err == nil {
		t.Fatal("expected expiry failure")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour)
	if _, err := m.Validate("not.a.token"); err == nil {
		t.Fatal("expected failure")
	}
}
