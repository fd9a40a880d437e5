package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/sheikhgalib/academix/internal/app/models"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "academix.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	account := &models.Account{
		ID:       42,
		Username: "teacher1",
		Roles:    []string{"ROLE_TEACHER"},
	}

	token, expiresIn, err := svc.GenerateToken(account)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if expiresIn != 3600 {
		t.Errorf("expected expiresIn 3600, got %d", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("expected account ID 42, got %d", claims.AccountID)
	}
	if claims.Username != "teacher1" {
		t.Errorf("expected username teacher1, got %q", claims.Username)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "ROLE_TEACHER" {
		t.Errorf("unexpected roles: %v", claims.Roles)
	}
	if claims.Issuer != "academix.test" {
		t.Errorf("unexpected issuer: %q", claims.Issuer)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, _, err := svc.GenerateToken(&models.Account{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestJWTService(time.Hour).GenerateToken(&models.Account{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", AccessTokenExp: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret validated")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractBearerToken returned error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("expected abc.def.ghi, got %q", token)
	}

	if _, err := ExtractBearerToken(""); err == nil {
		t.Error("empty header accepted")
	}
}
