package auth

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "tenant-1", "kasir@toko.id", "cashier")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token already expired")
	}

	uc, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if uc.UserID != "user-1" || uc.TenantID != "tenant-1" || uc.Role != "cashier" {
		t.Errorf("claims mismatch: %+v", uc)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService(DefaultJWTConfig("secret-a")).
		GenerateAccessToken("u", "t", "e", "r")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := NewJWTService(DefaultJWTConfig("secret-b")).ValidateToken(token); err == nil {
		t.Fatal("token signed with different secret must not validate")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := NewJWTService(DefaultJWTConfig("s")).ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token must not validate")
	}
}
