package common

import (
	"testing"
	"time"
)

func TestTokenSignerService_SignAndValidate(t *testing.T) {
	signer := NewTokenSignerService([]byte("test-secret"))

	token, err := signer.SignSessionToken("user-1", "Captain A", "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("SignSessionToken: %v", err)
	}

	session, err := signer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if session.UserID != "user-1" || session.DisplayName != "Captain A" || session.SessionID != "sess-1" {
		t.Errorf("Unexpected identity: %+v", session)
	}
	if time.Until(session.ExpiresAt) <= 0 {
		t.Error("Expected a future expiry")
	}
}

func TestTokenSignerService_RejectsExpiredToken(t *testing.T) {
	signer := NewTokenSignerService([]byte("test-secret"))

	token, err := signer.SignSessionToken("user-1", "Captain A", "", -time.Minute)
	if err != nil {
		t.Fatalf("SignSessionToken: %v", err)
	}

	if _, err := signer.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail for an expired token")
	}
}

func TestTokenSignerService_RejectsWrongSecret(t *testing.T) {
	signer := NewTokenSignerService([]byte("test-secret"))
	other := NewTokenSignerService([]byte("different-secret"))

	token, err := signer.SignSessionToken("user-1", "Captain A", "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("SignSessionToken: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail under a different secret")
	}
}

func TestTokenSignerService_RejectsGarbage(t *testing.T) {
	signer := NewTokenSignerService([]byte("test-secret"))

	if _, err := signer.ValidateToken("not.a.token"); err == nil {
		t.Error("Expected validation to fail for malformed input")
	}
}
