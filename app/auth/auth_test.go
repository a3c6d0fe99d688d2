package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash == "s3cret-pass" {
		t.Error("Hash must not equal the plain password")
	}

	if !VerifyPassword("s3cret-pass", hash) {
		t.Error("Expected correct password to verify")
	}
	if VerifyPassword("wrong-pass", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestCreateAndDecodeToken(t *testing.T) {
	token, err := CreateToken("test-secret", "user-42")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	userID, err := DecodeToken("test-secret", token)
	if err != nil {
		t.Fatalf("Expected valid token, got %v", err)
	}
	if userID != "user-42" {
		t.Errorf("Expected user-42, got %s", userID)
	}
}

func TestDecodeToken_WrongSecret(t *testing.T) {
	token, err := CreateToken("test-secret", "user-42")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = DecodeToken("other-secret", token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestDecodeToken_Garbage(t *testing.T) {
	_, err := DecodeToken("test-secret", "not.a.jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}
