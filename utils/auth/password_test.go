package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash should not equal the plaintext password")
	}

	if err := VerifyPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("correct password should verify: %v", err)
	}

	if err := VerifyPassword(hash, "wrong password"); err != ErrPasswordMismatch {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestHashPasswordRejectsShort(t *testing.T) {
	if _, err := HashPassword("short"); err != ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestIsPasswordValid(t *testing.T) {
	if IsPasswordValid("1234567") {
		t.Error("7-character password should be invalid")
	}
	if !IsPasswordValid("12345678") {
		t.Error("8-character password should be valid")
	}
}
