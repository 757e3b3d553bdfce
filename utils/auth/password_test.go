package auth

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword(hash, "correct horse battery"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestIsPasswordValid(t *testing.T) {
	if IsPasswordValid("short") {
		t.Error("passwords under 8 characters must be rejected")
	}
	if !IsPasswordValid("long enough") {
		t.Error("8+ character password should be accepted")
	}
}
