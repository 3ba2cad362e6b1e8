package crypto

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("P4ssword", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "P4ssword" {
		t.Fatalf("hash equals plaintext")
	}
	if err := ComparePassword(hash, "P4ssword"); err != nil {
		t.Fatalf("compare failed for correct password: %v", err)
	}
	if err := ComparePassword(hash, "WrongP4ss"); err == nil {
		t.Fatalf("compare succeeded for wrong password")
	}
}

func TestHashPasswordInvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("P4ssword", 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ComparePassword(hash, "P4ssword"); err != nil {
		t.Fatalf("compare failed: %v", err)
	}
}

func TestHashPasswordSaltsDigests(t *testing.T) {
	first, err := HashPassword("P4ssword", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("P4ssword", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct salted digests")
	}
}
