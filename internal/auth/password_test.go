package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Sup3rSecret!" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "Sup3rSecret!") {
		t.Fatal("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "WrongSecret!") {
		t.Fatal("CheckPassword accepted a wrong password")
	}
	if CheckPassword("not-a-hash", "Sup3rSecret!") {
		t.Fatal("CheckPassword accepted a malformed hash")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}
