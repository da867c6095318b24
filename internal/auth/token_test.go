package auth

import (
	"testing"
	"time"

	"github.com/ratespot/ratespot/internal/domain"
)

func testUser() domain.User {
	return domain.User{
		ID:    "3f6c1a52-70a8-4a1e-9dc5-000000000001",
		Name:  "Jonathan Maxwell Everwood",
		Email: "jon@example.com",
		Role:  domain.RoleNormalUser,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != testUser().ID {
		t.Fatalf("UserID = %s, want %s", identity.UserID, testUser().ID)
	}
	if identity.Name != testUser().Name {
		t.Fatalf("Name = %s, want %s", identity.Name, testUser().Name)
	}
	if identity.Role != domain.RoleNormalUser {
		t.Fatalf("Role = %s, want %s", identity.Role, domain.RoleNormalUser)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := NewTokenService("secret-b").Verify(token); err != ErrInvalidToken {
		t.Fatalf("Verify with wrong secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Just before expiry the token is still accepted.
	svc.now = func() time.Time { return issued.Add(TokenTTL - time.Minute) }
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("Verify before expiry: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(TokenTTL + time.Minute) }
	if _, err := svc.Verify(token); err != ErrInvalidToken {
		t.Fatalf("Verify after expiry: err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); err != ErrInvalidToken {
			t.Fatalf("Verify(%q): err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	svc := NewTokenService("test-secret")
	user := testUser()
	user.Role = domain.Role("Galactic Overlord")

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); err != ErrInvalidToken {
		t.Fatalf("Verify with unknown role: err = %v, want ErrInvalidToken", err)
	}
}
