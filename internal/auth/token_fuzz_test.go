package auth

import "testing"

func FuzzVerify(f *testing.F) {
	svc := NewTokenService("fuzz-secret")

	seeds := []string{
		"",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.x",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, token string) {
		identity, err := svc.Verify(token)
		if err == nil {
			// Anything that verifies must carry a usable identity.
			if identity.UserID == "" || !identity.Role.Valid() {
				t.Fatalf("verified token produced bad identity: %+v", identity)
			}
		}
	})
}
