package domain

import "testing"

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"Normal User", "Store Owner", "System Administrator"} {
		role, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", raw, err)
		}
		if role.String() != raw {
			t.Fatalf("role = %s, want %s", role, raw)
		}
		if !role.Valid() {
			t.Fatalf("role %s should be valid", role)
		}
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "admin", "normal user", "store_owner", "SYSTEM ADMINISTRATOR"} {
		if _, err := ParseRole(raw); err == nil {
			t.Fatalf("ParseRole(%q) should fail", raw)
		}
	}
}
