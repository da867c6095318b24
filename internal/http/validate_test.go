package httpserver

import (
	"strings"
	"testing"
)

func TestValidateRegisterRules(t *testing.T) {
	valid := registerRequest{
		Name:     "Jonathan Maxwell Everwood",
		Email:    "jon@example.com",
		Password: "Valid#Pass1",
		Address:  "1 Somewhere",
	}
	if errs := validateStruct(valid); errs != nil {
		t.Fatalf("valid payload rejected: %+v", errs)
	}

	tests := []struct {
		name      string
		mutate    func(r *registerRequest)
		wantField string
	}{
		{"name too short", func(r *registerRequest) { r.Name = "Shorty" }, "name"},
		{"name too long", func(r *registerRequest) { r.Name = strings.Repeat("x", 61) }, "name"},
		{"bad email", func(r *registerRequest) { r.Email = "not-an-email" }, "email"},
		{"password too short", func(r *registerRequest) { r.Password = "A#1xyz" }, "password"},
		{"password too long", func(r *registerRequest) { r.Password = "A#" + strings.Repeat("x", 20) }, "password"},
		{"password no uppercase", func(r *registerRequest) { r.Password = "valid#pass1" }, "password"},
		{"password no special", func(r *registerRequest) { r.Password = "ValidPass123" }, "password"},
		{"address too long", func(r *registerRequest) { r.Address = strings.Repeat("a", 401) }, "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			errs := validateStruct(req)
			if len(errs) != 1 {
				t.Fatalf("violations = %+v, want exactly one", errs)
			}
			if errs[0].Field != tt.wantField {
				t.Fatalf("field = %s, want %s", errs[0].Field, tt.wantField)
			}
			if errs[0].Message == "" {
				t.Fatal("violation carries no message")
			}
		})
	}
}

func TestPasswordRuleAcceptsAllSpecials(t *testing.T) {
	for _, special := range []string{"!", "@", "#", "$", "&", "*"} {
		req := registerRequest{
			Name:     "Jonathan Maxwell Everwood",
			Email:    "jon@example.com",
			Password: "Abcdefg1" + special,
		}
		if errs := validateStruct(req); errs != nil {
			t.Fatalf("password with %q rejected: %+v", special, errs)
		}
	}
}
