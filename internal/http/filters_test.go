package httpserver

import (
	"net/url"
	"testing"

	"github.com/ratespot/ratespot/internal/domain"
)

func TestBuildUserFilters(t *testing.T) {
	values, _ := url.ParseQuery("name= Alice &email=example.com&role=Store+Owner")

	filters, err := buildUserFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Name == nil || *filters.Name != "Alice" {
		t.Fatalf("name not trimmed: %+v", filters.Name)
	}
	if filters.Email == nil || *filters.Email != "example.com" {
		t.Fatalf("email parse failed: %+v", filters.Email)
	}
	if filters.Role == nil || *filters.Role != domain.RoleStoreOwner {
		t.Fatalf("role parse failed: %+v", filters.Role)
	}
}

func TestBuildUserFilters_Empty(t *testing.T) {
	filters, err := buildUserFilters(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Name != nil || filters.Email != nil || filters.Role != nil {
		t.Fatalf("empty query produced filters: %+v", filters)
	}
}

func TestBuildUserFilters_UnknownRole(t *testing.T) {
	values, _ := url.ParseQuery("role=store_owner")
	if _, err := buildUserFilters(values); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestBuildStoreFilters(t *testing.T) {
	values, _ := url.ParseQuery("name=Mart&email= shop@ &address=Square")

	filters := buildStoreFilters(values)
	if filters.Name == nil || *filters.Name != "Mart" {
		t.Fatalf("name parse failed: %+v", filters.Name)
	}
	if filters.Email == nil || *filters.Email != "shop@" {
		t.Fatalf("email not trimmed: %+v", filters.Email)
	}
	if filters.Address == nil || *filters.Address != "Square" {
		t.Fatalf("address parse failed: %+v", filters.Address)
	}
}

func TestBuildStoreUserFilters(t *testing.T) {
	values, _ := url.ParseQuery("name=Mart&address= North ")

	filters := buildStoreUserFilters(values)
	if filters.Name == nil || *filters.Name != "Mart" {
		t.Fatalf("name parse failed: %+v", filters.Name)
	}
	if filters.Address == nil || *filters.Address != "North" {
		t.Fatalf("address not trimmed: %+v", filters.Address)
	}

	empty := buildStoreUserFilters(url.Values{})
	if empty.Name != nil || empty.Address != nil {
		t.Fatalf("empty query produced filters: %+v", empty)
	}
}
