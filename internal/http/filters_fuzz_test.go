package httpserver

import (
	"net/url"
	"testing"
)

func FuzzBuildUserFilters(f *testing.F) {
	seeds := []string{
		"name=Alice&email=example.com&role=Store+Owner",
		"role=not-a-role",
		"name=%20%20",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		_, _ = buildUserFilters(values)
	})
}
