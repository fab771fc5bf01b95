package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Domain
	}{
		{"example.com", "example.com"},
		{"WWW.Example.com:8080", "example.com"},
		{"www.KaburluToday.com:443", "kaburlutoday.com"},
		{"  News.Example.COM  ", "news.example.com"},
		{"www.www.example.com", "example.com"},
		{"example.com :80", "example.com"},
		{"www.", "localhost"},
		{":8080", "localhost"},
		{"", "localhost"},
		{"   ", "localhost"},
		{"localhost:3000", "localhost"},
		{"wwwexample.com", "wwwexample.com"},
		{"sub.www.example.com", "sub.www.example.com"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, Normalize(c.in))
		})
	}
}

func TestNormalize_Equivalence(t *testing.T) {
	assert.Equal(t, Normalize("example.com"), Normalize("WWW.Example.com:8080"))
	assert.True(t, Normalize("").IsLocal())
}

func FuzzNormalize(f *testing.F) {
	for _, seed := range []string{"", "www.", "WWW.A.b:1", "www. www.x", "x :80", "\twww.\t", "[::1]:80"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, host string) {
		once := Normalize(host)
		if once == "" {
			t.Fatalf("Normalize(%q) returned empty", host)
		}
		if twice := Normalize(string(once)); twice != once {
			t.Fatalf("not idempotent: %q → %q → %q", host, once, twice)
		}
	})
}
