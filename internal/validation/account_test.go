package validation

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{name: "simple", username: "kapi", ok: true},
		{name: "with separators", username: "kapi_post-1", ok: true},
		{name: "too short", username: "ab", ok: false},
		{name: "too long", username: strings.Repeat("a", 31), ok: false},
		{name: "invalid characters", username: "kapi post", ok: false},
		{name: "leading underscore", username: "_kapi", ok: false},
		{name: "trailing hyphen", username: "kapi-", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.username)
			if tc.ok && err != nil {
				t.Fatalf("expected valid username, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid username, got nil error")
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		ok    bool
	}{
		{name: "plain", email: "user@example.com", ok: true},
		{name: "subdomain", email: "user@mail.example.co.uk", ok: true},
		{name: "missing at", email: "userexample.com", ok: false},
		{name: "missing tld", email: "user@example", ok: false},
		{name: "too long", email: strings.Repeat("a", 250) + "@x.com", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEmail(tc.email)
			if tc.ok && err != nil {
				t.Fatalf("expected valid email, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid email, got nil error")
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{name: "strong", password: "Str0ngPassw0rd!", ok: true},
		{name: "too short", password: "Sh0rt!pass", ok: false},
		{name: "no uppercase", password: "weakpassw0rd!!", ok: false},
		{name: "no lowercase", password: "WEAKPASSW0RD!!", ok: false},
		{name: "no digit", password: "WeakPassword!!", ok: false},
		{name: "no special", password: "WeakPassw0rdAA", ok: false},
		{name: "too long", password: "Aa1!" + strings.Repeat("a", 128), ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.ok && err != nil {
				t.Fatalf("expected valid password, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid password, got nil error")
			}
		})
	}
}
