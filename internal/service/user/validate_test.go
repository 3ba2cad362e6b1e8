package user

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", KeyUsernameNull},
		{"too short", "abc", KeyUsernameSize},
		{"minimum length", "user", ""},
		{"maximum length", strings.Repeat("a", 32), ""},
		{"too long", strings.Repeat("a", 33), KeyUsernameSize},
		{"multibyte runes counted as one", "사용자이름", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validateUsername(tc.value); got != tc.want {
				t.Fatalf("validateUsername(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", KeyEmailNull},
		{"missing at sign", "user.example.com", KeyEmailInvalid},
		{"missing domain dot", "user@example", KeyEmailInvalid},
		{"display name not accepted", "User <user@example.com>", KeyEmailInvalid},
		{"trailing dot domain", "user@example.", KeyEmailInvalid},
		{"valid", "user1@mail.com", ""},
		{"valid with plus tag", "user+tag@mail.co.uk", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validateEmail(tc.value); got != tc.want {
				t.Fatalf("validateEmail(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", KeyPasswordNull},
		{"too short", "P4ssw", KeyPasswordSize},
		{"all lowercase", "alllowercase", KeyPasswordPattern},
		{"all uppercase", "ALLUPPERCASE", KeyPasswordPattern},
		{"letters only", "lowerUPPER", KeyPasswordPattern},
		{"digits only", "1234567890", KeyPasswordPattern},
		{"missing digit", "lowerandUPPER", KeyPasswordPattern},
		{"valid", "P4ssword", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validatePassword(tc.value); got != tc.want {
				t.Fatalf("validatePassword(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}
