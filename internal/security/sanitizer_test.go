package security

import (
	"regexp"
	"strings"
	"testing"
)

func TestSanitizeUserName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain", "alice", "alice"},
		{"Trims whitespace", "  bob  ", "bob"},
		{"Strips tags", "<b>carol</b>", "carol"},
		{"Drops script", "<script>alert(1)</script>dave", "dave"},
		{"Removes hash", "eve#1234", "eve1234"},
		{"Collapses spaces", "frank   the\ttank", "frank the tank"},
		{"Truncates", strings.Repeat("a", 40), strings.Repeat("a", MaxUserNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeUserName(tt.input); got != tt.want {
				t.Errorf("SanitizeUserName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"ALICE@EXAMPLE.COM", true},
		{"alice@example", false},
		{"alice.example.com", false},
		{"a b@example.com", false},
		{"", false},
		{strings.Repeat("a", 100) + "@" + strings.Repeat("b", 140) + ".example", true},
		{strings.Repeat("a", 100) + "@" + strings.Repeat("b", 150) + ".example", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse" {
		t.Error("HashPassword() returned the plain password")
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Error("CheckPassword() accepted a wrong password")
	}

	if _, err := HashPassword("short"); err == nil {
		t.Error("HashPassword() with short password: expected error, got nil")
	}
	if _, err := HashPassword(strings.Repeat("p", MaxPasswordLength+1)); err == nil {
		t.Error("HashPassword() with long password: expected error, got nil")
	}
}

func TestGeneratePlayerTag(t *testing.T) {
	pattern := regexp.MustCompile(`^alice#[0-9a-f]{8}$`)

	first := GeneratePlayerTag("alice")
	second := GeneratePlayerTag("alice")

	if !pattern.MatchString(first) {
		t.Errorf("GeneratePlayerTag() = %q, want match of %s", first, pattern)
	}
	if first == second {
		t.Errorf("GeneratePlayerTag() returned the same tag twice: %q", first)
	}
}
