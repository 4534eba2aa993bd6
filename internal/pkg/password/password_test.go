package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	Cost = bcrypt.MinCost
	t.Cleanup(func() { Cost = DefaultCost })

	hash, err := Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !Verify("correct horse", hash) {
		t.Fatal("Verify rejected the right password")
	}
	if Verify("wrong horse", hash) {
		t.Fatal("Verify accepted a wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := map[string]bool{
		"short":                 false,
		"12345678":              true,
		"パスワード一二三":              true,
		strings.Repeat("a", 73): false,
	}
	for in, want := range cases {
		if got := ValidatePassword(in); got != want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", in, got, want)
		}
	}
}
