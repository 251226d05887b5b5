package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndCompare(t *testing.T) {
	t.Parallel()
	hashed, err := HashPassword("hunter2hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "hunter2hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := ComparePassword(hashed, "hunter2hunter2"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := ComparePassword(hashed, "wrong-password"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestPolicyBootstrapAdmins(t *testing.T) {
	t.Parallel()
	policy := NewPolicy([]string{"Admin@MyPaws.example ", "ops@mypaws.example"})

	if !policy.IsBootstrapAdmin("admin@mypaws.example") {
		t.Fatal("expected case-insensitive admin match")
	}
	if !policy.IsBootstrapAdmin("  ops@mypaws.example") {
		t.Fatal("expected whitespace-tolerant admin match")
	}
	if policy.IsBootstrapAdmin("user@mypaws.example") {
		t.Fatal("unexpected admin grant")
	}

	var nilPolicy *Policy
	if nilPolicy.IsBootstrapAdmin("admin@mypaws.example") {
		t.Fatal("nil policy must grant nothing")
	}
}
