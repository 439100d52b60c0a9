package auth

import (
	"strings"
	"testing"
)

// newTestPasswordService returns a PasswordService with bcrypt cost 4, the
// library minimum, so tests run in milliseconds instead of ~250ms each.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(4)
}

func TestHash_NeverStoresPlaintext(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("p")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "p" {
		t.Error("Hash() returned the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash)
	}
}

func TestHash_FreshSaltPerCall(t *testing.T) {
	ps := newTestPasswordService()

	// A random salt is generated per call, so two hashes of the same
	// password must differ — yet both must verify against it.
	hash1, err := ps.Hash("p")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, err := ps.Hash("p")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash1 == hash2 {
		t.Error("two hashes of the same password are identical (salt must be random)")
	}
	if err := ps.Verify(hash1, "p"); err != nil {
		t.Errorf("Verify(hash1) = %v, want nil", err)
	}
	if err := ps.Verify(hash2, "p"); err != nil {
		t.Errorf("Verify(hash2) = %v, want nil", err)
	}
}

func TestHash_RejectsPasswordOver72Bytes(t *testing.T) {
	ps := newTestPasswordService()

	if _, err := ps.Hash(strings.Repeat("a", 73)); err == nil {
		t.Fatal("Hash() should reject passwords longer than 72 bytes")
	}
	if _, err := ps.Hash(strings.Repeat("a", 72)); err != nil {
		t.Fatalf("Hash() should accept a 72-byte password, got %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, _ := ps.Hash("the-real-password")
	if err := ps.Verify(hash, "the-wrong-password"); err == nil {
		t.Fatal("Verify() should fail for a wrong password")
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	ps := newTestPasswordService()

	if err := ps.Verify("not-a-bcrypt-hash", "password"); err == nil {
		t.Fatal("Verify() should fail for a garbage hash")
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	ps := newTestPasswordService()

	cases := []struct {
		name     string
		password string
	}{
		{"simple alphanumeric", "hello123"},
		{"special characters", "p@$$w0rd!#%"},
		{"unicode", "пароль-密码"},
		{"whitespace", "  leading and trailing  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := ps.Hash(tc.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if err := ps.Verify(hash, tc.password); err != nil {
				t.Errorf("Verify() = %v, want nil", err)
			}
		})
	}
}
