package argon

import (
	"strings"
	"testing"
)

func TestCreateAndCompare(t *testing.T) {
	hash, err := CreateHash("Worker123!Stock", DefaultParams)
	if err != nil {
		t.Fatalf("create hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash encoding: %s", hash)
	}

	ok, err := ComparePasswordAndHash("Worker123!Stock", hash)
	if err != nil {
		t.Fatalf("compare hash: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to match")
	}

	ok, err = ComparePasswordAndHash("worker123!stock", hash)
	if err != nil {
		t.Fatalf("compare hash wrong: %v", err)
	}
	if ok {
		t.Fatalf("expected password mismatch")
	}
}

func TestCreateHashRejectsBlankPassword(t *testing.T) {
	if _, err := CreateHash("   ", DefaultParams); err == nil {
		t.Fatalf("expected error for blank password")
	}
}

func TestCompareRejectsMalformedHash(t *testing.T) {
	if _, err := ComparePasswordAndHash("Worker123!Stock", "$bcrypt$nope"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
