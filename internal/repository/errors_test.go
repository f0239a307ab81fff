package repository

import (
	"errors"
	"testing"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry 'jane@example.com' for key 'users.uq_users_email'")

	if !isDuplicateKey(dup, "uq_users_email") {
		t.Fatal("should match the named key")
	}
	if !isDuplicateKey(dup, "") {
		t.Fatal("empty key should match any 1062 error")
	}
	if isDuplicateKey(dup, "uq_certificates_participant") {
		t.Fatal("should not match a different key")
	}
	if isDuplicateKey(errors.New("Error 1366: incorrect string value"), "") {
		t.Fatal("non-duplicate errors should not match")
	}
	if isDuplicateKey(nil, "uq_users_email") {
		t.Fatal("nil error should not match")
	}
}

func TestIsDuplicateKeyCaseInsensitive(t *testing.T) {
	dup := errors.New("Error 1062: Duplicate entry 'CERT-1' for key 'certificates.PRIMARY'")
	if !isDuplicateKey(dup, "primary") {
		t.Fatal("key comparison should ignore case")
	}
}
