package utils

import (
	"strings"
	"testing"
)

func TestNewCertificateIDFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := NewCertificateID()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !strings.HasPrefix(id, "CERT-") {
			t.Fatalf("id %q missing prefix", id)
		}
		suffix := strings.TrimPrefix(id, "CERT-")
		if len(suffix) != 8 {
			t.Fatalf("suffix of %q has length %d, want 8", id, len(suffix))
		}
		for _, ch := range suffix {
			if !strings.ContainsRune(certIDAlphabet, ch) {
				t.Fatalf("id %q contains %q outside the alphabet", id, ch)
			}
		}
		seen[id] = true
	}
	if len(seen) < 190 {
		t.Fatalf("suspiciously many collisions: %d distinct of 200", len(seen))
	}
}
