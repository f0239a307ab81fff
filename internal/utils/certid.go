package utils

import "crypto/rand"

// certIDAlphabet matches the printable code charset organizers see on
// issued certificates.
const certIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCertificateID returns a human-readable certificate identifier of
// the form CERT-XXXXXXXX. The suffix is 8 characters from A-Z0-9,
// drawn from crypto/rand. Uniqueness is enforced by the primary key
// on insert, not here.
func NewCertificateID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 8)
	for i, b := range buf {
		out[i] = certIDAlphabet[int(b)%len(certIDAlphabet)]
	}
	return "CERT-" + string(out), nil
}
