package render

import (
	"testing"
	"time"

	"github.com/theananta/certificate-studio/internal/model"
)

func testContext() Context {
	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	return Context{
		Participant: &model.Participant{ID: "p1", Name: "Jane Smith", Category: "Excellence"},
		Event:       &model.Event{ID: "e1", Name: "Annual Tech Summit", StartDate: start},
		Certificate: &model.Certificate{ID: "CERT-ABC12345"},
		BaseURL:     "https://certs.example.com",
	}
}

func TestResolveKeys(t *testing.T) {
	ctx := testContext()
	cases := map[string]string{
		KeyParticipantName: "Jane Smith",
		KeyEventName:       "Annual Tech Summit",
		KeyCategory:        "Excellence",
		KeyDate:            "3/5/2024",
		KeyCertificateLink: "https://certs.example.com/verify?id=CERT-ABC12345",
	}
	for key, want := range cases {
		if got := Resolve(key, ctx); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestResolveQRCodeMatchesLink(t *testing.T) {
	ctx := testContext()
	if Resolve(KeyQRCode, ctx) != Resolve(KeyCertificateLink, ctx) {
		t.Fatal("qrCode and certificateLink must resolve to the same URL")
	}
}

func TestResolveDateRange(t *testing.T) {
	ctx := testContext()
	end := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	ctx.Event.EndDate = &end
	if got, want := Resolve(KeyDate, ctx), "3/5/2024 - 3/7/2024"; got != want {
		t.Fatalf("date range = %q, want %q", got, want)
	}
}

func TestResolveMissingData(t *testing.T) {
	// An empty context must resolve every key to "", never panic.
	for _, key := range Keys() {
		if got := Resolve(key, Context{}); got != "" {
			t.Fatalf("Resolve(%q) on empty context = %q, want \"\"", key, got)
		}
	}
}

func TestResolveUnknownKey(t *testing.T) {
	if got := Resolve("somethingElse", testContext()); got != "" {
		t.Fatalf("unknown key resolved to %q, want \"\"", got)
	}
}

func TestVerificationURL(t *testing.T) {
	got := VerificationURL("https://certs.example.com", "CERT-XYZ")
	if got != "https://certs.example.com/verify?id=CERT-XYZ" {
		t.Fatalf("unexpected url %q", got)
	}
}
