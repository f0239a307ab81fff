package render

import (
	"math"
	"testing"

	"github.com/theananta/certificate-studio/internal/model"
)

func TestScale(t *testing.T) {
	cases := []struct {
		width int
		want  float64
	}{
		{1200, 1}, // wide enough, never upscale
		{832, 1},  // exactly canvas + margin
		{632, (632.0 - 32) / 800.0}, // narrow viewport shrinks
		{432, (432.0 - 32) / 800.0},
		{32, 1}, // degenerate container widths stay visible
		{0, 1},
		{-10, 1},
	}
	for _, c := range cases {
		if got := Scale(c.width); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("Scale(%d) = %v, want %v", c.width, got, c.want)
		}
	}
}

func TestLayoutPositionsAndStyles(t *testing.T) {
	ps := []model.Placeholder{
		{
			ID: "text-1", Type: model.PlaceholderText, Key: KeyParticipantName,
			X: 120, Y: 260, FontSize: 32, Prefix: "Presented to ",
		},
		{
			ID: "qr-2", Type: model.PlaceholderQR, Key: KeyQRCode,
			X: 650, Y: 400,
		},
	}
	ctx := testContext()
	s := Layout(ps, "/templates/bg.png", ctx)

	if s.Width != model.CanvasWidth {
		t.Fatalf("surface width = %d, want %d", s.Width, model.CanvasWidth)
	}
	if s.ImageURL != "/templates/bg.png" {
		t.Fatalf("surface image = %q", s.ImageURL)
	}
	if len(s.Elements) != 2 {
		t.Fatalf("element count = %d, want 2", len(s.Elements))
	}

	text := s.Elements[0]
	if text.X != 120 || text.Y != 260 {
		t.Fatalf("positions must pass through unchanged, got (%v,%v)", text.X, text.Y)
	}
	if text.Value != "Jane Smith" {
		t.Fatalf("text value = %q", text.Value)
	}
	if text.Prefix != "Presented to " {
		t.Fatalf("prefix = %q", text.Prefix)
	}
	if text.Style == nil || text.Style.FontSize != 32 {
		t.Fatalf("style not resolved: %#v", text.Style)
	}
	if text.Style.Color != model.DefaultColor {
		t.Fatalf("unset color should resolve to default, got %q", text.Style.Color)
	}
	if text.WrapWidth != 0 {
		t.Fatalf("no width set, wrap width should be 0, got %d", text.WrapWidth)
	}

	qr := s.Elements[1]
	if qr.Size != model.DefaultQRSize {
		t.Fatalf("qr size = %d, want default %d", qr.Size, model.DefaultQRSize)
	}
	if qr.Value != VerificationURL(ctx.BaseURL, ctx.Certificate.ID) {
		t.Fatalf("qr value = %q", qr.Value)
	}
	if qr.Style != nil {
		t.Fatalf("qr elements carry no text style, got %#v", qr.Style)
	}
}

func TestLayoutDraftCertificate(t *testing.T) {
	ps := []model.Placeholder{
		{ID: "text-1", Type: model.PlaceholderText, Key: KeyParticipantName, X: 1, Y: 1},
		{ID: "qr-2", Type: model.PlaceholderQR, Key: KeyQRCode, X: 2, Y: 2},
	}
	ctx := testContext()
	ctx.Participant = nil // draft: no holder yet
	s := Layout(ps, "", ctx)
	if s.Elements[0].Value != "" {
		t.Fatalf("draft participant name should be empty, got %q", s.Elements[0].Value)
	}
	if s.Elements[1].Value == "" {
		t.Fatal("verification link must resolve even for a draft")
	}
}

func TestLayoutEmpty(t *testing.T) {
	s := Layout(nil, "bg.png", Context{})
	if len(s.Elements) != 0 {
		t.Fatalf("expected no elements, got %d", len(s.Elements))
	}
	if s.FontsURL != "" {
		t.Fatalf("no placeholders should mean no fonts url, got %q", s.FontsURL)
	}
}
