package model

import (
	"reflect"
	"testing"
)

func TestResolveStyleDefaults(t *testing.T) {
	base, prefix := ResolveStyle(Placeholder{Type: PlaceholderText})
	want := TextStyle{
		FontSize:   DefaultFontSize,
		FontWeight: DefaultFontWeight,
		Color:      DefaultColor,
		FontFamily: DefaultFontFamily,
		TextAlign:  DefaultTextAlign,
	}
	if base != want {
		t.Fatalf("base style = %#v, want defaults %#v", base, want)
	}
	if prefix != base {
		t.Fatalf("prefix with no overrides should equal base, got %#v", prefix)
	}
}

func TestResolveStylePrefixFallsBackToBase(t *testing.T) {
	p := Placeholder{
		Type:       PlaceholderText,
		FontSize:   24,
		FontWeight: "bold",
		Color:      "#112233",
		FontFamily: "Roboto",
	}
	base, prefix := ResolveStyle(p)
	if base.FontSize != 24 || base.FontWeight != "bold" || base.Color != "#112233" || base.FontFamily != "Roboto" {
		t.Fatalf("base did not pick up placeholder attributes: %#v", base)
	}
	// Unset prefix attributes inherit the base, not the global default.
	if prefix.Color != "#112233" || prefix.FontFamily != "Roboto" {
		t.Fatalf("prefix should inherit base attributes, got %#v", prefix)
	}
}

func TestResolveStylePrefixOverrides(t *testing.T) {
	p := Placeholder{
		Type:             PlaceholderText,
		Color:            "#112233",
		PrefixColor:      "#aabbcc",
		PrefixFontWeight: "bold",
		PrefixFontSize:   12,
	}
	base, prefix := ResolveStyle(p)
	if prefix.Color != "#aabbcc" {
		t.Fatalf("prefix color = %q, want override", prefix.Color)
	}
	if prefix.FontWeight != "bold" {
		t.Fatalf("prefix weight = %q, want override", prefix.FontWeight)
	}
	if prefix.FontSize != 12 {
		t.Fatalf("prefix size = %d, want override", prefix.FontSize)
	}
	if base.Color != "#112233" {
		t.Fatalf("base must not be affected by prefix overrides, got %#v", base)
	}
}

func TestNewTextPlaceholderDefaults(t *testing.T) {
	p := NewTextPlaceholder("text-1")
	if p.Label != "{New Text}" || p.Key != "participantName" {
		t.Fatalf("unexpected defaults: label=%q key=%q", p.Label, p.Key)
	}
	if p.X != 50 || p.Y != 50 {
		t.Fatalf("unexpected position: (%v,%v)", p.X, p.Y)
	}
	if p.FontSize != 24 || p.FontWeight != "bold" || p.FontFamily != "Roboto" {
		t.Fatalf("unexpected style: %#v", p)
	}
}

func TestQRSizeDefault(t *testing.T) {
	p := NewQRPlaceholder("qr-1")
	if p.QRSize() != DefaultQRSize {
		t.Fatalf("fresh QR size = %d, want %d", p.QRSize(), DefaultQRSize)
	}
	p.Width = 0
	if p.QRSize() != DefaultQRSize {
		t.Fatalf("zero width should fall back to default, got %d", p.QRSize())
	}
	p.Width = 150
	if p.QRSize() != 150 {
		t.Fatalf("explicit width ignored, got %d", p.QRSize())
	}
}

func TestMovedByDoesNotClamp(t *testing.T) {
	p := NewTextPlaceholder("text-1")
	moved := p.MovedBy(-500, 20)
	if moved.X != -450 || moved.Y != 70 {
		t.Fatalf("moved to (%v,%v), want (-450,70)", moved.X, moved.Y)
	}
	if p.X != 50 {
		t.Fatalf("original placeholder mutated: %v", p.X)
	}
}

func TestPlaceholdersRoundTrip(t *testing.T) {
	in := []Placeholder{
		NewTextPlaceholder("text-1"),
		NewQRPlaceholder("qr-2"),
		{
			ID: "text-3", Type: PlaceholderText, Label: "Date", Key: "date",
			X: 10.5, Y: 700, Width: 300, TextAlign: "right",
			Prefix: "Awarded on ", PrefixColor: "#888888",
		},
	}
	s, err := EncodePlaceholders(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := ParsePlaceholders(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in=%#v\nout=%#v", in, out)
	}
}

func TestParsePlaceholdersEmpty(t *testing.T) {
	out, err := ParsePlaceholders("")
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("empty string should yield empty list, got %#v", out)
	}
	if _, err := ParsePlaceholders("{not a list"); err == nil {
		t.Fatal("malformed JSON should error")
	}
}
