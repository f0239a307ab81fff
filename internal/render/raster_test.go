package render

import (
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/theananta/certificate-studio/internal/model"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{A: 0xff}},
		{"#ffffff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#1a2b3c", color.NRGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}},
		{"", color.NRGBA{A: 0xff}},        // malformed falls back to black
		{"112233", color.NRGBA{A: 0xff}},  // missing hash
		{"#zzzzzz", color.NRGBA{A: 0xff}}, // non-hex
	}
	for _, c := range cases {
		if got := ParseHexColor(c.in); got != c.want {
			t.Fatalf("ParseHexColor(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestRasterizeDimensions(t *testing.T) {
	ps := []model.Placeholder{
		{ID: "text-1", Type: model.PlaceholderText, Key: KeyParticipantName, X: 100, Y: 100, FontSize: 30},
		{ID: "qr-2", Type: model.PlaceholderQR, Key: KeyQRCode, X: 600, Y: 500},
	}
	s := Layout(ps, "", testContext())

	img, err := Rasterize(s, nil, NewFontLibrary(t.TempDir()))
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != model.PrintWidth || b.Dy() != model.PrintHeight {
		t.Fatalf("raster size = %dx%d, want %dx%d", b.Dx(), b.Dy(), model.PrintWidth, model.PrintHeight)
	}
}

func TestRasterizeSkipsEmptyQR(t *testing.T) {
	ps := []model.Placeholder{
		{ID: "qr-1", Type: model.PlaceholderQR, Key: KeyQRCode, X: 10, Y: 10},
	}
	// No certificate in context: the QR value resolves empty and the
	// element is skipped instead of encoding an empty code.
	s := Layout(ps, "", Context{})
	if _, err := Rasterize(s, nil, NewFontLibrary(t.TempDir())); err != nil {
		t.Fatalf("rasterize with empty qr value: %v", err)
	}
}

func TestRasterizeWrappedPrefixKeepsItsStyle(t *testing.T) {
	s := Surface{
		Width: model.CanvasWidth,
		Elements: []Element{{
			ID:        "text-1",
			Type:      model.PlaceholderText,
			X:         50,
			Y:         50,
			Prefix:    "Awarded to ",
			Value:     "a very long participant name that wraps",
			WrapWidth: 200,
			Style: &model.TextStyle{
				FontSize: 16, FontWeight: "normal", Color: "#0000ff",
				FontFamily: "serif", TextAlign: "left",
			},
			PrefixStyle: &model.TextStyle{
				FontSize: 16, FontWeight: "normal", Color: "#ff0000",
				FontFamily: "serif", TextAlign: "left",
			},
		}},
	}

	img, err := Rasterize(s, nil, NewFontLibrary(t.TempDir()))
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}

	var red, blue int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch img.NRGBAAt(x, y) {
			case color.NRGBA{R: 0xff, A: 0xff}:
				red++
			case color.NRGBA{B: 0xff, A: 0xff}:
				blue++
			}
		}
	}
	if red == 0 {
		t.Fatal("prefix pixels should use the prefix color")
	}
	if blue == 0 {
		t.Fatal("value pixels should use the base color")
	}
}

func TestFontLibraryFallback(t *testing.T) {
	lib := NewFontLibrary(t.TempDir())
	face := lib.Face("NoSuchFamily", "bold", 24)
	if face != basicfont.Face7x13 {
		t.Fatal("missing font files should fall back to the built-in face")
	}
}

func TestWrapLines(t *testing.T) {
	face := basicfont.Face7x13 // 7px advance per glyph
	lines := wrapLines("one two three four", face, 7*8)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	for _, l := range lines {
		if len(l) > 8 {
			t.Fatalf("line %q exceeds the box", l)
		}
	}
	// A single oversized word still gets its own line.
	lines = wrapLines("supercalifragilistic", face, 7*4)
	if len(lines) != 1 || lines[0] != "supercalifragilistic" {
		t.Fatalf("oversized word should not be split, got %q", lines)
	}
	if got := wrapLines("   ", face, 100); got != nil {
		t.Fatalf("blank text should yield no lines, got %q", got)
	}
}

func TestBoldWeight(t *testing.T) {
	for _, w := range []string{"bold", "600", "700", "900"} {
		if !boldWeight(w) {
			t.Fatalf("%q should count as bold", w)
		}
	}
	for _, w := range []string{"", "normal", "400", "lighter"} {
		if boldWeight(w) {
			t.Fatalf("%q should not count as bold", w)
		}
	}
}
