package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/theananta/certificate-studio/internal/model"
)

// FontLibrary loads and caches TrueType/OpenType fonts from a
// directory. Files are looked up as "<Family>.ttf" with a "-Bold"
// suffix for bold weights; when no matching file exists the library
// falls back to a default face so rasterization always succeeds.
type FontLibrary struct {
	dir string

	mu    sync.Mutex
	fonts map[string]*opentype.Font // keyed by file path; nil entry = known missing
}

// NewFontLibrary returns a library reading font files from dir.
func NewFontLibrary(dir string) *FontLibrary {
	return &FontLibrary{dir: dir, fonts: make(map[string]*opentype.Font)}
}

// boldWeight reports whether a CSS-style font weight should map to a
// bold face. Numeric weights of 500 and above count as bold.
func boldWeight(w string) bool {
	switch w {
	case "bold", "500", "600", "700", "800", "900":
		return true
	}
	return false
}

// Face returns a sized face for the family and weight. Lookup order:
// the family's weighted file, the family's regular file, the default
// family, then the built-in bitmap face as a last resort.
func (l *FontLibrary) Face(family, weight string, size float64) font.Face {
	candidates := []string{}
	if family != "" {
		if boldWeight(weight) {
			candidates = append(candidates, family+"-Bold.ttf")
		}
		candidates = append(candidates, family+".ttf")
	}
	if boldWeight(weight) {
		candidates = append(candidates, "default-Bold.ttf")
	}
	candidates = append(candidates, "default.ttf")

	for _, name := range candidates {
		if f := l.load(filepath.Join(l.dir, name)); f != nil {
			face, err := opentype.NewFace(f, &opentype.FaceOptions{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
			if err == nil {
				return face
			}
		}
	}
	return basicfont.Face7x13
}

// load parses and caches the font at path, remembering misses so a
// missing file is stat'ed only once.
func (l *FontLibrary) load(path string) *opentype.Font {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f, ok := l.fonts[path]; ok {
		return f
	}
	data, err := os.ReadFile(path)
	if err != nil {
		l.fonts[path] = nil
		return nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		l.fonts[path] = nil
		return nil
	}
	l.fonts[path] = f
	return f
}

// ParseHexColor converts a "#RRGGBB" string to an opaque color.
// Malformed values come back as black, mirroring how the design
// surface treats a broken color as unstyled.
func ParseHexColor(s string) color.NRGBA {
	c := color.NRGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{A: 0xff}
	}
	c.R, c.G, c.B = r, g, b
	return c
}

// Rasterize paints a laid-out surface onto the fixed print resolution
// (model.PrintWidth x model.PrintHeight). The background is resized
// to fill the page and every element's position and font size scale
// uniformly from the logical canvas, so the raster matches the
// on-screen certificate apart from resolution.
func Rasterize(s Surface, background image.Image, fonts *FontLibrary) (*image.NRGBA, error) {
	canvas := imaging.New(model.PrintWidth, model.PrintHeight, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	if background != nil {
		bg := imaging.Resize(background, model.PrintWidth, model.PrintHeight, imaging.Lanczos)
		canvas = imaging.Paste(canvas, bg, image.Pt(0, 0))
	}

	// Uniform scale from logical canvas units to print pixels.
	k := float64(model.PrintWidth) / float64(model.CanvasWidth)

	for _, el := range s.Elements {
		switch el.Type {
		case model.PlaceholderQR:
			if el.Value == "" {
				continue
			}
			size := int(float64(el.Size) * k)
			qr, err := qrcode.New(el.Value, qrcode.Medium)
			if err != nil {
				return nil, fmt.Errorf("qr encode: %w", err)
			}
			qr.DisableBorder = true
			canvas = imaging.Paste(canvas, qr.Image(size), image.Pt(int(el.X*k), int(el.Y*k)))
		case model.PlaceholderText:
			drawText(canvas, el, k, fonts)
		}
	}
	return canvas, nil
}

// drawText paints a text element (optional styled prefix followed by
// the resolved value) at its scaled position.
func drawText(dst *image.NRGBA, el Element, k float64, fonts *FontLibrary) {
	base, prefix := el.Style, el.PrefixStyle
	if base == nil {
		return
	}
	if prefix == nil {
		prefix = base
	}
	baseFace := fonts.Face(base.FontFamily, base.FontWeight, float64(base.FontSize)*k)
	prefixFace := fonts.Face(prefix.FontFamily, prefix.FontWeight, float64(prefix.FontSize)*k)

	x := el.X * k
	y := el.Y * k

	if el.WrapWidth <= 0 {
		// Single non-wrapping line: prefix then value, left to right
		// from the element origin.
		ascent := faceAscent(baseFace)
		if a := faceAscent(prefixFace); a > ascent {
			ascent = a
		}
		dot := fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y) + ascent}
		if el.Prefix != "" {
			d := &font.Drawer{Dst: dst, Src: image.NewUniform(ParseHexColor(prefix.Color)), Face: prefixFace, Dot: dot}
			d.DrawString(el.Prefix)
			dot.X = d.Dot.X
		}
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(ParseHexColor(base.Color)), Face: baseFace, Dot: dot}
		d.DrawString(el.Value)
		return
	}

	// Fixed-width box: wrap and align each line within the box. The
	// prefix participates in the first line only, like an inline span.
	boxW := float64(el.WrapWidth) * k
	lines := wrapLines(el.Prefix+el.Value, baseFace, boxW)
	lineH := faceHeight(baseFace)
	yPos := floatToFixed(y) + faceAscent(baseFace)
	pfx := strings.Join(strings.Fields(el.Prefix), " ")
	for i, line := range lines {
		head, rest := "", line
		if i == 0 && pfx != "" && strings.HasPrefix(line, pfx) {
			head, rest = pfx, strings.TrimPrefix(line, pfx)
		}
		w := font.MeasureString(baseFace, rest)
		if head != "" {
			w += font.MeasureString(prefixFace, head)
		}
		var xPos fixed.Int26_6
		switch base.TextAlign {
		case "left":
			xPos = floatToFixed(x)
		case "right":
			xPos = floatToFixed(x+boxW) - w
		default: // center
			xPos = floatToFixed(x) + (floatToFixed(boxW)-w)/2
		}
		dot := fixed.Point26_6{X: xPos, Y: yPos}
		if head != "" {
			d := &font.Drawer{Dst: dst, Src: image.NewUniform(ParseHexColor(prefix.Color)), Face: prefixFace, Dot: dot}
			d.DrawString(head)
			dot.X = d.Dot.X
		}
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(ParseHexColor(base.Color)), Face: baseFace, Dot: dot}
		d.DrawString(rest)
		yPos += lineH
	}
}

// wrapLines splits text into lines no wider than width, breaking on
// spaces. A single word wider than the box gets its own line rather
// than being split mid-word.
func wrapLines(text string, face font.Face, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	limit := floatToFixed(width)
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if font.MeasureString(face, cur+" "+w) <= limit {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

func faceAscent(f font.Face) fixed.Int26_6 { return f.Metrics().Ascent }
func faceHeight(f font.Face) fixed.Int26_6 { return f.Metrics().Height }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
