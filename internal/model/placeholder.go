package model

import "encoding/json"

// Canvas geometry shared by the designer, the renderer and the print
// layout. The logical width is the coordinate space every placeholder
// position is expressed in; it must never diverge between components,
// otherwise saved templates would shift when rendered.
const (
	// CanvasWidth is the logical width of the design surface in
	// canvas units. Placeholder X/Y offsets are relative to a canvas
	// of this width.
	CanvasWidth = 800
	// DisplayMargin is subtracted from the container width before the
	// responsive scale factor is computed.
	DisplayMargin = 32
	// PrintWidth and PrintHeight define the fixed high-resolution
	// surface used for PNG/PDF export (A4 landscape at 96 dpi). The
	// export pipeline lays out at CanvasWidth and upscales uniformly
	// to this surface, decoupled from the interactive display scale.
	PrintWidth  = 1123
	PrintHeight = 794
)

// PlaceholderType enumerates the two kinds of positionable fields.
type PlaceholderType string

const (
	PlaceholderText PlaceholderType = "text" // styled prefix + resolved value
	PlaceholderQR   PlaceholderType = "qr"   // square scannable code region
)

// DefaultQRSize is the side length of a QR placeholder when no width
// has been set.
const DefaultQRSize = 100

// Placeholder is a positioned, styled field bound to a symbolic
// variable key. It is a pure value object: it has no lifecycle of its
// own and lives only inside a template's serialized placeholder list.
// Any mutation (drag, property edit) produces a new value with the
// same ID.
//
// Optional style attributes use the zero value as "unset"; effective
// values are computed by ResolveStyle so that fallback chains are
// explicit rather than scattered across render sites.
//
// JSON field names match the serialized form stored in the
// certificate_templates.placeholders column, so lists written by older
// versions of the designer keep loading unchanged.
type Placeholder struct {
	ID    string          `json:"id"`
	Type  PlaceholderType `json:"type"`
	Label string          `json:"label"` // literal shown while designing
	Key   string          `json:"key"`   // symbolic variable name
	X     float64         `json:"x"`     // top-left offset on the logical canvas
	Y     float64         `json:"y"`

	FontSize   int    `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	Color      string `json:"color,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	TextAlign  string `json:"textAlign,omitempty"` // left | center | right
	Width      int    `json:"width,omitempty"`     // text wrap width, or QR side; 0 = auto
	Prefix     string `json:"prefix,omitempty"`    // literal rendered before the value

	// Prefix style overrides; each falls back to the base attribute
	// above when unset.
	PrefixColor      string `json:"prefixColor,omitempty"`
	PrefixFontWeight string `json:"prefixFontWeight,omitempty"`
	PrefixFontFamily string `json:"prefixFontFamily,omitempty"`
	PrefixFontSize   int    `json:"prefixFontSize,omitempty"`
}

// NewTextPlaceholder returns a text placeholder with the designer's
// defaults for a freshly added element.
func NewTextPlaceholder(id string) Placeholder {
	return Placeholder{
		ID:         id,
		Type:       PlaceholderText,
		Label:      "{New Text}",
		Key:        "participantName",
		X:          50,
		Y:          50,
		FontSize:   24,
		FontWeight: "bold",
		Color:      "#000000",
		FontFamily: "Roboto",
	}
}

// NewQRPlaceholder returns a QR placeholder with the designer's
// defaults for a freshly added element.
func NewQRPlaceholder(id string) Placeholder {
	return Placeholder{
		ID:    id,
		Type:  PlaceholderQR,
		Label: "QR Code",
		Key:   "qrCode",
		X:     100,
		Y:     100,
		Width: DefaultQRSize,
	}
}

// MovedBy returns a copy of the placeholder shifted by a drag delta.
// Positions are not clamped; elements may be dragged off-canvas.
func (p Placeholder) MovedBy(dx, dy float64) Placeholder {
	p.X += dx
	p.Y += dy
	return p
}

// QRSize returns the side length of a QR placeholder, falling back to
// DefaultQRSize when no width is set.
func (p Placeholder) QRSize() int {
	if p.Width > 0 {
		return p.Width
	}
	return DefaultQRSize
}

// Wraps reports whether a text placeholder wraps its content. Text
// wraps only when an explicit width is present; otherwise it renders
// as a single non-wrapping line.
func (p Placeholder) Wraps() bool { return p.Width > 0 }

// TextStyle is a fully resolved set of text attributes with no unset
// fields remaining.
type TextStyle struct {
	FontSize   int
	FontWeight string
	Color      string
	FontFamily string
	TextAlign  string
}

// Global style defaults, applied when neither the placeholder nor its
// type provides a value. They mirror what the design surface shows for
// an unstyled element.
const (
	DefaultFontSize   = 16
	DefaultFontWeight = "normal"
	DefaultColor      = "#000000"
	DefaultFontFamily = "serif"
	DefaultTextAlign  = "center"
)

// ResolveStyle computes the effective base and prefix styles for a
// placeholder. Resolution is layered: placeholder-specific value,
// then the prefix's fallback to the base attribute, then the global
// default. Centralizing the chain here keeps the designer preview and
// the final certificate pixel-identical.
func ResolveStyle(p Placeholder) (base, prefix TextStyle) {
	base = TextStyle{
		FontSize:   p.FontSize,
		FontWeight: p.FontWeight,
		Color:      p.Color,
		FontFamily: p.FontFamily,
		TextAlign:  p.TextAlign,
	}
	if base.FontSize <= 0 {
		base.FontSize = DefaultFontSize
	}
	if base.FontWeight == "" {
		base.FontWeight = DefaultFontWeight
	}
	if base.Color == "" {
		base.Color = DefaultColor
	}
	if base.FontFamily == "" {
		base.FontFamily = DefaultFontFamily
	}
	if base.TextAlign == "" {
		base.TextAlign = DefaultTextAlign
	}

	prefix = base
	if p.PrefixFontSize > 0 {
		prefix.FontSize = p.PrefixFontSize
	}
	if p.PrefixFontWeight != "" {
		prefix.FontWeight = p.PrefixFontWeight
	}
	if p.PrefixColor != "" {
		prefix.Color = p.PrefixColor
	}
	if p.PrefixFontFamily != "" {
		prefix.FontFamily = p.PrefixFontFamily
	}
	return base, prefix
}

// ParsePlaceholders decodes the JSON-encoded placeholder list stored
// in a template's string column. An empty string yields an empty
// list, matching templates saved before any elements were placed.
func ParsePlaceholders(s string) ([]Placeholder, error) {
	if s == "" {
		return []Placeholder{}, nil
	}
	var out []Placeholder
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodePlaceholders serializes a placeholder list for storage in the
// template's string column. The inverse of ParsePlaceholders; the
// round trip is lossless.
func EncodePlaceholders(ps []Placeholder) (string, error) {
	if ps == nil {
		ps = []Placeholder{}
	}
	b, err := json.Marshal(ps)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
