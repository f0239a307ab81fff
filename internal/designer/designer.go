// Package designer holds the interactive template-design session: an
// ordered placeholder list edited in memory by a single user. Every
// operation is a pure state transition that cannot fail; persistence
// belongs to whoever receives the snapshot on save.
package designer

import (
	"fmt"
	"time"

	"github.com/theananta/certificate-studio/internal/model"
	"github.com/theananta/certificate-studio/internal/render"
)

// PreviewData is the transient sample record used to visualize
// resolver output while designing, without touching real data.
type PreviewData map[string]string

// DefaultPreviewData returns the sample values a fresh session
// previews with.
func DefaultPreviewData() PreviewData {
	return PreviewData{
		render.KeyParticipantName: "John Doe",
		render.KeyEventName:       "Annual Tech Summit 2024",
		render.KeyDate:            time.Now().Format("1/2/2006"),
		render.KeyCategory:        "Excellence",
		render.KeyCertificateLink: "https://example.com/verify?id=12345",
		render.KeyQRCode:          "https://example.com/verify?id=12345",
	}
}

// Session is one in-progress design of a template's placeholder list.
// Order matters only for editing ergonomics; the renderer treats the
// list as a paint order.
type Session struct {
	placeholders []model.Placeholder
	selectedID   string // empty = nothing selected
	preview      bool
	previewData  PreviewData

	now func() time.Time // id token source, swappable in tests
}

// New starts a session seeded with an existing placeholder list (nil
// for a blank template).
func New(initial []model.Placeholder) *Session {
	s := &Session{
		placeholders: append([]model.Placeholder(nil), initial...),
		previewData:  DefaultPreviewData(),
		now:          time.Now,
	}
	return s
}

// nextID derives a fresh element id from a timestamp token, matching
// the ids already present in stored templates.
func (s *Session) nextID(kind string) string {
	return fmt.Sprintf("%s-%d", kind, s.now().UnixMilli())
}

// AddText appends a new text placeholder with type defaults and
// selects it.
func (s *Session) AddText() model.Placeholder {
	p := model.NewTextPlaceholder(s.nextID("text"))
	s.placeholders = append(s.placeholders, p)
	s.selectedID = p.ID
	return p
}

// AddQR appends a new QR placeholder with type defaults and selects it.
func (s *Session) AddQR() model.Placeholder {
	p := model.NewQRPlaceholder(s.nextID("qr"))
	s.placeholders = append(s.placeholders, p)
	s.selectedID = p.ID
	return p
}

// Move shifts a placeholder by a pointer-drag delta. Ignored while
// previewing; positions are never clamped, so elements may leave the
// canvas.
func (s *Session) Move(id string, dx, dy float64) {
	if s.preview {
		return
	}
	for i, p := range s.placeholders {
		if p.ID == id {
			s.placeholders[i] = p.MovedBy(dx, dy)
			return
		}
	}
}

// Update carries the editable attributes of a placeholder. Nil fields
// are left untouched; non-nil fields overwrite, so an explicit zero
// (e.g. clearing the width back to auto) is expressible.
type Update struct {
	Label     *string
	Key       *string
	X         *float64
	Y         *float64
	FontSize  *int
	Width     *int
	Prefix    *string
	Color     *string
	FontW     *string
	FontFam   *string
	TextAlign *string

	PrefixColor    *string
	PrefixFontW    *string
	PrefixFontFam  *string
	PrefixFontSize *int
}

// UpdateSelected merges attribute changes into the selected
// placeholder. A no-op when nothing is selected or while previewing.
func (s *Session) UpdateSelected(u Update) {
	if s.preview || s.selectedID == "" {
		return
	}
	for i, p := range s.placeholders {
		if p.ID != s.selectedID {
			continue
		}
		if u.Label != nil {
			p.Label = *u.Label
		}
		if u.Key != nil {
			p.Key = *u.Key
		}
		if u.X != nil {
			p.X = *u.X
		}
		if u.Y != nil {
			p.Y = *u.Y
		}
		if u.FontSize != nil {
			p.FontSize = *u.FontSize
		}
		if u.Width != nil {
			p.Width = *u.Width
		}
		if u.Prefix != nil {
			p.Prefix = *u.Prefix
		}
		if u.Color != nil {
			p.Color = *u.Color
		}
		if u.FontW != nil {
			p.FontWeight = *u.FontW
		}
		if u.FontFam != nil {
			p.FontFamily = *u.FontFam
		}
		if u.TextAlign != nil {
			p.TextAlign = *u.TextAlign
		}
		if u.PrefixColor != nil {
			p.PrefixColor = *u.PrefixColor
		}
		if u.PrefixFontW != nil {
			p.PrefixFontWeight = *u.PrefixFontW
		}
		if u.PrefixFontFam != nil {
			p.PrefixFontFamily = *u.PrefixFontFam
		}
		if u.PrefixFontSize != nil {
			p.PrefixFontSize = *u.PrefixFontSize
		}
		s.placeholders[i] = p
		return
	}
}

// Select marks a placeholder as the edit target. Ignored while
// previewing.
func (s *Session) Select(id string) {
	if s.preview {
		return
	}
	s.selectedID = id
}

// Selected returns the currently selected placeholder, or false when
// nothing is selected.
func (s *Session) Selected() (model.Placeholder, bool) {
	for _, p := range s.placeholders {
		if p.ID == s.selectedID {
			return p, true
		}
	}
	return model.Placeholder{}, false
}

// DeleteSelected removes the selected placeholder and clears the
// selection. A no-op when nothing is selected.
func (s *Session) DeleteSelected() {
	if s.selectedID == "" {
		return
	}
	out := s.placeholders[:0]
	for _, p := range s.placeholders {
		if p.ID != s.selectedID {
			out = append(out, p)
		}
	}
	s.placeholders = out
	s.selectedID = ""
}

// TogglePreview flips preview mode. Entering preview disables drags
// and edits, and displayed values switch from literal labels to
// resolver output against the sample data.
func (s *Session) TogglePreview() bool {
	s.preview = !s.preview
	return s.preview
}

// Previewing reports whether the session is in preview mode.
func (s *Session) Previewing() bool { return s.preview }

// SetPreviewData replaces one sample value used while previewing.
func (s *Session) SetPreviewData(key, value string) {
	s.previewData[key] = value
}

// PreviewValue returns the string a placeholder key displays in
// preview mode. certificateLink and qrCode share the sample link;
// unknown keys preview as empty, exactly like the real resolver.
func (s *Session) PreviewValue(key string) string {
	if key == render.KeyQRCode || key == render.KeyCertificateLink {
		return s.previewData[render.KeyCertificateLink]
	}
	return s.previewData[key]
}

// Snapshot returns a copy of the current placeholder list, ready to
// hand to the persistence collaborator. The session keeps no
// knowledge of how or where the list is stored.
func (s *Session) Snapshot() []model.Placeholder {
	return append([]model.Placeholder(nil), s.placeholders...)
}
