package render

import "github.com/theananta/certificate-studio/internal/model"

// Element is one placeholder laid out on the logical canvas with its
// value resolved and its styles fully computed. The layout carries
// everything a client needs to paint the certificate exactly as the
// designer's preview painted it; that parity is the renderer's core
// correctness property.
type Element struct {
	ID    string                `json:"id"`
	Type  model.PlaceholderType `json:"type"`
	X     float64               `json:"x"`
	Y     float64               `json:"y"`
	Value string                `json:"value"`

	// Text-only fields.
	Prefix      string           `json:"prefix,omitempty"`
	Style       *model.TextStyle `json:"style,omitempty"`
	PrefixStyle *model.TextStyle `json:"prefixStyle,omitempty"`
	WrapWidth   int              `json:"wrapWidth,omitempty"` // 0 = single non-wrapping line

	// QR-only field.
	Size int `json:"size,omitempty"`
}

// Surface is a complete laid-out certificate at the fixed logical
// canvas width. Width is always model.CanvasWidth; it is included so
// clients scale against the same constant the layout was produced at.
type Surface struct {
	Width    int       `json:"width"`
	ImageURL string    `json:"imageUrl"`
	Elements []Element `json:"elements"`
	FontsURL string    `json:"fontsUrl,omitempty"`
}

// Layout resolves every placeholder against ctx and positions it on
// the logical canvas. Placeholder order is preserved; it affects
// nothing but the paint order of overlapping elements.
func Layout(placeholders []model.Placeholder, imageURL string, ctx Context) Surface {
	elems := make([]Element, 0, len(placeholders))
	for _, p := range placeholders {
		value := Resolve(p.Key, ctx)
		if p.Type == model.PlaceholderQR {
			elems = append(elems, Element{
				ID:    p.ID,
				Type:  p.Type,
				X:     p.X,
				Y:     p.Y,
				Value: value,
				Size:  p.QRSize(),
			})
			continue
		}
		base, prefix := model.ResolveStyle(p)
		elems = append(elems, Element{
			ID:          p.ID,
			Type:        p.Type,
			X:           p.X,
			Y:           p.Y,
			Value:       value,
			Prefix:      p.Prefix,
			Style:       &base,
			PrefixStyle: &prefix,
			WrapWidth:   p.Width,
		})
	}
	return Surface{
		Width:    model.CanvasWidth,
		ImageURL: imageURL,
		Elements: elems,
		FontsURL: FontsURL(placeholders),
	}
}

// Scale computes the responsive display scale for a container of the
// given width: min((w - margin) / CanvasWidth, 1). The surface only
// ever shrinks to fit a narrow viewport, never grows beyond 1, and
// the transform applies with a top-center origin. A container
// narrower than the margin yields 1 so the surface stays visible.
func Scale(containerWidth int) float64 {
	s := float64(containerWidth-model.DisplayMargin) / float64(model.CanvasWidth)
	if s > 1 {
		return 1
	}
	if s <= 0 {
		return 1
	}
	return s
}
