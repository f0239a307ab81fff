package render

import (
	"strings"

	"github.com/theananta/certificate-studio/internal/model"
)

// FontsURL builds a Google Fonts stylesheet URL covering every
// distinct font family referenced by the placeholder list, including
// prefix overrides. Returns "" when no placeholder names a family, so
// clients skip the stylesheet entirely.
func FontsURL(placeholders []model.Placeholder) string {
	seen := map[string]bool{}
	var families []string
	add := func(f string) {
		if f == "" || seen[f] {
			return
		}
		seen[f] = true
		families = append(families, f)
	}
	for _, p := range placeholders {
		add(p.FontFamily)
		add(p.PrefixFontFamily)
	}
	if len(families) == 0 {
		return ""
	}
	parts := make([]string, len(families))
	for i, f := range families {
		parts[i] = strings.ReplaceAll(f, " ", "+")
	}
	return "https://fonts.googleapis.com/css2?family=" + strings.Join(parts, "&family=") + "&display=swap"
}
