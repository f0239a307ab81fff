// Package storage lists the background images a template can be
// designed over. Images come from two sources: a local directory
// served by the application, and an optional cloud bucket exposed via
// long-lived signed URLs. Either source failing degrades to an empty
// contribution rather than an error, so the designer still opens.
package storage

import (
	"os"
	"path"
	"strings"
)

// imageExtensions are the file suffixes recognized as template
// backgrounds.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".svg"}

// isImage reports whether a filename looks like a background image.
func isImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// LocalImages scans dir for image files and returns them as
// application-relative URLs under /templates/. A missing or unreadable
// directory yields an empty list.
func LocalImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isImage(e.Name()) {
			continue
		}
		out = append(out, path.Join("/templates", e.Name()))
	}
	return out
}
