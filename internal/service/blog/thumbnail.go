package blog

import (
	"strings"

	models "folio/internal/domain/models/blog"
)

// PlaceholderThumbnail is used when a document has no usable image
const PlaceholderThumbnail = "https://via.placeholder.com/400x300?text=No+Image"

// transient prefixes are handles that only live in the editor session
var transientPrefixes = []string{"blob:", "data:"}

// IsTransient reports whether ref only resolves inside the authoring
// session (an object URL or an inline data URL)
func IsTransient(ref string) bool {
	ref = strings.ToLower(strings.TrimSpace(ref))
	for _, prefix := range transientPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}

// ResolveThumbnail picks the index thumbnail: a durable explicit candidate,
// else the first durable image reference in block order, else
// PlaceholderThumbnail. Iframe sources are not images and are skipped.
func ResolveThumbnail(explicit string, blocks []models.Block) string {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" && !IsTransient(explicit) {
		return explicit
	}

	for _, b := range blocks {
		if !b.AcceptsUpload() {
			continue
		}
		if src := strings.TrimSpace(b.Src()); src != "" && !IsTransient(src) {
			return src
		}
	}

	return PlaceholderThumbnail
}
