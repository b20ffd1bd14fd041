package markdown

import (
	"bytes"
	"strings"
)

// Placeholder forms recognised in body text. Both the compact and the spaced
// spelling occur in the wild.
var baseURLPlaceholders = [][]byte{
	[]byte("{{site.baseurl}}"),
	[]byte("{{ site.baseurl }}"),
}

// ReplaceBaseURL substitutes the site base URL placeholder in image and link
// references within body text. When no base URL is configured the placeholder
// is left as a literal; a root base URL of "/" substitutes an empty prefix so
// references resolve from the site root. The function never mutates its input.
func ReplaceBaseURL(body []byte, baseURL string) []byte {
	configured := strings.TrimSpace(baseURL)
	if configured == "" {
		return body
	}
	trimmed := strings.TrimRight(configured, "/")

	out := body
	for _, placeholder := range baseURLPlaceholders {
		out = bytes.ReplaceAll(out, placeholder, []byte(trimmed))
	}
	return out
}
