package access

import (
	"html"
	"strings"
)

// PreviewCharLimit is the plain-text character budget for locked previews.
const PreviewCharLimit = 600

// Ellipsis is appended to a preview only when truncation occurred.
const Ellipsis = "…"

// PlainText strips markup from a rich-text body and returns the readable
// text. Tags are dropped, <br> and closing block tags become newlines and
// HTML entities are decoded. Truncation always operates on this rendering
// so a cut can never split a tag.
func PlainText(body string) string {
	var b strings.Builder
	b.Grow(len(body))

	inTag := false
	var tag strings.Builder
	for _, r := range body {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
				if isBlockBreak(tag.String()) {
					b.WriteByte('\n')
				}
				tag.Reset()
			} else {
				tag.WriteRune(r)
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(html.UnescapeString(b.String()))
}

func isBlockBreak(tag string) bool {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = strings.TrimSuffix(t, "/")
	t = strings.TrimSpace(t)
	switch t {
	case "br", "/p", "/div", "/h1", "/h2", "/h3", "/li", "/blockquote":
		return true
	}
	return false
}

// Preview renders the locked preview for a body: the plain text truncated
// to limit characters, with an ellipsis appended only when something was
// cut off. The returned bool reports whether truncation occurred.
func Preview(body string, limit int) (string, bool) {
	if limit <= 0 {
		limit = PreviewCharLimit
	}
	plain := PlainText(body)
	runes := []rune(plain)
	if len(runes) <= limit {
		return plain, false
	}
	return string(runes[:limit]) + Ellipsis, true
}
