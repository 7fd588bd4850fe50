package access

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTextStripsMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "just words", want: "just words"},
		{name: "inline tags", in: "<em>soft</em> rain", want: "soft rain"},
		{name: "paragraphs", in: "<p>one</p><p>two</p>", want: "one\ntwo"},
		{name: "line breaks", in: "line one<br/>line two", want: "line one\nline two"},
		{name: "entities", in: "fish &amp; chips", want: "fish & chips"},
		{name: "attributes", in: `<a href="https://x.test">link</a>`, want: "link"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestPreviewShortBodyUnchanged(t *testing.T) {
	body := "<p>a short poem</p>"
	got, truncated := Preview(body, PreviewCharLimit)
	assert.False(t, truncated)
	assert.Equal(t, "a short poem", got)
	assert.False(t, strings.HasSuffix(got, Ellipsis))
}

func TestPreviewExactLimitNoEllipsis(t *testing.T) {
	body := strings.Repeat("a", PreviewCharLimit)
	got, truncated := Preview(body, PreviewCharLimit)
	assert.False(t, truncated)
	assert.Equal(t, body, got)
}

func TestPreviewLongBodyTruncated(t *testing.T) {
	plain := strings.Repeat("abcde ", 200) // 1200 chars
	body := "<p>" + plain + "</p>"
	got, truncated := Preview(body, PreviewCharLimit)
	assert.True(t, truncated)

	runes := []rune(got)
	assert.Len(t, runes, PreviewCharLimit+1)
	assert.Equal(t, Ellipsis, string(runes[PreviewCharLimit:]))

	// The preview (minus ellipsis) is a prefix of the plain-text rendering
	assert.True(t, strings.HasPrefix(PlainText(body), string(runes[:PreviewCharLimit])))
}

func TestPreviewTruncatesOnPlainTextNotMarkup(t *testing.T) {
	// A tag straddling the raw 600-char boundary must not leak into the preview
	padding := strings.Repeat("x", PreviewCharLimit-2)
	body := padding + `<a href="https://example.test/long-url">rest of the text ` + strings.Repeat("y", 700) + "</a>"
	got, truncated := Preview(body, PreviewCharLimit)
	assert.True(t, truncated)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, "href")
}

func TestPreviewMultibyteRunes(t *testing.T) {
	plain := strings.Repeat("ɛ", 800)
	got, truncated := Preview(plain, PreviewCharLimit)
	assert.True(t, truncated)
	assert.Len(t, []rune(got), PreviewCharLimit+1)
}
