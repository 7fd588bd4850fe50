package shortener

import (
	"strings"
	"testing"
)

func TestGenerateSecureSlug_InvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := GenerateSecureSlug(0); err == nil {
		t.Fatalf("expected error for invalid length")
	}
}

func TestGenerateSecureSlug_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	slug, err := GenerateSecureSlug(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slug) != 10 {
		t.Fatalf("expected slug length 10, got %d", len(slug))
	}

	for i := 0; i < len(slug); i++ {
		if strings.IndexByte(alphabet, slug[i]) == -1 {
			t.Fatalf("slug contains invalid character %q", slug[i])
		}
	}
}

func TestEncodeDecodeID(t *testing.T) {
	t.Parallel()

	for _, id := range []uint{0, 1, 61, 62, 4096, 987654321} {
		if got := DecodeID(EncodeID(id)); got != id {
			t.Fatalf("DecodeID(EncodeID(%d)) = %d", id, got)
		}
	}
}
