package blog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"folio/internal/config"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"accents", "Crème brûlée", "creme-brulee"},
		{"sharp s", "Straße 5", "strasse-5"},
		{"ligature", "Æsir tales", "aesir-tales"},
		{"collapses separators", "a  --  b", "a-b"},
		{"underscore", "snake_case title", "snake-case-title"},
		{"leading and trailing", "  ...Go!  ", "go"},
		{"digits", "Top 10 tips", "top-10-tips"},
		{"nothing transliterable", "!!!", PlaceholderSlug},
		{"non latin", "日本語", PlaceholderSlug},
		{"empty", "", PlaceholderSlug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if !IsValidID(got) {
				t.Errorf("Slugify(%q) = %q is not a valid id", tt.title, got)
			}
		})
	}
}

func TestSlugifyTruncatesLongTitles(t *testing.T) {
	got := Slugify(strings.Repeat("word ", 100))
	if !IsValidID(got) {
		t.Fatalf("Slugify() = %q is not a valid id", got)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("Slugify() = %q ends with a hyphen", got)
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"hello-world", true},
		{"a1", true},
		{"", false},
		{"Hello", false},
		{"../etc/passwd", false},
		{"a b", false},
		{strings.Repeat("a", 201), false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsValidID(tt.id); got != tt.want {
				t.Errorf("IsValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestUniqueID(t *testing.T) {
	taken := map[string]bool{"post": true, "post-1": true, "other": true}
	inUse := func(_ context.Context, id string) (bool, error) {
		return taken[id], nil
	}

	tests := []struct {
		base string
		want string
	}{
		{"fresh", "fresh"},
		{"post", "post-2"},
		{"other", "other-1"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got, err := UniqueID(context.Background(), tt.base, inUse)
			if err != nil {
				t.Fatalf("UniqueID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("UniqueID(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestUniqueIDStaysWithinMaxLength(t *testing.T) {
	long := strings.Repeat("a", config.MaxIDLength)
	hyphenAtCut := strings.Repeat("a", config.MaxIDLength-3) + "-bb"

	tests := []struct {
		name  string
		base  string
		taken int
		want  string
	}{
		{"first suffix", long, 1, strings.Repeat("a", config.MaxIDLength-2) + "-1"},
		{"two digit suffix", long, 10, strings.Repeat("a", config.MaxIDLength-3) + "-10"},
		{"hyphen at cut", hyphenAtCut, 1, strings.Repeat("a", config.MaxIDLength-3) + "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got, err := UniqueID(context.Background(), tt.base, func(context.Context, string) (bool, error) {
				calls++
				return calls <= tt.taken, nil
			})
			if err != nil {
				t.Fatalf("UniqueID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("UniqueID() = %q, want %q", got, tt.want)
			}
			if !IsValidID(got) {
				t.Errorf("UniqueID() = %q (len %d) is not a valid id", got, len(got))
			}
		})
	}
}

func TestUniqueIDPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := UniqueID(context.Background(), "x", func(context.Context, string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("UniqueID() error = %v, want %v", err, boom)
	}
}
