package blog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"folio/internal/config"
)

// PlaceholderSlug is used when a title has no transliterable characters
const PlaceholderSlug = "n-a"

var (
	nonAlnumRun   = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	nonSlugChars  = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	repeatedDash  = regexp.MustCompile(`-+`)
	validSlugExpr = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// letters that have no canonical decomposition into ASCII
var transliterations = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "TH",
	"ħ", "h", "Ħ", "H",
	"ı", "i",
	"ŋ", "ng", "Ŋ", "NG",
)

// Slugify derives a URL-safe identifier from a title. The result matches
// [a-z0-9-]+, never starts, ends or repeats a hyphen, and falls back to
// PlaceholderSlug when nothing transliterates.
func Slugify(title string) string {
	s := nonAlnumRun.ReplaceAllString(title, "-")
	s = transliterate(s)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	s = repeatedDash.ReplaceAllString(s, "-")
	s = strings.ToLower(s)

	if len(s) > config.MaxIDLength {
		s = strings.TrimRight(s[:config.MaxIDLength], "-")
	}

	if s == "" {
		return PlaceholderSlug
	}
	return s
}

// transliterate approximates s in ASCII: compatibility decomposition with
// combining marks removed, plus a table for letters that do not decompose.
// Runes with no approximation are dropped.
func transliterate(s string) string {
	s = transliterations.Replace(s)

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, s)
	if err != nil {
		decomposed = s
	}

	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, decomposed)
}

// IsValidID reports whether id has the shape of a generated slug
func IsValidID(id string) bool {
	return validSlugExpr.MatchString(id) && len(id) <= config.MaxIDLength
}

// TakenFunc reports whether an id is already in use
type TakenFunc func(ctx context.Context, id string) (bool, error)

// UniqueID tries base, base-1, base-2, ... and returns the first candidate
// taken reports as free. The base is shortened when needed so every
// candidate stays within config.MaxIDLength.
func UniqueID(ctx context.Context, base string, taken TakenFunc) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
		candidate = withSuffix(base, fmt.Sprintf("-%d", counter))
	}
}

// withSuffix appends suffix to an ASCII slug, trimming the slug first if
// the result would exceed config.MaxIDLength.
func withSuffix(base, suffix string) string {
	if room := config.MaxIDLength - len(suffix); len(base) > room {
		base = strings.TrimRight(base[:room], "-")
	}
	return base + suffix
}
