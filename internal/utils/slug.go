package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// hex chars kept from the title hash when letters were dropped.
const slugHashLen = 10

// GenerateSlug derives a URL slug from a title or a category name. Letters
// and digits that do not survive as [a-z0-9] are replaced by a short hash of
// the title, so titles differing only in those letters get distinct slugs.
//
//	"Hello, World!!"         -> "hello-world"
//	"  Multiple   Spaces "   -> "multiple-spaces"
//	"Café Crème"             -> "cafe-creme"
//	"مرحبا بالعالم"            -> "a-<10 hex chars of sha256(title)>"
//	"مرحبا 2024"               -> "2024-<10 hex chars of sha256(title)>"
//
// A blank title has no slug.
func GenerateSlug(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ""
	}

	lowered := strings.ToLower(stripMarks(trimmed))

	slug := slugInvalid.ReplaceAllString(lowered, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	switch {
	case slug == "":
		return "a-" + titleHash(trimmed)
	case dropsLetters(lowered):
		return slug + "-" + titleHash(trimmed)
	}

	return slug
}

func titleHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:slugHashLen]
}

// dropsLetters reports whether s holds a letter or digit outside [a-z0-9].
func dropsLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// stripMarks decomposes accented latin letters and drops the combining marks.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return out
}
