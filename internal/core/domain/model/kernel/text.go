package kernel

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// FoldASCII decomposes s (NFKD) and drops every rune that is not ASCII, so
// "Hygiène" becomes "Hygiene".
func FoldASCII(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Words splits the ASCII fold of s on every run of non-alphanumeric characters.
func Words(s string) []string {
	return strings.FieldsFunc(FoldASCII(s), func(r rune) bool {
		return !isASCIIAlnum(r)
	})
}

// Fragment returns the first n upper-case alphanumerics of s, right-padded
// with 'X'. It is used for donor codes in receipt references.
func Fragment(s string, n int) string {
	var b strings.Builder
	for _, r := range FoldASCII(s) {
		if isASCIIAlnum(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return pad(b.String(), n)
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat("X", n-len(s))
}

// Initials builds a two letter code: first letters of the first two words, or
// the first two characters of a single word, padded with 'X'.
func Initials(s string) string {
	words := Words(s)
	switch len(words) {
	case 0:
		return "XX"
	case 1:
		return pad(strings.ToUpper(words[0]), 2)
	default:
		return strings.ToUpper(words[0][:1] + words[1][:1])
	}
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
