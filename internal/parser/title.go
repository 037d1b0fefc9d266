package parser

import (
	"net/url"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InferTitle derives a display title from the last path segment of a movie URL.
// "the-iron-giant-1999" becomes "The Iron Giant (1999)"; a segment not ending in
// a 4-digit year is title-cased as a whole. It returns "" when the URL has no usable segment.
func InferTitle(link string) string {
	segment := lastPathSegment(link)
	if segment == "" {
		return ""
	}

	words := strings.Fields(strings.ReplaceAll(segment, "-", " "))
	if len(words) == 0 {
		return ""
	}

	caser := cases.Title(language.English)
	last := words[len(words)-1]
	if isYear(last) {
		name := strings.Join(words[:len(words)-1], " ")
		if name == "" {
			return last
		}
		return caser.String(name) + " (" + last + ")"
	}
	return caser.String(strings.Join(words, " "))
}

func lastPathSegment(link string) string {
	p := link
	if u, err := url.Parse(link); err == nil {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
