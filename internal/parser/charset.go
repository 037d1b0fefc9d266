package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader converts an HTML body to UTF-8 before it reaches goquery.
// contentType is the response Content-Type header and may be empty, in which
// case the encoding is sniffed from meta tags, byte order marks or the bytes themselves.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
