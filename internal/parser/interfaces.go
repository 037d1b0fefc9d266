package parser

import "io"

// Parser extracts a list of items from an HTML document
type Parser[T any] interface {
	ParseHtml(body io.Reader) ([]T, error)
}

// SingleResultParser extracts exactly one value from an HTML document.
// Missing elements are reported as zero fields, not as errors.
type SingleResultParser[T any] interface {
	ParseHtml(body io.Reader) (T, error)
}
