package reels

import "errors"

var (
	// ErrParse reports an import document that is not well-formed JSON.
	ErrParse = errors.New("import is not valid JSON")
	// ErrEmptyResult reports an import document with no usable URLs.
	ErrEmptyResult = errors.New("no URLs found in import")
	// ErrEmptyURL reports an append of a blank URL.
	ErrEmptyURL = errors.New("url is empty")
)
