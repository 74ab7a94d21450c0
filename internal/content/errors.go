package content

import "errors"

// ErrMissingParameter indicates category or filename was empty.
var ErrMissingParameter = errors.New("category and filename are required")

// ErrNotFound indicates the book file does not exist under the books root.
// Paths that resolve outside the root are reported the same way.
var ErrNotFound = errors.New("book not found")

// ErrUnreadable indicates the book file exists but could not be read or is
// not valid UTF-8 text.
var ErrUnreadable = errors.New("book could not be read")
