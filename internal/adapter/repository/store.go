// Package repository persists documents and export records. Every store
// keeps documents in their encoded form, so loading always goes through
// schema validation.
package repository

import (
	"errors"
	"regexp"
)

// ErrNotFound is returned when no document is saved under an id.
var ErrNotFound = errors.New("document not found")

// ErrInvalidID is returned for ids that are empty or unsafe to use as a key
// or file name.
var ErrInvalidID = errors.New("invalid document id")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidID reports whether id can be used as a document key.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
