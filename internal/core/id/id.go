// Package id generates and parses entity identifiers. All rows use
// UUIDv7 so primary keys sort by creation time and cluster well in
// B-tree indexes.
package id

import "github.com/google/uuid"

// ID identifies an entity.
type ID = uuid.UUID

// New returns a fresh UUIDv7.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back
		// to a random V4 rather than panic a request.
		return uuid.New()
	}
	return id
}

// Parse validates and converts a string form.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse is Parse for constants and test fixtures.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero ID.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether id is the zero ID.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
