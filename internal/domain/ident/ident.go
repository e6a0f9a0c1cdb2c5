package ident

import (
	"math/rand/v2"
	"regexp"
)

const (
	idLength = 6
	letters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits   = "0123456789"
)

var (
	idPattern = regexp.MustCompile(`^[0-9a-zA-Z]+$`)
	// Hyphenated 8-4-4-4-12 hex. The version nibble is deliberately not
	// checked: stored uuids are compared as opaque strings.
	uuidPattern = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)
)

// GenerateID returns a fresh 6-character account ID. Each position is an
// independent coin flip between an uppercase letter and a digit, so IDs
// like "A3F90Q" and "777777" are both possible.
func GenerateID() string {
	id := make([]byte, idLength)
	for i := range id {
		if rand.IntN(2) == 1 {
			id[i] = letters[rand.IntN(len(letters))]
		} else {
			id[i] = digits[rand.IntN(len(digits))]
		}
	}
	return string(id)
}

// IsValidID reports whether id is a well-formed account ID. Lowercase is
// accepted even though GenerateID never produces it: users re-type their
// IDs at login and case slips are forgiven.
func IsValidID(id string) bool {
	if len(id) != idLength {
		return false
	}
	return idPattern.MatchString(id)
}

// IsValidUuid reports whether uuid matches the canonical hyphenated form.
// The empty string is invalid.
func IsValidUuid(uuid string) bool {
	return uuidPattern.MatchString(uuid)
}
