package catalog

import (
	"strings"

	"github.com/tomebase/tomebase/internal/platform/apperr"
)

// ISBN is a canonicalized 13-digit book identifier. It is the only value
// ever used for lookup or storage; the raw client-supplied string is
// discarded once parsing succeeds.
type ISBN string

func (i ISBN) String() string { return string(i) }

// NormalizeISBN strips every character that is not a decimal digit.
//
// It is pure and total: it never fails, and it is idempotent. Length
// validation is the caller's job (see ParseISBN).
func NormalizeISBN(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseISBN normalizes raw and enforces the 13-digit length contract.
// Anything else (including ISBN-10s ending in 'X', which cannot survive
// the numeric wire representation) is rejected.
func ParseISBN(raw string) (ISBN, error) {
	digits := NormalizeISBN(raw)
	if len(digits) != 13 {
		return "", apperr.ValidationError("Invalid ISBN - must be a 13-digit string", apperr.FieldError{
			Field:   FieldISBN13,
			Message: "Must contain exactly 13 digits",
		})
	}
	return ISBN(digits), nil
}
