package op

import "errors"

var (
	// ErrBadAddress is returned when an operand is not a well-formed address.
	ErrBadAddress = errors.New("malformed address")
	// ErrOffsetRange is returned when a write offset does not fit the 3-byte tag.
	ErrOffsetRange = errors.New("write offset out of range")
	// ErrMalformedRecord is returned when serialized operation bytes cannot be parsed.
	ErrMalformedRecord = errors.New("malformed operation record")
)
