package wire

import "github.com/pkg/errors"

var (
	// ErrTruncatedInput is returned when the input window holds fewer bytes
	// than a fixed-width or length-prefixed read requires, or when no uint
	// terminator byte exists within the window.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrOverflow is returned when a uint does not fit in 64 bits.
	ErrOverflow = errors.New("uint overflows 64 bits")

	// ErrInvalidDiscriminant is returned when a union tag, enum ordinal or
	// optional presence byte does not match anything the type declares.
	ErrInvalidDiscriminant = errors.New("invalid discriminant")

	// ErrInvariant is returned when a value or type is constructed in a way
	// that violates one of the format's structural invariants.
	ErrInvariant = errors.New("construction invariant violation")

	// ErrIllegalState is returned when a structurally invalid value reaches
	// the encoder.
	ErrIllegalState = errors.New("illegal state")

	// ErrTypeMismatch is returned when a value does not conform to the type
	// it is validated or encoded against.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrLimitExceeded is returned when a decoder guard trips.
	ErrLimitExceeded = errors.New("decode limit exceeded")

	// ErrUnknownType is returned when a named type cannot be found.
	ErrUnknownType = errors.New("unknown type")
)
