package engine

import "errors"

// Error kinds per the error handling design: malformed external input is
// recoverable, unknown enums and invariant breaks are fatal programmer
// errors caught by test builds, deadlines are not errors at all.
var (
	// ErrMalformedInput flags a bad serialized field, unknown action name,
	// or a request against a move with no PP left. The caller's input is at
	// fault; engine state is left unchanged.
	ErrMalformedInput = errors.New("engine: malformed input")

	// ErrUnknownEnum flags a move/ability/species/item key absent from the
	// data tables. The tables ship with the binary, so this means the build
	// is inconsistent, not that the caller made a mistake.
	ErrUnknownEnum = errors.New("engine: unknown enumerated value")

	// ErrInvariant flags corruption caught by an invariant check: negative
	// HP, an unbalanced apply/reverse, probabilities that don't sum to 1.
	ErrInvariant = errors.New("engine: invariant violation")
)
