package shared

import "errors"

var (
	// ErrOutOfRange signals a load factor outside the range (0.0, 1.0].
	ErrOutOfRange = errors.New("out of range")

	// ErrNegativeCapacity signals a negative Config.Size passed to the
	// root package's NewSet.
	ErrNegativeCapacity = errors.New("negative capacity")
)
