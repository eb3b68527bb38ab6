package atlas

import "errors"

var (
	// ErrNotEnoughSpace indicates that no free rectangle accommodates the
	// request. The atlas is unchanged.
	ErrNotEnoughSpace = errors.New("atlas: not enough space")

	// ErrDoesNotFit indicates that a shrink would truncate an existing
	// allocation, or that the requested size is not valid for the
	// operation. The atlas is unchanged.
	ErrDoesNotFit = errors.New("atlas: does not fit")

	// ErrInvalidHandle indicates a stale or never-allocated id. The atlas
	// is unchanged.
	ErrInvalidHandle = errors.New("atlas: invalid handle")

	// ErrBadOptions indicates invalid construction options.
	ErrBadOptions = errors.New("atlas: invalid options")

	// ErrCorrupted indicates a broken internal invariant. It is never
	// returned under correct use of the public API; seeing it means the
	// allocator state can no longer be trusted.
	ErrCorrupted = errors.New("atlas: corrupted internal state")
)
