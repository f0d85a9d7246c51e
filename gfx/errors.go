package gfx

import "errors"

// Result sentinels shared by every layer of the graphics stack.
//
// Operations validate their inputs and return on the first violation;
// a returned error never leaves partially mutated state behind.
var (
	ErrInvalidParameter = errors.New("gfx: invalid parameter")
	ErrInvalidMode      = errors.New("gfx: invalid mode")
	ErrHardwareFault    = errors.New("gfx: hardware fault")
	ErrOutOfMemory      = errors.New("gfx: out of memory")
	ErrNotSupported     = errors.New("gfx: not supported")

	// ErrDeviceBusy is reserved for drivers that queue hardware work.
	// Nothing in the core raises it.
	ErrDeviceBusy = errors.New("gfx: device busy")
)
