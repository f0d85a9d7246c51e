// Package driver defines the contract every display backend implements
// and the registry the detector matches devices against.
//
// The contract is deliberately small: Driver carries only identity,
// capability flags, and a lifecycle. Everything else a backend can do is
// an optional capability interface discovered by type assertion. A
// backend that does not implement one of them is not broken — the
// graphics manager falls back to its software path for that operation.
package driver

import (
	"prism/gfx"
)

// Caps is the capability flag bitset a driver advertises at
// registration time.
type Caps uint16

const (
	// CapTextMode marks native text-mode support.
	CapTextMode Caps = 1 << iota
	// CapGraphicsMode marks linear-framebuffer graphics support.
	CapGraphicsMode
	// CapAccel3D marks 3D acceleration (unused by the 2D core).
	CapAccel3D
	// CapHWCursor marks a hardware cursor plane.
	CapHWCursor
	// CapVSync marks vertical-retrace synchronization.
	CapVSync
	// CapDefault marks the driver as a universal fallback choice.
	CapDefault
)

// Has reports whether all flags in want are set.
func (c Caps) Has(want Caps) bool { return c&want == want }

// Driver is the required part of the backend contract.
type Driver interface {
	// Name is the stable identifier the matching policy keys on
	// (e.g. "vesa", "bochs_bga").
	Name() string
	Version() string
	Caps() Caps

	Init() error
	Shutdown() error
}

// Optional capability interfaces. Absence of an assertion is the signal
// "no hardware path for this, use the software fallback" — never an
// error by itself.

// ModeSetter enumerates and programs video modes.
type ModeSetter interface {
	EnumerateModes() []gfx.VideoMode
	SetMode(m gfx.VideoMode) error
	CurrentMode() (gfx.VideoMode, error)
}

// FramebufferMapper exposes the scanout memory for the current mode.
type FramebufferMapper interface {
	MapFramebuffer() (*gfx.Framebuffer, error)
	UnmapFramebuffer() error
}

// Drawer provides hardware-assisted 2D primitives.
type Drawer interface {
	Clear(c gfx.Color) error
	DrawPixel(x, y int, c gfx.Color) error
	FillRect(x, y, w, h int, c gfx.Color) error
	Blit(src *gfx.Surface, x, y int) error
}

// Accelerator provides blitter-class operations beyond Drawer.
type Accelerator interface {
	AccelFill(x, y, w, h int, c gfx.Color) error
	AccelCopy(sx, sy, dx, dy, w, h int) error
	AccelLine(x0, y0, x1, y1 int, c gfx.Color) error
}

// TextWriter writes glyphs in a native text mode.
type TextWriter interface {
	WriteChar(col, row int, ch rune, fg, bg gfx.Color) error
	WriteString(col, row int, s string, fg, bg gfx.Color) error
}

// CursorController drives a hardware cursor plane.
type CursorController interface {
	SetCursor(img *gfx.Surface, hotX, hotY int) error
	MoveCursor(x, y int) error
	ShowCursor(show bool) error
}

// VSyncWaiter blocks until vertical retrace (bounded spin on hardware).
type VSyncWaiter interface {
	WaitForVSync() error
}

// PageFlipper swaps scanout between two buffers without a copy.
type PageFlipper interface {
	PageFlip(back *gfx.Surface) error
}

// EDIDReader reads the attached display's EDID block.
type EDIDReader interface {
	ReadEDID() ([]byte, error)
}

// PowerManager switches display power states.
type PowerManager interface {
	SetPowerState(on bool) error
}

// Resetter restores the device to its power-on state.
type Resetter interface {
	Reset() error
}

// IOCtler is the escape hatch for driver-specific controls.
type IOCtler interface {
	IOCtl(op uint32, arg interface{}) (interface{}, error)
}
