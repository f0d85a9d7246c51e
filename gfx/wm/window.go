// Package wm owns the window list, focus, and z-order, and composites
// the visible windows into the display's framebuffer.
package wm

import "prism/gfx"

// Handle identifies a window. Handles are allocated monotonically and
// never reused while the window manager lives; 0 is never a window.
type Handle uint32

// InvalidHandle is the zero handle.
const InvalidHandle Handle = 0

// State is the window lifecycle state. Normal exchanges freely with
// Minimized, Maximized, and Fullscreen; Closed is terminal.
type State uint8

const (
	StateNormal State = iota
	StateMinimized
	StateMaximized
	StateFullscreen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	case StateFullscreen:
		return "fullscreen"
	case StateClosed:
		return "closed"
	}
	return "invalid"
}

// Flags control window behavior.
type Flags uint16

const (
	FlagResizable Flags = 1 << iota
	FlagMovable
	FlagClosable
	FlagDecorated
	FlagTopmost
	FlagModal
)

// FlagsDefault is what ordinary application windows get.
const FlagsDefault = FlagResizable | FlagMovable | FlagClosable | FlagDecorated

// Has reports whether all flags in want are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Callbacks are the optional per-window hooks. Any of them may be nil.
// Input delivery is handled elsewhere.
type Callbacks struct {
	// OnPaint redraws the window's surface. Invoked by the compositor
	// when the window is dirty.
	OnPaint  func(w *Window, s *gfx.Surface)
	OnResize func(w *Window, width, height int)
	OnMove   func(w *Window, x, y int)
	OnClose  func(w *Window)
	OnFocus  func(w *Window, focused bool)
}

// Window is one entry in the manager's list. Its surface lives exactly
// as long as the window does.
type Window struct {
	handle Handle

	X, Y          int
	Width, Height int
	MinW, MinH    int
	MaxW, MaxH    int

	Title string
	State State
	Flags Flags

	// Z is the draw-order key; higher composites on top.
	Z int

	surface *gfx.Surface

	Visible bool
	Focused bool
	Dirty   bool

	Callbacks Callbacks

	// UserData is opaque to the window manager.
	UserData interface{}

	// Geometry before maximize/fullscreen, for restore.
	savedX, savedY, savedW, savedH int
}

// Handle returns the window's identifier.
func (w *Window) Handle() Handle { return w.handle }

// Surface returns the window's pixel surface.
func (w *Window) Surface() *gfx.Surface { return w.surface }
