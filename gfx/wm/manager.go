package wm

import (
	"prism/gfx"
	"prism/gfx/display"
)

// Manager owns the window list. Like every structure in this stack it
// has a single owner: callbacks that re-enter the manager while the
// compositor iterates the list are unsafe by convention.
type Manager struct {
	gm  *display.Manager
	log gfx.Logger

	// windows is ordered oldest first; the newest window sits at the
	// end. Z values are what actually order drawing.
	windows    []*Window
	nextHandle Handle
	focused    Handle

	needsRedraw bool

	desktopColor gfx.Color
	composeBuf   *gfx.Surface

	titleBarHeight int
}

// NewManager builds a window manager over an initialized display
// manager.
func NewManager(gm *display.Manager, log gfx.Logger) *Manager {
	if log == nil {
		log = gfx.NopLogger
	}
	return &Manager{
		gm:             gm,
		log:            log,
		nextHandle:     1,
		desktopColor:   gfx.RGB(0x20, 0x60, 0x80),
		titleBarHeight: 14,
	}
}

// SetDesktopColor changes the background fill and forces a redraw.
func (m *Manager) SetDesktopColor(c gfx.Color) {
	m.desktopColor = c
	m.needsRedraw = true
}

// Focused returns the focused window's handle, or InvalidHandle.
func (m *Manager) Focused() Handle { return m.focused }

// Count returns the number of live windows.
func (m *Manager) Count() int { return len(m.windows) }

// NeedsRedraw reports whether the scene changed since the last compose.
func (m *Manager) NeedsRedraw() bool { return m.needsRedraw }

// Get resolves a handle, nil if the window is gone.
func (m *Manager) Get(h Handle) *Window {
	if h == InvalidHandle {
		return nil
	}
	for _, w := range m.windows {
		if w.handle == h {
			return w
		}
	}
	return nil
}

// Windows returns the live windows, creation order. The slice is a copy.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	return out
}

// Create makes a new visible window with a zeroed surface in the current
// mode's pixel format. The new window starts topmost (z = window count)
// and immediately takes focus, which also raises it.
func (m *Manager) Create(x, y, width, height int, title string, flags Flags) (Handle, error) {
	if width <= 0 || height <= 0 {
		return InvalidHandle, gfx.ErrInvalidParameter
	}
	mode := m.gm.Mode()
	format := mode.Format
	if format == gfx.FormatUnknown {
		format = gfx.FormatRGBA8888
	}
	surface, err := gfx.NewSurface(width, height, format)
	if err != nil {
		return InvalidHandle, gfx.ErrOutOfMemory
	}

	w := &Window{
		handle:  m.nextHandle,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		Title:   title,
		State:   StateNormal,
		Flags:   flags,
		Z:       len(m.windows),
		surface: surface,
		Visible: true,
		Dirty:   true,
	}
	m.nextHandle++
	m.windows = append(m.windows, w)
	m.needsRedraw = true

	if err := m.Focus(w.handle); err != nil {
		return InvalidHandle, err
	}
	m.log.Debugf("wm: created window %d %q %dx%d", w.handle, title, width, height)
	return w.handle, nil
}

// Destroy closes a window: fires OnClose, drops focus if held (focus is
// NOT handed to another window — the caller decides what gets focus
// next), frees the surface, and renumbers the remaining windows'
// z-orders sequentially so they stay compact and unique.
func (m *Manager) Destroy(h Handle) error {
	idx := -1
	for i, w := range m.windows {
		if w.handle == h {
			idx = i
			break
		}
	}
	if idx < 0 {
		return gfx.ErrInvalidParameter
	}
	w := m.windows[idx]

	if w.Callbacks.OnClose != nil {
		w.Callbacks.OnClose(w)
	}
	if m.focused == h {
		m.focused = InvalidHandle
	}
	w.State = StateClosed
	w.surface = nil
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)

	m.renumber()
	m.needsRedraw = true
	m.log.Debugf("wm: destroyed window %d", h)
	return nil
}

// renumber compacts z-orders to 0..n-1, preserving relative order.
func (m *Manager) renumber() {
	byZ := m.sortedByZ(m.windows)
	for i, w := range byZ {
		w.Z = i
	}
}

// Focus moves focus to h. The previously focused window is notified
// first, then the target, and the target is unconditionally raised.
func (m *Manager) Focus(h Handle) error {
	w := m.Get(h)
	if w == nil {
		return gfx.ErrInvalidParameter
	}
	if m.focused != h {
		if old := m.Get(m.focused); old != nil {
			old.Focused = false
			if old.Callbacks.OnFocus != nil {
				old.Callbacks.OnFocus(old, false)
			}
		}
		m.focused = h
		w.Focused = true
		if w.Callbacks.OnFocus != nil {
			w.Callbacks.OnFocus(w, true)
		}
	}
	m.BringToFront(h)
	m.needsRedraw = true
	return nil
}

// BringToFront raises a window above everything else. A window already
// strictly on top keeps its z; anything else gets the current maximum
// plus one, so z values grow until the next destroy compacts them.
func (m *Manager) BringToFront(h Handle) {
	w := m.Get(h)
	if w == nil {
		return
	}
	maxOther := -1
	for _, other := range m.windows {
		if other != w && other.Z > maxOther {
			maxOther = other.Z
		}
	}
	if w.Z > maxOther {
		return
	}
	w.Z = maxOther + 1
	m.needsRedraw = true
}

// SetPosition moves a window, clamped so it stays fully inside the
// desktop, then fires OnMove.
func (m *Manager) SetPosition(h Handle, x, y int) error {
	w := m.Get(h)
	if w == nil {
		return gfx.ErrInvalidParameter
	}
	mode := m.gm.Mode()
	if mode.Width > 0 {
		if x+w.Width > mode.Width {
			x = mode.Width - w.Width
		}
		if y+w.Height > mode.Height {
			y = mode.Height - w.Height
		}
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x == w.X && y == w.Y {
		return nil
	}
	w.X, w.Y = x, y
	if w.Callbacks.OnMove != nil {
		w.Callbacks.OnMove(w, x, y)
	}
	m.needsRedraw = true
	return nil
}

// SetSize resizes a window within its min/max constraints and
// reallocates its surface, then fires OnResize.
func (m *Manager) SetSize(h Handle, width, height int) error {
	w := m.Get(h)
	if w == nil || width <= 0 || height <= 0 {
		return gfx.ErrInvalidParameter
	}
	if w.MinW > 0 && width < w.MinW {
		width = w.MinW
	}
	if w.MinH > 0 && height < w.MinH {
		height = w.MinH
	}
	if w.MaxW > 0 && width > w.MaxW {
		width = w.MaxW
	}
	if w.MaxH > 0 && height > w.MaxH {
		height = w.MaxH
	}
	if width == w.Width && height == w.Height {
		return nil
	}
	surface, err := gfx.NewSurface(width, height, w.surface.Format)
	if err != nil {
		return gfx.ErrOutOfMemory
	}
	w.Width, w.Height = width, height
	w.surface = surface
	w.Dirty = true
	if w.Callbacks.OnResize != nil {
		w.Callbacks.OnResize(w, width, height)
	}
	m.needsRedraw = true
	return nil
}

// SetState drives the window state machine. Closed is reached through
// Destroy, not here.
func (m *Manager) SetState(h Handle, s State) error {
	w := m.Get(h)
	if w == nil {
		return gfx.ErrInvalidParameter
	}
	if s == StateClosed || w.State == StateClosed || s == w.State {
		return gfx.ErrInvalidParameter
	}
	mode := m.gm.Mode()
	switch s {
	case StateMinimized:
		w.State = StateMinimized
	case StateMaximized, StateFullscreen:
		if w.State == StateNormal {
			w.savedX, w.savedY = w.X, w.Y
			w.savedW, w.savedH = w.Width, w.Height
		}
		w.State = s
		w.X, w.Y = 0, 0
		if mode.Width > 0 {
			if err := m.SetSize(h, mode.Width, mode.Height); err != nil {
				return err
			}
		}
	case StateNormal:
		prev := w.State
		w.State = StateNormal
		if prev == StateMaximized || prev == StateFullscreen {
			w.X, w.Y = w.savedX, w.savedY
			if w.savedW > 0 {
				if err := m.SetSize(h, w.savedW, w.savedH); err != nil {
					return err
				}
			}
		}
	default:
		return gfx.ErrInvalidParameter
	}
	m.needsRedraw = true
	return nil
}

// SetTitle renames a window.
func (m *Manager) SetTitle(h Handle, title string) error {
	w := m.Get(h)
	if w == nil {
		return gfx.ErrInvalidParameter
	}
	w.Title = title
	m.needsRedraw = true
	return nil
}

// Surface returns a window's surface for direct painting.
func (m *Manager) Surface(h Handle) (*gfx.Surface, error) {
	w := m.Get(h)
	if w == nil {
		return nil, gfx.ErrInvalidParameter
	}
	return w.surface, nil
}

// Invalidate marks a window dirty and schedules a recompose.
func (m *Manager) Invalidate(h Handle) error {
	w := m.Get(h)
	if w == nil {
		return gfx.ErrInvalidParameter
	}
	w.Dirty = true
	m.needsRedraw = true
	return nil
}

// Present forces a full compose regardless of the dirty state.
func (m *Manager) Present() error {
	m.needsRedraw = true
	return m.Compose()
}

// FindAt returns the topmost visible window containing the point, or
// InvalidHandle.
func (m *Manager) FindAt(x, y int) Handle {
	best := InvalidHandle
	bestZ := -1
	for _, w := range m.windows {
		if !w.Visible || w.State == StateMinimized {
			continue
		}
		if x < w.X || y < w.Y || x >= w.X+w.Width || y >= w.Y+w.Height {
			continue
		}
		if w.Z > bestZ {
			best = w.handle
			bestZ = w.Z
		}
	}
	return best
}
