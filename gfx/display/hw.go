package display

import (
	"prism/gfx"
	"prism/gfx/driver"
)

// Hardware pass-through operations. Each forwards to the matching
// capability interface of the active driver; a driver without the
// capability yields ErrNotSupported, there is no software stand-in for
// these.

// WaitForVSync blocks until the next vertical retrace.
func (m *Manager) WaitForVSync() error {
	if v, ok := m.drv.(driver.VSyncWaiter); ok {
		return v.WaitForVSync()
	}
	return gfx.ErrNotSupported
}

// SetCursor installs a hardware cursor image with the given hotspot.
func (m *Manager) SetCursor(img *gfx.Surface, hotX, hotY int) error {
	if img == nil {
		return gfx.ErrInvalidParameter
	}
	if c, ok := m.drv.(driver.CursorController); ok {
		return c.SetCursor(img, hotX, hotY)
	}
	return gfx.ErrNotSupported
}

// MoveCursor repositions the hardware cursor.
func (m *Manager) MoveCursor(x, y int) error {
	if c, ok := m.drv.(driver.CursorController); ok {
		return c.MoveCursor(x, y)
	}
	return gfx.ErrNotSupported
}

// ShowCursor toggles hardware cursor visibility.
func (m *Manager) ShowCursor(show bool) error {
	if c, ok := m.drv.(driver.CursorController); ok {
		return c.ShowCursor(show)
	}
	return gfx.ErrNotSupported
}

// ReadEDID returns the attached display's EDID block.
func (m *Manager) ReadEDID() ([]byte, error) {
	if e, ok := m.drv.(driver.EDIDReader); ok {
		return e.ReadEDID()
	}
	return nil, gfx.ErrNotSupported
}

// SetPowerState switches the display on or off.
func (m *Manager) SetPowerState(on bool) error {
	if p, ok := m.drv.(driver.PowerManager); ok {
		return p.SetPowerState(on)
	}
	return gfx.ErrNotSupported
}

// ResetDevice restores the device to its power-on state. The cached
// mode and framebuffer are invalidated since the hardware forgot them.
func (m *Manager) ResetDevice() error {
	r, ok := m.drv.(driver.Resetter)
	if !ok {
		return gfx.ErrNotSupported
	}
	if err := r.Reset(); err != nil {
		return err
	}
	m.fb = nil
	m.modeSet = false
	m.doubleBuf = false
	return nil
}
