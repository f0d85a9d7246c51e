package display

import (
	"prism/gfx"
	"prism/gfx/driver"
)

// EnableDoubleBuffering turns the back buffer on or off. The buffer is
// allocated lazily on first enable, sized to the current framebuffer,
// and kept across disable so re-enabling is cheap. Enabling without a
// mapped framebuffer returns ErrNotSupported.
func (m *Manager) EnableDoubleBuffering(on bool) error {
	if !on {
		m.doubleBuf = false
		return nil
	}
	if m.fb == nil {
		return gfx.ErrNotSupported
	}
	if m.fb.Back == nil {
		back, err := gfx.NewSurface(m.fb.Width, m.fb.Height, m.fb.Format)
		if err != nil {
			return gfx.ErrOutOfMemory
		}
		m.fb.Back = back
	}
	m.doubleBuf = true
	return nil
}

// DoubleBuffered reports whether drawing goes through a back buffer.
func (m *Manager) DoubleBuffered() bool { return m.doubleBuf }

// SwapBuffers presents the back buffer: a hardware page flip when the
// driver has one, otherwise a full software copy into the scanout.
// Calling it with double buffering off is ErrNotSupported and copies
// nothing.
func (m *Manager) SwapBuffers() error {
	if !m.doubleBuf || m.fb == nil || m.fb.Back == nil {
		return gfx.ErrNotSupported
	}
	if pf, ok := m.drv.(driver.PageFlipper); ok {
		if err := pf.PageFlip(m.fb.Back); err == nil {
			return nil
		}
		// A refused flip is not fatal; fall through to the copy.
	}

	back := m.fb.Back
	rowBytes := m.fb.Width * m.fb.Format.BytesPerPixel()
	for y := 0; y < m.fb.Height; y++ {
		src := back.Pix[y*back.Pitch : y*back.Pitch+rowBytes]
		dst := m.fb.Pix[y*m.fb.Pitch : y*m.fb.Pitch+rowBytes]
		copy(dst, src)
	}
	return nil
}
