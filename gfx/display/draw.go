package display

import (
	"prism/gfx"
	"prism/gfx/driver"
)

// target returns the surface software drawing lands on: the back buffer
// while double buffering is enabled, otherwise the scanout itself.
func (m *Manager) target() *gfx.Surface {
	if m.fb == nil {
		return nil
	}
	if m.doubleBuf && m.fb.Back != nil {
		return m.fb.Back
	}
	return &m.fb.Surface
}

// useDriver reports whether a hardware drawing path may be used. While
// double buffering is on, hardware ops would bypass the back buffer, so
// everything goes through software until the next flip.
func (m *Manager) useDriver() bool { return !m.doubleBuf }

// ClearScreen fills the display with one color.
func (m *Manager) ClearScreen(c gfx.Color) error {
	if m.useDriver() {
		if d, ok := m.drv.(driver.Drawer); ok {
			return d.Clear(c)
		}
	}
	t := m.target()
	if t == nil {
		return gfx.ErrNotSupported
	}
	t.Fill(gfx.ColorToPixel(c, t.Format))
	return nil
}

// DrawPixel plots one pixel. Out-of-bounds coordinates return
// ErrInvalidParameter without touching anything.
func (m *Manager) DrawPixel(x, y int, c gfx.Color) error {
	if x < 0 || y < 0 || x >= m.mode.Width || y >= m.mode.Height {
		return gfx.ErrInvalidParameter
	}
	if m.useDriver() {
		if d, ok := m.drv.(driver.Drawer); ok {
			return d.DrawPixel(x, y, c)
		}
	}
	t := m.target()
	if t == nil {
		return gfx.ErrNotSupported
	}
	t.SetPixel(x, y, gfx.ColorToPixel(c, t.Format))
	return nil
}

// DrawRect draws a rectangle, filled or outlined. The filled path
// prefers the driver's fill; the outline is four software lines.
func (m *Manager) DrawRect(x, y, w, h int, c gfx.Color, fill bool) error {
	if w <= 0 || h <= 0 {
		return gfx.ErrInvalidParameter
	}
	if fill {
		if m.useDriver() {
			if a, ok := m.drv.(driver.Accelerator); ok {
				return a.AccelFill(x, y, w, h, c)
			}
			if d, ok := m.drv.(driver.Drawer); ok {
				return d.FillRect(x, y, w, h, c)
			}
		}
		t := m.target()
		if t == nil {
			return gfx.ErrNotSupported
		}
		t.FillRect(x, y, w, h, gfx.ColorToPixel(c, t.Format))
		return nil
	}

	// Outline: point rasterization through DrawPixel semantics.
	t := m.target()
	if t == nil {
		return gfx.ErrNotSupported
	}
	p := gfx.ColorToPixel(c, t.Format)
	for xx := x; xx < x+w; xx++ {
		t.SetPixel(xx, y, p)
		t.SetPixel(xx, y+h-1, p)
	}
	for yy := y; yy < y+h; yy++ {
		t.SetPixel(x, yy, p)
		t.SetPixel(x+w-1, yy, p)
	}
	return nil
}

// DrawLine draws a line segment, via the accelerator when present,
// otherwise Bresenham expressed purely in pixel writes.
func (m *Manager) DrawLine(x0, y0, x1, y1 int, c gfx.Color) error {
	if m.useDriver() {
		if a, ok := m.drv.(driver.Accelerator); ok {
			return a.AccelLine(x0, y0, x1, y1, c)
		}
	}
	t := m.target()
	if t == nil {
		return gfx.ErrNotSupported
	}
	p := gfx.ColorToPixel(c, t.Format)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, p)
		if x0 == x1 && y0 == y1 {
			return nil
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// BlitSurface copies src onto the display at (x, y), clipped.
func (m *Manager) BlitSurface(src *gfx.Surface, x, y int) error {
	if src == nil {
		return gfx.ErrInvalidParameter
	}
	if m.useDriver() {
		if d, ok := m.drv.(driver.Drawer); ok {
			return d.Blit(src, x, y)
		}
	}
	t := m.target()
	if t == nil {
		return gfx.ErrNotSupported
	}
	return t.Blit(src, x, y)
}

// WriteChar puts one character at a text cell. Native text drivers get
// it as a glyph write; on a framebuffer console it is rendered with the
// system font at the cell's pixel position.
func (m *Manager) WriteChar(col, row int, ch rune, fg, bg gfx.Color) error {
	if col < 0 || row < 0 {
		return gfx.ErrInvalidParameter
	}
	if tw, ok := m.drv.(driver.TextWriter); ok {
		return tw.WriteChar(col, row, ch, fg, bg)
	}
	t := m.target()
	if t == nil {
		return gfx.ErrNotSupported
	}
	cw, chh := gfx.SystemFontWidth(), gfx.SystemFontHeight
	t.FillRect(col*cw, row*chh, cw, chh, gfx.ColorToPixel(bg, t.Format))
	gfx.DrawChar(t, gfx.SystemFont, col*cw, row*chh, ch, fg)
	return nil
}

// WriteString puts a string starting at a text cell.
func (m *Manager) WriteString(col, row int, s string, fg, bg gfx.Color) error {
	if col < 0 || row < 0 {
		return gfx.ErrInvalidParameter
	}
	if tw, ok := m.drv.(driver.TextWriter); ok {
		return tw.WriteString(col, row, s, fg, bg)
	}
	t := m.target()
	if t == nil {
		return gfx.ErrNotSupported
	}
	cw, chh := gfx.SystemFontWidth(), gfx.SystemFontHeight
	n := 0
	for range s {
		n++
	}
	t.FillRect(col*cw, row*chh, n*cw, chh, gfx.ColorToPixel(bg, t.Format))
	gfx.DrawText(t, gfx.SystemFont, col*cw, row*chh, s, fg)
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
