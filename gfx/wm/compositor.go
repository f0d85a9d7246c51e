package wm

import (
	"sort"

	"prism/gfx"
)

// Title bar palette. Focus gets the brighter bar.
var (
	titleBarFocused   = gfx.RGB(0x30, 0x90, 0xD0)
	titleBarUnfocused = gfx.RGB(0x50, 0x50, 0x60)
	titleTextColor    = gfx.RGB(0xF0, 0xF0, 0xF0)
)

// ComposeIfNeeded runs a compose pass only when the scene changed.
func (m *Manager) ComposeIfNeeded() error {
	if !m.needsRedraw {
		return nil
	}
	return m.Compose()
}

// Compose builds one frame: desktop background, then every visible,
// non-minimized window blitted back to front by z-order, decorated
// windows getting a title bar above their content. The finished frame is
// blitted into the display's framebuffer and the redraw flag cleared.
//
// Paint callbacks run during the pass; they must not call back into the
// manager (the list is being iterated and there is no guard).
func (m *Manager) Compose() error {
	mode := m.gm.Mode()
	if mode.Width <= 0 || mode.Height <= 0 || mode.Text {
		return gfx.ErrNotSupported
	}
	if m.composeBuf == nil ||
		m.composeBuf.Width != mode.Width ||
		m.composeBuf.Height != mode.Height ||
		m.composeBuf.Format != mode.Format {
		buf, err := gfx.NewSurface(mode.Width, mode.Height, mode.Format)
		if err != nil {
			return gfx.ErrOutOfMemory
		}
		m.composeBuf = buf
	}
	buf := m.composeBuf

	buf.Fill(gfx.ColorToPixel(m.desktopColor, buf.Format))

	for _, w := range m.sortedByZ(m.visible()) {
		m.composeWindow(buf, w)
	}

	if err := m.gm.BlitSurface(buf, 0, 0); err != nil {
		return err
	}
	m.needsRedraw = false
	return nil
}

func (m *Manager) composeWindow(buf *gfx.Surface, w *Window) {
	y := w.Y
	if w.Flags.Has(FlagDecorated) {
		bar := titleBarUnfocused
		if w.Focused {
			bar = titleBarFocused
		}
		buf.FillRect(w.X, w.Y, w.Width, m.titleBarHeight, gfx.ColorToPixel(bar, buf.Format))
		if w.Title != "" {
			gfx.DrawText(buf, gfx.SystemFont, w.X+4, w.Y+2, w.Title, titleTextColor)
		}
		y += m.titleBarHeight
	}

	if w.Dirty && w.Callbacks.OnPaint != nil {
		w.Callbacks.OnPaint(w, w.surface)
		w.Dirty = false
	}

	if err := buf.Blit(w.surface, w.X, y); err != nil {
		m.log.Warnf("wm: blit of window %d failed: %v", w.handle, err)
	}
}

// visible collects the windows that take part in composition.
func (m *Manager) visible() []*Window {
	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		if w.Visible && w.State != StateMinimized {
			out = append(out, w)
		}
	}
	return out
}

// sortedByZ returns ws ordered back to front. The sort is stable so
// equal z (transiently possible between raises) keeps creation order.
func (m *Manager) sortedByZ(ws []*Window) []*Window {
	out := make([]*Window, len(ws))
	copy(out, ws)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// TitleBarHeight returns the decoration height in pixels.
func (m *Manager) TitleBarHeight() int { return m.titleBarHeight }
