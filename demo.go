package main

import (
	"fmt"

	"prism/gfx"
	"prism/gfx/display"
	"prism/gfx/wm"
	"prism/hal"
)

// demo drives a small desktop: a couple of windows, arrow keys move the
// focused one, Tab cycles focus, Enter opens another, Backspace closes.
type demo struct {
	gm      *display.Manager
	wmgr    *wm.Manager
	created int
	tick    uint64
}

func newDemo(gm *display.Manager, wmgr *wm.Manager) *demo {
	d := &demo{gm: gm, wmgr: wmgr}
	d.spawn(60, 60)
	d.spawn(260, 180)
	return d
}

func (d *demo) spawn(x, y int) {
	d.created++
	n := d.created
	h, err := d.wmgr.Create(x, y, 240, 140, fmt.Sprintf("window %d", n), wm.FlagsDefault)
	if err != nil {
		return
	}
	w := d.wmgr.Get(h)
	hue := uint8(40 * n)
	w.Callbacks.OnPaint = func(w *wm.Window, s *gfx.Surface) {
		s.Fill(gfx.ColorToPixel(gfx.RGB(0x18+hue/4, 0x18, 0x28), s.Format))
		gfx.DrawText(s, gfx.SystemFont, 8, 8, w.Title, gfx.RGB(0xE0, 0xE0, 0xE0))
		gfx.DrawText(s, gfx.SystemFont, 8, 24,
			fmt.Sprintf("handle %d  z %d", w.Handle(), w.Z), gfx.RGB(0x80+hue, 0xC0, 0x80))
	}
}

func (d *demo) step(kbd hal.Keyboard) error {
	for {
		select {
		case ev := <-kbd.Events():
			if ev.Press {
				d.handleKey(ev)
			}
			continue
		default:
		}
		break
	}

	d.tick++
	if d.tick%30 == 0 {
		// Z values change as windows are raised; keep labels fresh.
		for _, w := range d.wmgr.Windows() {
			d.wmgr.Invalidate(w.Handle())
		}
	}
	return d.wmgr.ComposeIfNeeded()
}

func (d *demo) handleKey(ev hal.KeyEvent) {
	focused := d.wmgr.Focused()
	w := d.wmgr.Get(focused)

	const step = 12
	switch ev.Code {
	case hal.KeyUp:
		if w != nil {
			d.wmgr.SetPosition(focused, w.X, w.Y-step)
		}
	case hal.KeyDown:
		if w != nil {
			d.wmgr.SetPosition(focused, w.X, w.Y+step)
		}
	case hal.KeyLeft:
		if w != nil {
			d.wmgr.SetPosition(focused, w.X-step, w.Y)
		}
	case hal.KeyRight:
		if w != nil {
			d.wmgr.SetPosition(focused, w.X+step, w.Y)
		}
	case hal.KeyTab:
		d.cycleFocus()
	case hal.KeyEnter:
		d.spawn(40+20*(d.created%8), 40+16*(d.created%8))
	case hal.KeyBackspace:
		if focused != wm.InvalidHandle {
			d.wmgr.Destroy(focused)
		}
	}
}

func (d *demo) cycleFocus() {
	ws := d.wmgr.Windows()
	if len(ws) == 0 {
		return
	}
	cur := d.wmgr.Focused()
	for i, w := range ws {
		if w.Handle() == cur {
			d.wmgr.Focus(ws[(i+1)%len(ws)].Handle())
			return
		}
	}
	d.wmgr.Focus(ws[0].Handle())
}
