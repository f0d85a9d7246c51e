// Package hostfb is the display driver for the host build: a linear
// framebuffer in ordinary memory, presented to the screen by the hal
// window. It registers under the name "vesa" by default since it plays
// the universal-fallback role the VESA driver plays on real hardware.
package hostfb

import (
	"prism/gfx"
	"prism/gfx/driver"
)

// DefaultName is the registry name the host driver answers to.
const DefaultName = "vesa"

// simulated scanout bus address, so device reports look plausible.
const scanoutPhys = 0xE0000000

// Driver implements the display contract on host memory.
type Driver struct {
	name  string
	modes []gfx.VideoMode

	cur     gfx.VideoMode
	curSet  bool
	scanout *gfx.Framebuffer
}

// New returns a host framebuffer driver registered under name; an empty
// name means DefaultName.
func New(name string) *Driver {
	if name == "" {
		name = DefaultName
	}
	return &Driver{
		name:  name,
		modes: standardModes(),
	}
}

func standardModes() []gfx.VideoMode {
	geoms := []struct{ w, h int }{
		{640, 480}, {800, 600}, {1024, 768},
		{1280, 720}, {1280, 1024}, {1600, 900}, {1920, 1080},
	}
	depths := []int{16, 24, 32}
	modes := make([]gfx.VideoMode, 0, len(geoms)*len(depths))
	num := uint16(0x100)
	for _, g := range geoms {
		for _, bpp := range depths {
			m, err := gfx.NewVideoMode(g.w, g.h, bpp, 60)
			if err != nil {
				continue
			}
			m.Number = num
			num++
			modes = append(modes, m)
		}
	}
	return modes
}

func (d *Driver) Name() string    { return d.name }
func (d *Driver) Version() string { return "1.0" }

func (d *Driver) Caps() driver.Caps {
	return driver.CapGraphicsMode | driver.CapDefault
}

func (d *Driver) Init() error { return nil }

func (d *Driver) Shutdown() error {
	d.scanout = nil
	d.curSet = false
	return nil
}

// EnumerateModes lists the synthetic mode table.
func (d *Driver) EnumerateModes() []gfx.VideoMode {
	out := make([]gfx.VideoMode, len(d.modes))
	copy(out, d.modes)
	return out
}

// SetMode accepts any known-format graphics mode; there is no hardware
// to refuse one. Text modes are rejected, this device has no text path.
func (d *Driver) SetMode(m gfx.VideoMode) error {
	if m.Text {
		return gfx.ErrNotSupported
	}
	if m.Width <= 0 || m.Height <= 0 || m.Format == gfx.FormatUnknown {
		return gfx.ErrInvalidMode
	}
	d.cur = m
	d.curSet = true
	d.scanout = nil
	return nil
}

// CurrentMode returns the mode last set.
func (d *Driver) CurrentMode() (gfx.VideoMode, error) {
	if !d.curSet {
		return gfx.VideoMode{}, gfx.ErrInvalidMode
	}
	return d.cur, nil
}

// MapFramebuffer allocates the scanout for the current mode.
func (d *Driver) MapFramebuffer() (*gfx.Framebuffer, error) {
	if !d.curSet {
		return nil, gfx.ErrInvalidMode
	}
	if d.scanout == nil {
		s, err := gfx.NewSurface(d.cur.Width, d.cur.Height, d.cur.Format)
		if err != nil {
			return nil, gfx.ErrOutOfMemory
		}
		d.scanout = gfx.NewFramebuffer(s, scanoutPhys)
	}
	return d.scanout, nil
}

// UnmapFramebuffer releases the scanout.
func (d *Driver) UnmapFramebuffer() error {
	d.scanout = nil
	return nil
}

// PageFlip copies the back buffer into the scanout. Real hardware swaps
// scanout addresses; in host memory the copy is the flip.
func (d *Driver) PageFlip(back *gfx.Surface) error {
	if back == nil || d.scanout == nil {
		return gfx.ErrInvalidParameter
	}
	return d.scanout.Blit(back, 0, 0)
}

// Scanout exposes the current front buffer for the hal presenter.
func (d *Driver) Scanout() *gfx.Framebuffer { return d.scanout }
