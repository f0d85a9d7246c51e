// Package display is the graphics-manager façade: the single entry point
// the rest of the system draws through. It owns the current device, mode
// and framebuffer, forwards operations to the active driver's capability
// interfaces, and falls back to a software path on the mapped
// framebuffer whenever the driver leaves an operation unimplemented.
package display

import (
	"prism/gfx"
	"prism/gfx/driver"
	"prism/gfx/pci"
)

// Floor resolution for the framebuffer console: below this, text gets
// unreadable on any real panel.
const (
	consoleMinWidth  = 800
	consoleMinHeight = 600
)

// Config wires a manager's collaborators.
type Config struct {
	// ConfigSpace is the PCI collaborator detection scans.
	ConfigSpace pci.ConfigSpace
	// Drivers are the built-in drivers registered before detection.
	Drivers []driver.Driver
	Logger  gfx.Logger
}

// Manager holds the "current" graphics state. Single-owner, no locking:
// the caller serializes all entry into the stack.
type Manager struct {
	reg *driver.Registry
	det *pci.Detector
	log gfx.Logger

	primary *pci.Device
	drv     driver.Driver

	mode    gfx.VideoMode
	modeSet bool
	fb      *gfx.Framebuffer

	doubleBuf bool
}

// New builds an uninitialized manager. Call Init before anything else.
func New(cfg Config) *Manager {
	log := cfg.Logger
	if log == nil {
		log = gfx.NopLogger
	}
	m := &Manager{
		reg: driver.NewRegistry(log),
		det: pci.NewDetector(cfg.ConfigSpace, log),
		log: log,
	}
	for _, d := range cfg.Drivers {
		if err := m.reg.Register(d); err != nil {
			log.Warnf("display: skipping driver %q: %v", d.Name(), err)
		}
	}
	return m
}

// Init detects hardware, selects and initializes a driver for the
// primary device with the escalating fallback chain (matched driver,
// then vesa, then any text-capable driver), and attempts an 80x25 text
// mode. A missing text mode is not fatal; no usable driver at all is.
func (m *Manager) Init() error {
	if err := m.det.Probe(); err != nil {
		return err
	}
	dev := m.det.Primary()
	if dev == nil {
		return gfx.ErrHardwareFault
	}
	m.primary = dev

	drv, err := m.selectDriver(dev)
	if err != nil {
		return err
	}
	m.drv = drv
	m.log.Infof("display: using driver %s %s for %s", drv.Name(), drv.Version(), dev)

	if err := m.SetTextMode(80, 25); err != nil {
		m.log.Warnf("display: no 80x25 text mode: %v", err)
	}
	return nil
}

// selectDriver walks the fallback chain, initializing each candidate
// before committing to it. Each failed candidate is logged and the next
// rung tried; only a fully exhausted chain surfaces an error.
func (m *Manager) selectDriver(dev *pci.Device) (driver.Driver, error) {
	tried := make(map[string]bool)

	try := func(d driver.Driver, err error) driver.Driver {
		if err != nil || d == nil || tried[d.Name()] {
			return nil
		}
		tried[d.Name()] = true
		if ierr := d.Init(); ierr != nil {
			m.log.Warnf("display: driver %s failed to initialize: %v", d.Name(), ierr)
			return nil
		}
		dev.Driver = d
		return d
	}

	if d := try(pci.LoadDriverFor(m.reg, dev)); d != nil {
		return d, nil
	}
	if d := try(pci.FallbackToVESA(m.reg, dev)); d != nil {
		return d, nil
	}
	if d := try(pci.FallbackToText(m.reg, dev)); d != nil {
		return d, nil
	}
	dev.Driver = nil
	return nil, gfx.ErrNotSupported
}

// SetMode programs a graphics mode. The pixel format is derived from
// bpp; an unknown depth returns ErrInvalidMode before any hardware is
// touched. The cached mode changes only after the driver accepts the new
// one — a rejected mode leaves the manager exactly as it was.
func (m *Manager) SetMode(width, height, bpp, refreshHz int) error {
	mode, err := gfx.NewVideoMode(width, height, bpp, refreshHz)
	if err != nil {
		return err
	}
	return m.applyMode(mode)
}

func (m *Manager) applyMode(mode gfx.VideoMode) error {
	if m.drv == nil {
		return gfx.ErrNotSupported
	}
	ms, ok := m.drv.(driver.ModeSetter)
	if !ok {
		return gfx.ErrNotSupported
	}
	if err := ms.SetMode(mode); err != nil {
		return err
	}

	m.mode = mode
	m.modeSet = true
	m.fb = nil
	m.doubleBuf = false

	if fm, ok := m.drv.(driver.FramebufferMapper); ok {
		fb, err := fm.MapFramebuffer()
		if err != nil {
			m.log.Warnf("display: framebuffer map failed: %v", err)
		} else {
			m.fb = fb
		}
	}
	m.log.Infof("display: mode set to %s", mode)
	return nil
}

// SetTextMode puts the display into cols x rows text output. A driver
// with native text support gets asked first; everything else degrades to
// a framebuffer console: a graphics mode big enough for the requested
// grid in the system font, chosen by scoring the driver's mode list.
// Any driver that supports some graphics mode can therefore always show
// text.
func (m *Manager) SetTextMode(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return gfx.ErrInvalidParameter
	}
	if m.drv == nil {
		return gfx.ErrNotSupported
	}

	if m.drv.Caps().Has(driver.CapTextMode) {
		mode := gfx.VideoMode{Width: cols, Height: rows, Text: true, Number: 0x03}
		if ms, ok := m.drv.(driver.ModeSetter); ok {
			if err := ms.SetMode(mode); err == nil {
				m.mode = mode
				m.modeSet = true
				m.fb = nil
				m.doubleBuf = false
				m.log.Infof("display: native text mode %dx%d", cols, rows)
				return nil
			}
		}
	}

	return m.setConsoleMode(cols, rows)
}

func (m *Manager) setConsoleMode(cols, rows int) error {
	minW := cols * gfx.SystemFontWidth()
	minH := rows * gfx.SystemFontHeight
	if minW < consoleMinWidth {
		minW = consoleMinWidth
	}
	if minH < consoleMinHeight {
		minH = consoleMinHeight
	}

	ms, ok := m.drv.(driver.ModeSetter)
	if !ok {
		return gfx.ErrNotSupported
	}

	best, found := pickConsoleMode(ms.EnumerateModes(), minW, minH)
	if !found {
		// Nothing enumerable: synthesize and hope the hardware is as
		// linear as it claims.
		best = gfx.VideoMode{
			Width:  minW,
			Height: minH,
			BPP:    32,
			Pitch:  minW * 4,
			Format: gfx.FormatRGBA8888,
		}
	}
	return m.applyMode(best)
}

// pickConsoleMode scores candidates by bpp*width*height, halving any
// mode smaller than the wanted grid in either axis, and returns the
// highest scorer.
func pickConsoleMode(modes []gfx.VideoMode, minW, minH int) (gfx.VideoMode, bool) {
	var best gfx.VideoMode
	bestScore := -1
	for _, c := range modes {
		if c.Text || c.Format == gfx.FormatUnknown {
			continue
		}
		score := c.BPP * c.Width * c.Height
		if c.Width < minW || c.Height < minH {
			score /= 2
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore >= 0
}

// Mode returns the current cached mode.
func (m *Manager) Mode() gfx.VideoMode { return m.mode }

// ModeValid reports whether a mode has been set since Init.
func (m *Manager) ModeValid() bool { return m.modeSet }

// Framebuffer returns the mapped scanout, or nil in native text mode.
func (m *Manager) Framebuffer() *gfx.Framebuffer { return m.fb }

// Driver returns the active driver.
func (m *Manager) Driver() driver.Driver { return m.drv }

// Registry returns the driver registry.
func (m *Manager) Registry() *driver.Registry { return m.reg }

// Devices returns the detected device table.
func (m *Manager) Devices() []*pci.Device { return m.det.Devices() }

// PrimaryDevice returns the device the manager drives.
func (m *Manager) PrimaryDevice() *pci.Device { return m.primary }

// Shutdown releases the driver and clears all cached state.
func (m *Manager) Shutdown() {
	if m.drv != nil {
		if fm, ok := m.drv.(driver.FramebufferMapper); ok && m.fb != nil {
			if err := fm.UnmapFramebuffer(); err != nil {
				m.log.Warnf("display: unmap failed: %v", err)
			}
		}
		if err := m.drv.Shutdown(); err != nil {
			m.log.Warnf("display: driver shutdown failed: %v", err)
		}
	}
	m.drv = nil
	m.fb = nil
	m.modeSet = false
	m.doubleBuf = false
}
