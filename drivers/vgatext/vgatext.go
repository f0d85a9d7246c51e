// Package vgatext is a text-only display driver: an in-memory cell grid
// standing in for the legacy VGA text buffer. It exists so the degraded
// text rung of the matching policy has a real implementor on the host.
package vgatext

import (
	"prism/gfx"
	"prism/gfx/driver"
)

// Cell is one character cell of the grid.
type Cell struct {
	Ch rune
	Fg gfx.Color
	Bg gfx.Color
}

// Driver implements the contract for text output only. It has no
// framebuffer and no graphics modes, so every drawing operation falls
// back — or fails — above it.
type Driver struct {
	cols, rows int
	cells      []Cell
	curSet     bool
}

// New returns an uninitialized text driver.
func New() *Driver { return &Driver{} }

func (d *Driver) Name() string    { return "vga_text" }
func (d *Driver) Version() string { return "1.0" }

func (d *Driver) Caps() driver.Caps { return driver.CapTextMode }

func (d *Driver) Init() error { return nil }

func (d *Driver) Shutdown() error {
	d.cells = nil
	d.curSet = false
	return nil
}

// EnumerateModes lists the classic VGA text grids.
func (d *Driver) EnumerateModes() []gfx.VideoMode {
	return []gfx.VideoMode{
		{Width: 80, Height: 25, Text: true, Number: 0x03},
		{Width: 80, Height: 50, Text: true, Number: 0x03},
		{Width: 40, Height: 25, Text: true, Number: 0x01},
	}
}

// SetMode accepts text modes only.
func (d *Driver) SetMode(m gfx.VideoMode) error {
	if !m.Text {
		return gfx.ErrInvalidMode
	}
	if m.Width <= 0 || m.Height <= 0 {
		return gfx.ErrInvalidMode
	}
	d.cols, d.rows = m.Width, m.Height
	d.cells = make([]Cell, d.cols*d.rows)
	d.curSet = true
	return nil
}

// CurrentMode returns the active text grid.
func (d *Driver) CurrentMode() (gfx.VideoMode, error) {
	if !d.curSet {
		return gfx.VideoMode{}, gfx.ErrInvalidMode
	}
	return gfx.VideoMode{Width: d.cols, Height: d.rows, Text: true, Number: 0x03}, nil
}

// WriteChar stores one glyph. Out-of-grid writes are dropped.
func (d *Driver) WriteChar(col, row int, ch rune, fg, bg gfx.Color) error {
	if !d.curSet {
		return gfx.ErrInvalidMode
	}
	if col < 0 || row < 0 || col >= d.cols || row >= d.rows {
		return gfx.ErrInvalidParameter
	}
	d.cells[row*d.cols+col] = Cell{Ch: ch, Fg: fg, Bg: bg}
	return nil
}

// WriteString stores a run of glyphs starting at (col, row), clipped at
// the end of the row.
func (d *Driver) WriteString(col, row int, s string, fg, bg gfx.Color) error {
	if !d.curSet {
		return gfx.ErrInvalidMode
	}
	if col < 0 || row < 0 || row >= d.rows {
		return gfx.ErrInvalidParameter
	}
	for _, r := range s {
		if col >= d.cols {
			break
		}
		d.cells[row*d.cols+col] = Cell{Ch: r, Fg: fg, Bg: bg}
		col++
	}
	return nil
}

// CellAt reads back a cell, for tests and the hal text presenter.
func (d *Driver) CellAt(col, row int) Cell {
	if col < 0 || row < 0 || col >= d.cols || row >= d.rows {
		return Cell{}
	}
	return d.cells[row*d.cols+col]
}

// Size returns the grid dimensions (0,0 before a mode is set).
func (d *Driver) Size() (cols, rows int) { return d.cols, d.rows }
