package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Surface is a bounds-checked pixel buffer. Every surface is owned by
// exactly one entity (a window, the desktop, or a composition buffer)
// and is never aliased.
type Surface struct {
	Width  int
	Height int
	Pitch  int
	Format PixelFormat
	BPP    int
	Pix    []byte
}

// NewSurface allocates a zeroed surface with a tight pitch.
func NewSurface(width, height int, f PixelFormat) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidParameter
	}
	bpp := f.BitsPerPixel()
	if bpp == 0 {
		return nil, ErrInvalidParameter
	}
	pitch := width * bpp / 8
	return &Surface{
		Width:  width,
		Height: height,
		Pitch:  pitch,
		Format: f,
		BPP:    bpp,
		Pix:    make([]byte, pitch*height),
	}, nil
}

func (s *Surface) offset(x, y int) int {
	return y*s.Pitch + x*(s.BPP/8)
}

// SetPixel writes one packed pixel. Out-of-bounds coordinates are
// silently dropped; clipping at this level keeps every caller honest.
func (s *Surface) SetPixel(x, y int, p uint32) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return
	}
	s.storePixel(s.offset(x, y), p)
}

// PixelAt reads back one packed pixel. Out of bounds reads return 0.
func (s *Surface) PixelAt(x, y int) uint32 {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0
	}
	off := s.offset(x, y)
	switch s.BPP {
	case 8:
		return uint32(s.Pix[off])
	case 16:
		return uint32(s.Pix[off]) | uint32(s.Pix[off+1])<<8
	case 24:
		return uint32(s.Pix[off]) | uint32(s.Pix[off+1])<<8 | uint32(s.Pix[off+2])<<16
	case 32:
		return uint32(s.Pix[off]) | uint32(s.Pix[off+1])<<8 |
			uint32(s.Pix[off+2])<<16 | uint32(s.Pix[off+3])<<24
	}
	return 0
}

func (s *Surface) storePixel(off int, p uint32) {
	switch s.BPP {
	case 8:
		s.Pix[off] = byte(p)
	case 16:
		s.Pix[off] = byte(p)
		s.Pix[off+1] = byte(p >> 8)
	case 24:
		s.Pix[off] = byte(p)
		s.Pix[off+1] = byte(p >> 8)
		s.Pix[off+2] = byte(p >> 16)
	case 32:
		s.Pix[off] = byte(p)
		s.Pix[off+1] = byte(p >> 8)
		s.Pix[off+2] = byte(p >> 16)
		s.Pix[off+3] = byte(p >> 24)
	}
}

// Fill sets every pixel to p. The first scanline is written pixel by
// pixel, the rest are row copies of it.
func (s *Surface) Fill(p uint32) {
	if s.Height == 0 || s.Width == 0 {
		return
	}
	bytespp := s.BPP / 8
	for x := 0; x < s.Width; x++ {
		s.storePixel(x*bytespp, p)
	}
	row := s.Pix[:s.Width*bytespp]
	for y := 1; y < s.Height; y++ {
		copy(s.Pix[y*s.Pitch:y*s.Pitch+len(row)], row)
	}
}

// FillRect fills the rectangle clipped to the surface bounds.
func (s *Surface) FillRect(x, y, w, h int, p uint32) {
	x0, y0, x1, y1 := clipRect(x, y, w, h, s.Width, s.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	bytespp := s.BPP / 8
	for xx := x0; xx < x1; xx++ {
		s.storePixel(s.offset(xx, y0), p)
	}
	row := s.Pix[s.offset(x0, y0) : s.offset(x0, y0)+(x1-x0)*bytespp]
	for yy := y0 + 1; yy < y1; yy++ {
		copy(s.Pix[s.offset(x0, yy):s.offset(x0, yy)+len(row)], row)
	}
}

// Blit copies src into s at (dx, dy), clipped to both surfaces. The two
// surfaces must share a pixel format; mismatches return ErrInvalidParameter.
func (s *Surface) Blit(src *Surface, dx, dy int) error {
	if src == nil {
		return ErrInvalidParameter
	}
	if src.Format != s.Format {
		return ErrInvalidParameter
	}
	sx, sy := 0, 0
	w, h := src.Width, src.Height
	if dx < 0 {
		sx = -dx
		w += dx
		dx = 0
	}
	if dy < 0 {
		sy = -dy
		h += dy
		dy = 0
	}
	if dx+w > s.Width {
		w = s.Width - dx
	}
	if dy+h > s.Height {
		h = s.Height - dy
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	rowBytes := w * (s.BPP / 8)
	for row := 0; row < h; row++ {
		so := src.offset(sx, sy+row)
		do := s.offset(dx, dy+row)
		copy(s.Pix[do:do+rowBytes], src.Pix[so:so+rowBytes])
	}
	return nil
}

func clipRect(x, y, w, h, maxW, maxH int) (x0, y0, x1, y1 int) {
	x0, y0 = x, y
	x1, y1 = x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > maxW {
		x1 = maxW
	}
	if y1 > maxH {
		y1 = maxH
	}
	return
}

// Displayer adapts the surface to the pixel sink the font renderer
// draws through.
func (s *Surface) Displayer() drivers.Displayer { return surfaceDisplayer{s: s} }

type surfaceDisplayer struct {
	s *Surface
}

func (d surfaceDisplayer) Size() (x, y int16) {
	return int16(d.s.Width), int16(d.s.Height)
}

func (d surfaceDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.s.SetPixel(int(x), int(y), ColorToPixel(Color{R: c.R, G: c.G, B: c.B, A: c.A}, d.s.Format))
}

func (d surfaceDisplayer) Display() error { return nil }
