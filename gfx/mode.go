package gfx

import "fmt"

// VideoMode describes one display timing/format combination.
//
// It is a value type: copied freely, never shared.
type VideoMode struct {
	Width     int
	Height    int
	BPP       int
	Pitch     int // bytes per scanline
	Format    PixelFormat
	RefreshHz int
	Text      bool
	// Number is the hardware mode identifier, opaque to the core.
	Number uint16
}

// NewVideoMode builds a mode for the given geometry, deriving the pixel
// format and pitch from the color depth. Unknown depths return
// ErrInvalidMode without touching anything.
func NewVideoMode(width, height, bpp, refreshHz int) (VideoMode, error) {
	if width <= 0 || height <= 0 {
		return VideoMode{}, ErrInvalidParameter
	}
	f := FormatForBPP(bpp)
	if f == FormatUnknown {
		return VideoMode{}, ErrInvalidMode
	}
	return VideoMode{
		Width:     width,
		Height:    height,
		BPP:       bpp,
		Pitch:     width * f.BytesPerPixel(),
		Format:    f,
		RefreshHz: refreshHz,
	}, nil
}

func (m VideoMode) String() string {
	if m.Text {
		return fmt.Sprintf("%dx%d text", m.Width, m.Height)
	}
	return fmt.Sprintf("%dx%dx%d@%d %s", m.Width, m.Height, m.BPP, m.RefreshHz, m.Format)
}
