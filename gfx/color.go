package gfx

import "image/color"

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	FormatUnknown PixelFormat = iota
	// FormatIndexed8 is 8bpp palette/luminance.
	FormatIndexed8
	// FormatRGB555 is 16bpp: 0rrrrrgggggbbbbb.
	FormatRGB555
	// FormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	FormatRGB565
	// FormatRGB888 is 24bpp, red in the high byte.
	FormatRGB888
	// FormatBGR888 is 24bpp, blue in the high byte.
	FormatBGR888
	// FormatRGBA8888 is 32bpp, alpha in the high byte.
	FormatRGBA8888
	// FormatBGRA8888 is 32bpp, alpha in the high byte, blue before red.
	FormatBGRA8888
)

func (f PixelFormat) String() string {
	switch f {
	case FormatIndexed8:
		return "indexed8"
	case FormatRGB555:
		return "rgb555"
	case FormatRGB565:
		return "rgb565"
	case FormatRGB888:
		return "rgb888"
	case FormatBGR888:
		return "bgr888"
	case FormatRGBA8888:
		return "rgba8888"
	case FormatBGRA8888:
		return "bgra8888"
	}
	return "unknown"
}

// BitsPerPixel returns the storage size of one pixel in bits.
func (f PixelFormat) BitsPerPixel() int {
	switch f {
	case FormatIndexed8:
		return 8
	case FormatRGB555, FormatRGB565:
		return 16
	case FormatRGB888, FormatBGR888:
		return 24
	case FormatRGBA8888, FormatBGRA8888:
		return 32
	}
	return 0
}

// BytesPerPixel returns the storage size of one pixel in bytes.
func (f PixelFormat) BytesPerPixel() int { return f.BitsPerPixel() / 8 }

// FormatForBPP maps a requested color depth to the pixel format used for
// it throughout the stack. Unknown depths return FormatUnknown.
func FormatForBPP(bpp int) PixelFormat {
	switch bpp {
	case 8:
		return FormatIndexed8
	case 15:
		return FormatRGB555
	case 16:
		return FormatRGB565
	case 24:
		return FormatRGB888
	case 32:
		return FormatRGBA8888
	}
	return FormatUnknown
}

// Color is a device-independent 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// RGBA converts to the stdlib color type used by the font renderer.
func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// ColorToPixel packs a color into the given format. The conversion is
// lossy for anything narrower than 8 bits per channel: channels are
// truncated, never rounded, so every drawing path agrees on the result.
func ColorToPixel(c Color, f PixelFormat) uint32 {
	switch f {
	case FormatIndexed8:
		// Luminance index; a real palette lives in the driver.
		return (uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3
	case FormatRGB555:
		return uint32(c.R>>3)<<10 | uint32(c.G>>3)<<5 | uint32(c.B>>3)
	case FormatRGB565:
		return uint32(c.R>>3)<<11 | uint32(c.G>>2)<<5 | uint32(c.B>>3)
	case FormatRGB888:
		return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	case FormatBGR888:
		return uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
	case FormatRGBA8888:
		return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	case FormatBGRA8888:
		return uint32(c.A)<<24 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
	}
	return 0
}

// PixelToColor unpacks a pixel value. Narrow channels come back shifted
// up with zero low-order bits, so round-tripping through ColorToPixel is
// exact only for the 8-bit-per-channel formats.
func PixelToColor(p uint32, f PixelFormat) Color {
	switch f {
	case FormatIndexed8:
		v := uint8(p)
		return Color{R: v, G: v, B: v, A: 0xFF}
	case FormatRGB555:
		return Color{
			R: uint8(p>>10&0x1F) << 3,
			G: uint8(p>>5&0x1F) << 3,
			B: uint8(p&0x1F) << 3,
			A: 0xFF,
		}
	case FormatRGB565:
		return Color{
			R: uint8(p>>11&0x1F) << 3,
			G: uint8(p>>5&0x3F) << 2,
			B: uint8(p&0x1F) << 3,
			A: 0xFF,
		}
	case FormatRGB888:
		return Color{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 0xFF}
	case FormatBGR888:
		return Color{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16), A: 0xFF}
	case FormatRGBA8888:
		return Color{A: uint8(p >> 24), R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
	case FormatBGRA8888:
		return Color{A: uint8(p >> 24), B: uint8(p >> 16), G: uint8(p >> 8), R: uint8(p)}
	}
	return Color{}
}
