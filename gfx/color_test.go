package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForBPP(t *testing.T) {
	tests := []struct {
		bpp  int
		want PixelFormat
	}{
		{8, FormatIndexed8},
		{15, FormatRGB555},
		{16, FormatRGB565},
		{24, FormatRGB888},
		{32, FormatRGBA8888},
		{17, FormatUnknown},
		{0, FormatUnknown},
		{64, FormatUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatForBPP(tt.bpp), "bpp %d", tt.bpp)
	}
}

func TestRGBA8888RoundTripExact(t *testing.T) {
	for _, c := range []Color{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{1, 2, 3, 4},
		{0x12, 0x34, 0x56, 0x78},
		{200, 100, 50, 25},
	} {
		got := PixelToColor(ColorToPixel(c, FormatRGBA8888), FormatRGBA8888)
		require.Equal(t, c, got)
	}
}

func TestBGRA8888RoundTripExact(t *testing.T) {
	c := Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}
	got := PixelToColor(ColorToPixel(c, FormatBGRA8888), FormatBGRA8888)
	require.Equal(t, c, got)
}

func TestRGB565RoundTripTruncates(t *testing.T) {
	for r := 0; r < 256; r += 7 {
		for g := 0; g < 256; g += 11 {
			for b := 0; b < 256; b += 13 {
				c := Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}
				got := PixelToColor(ColorToPixel(c, FormatRGB565), FormatRGB565)
				want := Color{
					R: c.R & 0xF8,
					G: c.G & 0xFC,
					B: c.B & 0xF8,
					A: 0xFF,
				}
				require.Equal(t, want, got, "input %+v", c)
			}
		}
	}
}

func TestRGB555RoundTripTruncates(t *testing.T) {
	c := Color{R: 0xFF, G: 0x81, B: 0x07, A: 0xFF}
	got := PixelToColor(ColorToPixel(c, FormatRGB555), FormatRGB555)
	assert.Equal(t, Color{R: 0xF8, G: 0x80, B: 0x00, A: 0xFF}, got)
}

func TestColorToPixelPacking(t *testing.T) {
	c := Color{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	assert.Equal(t, uint32(0xF800), ColorToPixel(c, FormatRGB565))
	assert.Equal(t, uint32(0x7C00), ColorToPixel(c, FormatRGB555))
	assert.Equal(t, uint32(0xFF0000), ColorToPixel(c, FormatRGB888))
	assert.Equal(t, uint32(0x0000FF), ColorToPixel(c, FormatBGR888))
	assert.Equal(t, uint32(0xFFFF0000), ColorToPixel(c, FormatRGBA8888))
	assert.Equal(t, uint32(0xFF0000FF), ColorToPixel(c, FormatBGRA8888))
}

func TestPixelFormatSizes(t *testing.T) {
	assert.Equal(t, 1, FormatIndexed8.BytesPerPixel())
	assert.Equal(t, 2, FormatRGB555.BytesPerPixel())
	assert.Equal(t, 2, FormatRGB565.BytesPerPixel())
	assert.Equal(t, 3, FormatRGB888.BytesPerPixel())
	assert.Equal(t, 4, FormatRGBA8888.BytesPerPixel())
	assert.Equal(t, 0, FormatUnknown.BytesPerPixel())
}
