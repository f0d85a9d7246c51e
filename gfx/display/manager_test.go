package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism/drivers/hostfb"
	"prism/drivers/vgatext"
	"prism/gfx"
	"prism/gfx/driver"
	"prism/gfx/pci"
)

// fakeDriver is a minimal configurable driver for exercising the
// selection chain and the console-mode path.
type fakeDriver struct {
	name    string
	caps    driver.Caps
	initErr error
	modes   []gfx.VideoMode

	cur     gfx.VideoMode
	curSet  bool
	scanout *gfx.Framebuffer
}

func (f *fakeDriver) Name() string      { return f.name }
func (f *fakeDriver) Version() string   { return "0.1" }
func (f *fakeDriver) Caps() driver.Caps { return f.caps }
func (f *fakeDriver) Init() error       { return f.initErr }
func (f *fakeDriver) Shutdown() error   { return nil }

func (f *fakeDriver) EnumerateModes() []gfx.VideoMode { return f.modes }

func (f *fakeDriver) SetMode(m gfx.VideoMode) error {
	f.cur = m
	f.curSet = true
	f.scanout = nil
	return nil
}

func (f *fakeDriver) CurrentMode() (gfx.VideoMode, error) {
	if !f.curSet {
		return gfx.VideoMode{}, gfx.ErrInvalidMode
	}
	return f.cur, nil
}

func (f *fakeDriver) MapFramebuffer() (*gfx.Framebuffer, error) {
	if !f.curSet {
		return nil, gfx.ErrInvalidMode
	}
	if f.scanout == nil {
		s, err := gfx.NewSurface(f.cur.Width, f.cur.Height, f.cur.Format)
		if err != nil {
			return nil, err
		}
		f.scanout = gfx.NewFramebuffer(s, 0xE0000000)
	}
	return f.scanout, nil
}

func (f *fakeDriver) UnmapFramebuffer() error {
	f.scanout = nil
	return nil
}

func bochsBus() *pci.SimBus {
	return pci.NewSimBus(pci.SimDeviceConfig{
		Bus: 0, Slot: 2, Fn: 0,
		Vendor: pci.VendorBochs, Device: 0x1111,
		Class: 0x03,
		BAR0:  pci.SimRegionConfig{Base: 0xE0000000, Size: 16 * 1024 * 1024},
		BAR1:  pci.SimRegionConfig{Base: 0xF0000000, Size: 0x1000},
	})
}

func newHostManager(t *testing.T) *Manager {
	t.Helper()
	m := New(Config{
		ConfigSpace: bochsBus(),
		Drivers:     []driver.Driver{hostfb.New(""), vgatext.New()},
	})
	require.NoError(t, m.Init())
	return m
}

func TestSetModeDerivesPitchAndFormat(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(800, 600, 16, 60))

	mode := m.Mode()
	assert.Equal(t, 800, mode.Width)
	assert.Equal(t, 600, mode.Height)
	assert.Equal(t, 1600, mode.Pitch)
	assert.Equal(t, gfx.FormatRGB565, mode.Format)
	assert.True(t, m.ModeValid())

	fb := m.Framebuffer()
	require.NotNil(t, fb)
	assert.Equal(t, 1600, fb.Pitch)
	assert.Len(t, fb.Pix, 1600*600)
}

func TestSetModeRejectsUnknownDepth(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(800, 600, 32, 60))
	before := m.Mode()

	err := m.SetMode(800, 600, 17, 60)
	require.ErrorIs(t, err, gfx.ErrInvalidMode)
	assert.Equal(t, before, m.Mode())
	assert.True(t, m.ModeValid())
}

func TestInitFallsBackWhenPreferredInitFails(t *testing.T) {
	broken := &fakeDriver{
		name:    "bochs_bga",
		caps:    driver.CapGraphicsMode,
		initErr: gfx.ErrHardwareFault,
	}
	m := New(Config{
		ConfigSpace: bochsBus(),
		Drivers:     []driver.Driver{broken, hostfb.New("")},
	})
	require.NoError(t, m.Init())
	assert.Equal(t, "vesa", m.Driver().Name())
	assert.Same(t, m.Driver(), m.PrimaryDevice().Driver)
}

func TestInitFallsBackToTextDriver(t *testing.T) {
	brokenBGA := &fakeDriver{
		name:    "bochs_bga",
		caps:    driver.CapGraphicsMode,
		initErr: gfx.ErrHardwareFault,
	}
	brokenVESA := &fakeDriver{
		name:    "vesa",
		caps:    driver.CapGraphicsMode,
		initErr: gfx.ErrHardwareFault,
	}
	m := New(Config{
		ConfigSpace: bochsBus(),
		Drivers:     []driver.Driver{brokenBGA, brokenVESA, vgatext.New()},
	})
	require.NoError(t, m.Init())
	assert.Equal(t, "vga_text", m.Driver().Name())

	mode := m.Mode()
	assert.True(t, mode.Text)
	assert.Equal(t, 80, mode.Width)
	assert.Equal(t, 25, mode.Height)
	assert.Nil(t, m.Framebuffer())
}

func TestInitFailsWithNoUsableDriver(t *testing.T) {
	m := New(Config{ConfigSpace: bochsBus()})
	assert.ErrorIs(t, m.Init(), gfx.ErrNotSupported)
}

func TestInitPicksLargestConsoleMode(t *testing.T) {
	// No native text support, so Init lands on a framebuffer console in
	// the biggest enumerated mode.
	m := New(Config{
		ConfigSpace: bochsBus(),
		Drivers:     []driver.Driver{hostfb.New("")},
	})
	require.NoError(t, m.Init())

	mode := m.Mode()
	assert.False(t, mode.Text)
	assert.Equal(t, 1920, mode.Width)
	assert.Equal(t, 1080, mode.Height)
	assert.Equal(t, 32, mode.BPP)
}

func TestPickConsoleModeScoring(t *testing.T) {
	mk := func(w, h, bpp int) gfx.VideoMode {
		m, err := gfx.NewVideoMode(w, h, bpp, 60)
		require.NoError(t, err)
		return m
	}

	// An undersized mode scores half, so the smaller-but-sufficient
	// candidate wins over the deeper undersized one.
	small := mk(640, 480, 32)
	fit := mk(800, 600, 16)
	got, ok := pickConsoleMode([]gfx.VideoMode{small, fit}, 800, 600)
	require.True(t, ok)
	assert.Equal(t, fit, got)

	// Text entries never qualify as a console surface.
	text := gfx.VideoMode{Width: 80, Height: 25, Text: true}
	_, ok = pickConsoleMode([]gfx.VideoMode{text}, 800, 600)
	assert.False(t, ok)

	_, ok = pickConsoleMode(nil, 800, 600)
	assert.False(t, ok)
}

func TestConsoleModeSynthesizedWhenNothingEnumerable(t *testing.T) {
	bare := &fakeDriver{name: "vesa", caps: driver.CapGraphicsMode}
	m := New(Config{
		ConfigSpace: bochsBus(),
		Drivers:     []driver.Driver{bare},
	})
	require.NoError(t, m.Init())

	mode := m.Mode()
	assert.Equal(t, consoleMinWidth, mode.Width)
	assert.Equal(t, consoleMinHeight, mode.Height)
	assert.Equal(t, 32, mode.BPP)
	assert.Equal(t, gfx.FormatRGBA8888, mode.Format)
}

func TestSwapBuffersRequiresDoubleBuffering(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))

	require.NoError(t, m.EnableDoubleBuffering(true))
	require.NoError(t, m.DrawPixel(3, 3, gfx.RGB(255, 0, 0)))
	require.NoError(t, m.EnableDoubleBuffering(false))

	// Disabled: the call fails and the dirty back buffer stays put.
	err := m.SwapBuffers()
	require.ErrorIs(t, err, gfx.ErrNotSupported)
	assert.Equal(t, uint32(0), m.Framebuffer().PixelAt(3, 3))
}

func TestDoubleBufferingRoutesDrawsToBackBuffer(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))
	require.NoError(t, m.EnableDoubleBuffering(true))
	assert.True(t, m.DoubleBuffered())

	red := gfx.RGB(255, 0, 0)
	require.NoError(t, m.DrawPixel(5, 7, red))

	fb := m.Framebuffer()
	want := gfx.ColorToPixel(red, fb.Format)
	assert.Equal(t, uint32(0), fb.PixelAt(5, 7))
	assert.Equal(t, want, fb.Back.PixelAt(5, 7))

	require.NoError(t, m.SwapBuffers())
	assert.Equal(t, want, fb.PixelAt(5, 7))
}

func TestEnableDoubleBufferingReusesBackBuffer(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))

	require.NoError(t, m.EnableDoubleBuffering(true))
	back := m.Framebuffer().Back
	require.NotNil(t, back)

	require.NoError(t, m.EnableDoubleBuffering(false))
	require.NoError(t, m.EnableDoubleBuffering(true))
	assert.Same(t, back, m.Framebuffer().Back)
}

func TestDrawPixelRejectsOutOfBounds(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))

	assert.ErrorIs(t, m.DrawPixel(-1, 0, gfx.RGB(1, 2, 3)), gfx.ErrInvalidParameter)
	assert.ErrorIs(t, m.DrawPixel(640, 0, gfx.RGB(1, 2, 3)), gfx.ErrInvalidParameter)
	assert.ErrorIs(t, m.DrawPixel(0, 480, gfx.RGB(1, 2, 3)), gfx.ErrInvalidParameter)
}

func TestDrawRectSoftwarePaths(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))
	fb := m.Framebuffer()

	red := gfx.RGB(255, 0, 0)
	want := gfx.ColorToPixel(red, fb.Format)

	require.NoError(t, m.DrawRect(10, 10, 4, 4, red, true))
	assert.Equal(t, want, fb.PixelAt(10, 10))
	assert.Equal(t, want, fb.PixelAt(13, 13))
	assert.Equal(t, uint32(0), fb.PixelAt(14, 14))

	blue := gfx.RGB(0, 0, 255)
	wantBlue := gfx.ColorToPixel(blue, fb.Format)
	require.NoError(t, m.DrawRect(100, 100, 10, 10, blue, false))
	assert.Equal(t, wantBlue, fb.PixelAt(100, 100))
	assert.Equal(t, wantBlue, fb.PixelAt(109, 109))
	assert.Equal(t, uint32(0), fb.PixelAt(105, 105))

	assert.ErrorIs(t, m.DrawRect(0, 0, 0, 4, red, true), gfx.ErrInvalidParameter)
}

func TestDrawLineEndpoints(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))
	fb := m.Framebuffer()

	c := gfx.RGB(0, 255, 0)
	want := gfx.ColorToPixel(c, fb.Format)
	require.NoError(t, m.DrawLine(20, 20, 30, 25, c))
	assert.Equal(t, want, fb.PixelAt(20, 20))
	assert.Equal(t, want, fb.PixelAt(30, 25))
}

func TestWriteStringOnFramebufferConsole(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))
	fb := m.Framebuffer()

	bg := gfx.RGB(0, 0, 128)
	require.NoError(t, m.WriteString(2, 1, "ok", gfx.RGB(255, 255, 255), bg))

	// The cell background is filled before the glyphs land, so the cell
	// origin carries the background color.
	cw, ch := gfx.SystemFontWidth(), gfx.SystemFontHeight
	assert.Equal(t, gfx.ColorToPixel(bg, fb.Format), fb.PixelAt(2*cw, 1*ch))

	assert.ErrorIs(t, m.WriteString(-1, 0, "x", bg, bg), gfx.ErrInvalidParameter)
}

func TestHardwarePassthroughsWithoutCapability(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))

	assert.ErrorIs(t, m.WaitForVSync(), gfx.ErrNotSupported)
	assert.ErrorIs(t, m.MoveCursor(1, 1), gfx.ErrNotSupported)
	assert.ErrorIs(t, m.ShowCursor(true), gfx.ErrNotSupported)
	assert.ErrorIs(t, m.SetPowerState(false), gfx.ErrNotSupported)
	assert.ErrorIs(t, m.ResetDevice(), gfx.ErrNotSupported)

	_, err := m.ReadEDID()
	assert.ErrorIs(t, err, gfx.ErrNotSupported)

	assert.ErrorIs(t, m.SetCursor(nil, 0, 0), gfx.ErrInvalidParameter)
	cur, err := gfx.NewSurface(16, 16, gfx.FormatRGBA8888)
	require.NoError(t, err)
	assert.ErrorIs(t, m.SetCursor(cur, 0, 0), gfx.ErrNotSupported)
}

func TestShutdownClearsState(t *testing.T) {
	m := newHostManager(t)
	require.NoError(t, m.SetMode(640, 480, 32, 60))

	m.Shutdown()
	assert.Nil(t, m.Driver())
	assert.Nil(t, m.Framebuffer())
	assert.False(t, m.ModeValid())
	assert.False(t, m.DoubleBuffered())
}
