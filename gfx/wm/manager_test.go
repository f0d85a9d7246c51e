package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism/drivers/hostfb"
	"prism/gfx"
	"prism/gfx/display"
	"prism/gfx/driver"
	"prism/gfx/pci"
)

func newTestDisplay(t *testing.T) *display.Manager {
	t.Helper()
	bus := pci.NewSimBus(pci.SimDeviceConfig{
		Bus: 0, Slot: 2, Fn: 0,
		Vendor: pci.VendorBochs, Device: 0x1111,
		Class: 0x03,
		BAR0:  pci.SimRegionConfig{Base: 0xE0000000, Size: 16 * 1024 * 1024},
		BAR1:  pci.SimRegionConfig{Base: 0xF0000000, Size: 0x1000},
	})
	gm := display.New(display.Config{
		ConfigSpace: bus,
		Drivers:     []driver.Driver{hostfb.New("")},
	})
	require.NoError(t, gm.Init())
	require.NoError(t, gm.SetMode(640, 480, 32, 60))
	return gm
}

func newTestWM(t *testing.T) *Manager {
	t.Helper()
	return NewManager(newTestDisplay(t), nil)
}

func TestCreateAssignsSequentialZAndFocus(t *testing.T) {
	m := newTestWM(t)

	a, err := m.Create(10, 10, 100, 80, "a", 0)
	require.NoError(t, err)
	b, err := m.Create(20, 20, 100, 80, "b", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Get(a).Z)
	assert.Equal(t, 1, m.Get(b).Z)
	assert.Equal(t, b, m.Focused())
	assert.False(t, m.Get(a).Focused)
	assert.True(t, m.Get(b).Focused)
	assert.Equal(t, 2, m.Count())
}

func TestCreateRejectsZeroSize(t *testing.T) {
	m := newTestWM(t)
	_, err := m.Create(0, 0, 0, 80, "x", 0)
	assert.ErrorIs(t, err, gfx.ErrInvalidParameter)
	_, err = m.Create(0, 0, 100, -1, "x", 0)
	assert.ErrorIs(t, err, gfx.ErrInvalidParameter)
	assert.Equal(t, 0, m.Count())
}

func TestHandlesAreNeverReused(t *testing.T) {
	m := newTestWM(t)
	a, _ := m.Create(0, 0, 10, 10, "a", 0)
	b, _ := m.Create(0, 0, 10, 10, "b", 0)
	require.NoError(t, m.Destroy(b))
	c, _ := m.Create(0, 0, 10, 10, "c", 0)

	assert.Equal(t, Handle(1), a)
	assert.Equal(t, Handle(2), b)
	assert.Equal(t, Handle(3), c)
}

func TestFocusRaisesAndNotifies(t *testing.T) {
	m := newTestWM(t)
	a, _ := m.Create(0, 0, 10, 10, "a", 0)
	b, _ := m.Create(0, 0, 10, 10, "b", 0)

	var gained, lost []Handle
	m.Get(a).Callbacks.OnFocus = func(w *Window, f bool) {
		if f {
			gained = append(gained, w.Handle())
		} else {
			lost = append(lost, w.Handle())
		}
	}
	m.Get(b).Callbacks.OnFocus = func(w *Window, f bool) {
		if f {
			gained = append(gained, w.Handle())
		} else {
			lost = append(lost, w.Handle())
		}
	}

	require.NoError(t, m.Focus(a))
	assert.Equal(t, a, m.Focused())
	assert.Equal(t, []Handle{a}, gained)
	assert.Equal(t, []Handle{b}, lost)

	// Raising puts a strictly above b.
	assert.Greater(t, m.Get(a).Z, m.Get(b).Z)

	// Focusing the focused window again is a no-op for callbacks.
	require.NoError(t, m.Focus(a))
	assert.Equal(t, []Handle{a}, gained)

	assert.ErrorIs(t, m.Focus(Handle(99)), gfx.ErrInvalidParameter)
}

func TestBringToFrontKeepsTopmost(t *testing.T) {
	m := newTestWM(t)
	a, _ := m.Create(0, 0, 10, 10, "a", 0)
	b, _ := m.Create(0, 0, 10, 10, "b", 0)

	zb := m.Get(b).Z
	m.BringToFront(b)
	assert.Equal(t, zb, m.Get(b).Z)

	m.BringToFront(a)
	assert.Greater(t, m.Get(a).Z, m.Get(b).Z)
}

func TestDestroyCompactsZOrder(t *testing.T) {
	m := newTestWM(t)
	a, _ := m.Create(0, 0, 10, 10, "a", 0)
	b, _ := m.Create(0, 0, 10, 10, "b", 0)
	c, _ := m.Create(0, 0, 10, 10, "c", 0)

	require.NoError(t, m.Destroy(a))
	assert.Equal(t, 0, m.Get(b).Z)
	assert.Equal(t, 1, m.Get(c).Z)
}

func TestDestroyFocusedLeavesNoFocus(t *testing.T) {
	m := newTestWM(t)
	a, _ := m.Create(0, 0, 10, 10, "a", 0)
	b, _ := m.Create(0, 0, 10, 10, "b", 0)

	require.NoError(t, m.Destroy(b))
	assert.Equal(t, InvalidHandle, m.Focused())
	assert.Equal(t, 0, m.Get(a).Z)
	assert.False(t, m.Get(a).Focused)
}

func TestDestroyFiresOnClose(t *testing.T) {
	m := newTestWM(t)
	h, _ := m.Create(0, 0, 10, 10, "x", 0)

	closed := false
	m.Get(h).Callbacks.OnClose = func(w *Window) { closed = true }

	require.NoError(t, m.Destroy(h))
	assert.True(t, closed)
	assert.Nil(t, m.Get(h))

	assert.ErrorIs(t, m.Destroy(h), gfx.ErrInvalidParameter)
	_, err := m.Surface(h)
	assert.ErrorIs(t, err, gfx.ErrInvalidParameter)
}

func TestSetPositionClampsToDesktop(t *testing.T) {
	m := newTestWM(t)
	h, _ := m.Create(50, 50, 100, 80, "x", 0)

	var movedTo [2]int
	m.Get(h).Callbacks.OnMove = func(w *Window, x, y int) { movedTo = [2]int{x, y} }

	require.NoError(t, m.SetPosition(h, -10, -20))
	assert.Equal(t, 0, m.Get(h).X)
	assert.Equal(t, 0, m.Get(h).Y)
	assert.Equal(t, [2]int{0, 0}, movedTo)

	require.NoError(t, m.SetPosition(h, 700, 500))
	assert.Equal(t, 640-100, m.Get(h).X)
	assert.Equal(t, 480-80, m.Get(h).Y)
}

func TestSetSizeHonorsConstraints(t *testing.T) {
	m := newTestWM(t)
	h, _ := m.Create(0, 0, 100, 80, "x", 0)
	w := m.Get(h)
	w.MinW, w.MinH = 50, 40
	w.MaxW, w.MaxH = 200, 160

	resized := 0
	w.Callbacks.OnResize = func(_ *Window, _, _ int) { resized++ }

	require.NoError(t, m.SetSize(h, 10, 10))
	assert.Equal(t, 50, w.Width)
	assert.Equal(t, 40, w.Height)

	require.NoError(t, m.SetSize(h, 500, 500))
	assert.Equal(t, 200, w.Width)
	assert.Equal(t, 160, w.Height)
	assert.Equal(t, 2, resized)

	// Surface follows the new geometry.
	s, err := m.Surface(h)
	require.NoError(t, err)
	assert.Equal(t, 200, s.Width)
	assert.Equal(t, 160, s.Height)

	assert.ErrorIs(t, m.SetSize(h, 0, 10), gfx.ErrInvalidParameter)
}

func TestSetStateSavesAndRestoresGeometry(t *testing.T) {
	m := newTestWM(t)
	h, _ := m.Create(30, 40, 100, 80, "x", 0)
	w := m.Get(h)

	require.NoError(t, m.SetState(h, StateMaximized))
	assert.Equal(t, StateMaximized, w.State)
	assert.Equal(t, 0, w.X)
	assert.Equal(t, 0, w.Y)
	assert.Equal(t, 640, w.Width)
	assert.Equal(t, 480, w.Height)

	require.NoError(t, m.SetState(h, StateNormal))
	assert.Equal(t, StateNormal, w.State)
	assert.Equal(t, 30, w.X)
	assert.Equal(t, 40, w.Y)
	assert.Equal(t, 100, w.Width)
	assert.Equal(t, 80, w.Height)
}

func TestSetStateRejections(t *testing.T) {
	m := newTestWM(t)
	h, _ := m.Create(0, 0, 10, 10, "x", 0)

	assert.ErrorIs(t, m.SetState(h, StateClosed), gfx.ErrInvalidParameter)
	assert.ErrorIs(t, m.SetState(h, StateNormal), gfx.ErrInvalidParameter)
	assert.ErrorIs(t, m.SetState(Handle(99), StateMinimized), gfx.ErrInvalidParameter)

	require.NoError(t, m.SetState(h, StateMinimized))
	assert.Equal(t, StateMinimized, m.Get(h).State)
}

func TestFindAtReturnsTopmost(t *testing.T) {
	m := newTestWM(t)
	a, _ := m.Create(10, 10, 100, 100, "a", 0)
	b, _ := m.Create(50, 50, 100, 100, "b", 0)

	assert.Equal(t, b, m.FindAt(60, 60))
	assert.Equal(t, a, m.FindAt(20, 20))
	assert.Equal(t, InvalidHandle, m.FindAt(300, 300))

	// A minimized window no longer participates in hit testing.
	require.NoError(t, m.SetState(b, StateMinimized))
	assert.Equal(t, a, m.FindAt(60, 60))
	assert.Equal(t, InvalidHandle, m.FindAt(140, 140))
}
