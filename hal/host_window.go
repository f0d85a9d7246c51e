package hal

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"prism/gfx"
	"prism/internal/buildinfo"
)

// App is what the host window runs: a per-tick step function plus a way
// to reach the current scanout (which changes when the mode does).
type App struct {
	// Step advances the system one tick. A non-nil error closes the
	// window.
	Step func(kbd Keyboard) error
	// Scanout returns the framebuffer to present, or nil for black.
	Scanout func() *gfx.Framebuffer
	// Title is the window title; buildinfo is appended.
	Title string
}

// RunWindow opens a desktop window that displays the framebuffer and
// forwards keyboard input. It blocks until the window closes.
func RunWindow(app App) error {
	kbd := newHostKeyboard()
	g := &hostGame{app: app, kbd: kbd}
	ebiten.SetWindowTitle(app.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(960, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	app App
	kbd *hostKeyboard

	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	if g.app.Step != nil {
		if err := g.app.Step(g.kbd); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.app.Scanout()
	if fb == nil {
		screen.Fill(color.Black)
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width, fb.Height)
	}

	convertToRGBA(&fb.Surface, g.img.Pix)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if fb := g.app.Scanout(); fb != nil {
		return fb.Width, fb.Height
	}
	return outsideWidth, outsideHeight
}

// convertToRGBA expands the scanout into 8-bit RGBA through the shared
// pixel conversion, whatever the mode's format.
func convertToRGBA(s *gfx.Surface, dst []byte) {
	i := 0
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := gfx.PixelToColor(s.PixelAt(x, y), s.Format)
			dst[i+0] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = 0xFF
			i += 4
		}
	}
}
