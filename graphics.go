package ssd1680

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/flavioheleno/ssd1680/framebuffer"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/drivers"
)

// Palette is the color model of a panel with a red plane.
var Palette = color.Palette{
	color.White,
	color.Black,
	color.RGBA{R: 0xFF, A: 0xFF},
}

var paletteColors = [...]framebuffer.Color{framebuffer.White, framebuffer.Black, framebuffer.Red}

// GraphicDisplay draws into RAM planes in the visual orientation of the
// panel and flushes them through a Dev.
type GraphicDisplay struct {
	dev   *Dev
	black *framebuffer.Mono
	red   *framebuffer.Mono
	// last is the black plane as of the last flush, nil before the first one.
	last []byte
}

// NewGraphicDisplay wraps dev with caller owned planes of
// dev.Config().BufferSize() bytes. red must be nil unless the red plane is
// enabled.
func NewGraphicDisplay(dev *Dev, black, red []byte) (*GraphicDisplay, error) {
	if dev == nil {
		return nil, &Error{Kind: KindConfiguration, Op: "graphic display", Err: errors.New("dev is required")}
	}
	cfg := dev.Config()
	if cfg.RedPlane() != (red != nil) {
		return nil, &Error{Kind: KindConfiguration, Op: "graphic display", Err: fmt.Errorf("red plane enabled: %t, red buffer provided: %t", cfg.RedPlane(), red != nil)}
	}
	g := &GraphicDisplay{dev: dev}
	var err error
	if g.black, err = framebuffer.Wrap(black, cfg.Cols(), cfg.Rows(), cfg.Rotation()); err != nil {
		return nil, &Error{Kind: KindConfiguration, Op: "graphic display", Err: err}
	}
	if red != nil {
		if g.red, err = framebuffer.Wrap(red, cfg.Cols(), cfg.Rows(), cfg.Rotation()); err != nil {
			return nil, &Error{Kind: KindConfiguration, Op: "graphic display", Err: err}
		}
	}
	return g, nil
}

func (g *GraphicDisplay) String() string {
	return fmt.Sprintf("ssd1680.GraphicDisplay{%s}", g.dev)
}

// Dev returns the controller.
func (g *GraphicDisplay) Dev() *Dev {
	return g.dev
}

// Black returns the black/white plane.
func (g *GraphicDisplay) Black() *framebuffer.Mono {
	return g.black
}

// Red returns the red plane, nil if it is not enabled.
func (g *GraphicDisplay) Red() *framebuffer.Mono {
	return g.red
}

// Reset resets the controller and forgets the last flushed frame.
func (g *GraphicDisplay) Reset() error {
	g.last = nil
	return g.dev.Reset()
}

// State returns the lifecycle state of the controller.
func (g *GraphicDisplay) State() State {
	return g.dev.State()
}

// DeepSleep puts the controller to deep sleep.
func (g *GraphicDisplay) DeepSleep() error {
	return g.dev.DeepSleep()
}

// Halt implements conn.Resource. See Dev.Halt.
func (g *GraphicDisplay) Halt() error {
	return g.dev.Halt()
}

// Update flushes the planes with a full refresh.
func (g *GraphicDisplay) Update() error {
	var err error
	if g.red != nil {
		err = g.dev.UpdateColor(g.black.Pix, g.red.Pix)
	} else {
		err = g.dev.Update(g.black.Pix)
	}
	if err != nil {
		return err
	}
	g.snapshot()
	return nil
}

// PartialUpdate flushes the physical rectangle [x, x+w) × [y, y+h) of the
// black plane with a partial refresh. scratch receives the extracted bytes and
// must hold at least (w/8)·h bytes.
func (g *GraphicDisplay) PartialUpdate(x, y, w, h int, scratch []byte) error {
	if err := g.dev.checkReady("partial update"); err != nil {
		return err
	}
	n, err := g.black.Extract(scratch, x, y, w, h)
	if err != nil {
		return &Error{Kind: KindConfiguration, Op: "partial update", Err: err}
	}
	if err := g.dev.PartialUpdate(scratch[:n], x, y, w, h); err != nil {
		return err
	}
	if g.last != nil {
		stride := g.black.Width / 8
		for row := y; row < y+h; row++ {
			start := row*stride + x/8
			copy(g.last[start:start+w/8], g.black.Pix[start:start+w/8])
		}
	}
	return nil
}

// PartialRefresh flushes the part of the black plane changed since the last
// flush with a partial refresh. It does nothing when nothing changed, and
// runs a full Update when nothing was flushed yet.
func (g *GraphicDisplay) PartialRefresh(scratch []byte) error {
	if g.last == nil {
		return g.Update()
	}
	x, y, w, h, ok := g.black.DiffRect(g.last)
	if !ok {
		return nil
	}
	return g.PartialUpdate(x, y, w, h, scratch)
}

func (g *GraphicDisplay) snapshot() {
	if g.last == nil {
		g.last = make([]byte, len(g.black.Pix))
	}
	copy(g.last, g.black.Pix)
}

// Clear fills the planes. Red fills the red plane, any other color clears it.
func (g *GraphicDisplay) Clear(c framebuffer.Color) {
	g.black.Clear(c)
	if g.red != nil {
		if c == framebuffer.Red {
			g.red.Clear(framebuffer.Red)
		} else {
			g.red.Clear(framebuffer.Black)
		}
	}
}

// Plot sets the visual pixel (x, y). Without a red plane Red is drawn white.
func (g *GraphicDisplay) Plot(x, y int, c framebuffer.Color) {
	if g.red == nil {
		g.black.SetPixel(x, y, c)
		return
	}
	g.red.SetBit(x, y, c == framebuffer.Red)
	g.black.SetPixel(x, y, c)
}

// ColorModel implements display.Drawer. It is image1bit.BitModel, or Palette
// with a red plane.
func (g *GraphicDisplay) ColorModel() color.Model {
	if g.red != nil {
		return Palette
	}
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (g *GraphicDisplay) Bounds() image.Rectangle {
	return g.black.Bounds()
}

// At implements image.Image.
func (g *GraphicDisplay) At(x, y int) color.Color {
	if g.red == nil {
		return g.black.At(x, y)
	}
	if g.red.Bit(x, y) {
		return Palette[2]
	}
	if g.black.Bit(x, y) {
		return Palette[0]
	}
	return Palette[1]
}

// Set implements draw.Image.
func (g *GraphicDisplay) Set(x, y int, c color.Color) {
	if g.red == nil {
		g.black.Set(x, y, c)
		return
	}
	g.Plot(x, y, paletteColors[Palette.Index(c)])
}

// Draw implements display.Drawer. It renders src into the planes and runs a
// full refresh.
func (g *GraphicDisplay) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := g.dev.checkReady("draw"); err != nil {
		return err
	}
	draw.Draw(g, dst, src, sp, draw.Src)
	return g.Update()
}

// Size implements drivers.Displayer.
func (g *GraphicDisplay) Size() (x, y int16) {
	b := g.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel implements drivers.Displayer.
func (g *GraphicDisplay) SetPixel(x, y int16, c color.RGBA) {
	g.Set(int(x), int(y), c)
}

// Display implements drivers.Displayer.
func (g *GraphicDisplay) Display() error {
	return g.Update()
}

// Rotation returns the rotation the planes are drawn with.
func (g *GraphicDisplay) Rotation() drivers.Rotation {
	return drivers.Rotation(g.black.Rotation)
}

var _ display.Drawer = &GraphicDisplay{}
var _ drivers.Displayer = &GraphicDisplay{}
var _ draw.Image = &GraphicDisplay{}
