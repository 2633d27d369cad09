package ssd1680

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/flavioheleno/ssd1680/command"
	"github.com/flavioheleno/ssd1680/framebuffer"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func newGraphic(t *testing.T, opts *Opts) (*GraphicDisplay, *fixture) {
	t.Helper()
	d, f := readyDev(t, opts)
	n := d.Config().BufferSize()
	var red []byte
	if opts.RedPlane {
		red = make([]byte, n)
	}
	g, err := NewGraphicDisplay(d, make([]byte, n), red)
	if err != nil {
		t.Fatal(err)
	}
	g.Clear(framebuffer.White)
	return g, f
}

func TestNewGraphicDisplayValidation(t *testing.T) {
	d, _ := newDev(t, &Opts{Rows: 8, Cols: 16})
	dr, _ := newDev(t, &Opts{Rows: 8, Cols: 16, RedPlane: true})
	tests := []struct {
		name    string
		dev     *Dev
		black   []byte
		red     []byte
		wantErr bool
	}{
		{"black only", d, make([]byte, 16), nil, false},
		{"black and red", dr, make([]byte, 16), make([]byte, 16), false},
		{"nil dev", nil, make([]byte, 16), nil, true},
		{"short black", d, make([]byte, 15), nil, true},
		{"unexpected red", d, make([]byte, 16), make([]byte, 16), true},
		{"missing red", dr, make([]byte, 16), nil, true},
		{"short red", dr, make([]byte, 16), make([]byte, 8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraphicDisplay(tt.dev, tt.black, tt.red)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGraphicDisplay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && KindOf(err) != KindConfiguration {
				t.Errorf("KindOf() = %v, want configuration", KindOf(err))
			}
		})
	}
}

func TestGraphicDisplayUpdate(t *testing.T) {
	g, f := newGraphic(t, &Opts{Rows: 2, Cols: 16})
	g.Plot(0, 0, framebuffer.Black)
	g.Plot(15, 1, framebuffer.Black)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	want := expect(
		command.StartEndXPosition{Start: 0, End: 1},
		command.StartEndYPosition{Start: 0, End: 1},
		command.XAddress{Address: 0},
		command.YAddress{Address: 0},
		command.WriteBlackData{0x7F, 0xFF, 0xFF, 0xFE},
		command.UpdateDisplayOption2{Sequence: command.LoadTempDisplayMode1},
		command.UpdateDisplay{},
	)
	checkFrames(t, f.w.frames(), want)
}

func TestGraphicDisplayRedPlane(t *testing.T) {
	g, f := newGraphic(t, &Opts{Rows: 1, Cols: 8, RedPlane: true})
	g.Plot(0, 0, framebuffer.Red)
	g.Plot(1, 0, framebuffer.Black)
	g.Plot(2, 0, framebuffer.Red)
	g.Plot(2, 0, framebuffer.White)

	if !bytes.Equal(g.Black().Pix, []byte{0xBF}) {
		t.Errorf("black plane = %#x, want 0xbf", g.Black().Pix)
	}
	if !bytes.Equal(g.Red().Pix, []byte{0x80}) {
		t.Errorf("red plane = %#x, want 0x80", g.Red().Pix)
	}
	if g.At(0, 0) != Palette[2] || g.At(1, 0) != Palette[1] || g.At(2, 0) != Palette[0] {
		t.Errorf("At() = %v %v %v", g.At(0, 0), g.At(1, 0), g.At(2, 0))
	}

	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	want := expect(
		command.StartEndXPosition{Start: 0, End: 0},
		command.StartEndYPosition{Start: 0, End: 0},
		command.XAddress{Address: 0},
		command.YAddress{Address: 0},
		command.WriteBlackData{0xBF},
		command.XAddress{Address: 0},
		command.YAddress{Address: 0},
		command.WriteRedData{0x80},
		command.UpdateDisplayOption2{Sequence: command.LoadTempDisplayMode1},
		command.UpdateDisplay{},
	)
	checkFrames(t, f.w.frames(), want)

	g.Clear(framebuffer.Red)
	if !bytes.Equal(g.Red().Pix, []byte{0xFF}) || !bytes.Equal(g.Black().Pix, []byte{0xFF}) {
		t.Errorf("Clear(Red) = %#x %#x", g.Black().Pix, g.Red().Pix)
	}
	g.Clear(framebuffer.Black)
	if !bytes.Equal(g.Red().Pix, []byte{0x00}) || !bytes.Equal(g.Black().Pix, []byte{0x00}) {
		t.Errorf("Clear(Black) = %#x %#x", g.Black().Pix, g.Red().Pix)
	}
}

func TestGraphicDisplaySetPalette(t *testing.T) {
	g, _ := newGraphic(t, &Opts{Rows: 1, Cols: 8, RedPlane: true})
	if g.ColorModel() == nil {
		t.Fatal("ColorModel() = nil")
	}
	g.Set(0, 0, color.RGBA{R: 0xE0, G: 0x10, B: 0x10, A: 0xFF})
	g.Set(1, 0, color.Gray{Y: 0x10})
	g.Set(2, 0, color.Gray{Y: 0xF0})
	if g.Red().Pix[0] != 0x80 || g.Black().Pix[0] != 0xBF {
		t.Errorf("planes = %#x %#x, want 0x80 0xbf", g.Black().Pix, g.Red().Pix)
	}
}

func TestGraphicDisplayPartialRefresh(t *testing.T) {
	g, f := newGraphic(t, &Opts{Rows: 8, Cols: 32})
	scratch := make([]byte, g.Dev().Config().BufferSize())

	if err := g.PartialRefresh(scratch); err != nil {
		t.Fatal(err)
	}
	if len(f.rst.levels) != 0 {
		t.Error("first PartialRefresh() should run a full update")
	}

	f.w.Ops = nil
	f.w.levels = nil
	g.Plot(9, 2, framebuffer.Black)
	g.Plot(17, 3, framebuffer.Black)
	if err := g.PartialRefresh(scratch); err != nil {
		t.Fatal(err)
	}
	want := expect(
		command.BorderWaveform{Value: 0x80},
		command.StartEndXPosition{Start: 1, End: 2},
		command.StartEndYPosition{Start: 2, End: 3},
		command.XAddress{Address: 1},
		command.YAddress{Address: 2},
		command.WriteBlackData{0xBF, 0xFF, 0xFF, 0xBF},
		command.UpdateDisplayOption2{Sequence: command.LoadTempDisplayMode2},
		command.UpdateDisplay{},
	)
	checkFrames(t, f.w.frames(), want)

	f.w.Ops = nil
	f.w.levels = nil
	if err := g.PartialRefresh(scratch); err != nil {
		t.Fatal(err)
	}
	if len(f.w.Ops) != 0 {
		t.Errorf("PartialRefresh() without changes sent %d transfers", len(f.w.Ops))
	}
}

func TestGraphicDisplayPartialUpdateInvalid(t *testing.T) {
	g, f := newGraphic(t, &Opts{Rows: 8, Cols: 32})
	if err := g.PartialUpdate(0, 0, 16, 4, make([]byte, 4)); KindOf(err) != KindConfiguration {
		t.Errorf("PartialUpdate() short scratch error = %v, want configuration", err)
	}
	if err := g.PartialUpdate(4, 0, 8, 1, make([]byte, 8)); KindOf(err) != KindConfiguration {
		t.Errorf("PartialUpdate() unaligned error = %v, want configuration", err)
	}
	if len(f.w.Ops) != 0 {
		t.Errorf("invalid PartialUpdate() sent %d transfers", len(f.w.Ops))
	}
}

func TestGraphicDisplayDraw(t *testing.T) {
	g, f := newGraphic(t, &Opts{Rows: 8, Cols: 16, Rotation: framebuffer.Rotate90})
	if b := g.Bounds(); b != image.Rect(0, 0, 8, 16) {
		t.Errorf("Bounds() = %v", b)
	}
	if g.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
	src := &image.Uniform{C: color.Black}
	if err := g.Draw(image.Rect(0, 0, 1, 16), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	// Visual column 0 is the first physical row.
	want := []byte{0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(g.Black().Pix, want) {
		t.Errorf("black plane = %#x, want %#x", g.Black().Pix, want)
	}
	if len(f.w.Ops) == 0 {
		t.Error("Draw() did not update the panel")
	}
}

func TestGraphicDisplayDrawRejectedInSleep(t *testing.T) {
	g, f := newGraphic(t, &Opts{Rows: 8, Cols: 16})
	if err := g.DeepSleep(); err != nil {
		t.Fatal(err)
	}
	f.w.Ops = nil
	err := g.Draw(g.Bounds(), &image.Uniform{C: color.Black}, image.Point{})
	if KindOf(err) != KindState {
		t.Errorf("Draw() in deep sleep error = %v, want state", err)
	}
	if !bytes.Equal(g.Black().Pix, bytes.Repeat([]byte{0xFF}, 16)) {
		t.Error("Draw() in deep sleep modified the plane")
	}
	if len(f.w.Ops) != 0 {
		t.Errorf("Draw() in deep sleep sent %d transfers", len(f.w.Ops))
	}
}

func TestGraphicDisplayDisplayer(t *testing.T) {
	g, f := newGraphic(t, &Opts{Rows: 16, Cols: 8, Rotation: framebuffer.Rotate270})
	if x, y := g.Size(); x != 16 || y != 8 {
		t.Errorf("Size() = %d, %d, want 16, 8", x, y)
	}
	if g.Rotation() != 3 {
		t.Errorf("Rotation() = %d, want 3", g.Rotation())
	}
	g.SetPixel(15, 0, color.RGBA{A: 0xFF})
	// Visual (15, 0) is physical row 0, column 0 at 270°.
	if g.Black().Pix[0] != 0x7F {
		t.Errorf("Pix[0] = %#x, want 0x7f", g.Black().Pix[0])
	}
	if err := g.Display(); err != nil {
		t.Fatal(err)
	}
	if len(f.w.Ops) == 0 {
		t.Error("Display() did not update the panel")
	}
}

func TestGraphicDisplayForwarding(t *testing.T) {
	g, _ := newGraphic(t, &Opts{Rows: 8, Cols: 16})
	if g.State() != Ready {
		t.Errorf("State() = %v, want Ready", g.State())
	}
	if got, want := g.String(), "ssd1680.GraphicDisplay{ssd1680.Dev{16x8}}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if err := g.Halt(); err != nil {
		t.Fatal(err)
	}
	if g.State() != Sleeping {
		t.Errorf("State() after Halt = %v, want Sleeping", g.State())
	}
	if err := g.Reset(); err != nil {
		t.Fatal(err)
	}
	if g.State() != Ready {
		t.Errorf("State() after Reset = %v, want Ready", g.State())
	}
}
