package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Color is a pixel value of a plane.
type Color uint8

const (
	Black Color = iota
	White
	// Red is not black on a black/white plane. On a red plane it sets the bit.
	Red
)

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Red:
		return "Red"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Rotation is the clockwise rotation applied between the visual coordinates
// and the controller RAM.
type Rotation uint8

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the four rotations.
func (r Rotation) Valid() bool {
	return r <= Rotate270
}

// Bounds returns the visual rectangle of a plane of width×height physical
// pixels: width and height are swapped for Rotate90 and Rotate270.
func (r Rotation) Bounds(width, height int) image.Rectangle {
	if r == Rotate90 || r == Rotate270 {
		return image.Rect(0, 0, height, width)
	}
	return image.Rect(0, 0, width, height)
}

// BufferSize returns the number of bytes of a plane of width×height pixels.
func BufferSize(width, height int) int {
	return (width*height + 7) / 8
}

// Mono is a 1 bit per pixel plane in the controller RAM layout.
//
// Width and height are the physical dimensions: width is the number of source
// lines (columns) and height the number of gate lines (rows).
type Mono struct {
	Pix      []byte
	Width    int
	Height   int
	Rotation Rotation
}

// New allocates a white plane.
//
// It panics if width is not a multiple of 8 or the rotation is unknown.
func New(width, height int, r Rotation) *Mono {
	if err := check(width, height, r); err != nil {
		panic(err)
	}
	m := &Mono{
		Pix:      make([]byte, BufferSize(width, height)),
		Width:    width,
		Height:   height,
		Rotation: r,
	}
	m.Clear(White)
	return m
}

// Wrap returns a plane backed by pix. pix is not copied nor cleared.
func Wrap(pix []byte, width, height int, r Rotation) (*Mono, error) {
	if err := check(width, height, r); err != nil {
		return nil, err
	}
	if want := BufferSize(width, height); len(pix) != want {
		return nil, fmt.Errorf("framebuffer: buffer is %d bytes, want %d", len(pix), want)
	}
	return &Mono{Pix: pix, Width: width, Height: height, Rotation: r}, nil
}

func check(width, height int, r Rotation) error {
	if width <= 0 || height <= 0 {
		return errors.New("framebuffer: dimensions must be positive")
	}
	if width%8 != 0 {
		return errors.New("framebuffer: width must be a multiple of 8")
	}
	if !r.Valid() {
		return fmt.Errorf("framebuffer: invalid rotation %d", r)
	}
	return nil
}

func (m *Mono) stride() int {
	return m.Width / 8
}

// PixOffset returns the byte index and bit mask of the visual pixel (x, y).
//
// The coordinates are not checked.
func (m *Mono) PixOffset(x, y int) (int, byte) {
	stride := m.stride()
	switch m.Rotation {
	case Rotate90:
		return (m.Width-1-y)/8 + stride*x, 0x01 << (y % 8)
	case Rotate180:
		return stride*m.Height - 1 - (x/8 + stride*y), 0x01 << (x % 8)
	case Rotate270:
		return y/8 + (m.Height-1-x)*stride, 0x80 >> (y % 8)
	default:
		return x/8 + stride*y, 0x80 >> (x % 8)
	}
}

// SetBit sets or clears the bit of the visual pixel (x, y). Out of bounds
// pixels are ignored.
func (m *Mono) SetBit(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return
	}
	i, mask := m.PixOffset(x, y)
	if on {
		m.Pix[i] |= mask
	} else {
		m.Pix[i] &^= mask
	}
}

// Bit returns the bit of the visual pixel (x, y), false when out of bounds.
func (m *Mono) Bit(x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return false
	}
	i, mask := m.PixOffset(x, y)
	return m.Pix[i]&mask != 0
}

// SetPixel draws c on a black/white plane: Black clears the bit, anything
// else sets it.
func (m *Mono) SetPixel(x, y int, c Color) {
	m.SetBit(x, y, c != Black)
}

// Clear fills the plane: 0xFF for White, 0x00 for Black. Red fills with
// 0xFF, as it is not black.
func (m *Mono) Clear(c Color) {
	v := byte(0xFF)
	if c == Black {
		v = 0x00
	}
	for i := range m.Pix {
		m.Pix[i] = v
	}
}

// Extract copies the bytes of the physical rectangle [x, x+w) × [y, y+h) row
// by row into dst and returns the number of bytes written, (w/8)·h.
//
// x and w must be multiples of 8.
func (m *Mono) Extract(dst []byte, x, y, w, h int) (int, error) {
	if err := m.checkRect(x, y, w, h); err != nil {
		return 0, err
	}
	rowBytes := w / 8
	n := rowBytes * h
	if len(dst) < n {
		return 0, fmt.Errorf("framebuffer: destination is %d bytes, need %d", len(dst), n)
	}
	stride := m.stride()
	for row := 0; row < h; row++ {
		start := (y+row)*stride + x/8
		copy(dst[row*rowBytes:(row+1)*rowBytes], m.Pix[start:start+rowBytes])
	}
	return n, nil
}

func (m *Mono) checkRect(x, y, w, h int) error {
	switch {
	case x%8 != 0 || w%8 != 0:
		return errors.New("framebuffer: x and width must be multiples of 8")
	case w <= 0 || h <= 0:
		return errors.New("framebuffer: empty rectangle")
	case x < 0 || y < 0 || x+w > m.Width || y+h > m.Height:
		return fmt.Errorf("framebuffer: rectangle %dx%d at (%d,%d) exceeds %dx%d", w, h, x, y, m.Width, m.Height)
	}
	return nil
}

// DiffRect returns the smallest byte aligned physical rectangle holding every
// byte that differs between the plane and prev. ok is false when nothing
// changed.
//
// A prev of the wrong size is treated as entirely different.
func (m *Mono) DiffRect(prev []byte) (x, y, w, h int, ok bool) {
	if len(prev) != len(m.Pix) {
		return 0, 0, m.Width, m.Height, true
	}
	stride := m.stride()
	minCol, maxCol := stride, -1
	minRow, maxRow := m.Height, -1
	for row := 0; row < m.Height; row++ {
		for col := 0; col < stride; col++ {
			i := row*stride + col
			if m.Pix[i] == prev[i] {
				continue
			}
			minCol = min(minCol, col)
			maxCol = max(maxCol, col)
			minRow = min(minRow, row)
			maxRow = max(maxRow, row)
		}
	}
	if maxCol < 0 {
		return 0, 0, 0, 0, false
	}
	return minCol * 8, minRow, (maxCol - minCol + 1) * 8, maxRow - minRow + 1, true
}

// ColorModel implements image.Image.
func (m *Mono) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image. It is the visual size, see Rotation.Bounds.
func (m *Mono) Bounds() image.Rectangle {
	return m.Rotation.Bounds(m.Width, m.Height)
}

// At implements image.Image.
func (m *Mono) At(x, y int) color.Color {
	return image1bit.Bit(m.Bit(x, y))
}

// Set implements draw.Image.
func (m *Mono) Set(x, y int, c color.Color) {
	m.SetBit(x, y, bool(image1bit.BitModel.Convert(c).(image1bit.Bit)))
}
