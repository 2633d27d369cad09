package ssd1680

import (
	"errors"
	"fmt"

	"github.com/flavioheleno/ssd1680/framebuffer"
)

// Controller limits.
const (
	MaxRows = 296
	MaxCols = 176
)

// Opts is the panel configuration.
type Opts struct {
	// Rows is the number of gate lines, at most MaxRows.
	Rows int
	// Cols is the number of source lines, at most MaxCols and a multiple of 8.
	Cols int
	// Rotation is the orientation used by GraphicDisplay.
	Rotation framebuffer.Rotation
	// FastInit loads the fast refresh waveform on Reset.
	FastInit bool
	// RedPlane enables the red RAM plane of tri-color panels.
	RedPlane bool
}

// DefaultOpts is used when nil is passed. It matches the common 2.9" 128x296
// panel.
var DefaultOpts = Opts{
	Rows: 296,
	Cols: 128,
}

// Config is a validated Opts. The zero value is not usable.
type Config struct {
	rows     int
	cols     int
	rotation framebuffer.Rotation
	fastInit bool
	redPlane bool
}

// NewConfig validates opts. A nil opts selects DefaultOpts.
func NewConfig(opts *Opts) (Config, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Rows <= 0 || opts.Rows > MaxRows {
		return Config{}, &Error{Kind: KindConfiguration, Op: "config", Err: fmt.Errorf("rows must be between 1 and %d, got %d", MaxRows, opts.Rows)}
	}
	if opts.Cols <= 0 || opts.Cols > MaxCols {
		return Config{}, &Error{Kind: KindConfiguration, Op: "config", Err: fmt.Errorf("cols must be between 1 and %d, got %d", MaxCols, opts.Cols)}
	}
	if opts.Cols%8 != 0 {
		return Config{}, &Error{Kind: KindConfiguration, Op: "config", Err: fmt.Errorf("cols must be a multiple of 8, got %d", opts.Cols)}
	}
	if !opts.Rotation.Valid() {
		return Config{}, &Error{Kind: KindConfiguration, Op: "config", Err: errors.New("invalid rotation")}
	}
	return Config{
		rows:     opts.Rows,
		cols:     opts.Cols,
		rotation: opts.Rotation,
		fastInit: opts.FastInit,
		redPlane: opts.RedPlane,
	}, nil
}

// Rows returns the number of gate lines.
func (c Config) Rows() int { return c.rows }

// Cols returns the number of source lines.
func (c Config) Cols() int { return c.cols }

// Rotation returns the orientation used by GraphicDisplay.
func (c Config) Rotation() framebuffer.Rotation { return c.rotation }

// FastInit reports whether Reset loads the fast refresh waveform.
func (c Config) FastInit() bool { return c.fastInit }

// RedPlane reports whether the red RAM plane is enabled.
func (c Config) RedPlane() bool { return c.redPlane }

// BufferSize is the size in bytes of one RAM plane.
func (c Config) BufferSize() int {
	return framebuffer.BufferSize(c.cols, c.rows)
}

func (c Config) valid() bool {
	return c.rows > 0 && c.cols > 0
}
