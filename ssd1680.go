package ssd1680

import (
	"errors"
	"fmt"
	"image"

	"github.com/flavioheleno/ssd1680/command"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// State is the lifecycle state of the controller.
type State int

const (
	// Uninitialized is the state before the first Reset and after any
	// failure.
	Uninitialized State = iota
	// Ready accepts updates.
	Ready
	// Busy is only observed while an update is in progress.
	Busy
	// Sleeping is deep sleep. Only Reset leaves it.
	Sleeping
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Busy:
		return "Busy"
	case Sleeping:
		return "Sleeping"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	borderFull   = 0x05
	borderLocked = 0x80
	fastInitTemp = 0x0064
)

// Dev is a handle to an SSD1680 controller.
type Dev struct {
	t     Transport
	cfg   Config
	state State
}

// NewSPI returns a Dev over an SPI port. The panel is not touched: call Reset
// before anything else.
//
// dc is the data/command select line, rst the reset line and busy the BUSY
// output of the controller.
func NewSPI(p spi.Port, dc, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	cfg, err := NewConfig(opts)
	if err != nil {
		return nil, err
	}
	if dc == nil || rst == nil || busy == nil || dc == gpio.INVALID || rst == gpio.INVALID || busy == gpio.INVALID {
		return nil, &Error{Kind: KindConfiguration, Op: "new", Err: errors.New("dc, rst and busy pins are required")}
	}
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "new", Err: err}
	}
	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, &Error{Kind: KindPin, Op: "new", Err: fmt.Errorf("failed to configure BUSY: %w", err)}
	}
	return New(NewSPITransport(c, dc, rst, busy), cfg)
}

// New returns a Dev over t.
func New(t Transport, cfg Config) (*Dev, error) {
	if t == nil {
		return nil, &Error{Kind: KindConfiguration, Op: "new", Err: errors.New("transport is required")}
	}
	if !cfg.valid() {
		return nil, &Error{Kind: KindConfiguration, Op: "new", Err: errors.New("config must be created with NewConfig")}
	}
	return &Dev{t: t, cfg: cfg}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1680.Dev{%dx%d}", d.cfg.cols, d.cfg.rows)
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	return d.state
}

// Config returns the configuration the Dev was created with.
func (d *Dev) Config() Config {
	return d.cfg
}

// Bounds returns the visual size of the panel for the configured rotation.
func (d *Dev) Bounds() image.Rectangle {
	return d.cfg.rotation.Bounds(d.cfg.cols, d.cfg.rows)
}

// Halt puts a Ready panel to deep sleep. It does nothing in any other state.
func (d *Dev) Halt() error {
	if d.state != Ready {
		return nil
	}
	return d.DeepSleep()
}

func (d *Dev) checkReady(op string) error {
	var err error
	switch d.state {
	case Ready:
		return nil
	case Sleeping:
		err = ErrSleeping
	case Busy:
		err = ErrBusy
	default:
		err = ErrNotReady
	}
	return &Error{Kind: KindState, Op: op, Err: err}
}

// run executes fn and sets the state to next on success or Uninitialized on
// failure.
func (d *Dev) run(op string, next State, fn func(s *sequencer)) error {
	s := sequencer{t: d.t}
	fn(&s)
	if s.err != nil {
		d.state = Uninitialized
		return wrap(KindTransport, op, s.err)
	}
	d.state = next
	return nil
}

// Reset runs the hardware reset and the initialization sequence. It is the
// only call accepted in deep sleep or after a failure.
func (d *Dev) Reset() error {
	if d.state == Busy {
		return &Error{Kind: KindState, Op: "reset", Err: ErrBusy}
	}
	return d.run("reset", Ready, func(s *sequencer) {
		s.reset()
		s.exec(command.SoftReset{})
		s.busyWait()
		if d.cfg.fastInit {
			s.exec(
				command.TemperatureSensorSelection{Sensor: command.InternalSensor},
				command.WriteTemperatureSensor{Value: fastInitTemp},
			)
			s.refresh(command.LoadLUTMode1)
		}
		s.exec(
			command.DriverOutputControl{GateLines: uint16(d.cfg.rows - 1)},
			command.DataEntryMode{Mode: command.IncrementYIncrementX, Axis: command.Horizontal},
			command.TemperatureSensorSelection{Sensor: command.InternalSensor},
			command.StartEndXPosition{Start: 0, End: byte(d.cfg.cols/8 - 1)},
			command.StartEndYPosition{Start: 0, End: uint16(d.cfg.rows - 1)},
			command.BorderWaveform{Value: borderFull},
			command.UpdateDisplayOption1{Black: command.NormalRAM, Red: command.NormalRAM, Source: command.SourceS8ToS167},
		)
		s.origin()
		s.busyWait()
	})
}

func (d *Dev) fullSequence() command.UpdateSequence {
	if d.cfg.fastInit {
		return command.DisplayMode1
	}
	return command.LoadTempDisplayMode1
}

func (d *Dev) checkPlane(op, name string, buf []byte) error {
	if len(buf) != d.cfg.BufferSize() {
		return &Error{Kind: KindConfiguration, Op: op, Err: fmt.Errorf("%s buffer is %d bytes, want %d", name, len(buf), d.cfg.BufferSize())}
	}
	return nil
}

// Update writes black to the black/white RAM and runs a full refresh.
//
// black must be exactly Config().BufferSize() bytes. It is only used for the
// duration of the call.
func (d *Dev) Update(black []byte) error {
	if err := d.checkReady("update"); err != nil {
		return err
	}
	if err := d.checkPlane("update", "black", black); err != nil {
		return err
	}
	d.state = Busy
	return d.run("update", Ready, func(s *sequencer) {
		s.window(0, 0, d.cfg.cols, d.cfg.rows)
		s.exec(command.WriteBlackData(black))
		s.refresh(d.fullSequence())
	})
}

// UpdateColor writes both RAM planes and runs a full refresh. It requires
// Opts.RedPlane.
func (d *Dev) UpdateColor(black, red []byte) error {
	if err := d.checkReady("update color"); err != nil {
		return err
	}
	if !d.cfg.redPlane {
		return &Error{Kind: KindConfiguration, Op: "update color", Err: errors.New("red plane is not enabled")}
	}
	if err := d.checkPlane("update color", "black", black); err != nil {
		return err
	}
	if err := d.checkPlane("update color", "red", red); err != nil {
		return err
	}
	d.state = Busy
	return d.run("update color", Ready, func(s *sequencer) {
		s.window(0, 0, d.cfg.cols, d.cfg.rows)
		s.exec(command.WriteBlackData(black))
		s.origin()
		s.exec(command.WriteRedData(red))
		s.refresh(d.fullSequence())
	})
}

// PartialUpdate refreshes the physical rectangle [x, x+w) × [y, y+h) with the
// partial waveform. sub holds the rectangle only, (w/8)·h bytes row by row,
// as produced by framebuffer.Mono.Extract.
//
// x and w must be multiples of 8. The hardware reset it starts with leaves the
// registers at their defaults; call Reset before the next full refresh.
func (d *Dev) PartialUpdate(sub []byte, x, y, w, h int) error {
	if err := d.checkReady("partial update"); err != nil {
		return err
	}
	if err := d.checkRect(x, y, w, h); err != nil {
		return &Error{Kind: KindConfiguration, Op: "partial update", Err: err}
	}
	if want := w / 8 * h; len(sub) != want {
		return &Error{Kind: KindConfiguration, Op: "partial update", Err: fmt.Errorf("buffer is %d bytes, want %d", len(sub), want)}
	}
	d.state = Busy
	return d.run("partial update", Ready, func(s *sequencer) {
		s.reset()
		s.exec(command.BorderWaveform{Value: borderLocked})
		s.window(x, y, w, h)
		s.exec(command.WriteBlackData(sub))
		s.refresh(command.LoadTempDisplayMode2)
	})
}

func (d *Dev) checkRect(x, y, w, h int) error {
	switch {
	case x%8 != 0 || w%8 != 0:
		return errors.New("x and width must be multiples of 8")
	case w <= 0 || h <= 0:
		return errors.New("empty rectangle")
	case x < 0 || y < 0 || x+w > d.cfg.cols || y+h > d.cfg.rows:
		return fmt.Errorf("rectangle %dx%d at (%d,%d) exceeds %dx%d", w, h, x, y, d.cfg.cols, d.cfg.rows)
	}
	return nil
}

// DeepSleep waits for the controller to be idle and enters deep sleep,
// keeping the RAM content. Reset wakes it up.
func (d *Dev) DeepSleep() error {
	if err := d.checkReady("deep sleep"); err != nil {
		return err
	}
	return d.run("deep sleep", Sleeping, func(s *sequencer) {
		s.busyWait()
		s.exec(command.DeepSleepMode{Mode: command.PreserveRAM})
	})
}

// Exec sends raw commands, for registers the driver does not manage such as
// WriteVCOM or WriteLUT. Commands that raise BUSY must be followed by
// BusyWait.
//
// SoftReset and DeepSleepMode are rejected: use Reset and DeepSleep.
func (d *Dev) Exec(cmds ...command.Command) error {
	if err := d.checkReady("exec"); err != nil {
		return err
	}
	for _, c := range cmds {
		switch c.(type) {
		case command.SoftReset, *command.SoftReset:
			return &Error{Kind: KindConfiguration, Op: "exec", Err: errors.New("software reset must go through Reset")}
		case command.DeepSleepMode, *command.DeepSleepMode:
			return &Error{Kind: KindConfiguration, Op: "exec", Err: errors.New("deep sleep must go through DeepSleep")}
		}
		if _, err := c.Params(); err != nil {
			return wrap(KindConfiguration, "exec", err)
		}
	}
	return d.run("exec", Ready, func(s *sequencer) {
		s.exec(cmds...)
	})
}

// BusyWait waits for the controller to release BUSY.
func (d *Dev) BusyWait() error {
	if err := d.checkReady("busy wait"); err != nil {
		return err
	}
	return d.run("busy wait", Ready, func(s *sequencer) {
		s.busyWait()
	})
}
