package ssd1680

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

const (
	resetPulse       = 10 * time.Millisecond
	busyPollInterval = 10 * time.Millisecond
	busyPollAttempts = 500
	maxChunkSize     = 4096
)

// Transport is the byte channel and control lines of the controller.
type Transport interface {
	// Reset pulses RST.
	Reset() error
	// SendCommand writes one command byte.
	SendCommand(cmd byte) error
	// SendData writes parameter or RAM bytes.
	SendData(data []byte) error
	// BusyWait blocks until BUSY is released or the poll budget runs out.
	BusyWait() error
}

// SPITransport is a Transport over a 4-wire SPI connection plus the RST and
// BUSY lines.
type SPITransport struct {
	c     conn.Conn
	dc    gpio.PinOut
	rst   gpio.PinOut
	busy  gpio.PinIn
	maxTx int
	clock clockwork.Clock
}

// NewSPITransport returns a transport over c. dc selects command (low) or data
// (high), rst is active low and busy is high while the controller works.
func NewSPITransport(c conn.Conn, dc, rst gpio.PinOut, busy gpio.PinIn) *SPITransport {
	return newSPITransport(c, dc, rst, busy, clockwork.NewRealClock())
}

func newSPITransport(c conn.Conn, dc, rst gpio.PinOut, busy gpio.PinIn, clock clockwork.Clock) *SPITransport {
	maxTx := maxChunkSize
	if l, ok := c.(conn.Limits); ok {
		if n := l.MaxTxSize(); n > 0 && n < maxTx {
			maxTx = n
		}
	}
	return &SPITransport{c: c, dc: dc, rst: rst, busy: busy, maxTx: maxTx, clock: clock}
}

func (t *SPITransport) String() string {
	return fmt.Sprintf("ssd1680.SPITransport{%s, %s, %s, %s}", t.c, t.dc, t.rst, t.busy)
}

// Reset holds RST low for 10ms, then high for 10ms.
func (t *SPITransport) Reset() error {
	if err := t.rst.Out(gpio.Low); err != nil {
		return &Error{Kind: KindPin, Op: "reset", Err: fmt.Errorf("failed to pull RST low: %w", err)}
	}
	t.clock.Sleep(resetPulse)
	if err := t.rst.Out(gpio.High); err != nil {
		return &Error{Kind: KindPin, Op: "reset", Err: fmt.Errorf("failed to pull RST high: %w", err)}
	}
	t.clock.Sleep(resetPulse)
	return nil
}

// SendCommand writes cmd with DC low and leaves DC high.
func (t *SPITransport) SendCommand(cmd byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return &Error{Kind: KindPin, Op: "send command", Err: fmt.Errorf("failed to pull DC low: %w", err)}
	}
	if err := t.c.Tx([]byte{cmd}, nil); err != nil {
		return &Error{Kind: KindTransport, Op: "send command", Err: err}
	}
	if err := t.dc.Out(gpio.High); err != nil {
		return &Error{Kind: KindPin, Op: "send command", Err: fmt.Errorf("failed to pull DC high: %w", err)}
	}
	return nil
}

// SendData writes data with DC high, split in transfers the connection
// accepts.
func (t *SPITransport) SendData(data []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return &Error{Kind: KindPin, Op: "send data", Err: fmt.Errorf("failed to pull DC high: %w", err)}
	}
	for len(data) > 0 {
		n := min(len(data), t.maxTx)
		if err := t.c.Tx(data[:n], nil); err != nil {
			return &Error{Kind: KindTransport, Op: "send data", Err: err}
		}
		data = data[n:]
	}
	return nil
}

// BusyWait polls BUSY every 10ms and gives up after 500 intervals.
func (t *SPITransport) BusyWait() error {
	for attempts := 0; ; attempts++ {
		if t.busy.Read() == gpio.Low {
			return nil
		}
		if attempts >= busyPollAttempts {
			return &Error{Kind: KindTimeout, Op: "busy wait", Err: ErrTimeout}
		}
		t.clock.Sleep(busyPollInterval)
	}
}

var _ Transport = &SPITransport{}
