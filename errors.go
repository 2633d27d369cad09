package ssd1680

import (
	"errors"
	"fmt"

	"github.com/flavioheleno/ssd1680/command"
)

// Kind classifies the errors returned by this package.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors not produced by this
	// package.
	KindUnknown Kind = iota
	// KindTransport is a failure of the SPI connection.
	KindTransport
	// KindPin is a failure driving DC or RST, or configuring BUSY.
	KindPin
	// KindTimeout means BUSY did not clear in time.
	KindTimeout
	// KindConfiguration is an invalid dimension, buffer or command parameter.
	KindConfiguration
	// KindState is a call the current State does not allow.
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindPin:
		return "pin"
	case KindTimeout:
		return "timeout"
	case KindConfiguration:
		return "configuration"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

var (
	// ErrTimeout is wrapped by KindTimeout errors.
	ErrTimeout = errors.New("busy wait timed out")
	// ErrSleeping is returned for any call other than Reset in deep sleep.
	ErrSleeping = errors.New("controller is in deep sleep")
	// ErrNotReady is returned before the first Reset and after a failure.
	ErrNotReady = errors.New("controller is not initialized")
	// ErrBusy is returned when a call overlaps an update in progress.
	ErrBusy = errors.New("controller is busy")
)

// Error is the error returned by the controller and its transport.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ssd1680: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, KindUnknown if err was not produced by this
// package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var pe *command.ParamError
	if errors.As(err, &pe) {
		return KindConfiguration
	}
	return KindUnknown
}

func wrap(k Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	var pe *command.ParamError
	if errors.As(err, &pe) {
		k = KindConfiguration
	}
	return &Error{Kind: k, Op: op, Err: err}
}
