package ssd1680

import (
	"github.com/flavioheleno/ssd1680/command"
)

// sequencer runs a command sequence on a Transport and stops at the first
// error.
type sequencer struct {
	t   Transport
	err error
}

func (s *sequencer) reset() {
	if s.err != nil {
		return
	}
	s.err = s.t.Reset()
}

func (s *sequencer) exec(cmds ...command.Command) {
	for _, c := range cmds {
		if s.err != nil {
			return
		}
		s.err = command.Execute(s.t, c)
	}
}

func (s *sequencer) busyWait() {
	if s.err != nil {
		return
	}
	s.err = s.t.BusyWait()
}

// window restricts RAM access to the physical rectangle [x, x+w) × [y, y+h)
// and moves the address counters to its origin.
func (s *sequencer) window(x, y, w, h int) {
	s.exec(
		command.StartEndXPosition{Start: byte(x / 8), End: byte((x+w)/8 - 1)},
		command.StartEndYPosition{Start: uint16(y), End: uint16(y + h - 1)},
		command.XAddress{Address: byte(x / 8)},
		command.YAddress{Address: uint16(y)},
	)
}

// origin moves the address counters to the origin of the window set by
// window(0, 0, ...).
func (s *sequencer) origin() {
	s.exec(command.XAddress{Address: 0}, command.YAddress{Address: 0})
}

func (s *sequencer) refresh(seq command.UpdateSequence) {
	s.exec(command.UpdateDisplayOption2{Sequence: seq}, command.UpdateDisplay{})
	s.busyWait()
}
