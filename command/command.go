package command

import (
	"encoding/binary"
	"fmt"
)

// Controller limits enforced by the encoders.
const (
	MaxGates           = 296
	MaxDummyLinePeriod = 127
)

// Command is an instruction for the controller.
//
// The set of commands is closed: only the types of this package implement it.
type Command interface {
	// Opcode returns the register the command writes to.
	Opcode() byte
	// Params returns the parameter bytes sent after the opcode, or an error if
	// a parameter is out of range.
	//
	// Buffer commands return their payload as is, without copying it.
	Params() ([]byte, error)

	command()
}

// Sender is the byte channel a command is executed on.
type Sender interface {
	SendCommand(cmd byte) error
	SendData(data []byte) error
}

// ParamError reports a parameter the controller does not accept.
type ParamError struct {
	Command string
	Value   int
	Reason  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("command: %s: invalid parameter %d: %s", e.Command, e.Value, e.Reason)
}

// Encode returns the opcode of c followed by its parameters.
func Encode(c Command) ([]byte, error) {
	p, err := c.Params()
	if err != nil {
		return nil, err
	}
	return append([]byte{c.Opcode()}, p...), nil
}

// Execute sends c to s: the opcode as a command byte, then the parameters (if
// any) as a single data transfer.
//
// Nothing is sent if a parameter is invalid.
func Execute(s Sender, c Command) error {
	p, err := c.Params()
	if err != nil {
		return err
	}
	if err := s.SendCommand(c.Opcode()); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return s.SendData(p)
}

func le16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

// DriverOutputControl sets the number of gate lines (MUX) and the gate
// scanning sequence and direction.
type DriverOutputControl struct {
	// GateLines is the number of rows minus one.
	GateLines        uint16
	ScanningSequence byte
}

func (DriverOutputControl) Opcode() byte { return 0x01 }

func (c DriverOutputControl) Params() ([]byte, error) {
	return append(le16(c.GateLines), c.ScanningSequence), nil
}

// GateDrivingVoltage sets VGH.
type GateDrivingVoltage struct {
	Voltage byte
}

func (GateDrivingVoltage) Opcode() byte { return 0x03 }

func (c GateDrivingVoltage) Params() ([]byte, error) {
	return []byte{c.Voltage}, nil
}

// SourceDrivingVoltage sets VSH1, VSH2 and VSL.
type SourceDrivingVoltage struct {
	VSH1, VSH2, VSL byte
}

func (SourceDrivingVoltage) Opcode() byte { return 0x04 }

func (c SourceDrivingVoltage) Params() ([]byte, error) {
	return []byte{c.VSH1, c.VSH2, c.VSL}, nil
}

// BoosterEnable sets the booster soft start phases and duration.
type BoosterEnable struct {
	Phase1, Phase2, Phase3 byte
	Duration               byte
}

func (BoosterEnable) Opcode() byte { return 0x0C }

func (c BoosterEnable) Params() ([]byte, error) {
	return []byte{c.Phase1, c.Phase2, c.Phase3, c.Duration}, nil
}

// GateScanStartPosition sets the gate the scan starts from.
type GateScanStartPosition struct {
	Position uint16
}

func (GateScanStartPosition) Opcode() byte { return 0x0F }

func (c GateScanStartPosition) Params() ([]byte, error) {
	if c.Position >= MaxGates {
		return nil, &ParamError{Command: "GateScanStartPosition", Value: int(c.Position), Reason: fmt.Sprintf("must be below %d", MaxGates)}
	}
	return le16(c.Position), nil
}

// DeepSleepMode enters or leaves deep sleep.
type DeepSleepMode struct {
	Mode SleepMode
}

func (DeepSleepMode) Opcode() byte { return 0x10 }

func (c DeepSleepMode) Params() ([]byte, error) {
	switch c.Mode {
	case NormalMode, PreserveRAM, DiscardRAM:
		return []byte{byte(c.Mode)}, nil
	}
	return nil, &ParamError{Command: "DeepSleepMode", Value: int(c.Mode), Reason: "unknown sleep mode"}
}

// DataEntryMode sets the address counter direction and the axis that is
// incremented first.
type DataEntryMode struct {
	Mode EntryMode
	Axis IncrementAxis
}

func (DataEntryMode) Opcode() byte { return 0x11 }

func (c DataEntryMode) Params() ([]byte, error) {
	if c.Mode > IncrementYIncrementX {
		return nil, &ParamError{Command: "DataEntryMode", Value: int(c.Mode), Reason: "unknown entry mode"}
	}
	if c.Axis != Horizontal && c.Axis != Vertical {
		return nil, &ParamError{Command: "DataEntryMode", Value: int(c.Axis), Reason: "unknown increment axis"}
	}
	return []byte{byte(c.Axis) | byte(c.Mode)}, nil
}

// SoftReset resets every register to its default value. BUSY is high while it
// runs.
type SoftReset struct{}

func (SoftReset) Opcode() byte { return 0x12 }

func (SoftReset) Params() ([]byte, error) { return nil, nil }

// TemperatureSensorSelection selects the internal or external sensor.
type TemperatureSensorSelection struct {
	Sensor TemperatureSensor
}

func (TemperatureSensorSelection) Opcode() byte { return 0x18 }

func (c TemperatureSensorSelection) Params() ([]byte, error) {
	if c.Sensor != InternalSensor && c.Sensor != ExternalSensor {
		return nil, &ParamError{Command: "TemperatureSensorSelection", Value: int(c.Sensor), Reason: "unknown sensor"}
	}
	return []byte{byte(c.Sensor)}, nil
}

// WriteTemperatureSensor writes the temperature register. The waveform loaded
// by the next LUT load is picked from this value.
type WriteTemperatureSensor struct {
	Value uint16
}

func (WriteTemperatureSensor) Opcode() byte { return 0x1A }

func (c WriteTemperatureSensor) Params() ([]byte, error) {
	return le16(c.Value), nil
}

// WriteExternalTemperatureSensor sends a command to an external temperature
// sensor over the controller's I²C master.
type WriteExternalTemperatureSensor struct {
	Param1, Param2, Param3 byte
}

func (WriteExternalTemperatureSensor) Opcode() byte { return 0x1C }

func (c WriteExternalTemperatureSensor) Params() ([]byte, error) {
	return []byte{c.Param1, c.Param2, c.Param3}, nil
}

// UpdateDisplay runs the sequence selected with UpdateDisplayOption2. BUSY is
// high while it runs.
type UpdateDisplay struct{}

func (UpdateDisplay) Opcode() byte { return 0x20 }

func (UpdateDisplay) Params() ([]byte, error) { return nil, nil }

// UpdateDisplayOption1 sets the RAM content options used by UpdateDisplay.
type UpdateDisplayOption1 struct {
	Black  RAMOption
	Red    RAMOption
	Source SourceOption
}

func (UpdateDisplayOption1) Opcode() byte { return 0x21 }

func (c UpdateDisplayOption1) Params() ([]byte, error) {
	black, ok := c.Black.black()
	if !ok {
		return nil, &ParamError{Command: "UpdateDisplayOption1", Value: int(c.Black), Reason: "unknown black RAM option"}
	}
	red, ok := c.Red.red()
	if !ok {
		return nil, &ParamError{Command: "UpdateDisplayOption1", Value: int(c.Red), Reason: "unknown red RAM option"}
	}
	if c.Source != SourceS0ToS175 && c.Source != SourceS8ToS167 {
		return nil, &ParamError{Command: "UpdateDisplayOption1", Value: int(c.Source), Reason: "unknown source option"}
	}
	return []byte{black | red, byte(c.Source)}, nil
}

// UpdateDisplayOption2 selects the update sequence.
type UpdateDisplayOption2 struct {
	Sequence UpdateSequence
}

func (UpdateDisplayOption2) Opcode() byte { return 0x22 }

func (c UpdateDisplayOption2) Params() ([]byte, error) {
	if !c.Sequence.valid() {
		return nil, &ParamError{Command: "UpdateDisplayOption2", Value: int(c.Sequence), Reason: "unknown update sequence"}
	}
	return []byte{byte(c.Sequence)}, nil
}

// EnterVCOMSensing senses VCOM for the duration set with VCOMSenseDuration.
// BUSY is high while it runs.
type EnterVCOMSensing struct{}

func (EnterVCOMSensing) Opcode() byte { return 0x28 }

func (EnterVCOMSensing) Params() ([]byte, error) { return nil, nil }

// VCOMSenseDuration sets the VCOM sensing duration.
type VCOMSenseDuration struct {
	Duration byte
}

func (VCOMSenseDuration) Opcode() byte { return 0x29 }

func (c VCOMSenseDuration) Params() ([]byte, error) {
	return []byte{c.Duration}, nil
}

// WriteVCOM writes the VCOM register.
type WriteVCOM struct {
	Value byte
}

func (WriteVCOM) Opcode() byte { return 0x2C }

func (c WriteVCOM) Params() ([]byte, error) {
	return []byte{c.Value}, nil
}

// DummyLinePeriod sets the number of dummy line periods, in gate line widths.
type DummyLinePeriod struct {
	Period byte
}

func (DummyLinePeriod) Opcode() byte { return 0x3A }

func (c DummyLinePeriod) Params() ([]byte, error) {
	if c.Period > MaxDummyLinePeriod {
		return nil, &ParamError{Command: "DummyLinePeriod", Value: int(c.Period), Reason: fmt.Sprintf("must be at most %d", MaxDummyLinePeriod)}
	}
	return []byte{c.Period}, nil
}

// GateLineWidth sets the gate line width (TGate).
type GateLineWidth struct {
	Width byte
}

func (GateLineWidth) Opcode() byte { return 0x3B }

func (c GateLineWidth) Params() ([]byte, error) {
	return []byte{c.Width}, nil
}

// BorderWaveform selects the waveform driven on the border (VBD).
type BorderWaveform struct {
	Value byte
}

func (BorderWaveform) Opcode() byte { return 0x3C }

func (c BorderWaveform) Params() ([]byte, error) {
	return []byte{c.Value}, nil
}

// StartEndXPosition sets the RAM window in the X direction, in bytes (8
// pixels).
type StartEndXPosition struct {
	Start, End byte
}

func (StartEndXPosition) Opcode() byte { return 0x44 }

func (c StartEndXPosition) Params() ([]byte, error) {
	return []byte{c.Start, c.End}, nil
}

// StartEndYPosition sets the RAM window in the Y direction, in gate lines.
type StartEndYPosition struct {
	Start, End uint16
}

func (StartEndYPosition) Opcode() byte { return 0x45 }

func (c StartEndYPosition) Params() ([]byte, error) {
	return append(le16(c.Start), le16(c.End)...), nil
}

// AutoWriteRedPattern fills the red RAM with a regular pattern. BUSY is high
// while it runs.
type AutoWriteRedPattern struct {
	Pattern byte
}

func (AutoWriteRedPattern) Opcode() byte { return 0x46 }

func (c AutoWriteRedPattern) Params() ([]byte, error) {
	return []byte{c.Pattern}, nil
}

// AutoWriteBlackPattern fills the black/white RAM with a regular pattern.
// BUSY is high while it runs.
type AutoWriteBlackPattern struct {
	Pattern byte
}

func (AutoWriteBlackPattern) Opcode() byte { return 0x47 }

func (c AutoWriteBlackPattern) Params() ([]byte, error) {
	return []byte{c.Pattern}, nil
}

// XAddress sets the RAM X address counter, in bytes.
type XAddress struct {
	Address byte
}

func (XAddress) Opcode() byte { return 0x4E }

func (c XAddress) Params() ([]byte, error) {
	return []byte{c.Address}, nil
}

// YAddress sets the RAM Y address counter, in gate lines.
type YAddress struct {
	Address uint16
}

func (YAddress) Opcode() byte { return 0x4F }

func (c YAddress) Params() ([]byte, error) {
	return le16(c.Address), nil
}

// AnalogBlockControl writes the analog block control register.
type AnalogBlockControl struct {
	Value byte
}

func (AnalogBlockControl) Opcode() byte { return 0x74 }

func (c AnalogBlockControl) Params() ([]byte, error) {
	return []byte{c.Value}, nil
}

// DigitalBlockControl writes the digital block control register.
type DigitalBlockControl struct {
	Value byte
}

func (DigitalBlockControl) Opcode() byte { return 0x7E }

func (c DigitalBlockControl) Params() ([]byte, error) {
	return []byte{c.Value}, nil
}

// Buffer commands. The payload is borrowed for the duration of Execute.

// WriteBlackData writes the black/white RAM. A set bit is white, a cleared
// bit is black.
type WriteBlackData []byte

func (WriteBlackData) Opcode() byte { return 0x24 }

func (c WriteBlackData) Params() ([]byte, error) { return c, nil }

// WriteRedData writes the red RAM. A set bit is red, a cleared bit shows the
// black/white RAM.
type WriteRedData []byte

func (WriteRedData) Opcode() byte { return 0x26 }

func (c WriteRedData) Params() ([]byte, error) { return c, nil }

// WriteLUT writes the waveform lookup table register.
type WriteLUT []byte

func (WriteLUT) Opcode() byte { return 0x32 }

func (c WriteLUT) Params() ([]byte, error) { return c, nil }

func (DriverOutputControl) command()            {}
func (GateDrivingVoltage) command()             {}
func (SourceDrivingVoltage) command()           {}
func (BoosterEnable) command()                  {}
func (GateScanStartPosition) command()          {}
func (DeepSleepMode) command()                  {}
func (DataEntryMode) command()                  {}
func (SoftReset) command()                      {}
func (TemperatureSensorSelection) command()     {}
func (WriteTemperatureSensor) command()         {}
func (WriteExternalTemperatureSensor) command() {}
func (UpdateDisplay) command()                  {}
func (UpdateDisplayOption1) command()           {}
func (UpdateDisplayOption2) command()           {}
func (EnterVCOMSensing) command()               {}
func (VCOMSenseDuration) command()              {}
func (WriteVCOM) command()                      {}
func (DummyLinePeriod) command()                {}
func (GateLineWidth) command()                  {}
func (BorderWaveform) command()                 {}
func (StartEndXPosition) command()              {}
func (StartEndYPosition) command()              {}
func (AutoWriteRedPattern) command()            {}
func (AutoWriteBlackPattern) command()          {}
func (XAddress) command()                       {}
func (YAddress) command()                       {}
func (AnalogBlockControl) command()             {}
func (DigitalBlockControl) command()            {}
func (WriteBlackData) command()                 {}
func (WriteRedData) command()                   {}
func (WriteLUT) command()                       {}
