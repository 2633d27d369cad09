package command

// EntryMode selects the direction the RAM address counters move after each
// byte written with WriteBlackData or WriteRedData.
type EntryMode byte

const (
	DecrementXDecrementY EntryMode = 0b00
	IncrementXDecrementY EntryMode = 0b01
	DecrementXIncrementY EntryMode = 0b10
	IncrementYIncrementX EntryMode = 0b11 // Power-on default
)

// IncrementAxis selects which address counter is updated first.
type IncrementAxis byte

const (
	// Horizontal updates the X counter first.
	Horizontal IncrementAxis = 0b000
	// Vertical updates the Y counter first.
	Vertical IncrementAxis = 0b100
)

// TemperatureSensor selects the sensor used to pick the waveform.
type TemperatureSensor byte

const (
	InternalSensor TemperatureSensor = 0x80
	ExternalSensor TemperatureSensor = 0x48
)

// RAMOption controls how a RAM plane is read during a display update.
type RAMOption byte

const (
	NormalRAM RAMOption = iota
	BypassRAM           // Read the plane as all zeros.
	InvertRAM
)

func (o RAMOption) black() (byte, bool) {
	switch o {
	case NormalRAM:
		return 0b0000_0000, true
	case BypassRAM:
		return 0b0100_0000, true
	case InvertRAM:
		return 0b1000_0000, true
	}
	return 0, false
}

func (o RAMOption) red() (byte, bool) {
	switch o {
	case NormalRAM:
		return 0b0000_0000, true
	case BypassRAM:
		return 0b0000_0100, true
	case InvertRAM:
		return 0b0000_1000, true
	}
	return 0, false
}

// SourceOption selects the range of source outputs driven by the panel.
type SourceOption byte

const (
	SourceS0ToS175 SourceOption = 0x00
	SourceS8ToS167 SourceOption = 0x80
)

// UpdateSequence is the bitmask written with UpdateDisplayOption2. It selects
// the steps run by the next UpdateDisplay.
//
// Display mode 1 is the full refresh waveform, display mode 2 the partial
// refresh waveform.
type UpdateSequence byte

const (
	EnableClock          UpdateSequence = 0x80
	DisableClock         UpdateSequence = 0x01
	EnableClockAnalog    UpdateSequence = 0xC0
	DisableAnalogClock   UpdateSequence = 0x03
	LoadLUTMode1         UpdateSequence = 0x91
	LoadLUTMode2         UpdateSequence = 0x99
	LoadTempLUTMode1     UpdateSequence = 0xB1
	LoadTempLUTMode2     UpdateSequence = 0xB9
	DisplayMode1         UpdateSequence = 0xC7
	DisplayMode2         UpdateSequence = 0xCF
	LoadTempDisplayMode1 UpdateSequence = 0xF7
	LoadTempDisplayMode2 UpdateSequence = 0xFF
)

func (s UpdateSequence) valid() bool {
	switch s {
	case EnableClock, DisableClock, EnableClockAnalog, DisableAnalogClock,
		LoadLUTMode1, LoadLUTMode2, LoadTempLUTMode1, LoadTempLUTMode2,
		DisplayMode1, DisplayMode2, LoadTempDisplayMode1, LoadTempDisplayMode2:
		return true
	}
	return false
}

// SleepMode is the parameter of DeepSleepMode.
type SleepMode byte

const (
	// NormalMode leaves deep sleep (only reachable through a hardware reset).
	NormalMode SleepMode = 0b00
	// PreserveRAM enters deep sleep keeping RAM content.
	PreserveRAM SleepMode = 0b01
	// DiscardRAM enters deep sleep without retaining RAM.
	DiscardRAM SleepMode = 0b11
)
