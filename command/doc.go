// Package command encodes SSD1680 register commands.
//
// Every instruction the driver issues is a value of one of the types in this
// package. A command knows its opcode and how to lay out its parameter bytes;
// it never touches the hardware. Execute hands the encoded bytes to a Sender,
// which is the only place where I/O happens.
//
// Multi-byte integer parameters are transmitted least significant byte first:
//
//	b, _ := command.Encode(command.DriverOutputControl{GateLines: 0x1234, ScanningSequence: 0x01})
//	// b == []byte{0x01, 0x34, 0x12, 0x01}
//
// Parameters with a restricted range (GateScanStartPosition, DummyLinePeriod)
// and unknown option values are rejected with a *ParamError instead of being
// sent to the controller.
package command
