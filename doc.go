// Package ssd1680 controls a SSD1680 e-paper display via SPI.
//
// The SSD1680 is an active matrix e-paper controller driving up to 176
// source lines and 296 gate lines. Panels come in black/white and
// black/white/red variants. This driver implements the display.Drawer
// interface from periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel per plane, MSB first, 1 is white
// - Optional red plane, 1 is red
// - Full refresh, fast refresh and partial refresh waveforms
// - Deep sleep with RAM retention
// - BUSY line reports when the panel is refreshing
//
// # Hardware Connection
//
// Connect the panel via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	CLK         → SPI Clock (SCLK)
//	DIN         → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	DC          → GPIO (any available pin)
//	RST         → GPIO (any available pin)
//	BUSY        → GPIO (any available pin)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/flavioheleno/ssd1680"
//		"github.com/flavioheleno/ssd1680/framebuffer"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		port, _ := spireg.Open("")
//		dev, _ := ssd1680.NewSPI(port,
//			gpioreg.ByName("GPIO25"), // DC
//			gpioreg.ByName("GPIO17"), // RST
//			gpioreg.ByName("GPIO24"), // BUSY
//			&ssd1680.DefaultOpts)
//		defer dev.Halt()
//
//		buf := make([]byte, dev.Config().BufferSize())
//		g, _ := ssd1680.NewGraphicDisplay(dev, buf, nil)
//		g.Reset()
//		g.Clear(framebuffer.White)
//		g.Plot(10, 10, framebuffer.Black)
//		g.Update()
//	}
//
// # Lifecycle
//
// A Dev starts Uninitialized. Reset brings it to Ready. Update, UpdateColor
// and PartialUpdate move it to Busy until the BUSY line clears, then back to
// Ready. DeepSleep moves it to Sleeping, where only Reset is accepted. Any
// transport failure or BUSY timeout leaves the Dev Uninitialized.
//
// PartialUpdate pulses RST before writing, which returns every register to
// its power on default: gate count, border waveform, source range and the
// fast LUT loaded by FastInit. Call Reset before the next Update or
// UpdateColor to run a full refresh with the configured registers.
//
// Exec rejects SoftReset and DeepSleepMode; Reset and DeepSleep own them.
//
// # Partial Refresh
//
// PartialUpdate sends a byte aligned window and refreshes it with the
// partial waveform, which does not flash the panel. GraphicDisplay keeps the
// last flushed frame and PartialRefresh sends only the bounding rectangle of
// what changed since.
//
// # Raw Commands
//
// The command package encodes every controller command the driver uses.
// Dev.Exec sends arbitrary commands for custom waveforms or registers.
//
// # Datasheet
//
// https://www.good-display.com/companyfile/101.html
package ssd1680
