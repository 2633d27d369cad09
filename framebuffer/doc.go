// Package framebuffer provides the bit-packed monochrome plane used by the
// SSD1680 RAM.
//
// The controller stores one bit per pixel, row-major, the most significant bit
// being the leftmost pixel of each byte. On the black/white plane a set bit is
// white and a cleared bit is black. On the red plane a set bit is red.
//
// A Mono addresses pixels in the visual orientation selected by its Rotation,
// while the underlying bytes keep the physical (unrotated) layout expected by
// the controller. Mono implements draw.Image so the standard image/draw
// package, as well as periph's display helpers, can render into it.
package framebuffer
