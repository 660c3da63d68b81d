// Package gpio provides line backends for locally attached GPIO hardware.
//
// Three backends are available:
//
//   - Rpio drives the Raspberry Pi's GPIO registers through /dev/gpiomem
//     (github.com/stianeikeland/go-rpio). Linux only.
//   - Chardev drives any GPIO character device via the Linux GPIO uAPI
//     (github.com/warthog618/go-gpiocdev). Linux only.
//   - FromPeriph adapts a periph.io output pin, which makes every chip
//     periph drives (SoC pins, port expanders, shift registers) usable as
//     a muxkit line on any platform.
//
// Rpio and Chardev are sources: open one, mint lines from it, close it
// when the board shuts down. Each minted line carries its own polarity,
// so an active-low chip input is declared once at mint time and the chip
// driver stays polarity-free.
//
// On platforms without the Linux GPIO stack the source constructors
// return ErrUnsupported; the package still compiles, which keeps board
// profiles and tools buildable everywhere.
package gpio
