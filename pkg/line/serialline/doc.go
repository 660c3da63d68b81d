// Package serialline drives lines that live on a microcontroller bridge
// reached over a serial link.
//
// The bridge is a small firmware that owns a set of output pins and
// exposes them by numeric ID; the host sends framed commands and the
// bridge acknowledges each one. This lets a desktop tool drive a
// demultiplexer wired to a USB-attached board as if its inputs were
// local lines.
//
// # Wire format
//
// Every frame is five bytes: two signature bytes (0x6D 0x6D), a message
// type, a line ID and an argument byte.
//
//	host -> bridge   SET   line=<id>  arg=<electrical level 0|1>
//	host -> bridge   PING  line=0     arg=<token>
//	bridge -> host   ACK   line=<id>  arg=<level echoed>
//	bridge -> host   NAK   line=<id>  arg=<error code>
//	bridge -> host   PONG  line=0     arg=<token echoed>
//
// The framing is deliberately dumb so the firmware side stays a few
// dozen lines. The host resynchronizes by discarding bytes until a
// signature pair lines up, which survives bridge resets and partial
// reads mid-frame.
//
// # Usage
//
//	conn, err := serialline.Open("/dev/ttyACM0", 115200)
//	g1, err := conn.Line("G1", 4, line.ActiveHigh)
//
// A Conn allows one command in flight at a time; concurrent callers are
// serialized. Each command waits for its matching reply with a read
// deadline, so a wedged bridge surfaces as ErrTimeout rather than a
// hang.
package serialline
