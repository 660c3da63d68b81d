package serialline

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/muxkit/muxkit-go/pkg/line"
)

// Conn errors.
var (
	// ErrRejected reports a NAK from the bridge.
	ErrRejected = errors.New("bridge rejected command")

	// ErrTimeout reports an expired reply deadline.
	ErrTimeout = errors.New("reply timeout")

	// ErrLineRange reports a line ID the one-byte wire format cannot carry.
	ErrLineRange = errors.New("line id out of range")
)

// Conn is a host-side connection to a line bridge. It allows one command
// in flight at a time; concurrent callers are serialized.
type Conn struct {
	mu   sync.Mutex
	rw   io.ReadWriteCloser
	buf  []byte
	ping uint8
}

// NewConn wraps an open transport. Use Open for real serial ports; tests
// pass an in-memory pipe.
func NewConn(rw io.ReadWriteCloser) *Conn {
	return &Conn{rw: rw}
}

// Line returns a line driving bridge output id with the given polarity.
// No command is sent; the bridge's pin keeps its state until the first
// drive.
func (c *Conn) Line(name string, id uint32, polarity line.Polarity) (line.Line, error) {
	if id > 0xFF {
		return nil, fmt.Errorf("%w: %d", ErrLineRange, id)
	}
	return &remoteLine{conn: c, name: name, id: uint8(id), polarity: polarity}, nil
}

// Ping verifies the bridge is alive and in sync.
func (c *Conn) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ping++
	if _, err := c.exchange(Frame{Type: MsgPing, Arg: c.ping}, MsgPong); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close closes the underlying transport.
func (c *Conn) Close() error {
	return c.rw.Close()
}

// set drives bridge output id to the given electrical level and waits
// for the acknowledgement.
func (c *Conn) set(id uint8, level bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	arg := uint8(0)
	if level {
		arg = 1
	}
	if _, err := c.exchange(Frame{Type: MsgSet, Line: id, Arg: arg}, MsgAck); err != nil {
		return fmt.Errorf("set line %d: %w", id, err)
	}
	return nil
}

// exchange writes one frame and waits for its reply. Caller holds c.mu.
func (c *Conn) exchange(out Frame, want MsgType) (Frame, error) {
	if _, err := c.rw.Write(Marshal(out)); err != nil {
		return Frame{}, fmt.Errorf("writing frame: %w", err)
	}

	for {
		f, err := c.readFrame()
		if err != nil {
			return Frame{}, err
		}

		if f.Type == MsgNak && f.Line == out.Line {
			return Frame{}, fmt.Errorf("%w (code %d)", ErrRejected, f.Arg)
		}
		if f.Type != want || f.Line != out.Line {
			// Stale reply from an earlier timed-out exchange.
			continue
		}
		if want == MsgPong && f.Arg != out.Arg {
			// Pong for an earlier probe.
			continue
		}
		return f, nil
	}
}

// readFrame returns the next well-formed frame, discarding noise until a
// signature pair lines up. Caller holds c.mu.
func (c *Conn) readFrame() (Frame, error) {
	for {
		for len(c.buf) >= 2 && !(c.buf[0] == Signature && c.buf[1] == Signature) {
			c.buf = c.buf[1:]
		}
		if len(c.buf) >= FrameLen {
			f, _ := Unmarshal(c.buf[:FrameLen])
			c.buf = append(c.buf[:0], c.buf[FrameLen:]...)
			return f, nil
		}

		tmp := make([]byte, 64)
		n, err := c.rw.Read(tmp)
		if err != nil {
			return Frame{}, fmt.Errorf("reading frame: %w", err)
		}
		if n == 0 {
			// go.bug.st/serial reports an expired read deadline as an
			// empty read with a nil error.
			return Frame{}, ErrTimeout
		}
		c.buf = append(c.buf, tmp[:n]...)
	}
}

// remoteLine is one bridge output exposed as a line.
type remoteLine struct {
	conn     *Conn
	name     string
	id       uint8
	polarity line.Polarity
}

// Compile-time interface satisfaction check.
var _ line.Line = (*remoteLine)(nil)

func (l *remoteLine) Activate() error {
	return l.conn.set(l.id, l.polarity.Level(true))
}

func (l *remoteLine) Deactivate() error {
	return l.conn.set(l.id, l.polarity.Level(false))
}
