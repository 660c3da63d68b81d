package serialline

// Signature marks the start of every frame, doubled so the receiver can
// resynchronize on it after noise or a reset.
const Signature byte = 0x6D

// FrameLen is the fixed frame size in bytes.
const FrameLen = 5

// MsgType identifies a frame's purpose.
type MsgType uint8

const (
	// MsgSet drives a bridge output to an electrical level (host -> bridge).
	MsgSet MsgType = 0x01
	// MsgAck confirms a set was applied (bridge -> host).
	MsgAck MsgType = 0x02
	// MsgNak reports a refused set; Arg carries the bridge error code
	// (bridge -> host).
	MsgNak MsgType = 0x03
	// MsgPing probes bridge liveness; Arg carries a token (host -> bridge).
	MsgPing MsgType = 0x04
	// MsgPong answers a probe, echoing the token (bridge -> host).
	MsgPong MsgType = 0x05
)

// String returns the message type name.
func (m MsgType) String() string {
	switch m {
	case MsgSet:
		return "SET"
	case MsgAck:
		return "ACK"
	case MsgNak:
		return "NAK"
	case MsgPing:
		return "PING"
	case MsgPong:
		return "PONG"
	default:
		return "UNKNOWN"
	}
}

// Frame is one protocol message. The encoding is shared with the bridge
// firmware, which is why it is exported.
type Frame struct {
	Type MsgType
	Line uint8
	Arg  uint8
}

// Marshal encodes a frame to its five-byte wire form.
func Marshal(f Frame) []byte {
	return []byte{Signature, Signature, byte(f.Type), f.Line, f.Arg}
}

// Unmarshal decodes a five-byte wire frame. The second return is false
// when data is not exactly one well-formed frame.
func Unmarshal(data []byte) (Frame, bool) {
	if len(data) != FrameLen {
		return Frame{}, false
	}
	if data[0] != Signature || data[1] != Signature {
		return Frame{}, false
	}
	return Frame{Type: MsgType(data[2]), Line: data[3], Arg: data[4]}, true
}
