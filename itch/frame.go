package itch

import (
	"encoding/binary"
	"fmt"
)

// Source is the minimal window a framer needs into a byte stream: get a
// slice at an offset from the current position, know how much is left,
// and move forward. feed.Reader implements this directly; a plain
// []byte slice reader would too.
type Source interface {
	Get(idx int) []byte
	Available() int
	Ensure(n int) bool
	Advance(n int)
}

// FrameError reports a malformed message frame: a length prefix that
// disagrees with the known length for its message type, or a message
// type PayloadLength has never heard of.
type FrameError struct {
	Type   MessageType
	Length uint16
	Want   int
}

func (e *FrameError) Error() string {
	if e.Want < 0 {
		return fmt.Sprintf("itch: unknown message type %q (code %d)", byte(e.Type), e.Type)
	}
	return fmt.Sprintf("itch: message type %q declares length %d, want %d", byte(e.Type), e.Length, e.Want)
}

// NextType peeks the message type of the next frame without consuming
// anything, or reports false if fewer than 3 bytes remain (the length
// prefix plus the type byte).
func NextType(src Source) (MessageType, bool) {
	if !src.Ensure(3) {
		return 0, false
	}
	return MessageType(src.Get(2)[0]), true
}

// ReadFrame consumes the 2-byte length prefix, the type byte, and the
// message's fixed payload, returning the message type and the payload
// bytes that follow the type byte (so offset 0 of the payload is the
// stock locate). It validates the on-wire length against
// PayloadLength's table the same way the source's PROCESS<T>::read_from
// asserts msglen == netlen<T>.
func ReadFrame(src Source) (MessageType, []byte, error) {
	if !src.Ensure(3) {
		return 0, nil, fmt.Errorf("itch: truncated frame: %d bytes remain", src.Available())
	}
	length := binary.BigEndian.Uint16(src.Get(0))
	src.Advance(2)

	msgType := MessageType(src.Get(0)[0])
	src.Advance(1)

	want, known := PayloadLength(msgType)
	if !known {
		return 0, nil, &FrameError{Type: msgType, Length: length, Want: -1}
	}
	if int(length) != want+1 {
		return 0, nil, &FrameError{Type: msgType, Length: length, Want: want + 1}
	}
	if !src.Ensure(want) {
		return 0, nil, fmt.Errorf("itch: truncated %c payload: %d bytes remain, want %d", msgType, src.Available(), want)
	}

	payload := src.Get(0)[:want]
	src.Advance(want)
	return msgType, payload, nil
}
