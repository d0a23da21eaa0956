// Pure encode/decode functions for the wire protocol: fixed bit-exact
// layouts for GREETINGS, STREAM-SELECT, STREAM-INFO, the generic
// length-prefixed block header (shared by metadata and picture blocks), and
// ACK. Header buffers are stack-sized arrays, not heap slices.

package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"rvideo/internal/frame"
)

// ErrInvalidFps is returned by DecodeStreamSelect when fps == 0.
var ErrInvalidFps = errors.New("wire: fps must be in 1..255")

// ErrBadAck is returned by DecodeAck for any byte other than AckByte.
var ErrBadAck = errors.New("wire: malformed ack byte")

// ErrUnknownFormat is returned by DecodeStreamInfo for an unrecognized
// PixelFormat code.
var ErrUnknownFormat = errors.New("wire: unknown pixel format code")

// EncodeGreetings encodes the 3-byte GREETINGS message: 'R', numStreams (LE).
func EncodeGreetings(numStreams uint16) [GreetingsSize]byte {
	var b [GreetingsSize]byte
	b[0] = GreetingsMagic
	binary.LittleEndian.PutUint16(b[1:3], numStreams)
	return b
}

// DecodeGreetings decodes and validates a GREETINGS message.
func DecodeGreetings(b []byte) (numStreams uint16, err error) {
	if len(b) != GreetingsSize {
		return 0, fmt.Errorf("wire: greetings must be %d bytes, got %d", GreetingsSize, len(b))
	}
	if b[0] != GreetingsMagic {
		return 0, fmt.Errorf("wire: bad greetings magic 0x%02x", b[0])
	}
	return binary.LittleEndian.Uint16(b[1:3]), nil
}

// EncodeStreamSelect encodes the 3-byte STREAM-SELECT message.
func EncodeStreamSelect(streamID uint16, fps uint8) ([StreamSelectSize]byte, error) {
	var b [StreamSelectSize]byte
	if fps == 0 {
		return b, ErrInvalidFps
	}
	binary.LittleEndian.PutUint16(b[0:2], streamID)
	b[2] = fps
	return b, nil
}

// DecodeStreamSelect decodes a 3-byte STREAM-SELECT message. Fails if fps==0.
func DecodeStreamSelect(b []byte) (streamID uint16, fps uint8, err error) {
	if len(b) != StreamSelectSize {
		return 0, 0, fmt.Errorf("wire: stream-select must be %d bytes, got %d", StreamSelectSize, len(b))
	}
	streamID = binary.LittleEndian.Uint16(b[0:2])
	fps = b[2]
	if fps == 0 {
		return 0, 0, ErrInvalidFps
	}
	return streamID, fps, nil
}

// EncodeStreamInfo encodes the 7-byte STREAM-INFO message.
func EncodeStreamInfo(info frame.StreamInfo) [StreamInfoSize]byte {
	var b [StreamInfoSize]byte
	binary.LittleEndian.PutUint16(b[0:2], info.StreamID)
	b[2] = byte(info.Format)
	binary.LittleEndian.PutUint16(b[3:5], info.Width)
	binary.LittleEndian.PutUint16(b[5:7], info.Height)
	return b
}

// DecodeStreamInfo decodes a 7-byte STREAM-INFO message.
func DecodeStreamInfo(b []byte) (frame.StreamInfo, error) {
	var info frame.StreamInfo
	if len(b) != StreamInfoSize {
		return info, fmt.Errorf("wire: stream-info must be %d bytes, got %d", StreamInfoSize, len(b))
	}
	info.StreamID = binary.LittleEndian.Uint16(b[0:2])
	info.Format = frame.PixelFormat(b[2])
	if !info.Format.Valid() {
		return info, ErrUnknownFormat
	}
	info.Width = binary.LittleEndian.Uint16(b[3:5])
	info.Height = binary.LittleEndian.Uint16(b[5:7])
	return info, nil
}

// EncodeBlockHeader encodes the 4-byte little-endian length header shared by
// the metadata and picture blocks in the frame loop.
func EncodeBlockHeader(length uint32) [BlockHeaderSize]byte {
	var b [BlockHeaderSize]byte
	binary.LittleEndian.PutUint32(b[:], length)
	return b
}

// DecodeBlockHeader decodes a 4-byte block length header.
func DecodeBlockHeader(b []byte) (uint32, error) {
	if len(b) != BlockHeaderSize {
		return 0, fmt.Errorf("wire: block header must be %d bytes, got %d", BlockHeaderSize, len(b))
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// DecodeAck validates the single ACK byte. Any value other than AckByte is a
// protocol violation.
func DecodeAck(b byte) error {
	if b != AckByte {
		return ErrBadAck
	}
	return nil
}
