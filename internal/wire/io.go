// Drives the pure codec functions over an io.Reader/io.Writer. The
// transport has no chunking, so these are simple fixed-size or
// length-prefixed reads and writes.

package wire

import (
	"io"

	"rvideo/internal/frame"
)

// WriteGreetings writes the GREETINGS message.
func WriteGreetings(w io.Writer, numStreams uint16) error {
	b := EncodeGreetings(numStreams)
	_, err := w.Write(b[:])
	return err
}

// ReadStreamSelect reads and decodes the STREAM-SELECT message.
func ReadStreamSelect(r io.Reader) (streamID uint16, fps uint8, err error) {
	var b [StreamSelectSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, 0, err
	}
	return DecodeStreamSelect(b[:])
}

// WriteStreamInfo writes the STREAM-INFO message.
func WriteStreamInfo(w io.Writer, info frame.StreamInfo) error {
	b := EncodeStreamInfo(info)
	_, err := w.Write(b[:])
	return err
}

// WriteBlock writes a length-prefixed block: a 4-byte LE length header
// followed by payload. Used for both the metadata block and the picture
// block in the frame loop.
func WriteBlock(w io.Writer, payload []byte) error {
	h := EncodeBlockHeader(uint32(len(payload)))
	if _, err := w.Write(h[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// ReadBlock reads a length-prefixed block header and its payload.
func ReadBlock(r io.Reader) ([]byte, error) {
	var h [BlockHeaderSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return nil, err
	}
	n, err := DecodeBlockHeader(h[:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ReadAck reads and validates the single ACK byte.
func ReadAck(r io.Reader) error {
	var b [AckSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	return DecodeAck(b[0])
}

// WriteAck writes the single ACK byte.
func WriteAck(w io.Writer) error {
	_, err := w.Write([]byte{AckByte})
	return err
}
