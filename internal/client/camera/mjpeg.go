package camera

import (
	"bufio"
	"bytes"
	"io"
)

var (
	jpegSOI = []byte{0xFF, 0xD8}
	jpegEOI = []byte{0xFF, 0xD9}
)

// nextJPEGFrame scans an MJPEG byte stream for the next complete JPEG frame,
// from the SOI marker through the EOI marker inclusive. Bytes between frames
// (HTTP-style part boundaries, padding) are discarded.
func nextJPEGFrame(r *bufio.Reader) ([]byte, error) {
	// Seek the start-of-image marker.
	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != jpegSOI[0] {
			continue
		}
		next, err := r.Peek(1)
		if err != nil {
			return nil, err
		}
		if next[0] == jpegSOI[1] {
			if _, err := r.Discard(1); err != nil {
				return nil, err
			}
			break
		}
	}

	frame := bytes.NewBuffer(nil)
	frame.Write(jpegSOI)

	// Accumulate until end-of-image.
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		frame.WriteByte(b)
		if b == jpegEOI[0] {
			next, err := r.Peek(1)
			if err != nil {
				if err == io.EOF {
					return nil, io.ErrUnexpectedEOF
				}
				return nil, err
			}
			if next[0] == jpegEOI[1] {
				if _, err := r.Discard(1); err != nil {
					return nil, err
				}
				frame.WriteByte(jpegEOI[1])
				return frame.Bytes(), nil
			}
		}
	}
}
