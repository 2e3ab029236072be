package heif

import (
	"fmt"
	"io"
)

// streamChunkSize bounds how many bytes a single Read or Write against the
// user-supplied stream may cover. Native transfers of any size are staged
// through one buffer of this size, so a misbehaving stream implementation
// never sees the native buffer and never gets asked for an unbounded read.
const streamChunkSize = 80 * 1024

// growStatus mirrors libheif's heif_reader_grow_status values.
type growStatus int

const (
	growSizeReached growStatus = iota
	growTimeout
	growSizeBeyondEOF
)

// streamReader adapts an io.ReadSeeker to libheif's pull-based reader
// contract. The native side calls back into position/read/seek/wait
// through the vtable in goheif_bridge.c; those callbacks land on the
// methods below.
//
// A streamReader is bound to exactly one stream and must not be used from
// two goroutines at once. Errors raised by the stream (including panics
// inside its methods) never cross into native code: the first one is
// parked in err, the callback reports failure through the native return
// convention, and the error is replayed to the caller once the native call
// returns.
type streamReader struct {
	src  io.ReadSeeker
	size int64
	buf  []byte

	// First error raised inside a callback. Write-once: later failures
	// keep the original root cause.
	err error
}

// newStreamReader wraps src, capturing its total length. The stream is
// rewound to the start so the native side sees position 0.
func newStreamReader(src io.ReadSeeker) (*streamReader, error) {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &streamReader{
		src:  src,
		size: size,
		buf:  make([]byte, streamChunkSize),
	}, nil
}

func (r *streamReader) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

// capturePanic converts a panic inside a callback into a captured error.
// Letting a panic unwind through the native frames that invoked the
// callback is not survivable, so every callback body defers this.
func (r *streamReader) capturePanic() {
	if p := recover(); p != nil {
		r.setErr(fmt.Errorf("heif: panic in stream callback: %v", p))
	}
}

// wrap decides which error the caller of a native operation should see.
// A captured callback error carries the true root cause and wins over the
// library's own error, which in that case is usually a generic I/O failure.
func (r *streamReader) wrap(nativeErr error) error {
	if r.err != nil {
		return r.err
	}
	return nativeErr
}

// position returns the current stream offset. ok is false when the
// underlying stream failed to report it.
func (r *streamReader) position() (pos int64, ok bool) {
	defer r.capturePanic()
	if r.err != nil {
		return 0, false
	}
	pos, err := r.src.Seek(0, io.SeekCurrent)
	if err != nil {
		r.setErr(err)
		return 0, false
	}
	return pos, true
}

// readInto fills dst completely from the current position, staging through
// the bounded chunk buffer. A short read is a failure; there is no partial
// success in the native contract.
func (r *streamReader) readInto(dst []byte) (ok bool) {
	defer r.capturePanic()
	if r.err != nil {
		return false
	}
	for len(dst) > 0 {
		n := len(dst)
		if n > len(r.buf) {
			n = len(r.buf)
		}
		got, err := io.ReadFull(r.src, r.buf[:n])
		copy(dst, r.buf[:got])
		if err != nil {
			r.setErr(err)
			return false
		}
		dst = dst[n:]
	}
	return true
}

// seekTo repositions the stream. Positions outside [0, size] fail without
// moving the stream.
func (r *streamReader) seekTo(pos int64) (ok bool) {
	defer r.capturePanic()
	if r.err != nil {
		return false
	}
	if pos < 0 || pos > r.size {
		return false
	}
	if _, err := r.src.Seek(pos, io.SeekStart); err != nil {
		r.setErr(err)
		return false
	}
	return true
}

// waitForSize tells the native side whether target bytes are available.
// All sources this binding accepts are fixed-length once opened, so the
// answer comes from the cached size and never blocks.
func (r *streamReader) waitForSize(target int64) growStatus {
	if target > r.size {
		return growSizeBeyondEOF
	}
	return growSizeReached
}

// streamWriter adapts an io.Writer to libheif's push-based writer
// contract. Same single-stream, single-goroutine and error-capture rules
// as streamReader.
type streamWriter struct {
	dst io.Writer
	buf []byte
	err error
}

func newStreamWriter(dst io.Writer) *streamWriter {
	return &streamWriter{
		dst: dst,
		buf: make([]byte, streamChunkSize),
	}
}

func (w *streamWriter) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *streamWriter) capturePanic() {
	if p := recover(); p != nil {
		w.setErr(fmt.Errorf("heif: panic in stream callback: %v", p))
	}
}

func (w *streamWriter) wrap(nativeErr error) error {
	if w.err != nil {
		return w.err
	}
	return nativeErr
}

// push copies src to the destination writer through the bounded staging
// buffer, looping until everything is written.
func (w *streamWriter) push(src []byte) (ok bool) {
	defer w.capturePanic()
	if w.err != nil {
		return false
	}
	for len(src) > 0 {
		n := copy(w.buf, src)
		if _, err := w.dst.Write(w.buf[:n]); err != nil {
			w.setErr(err)
			return false
		}
		src = src[n:]
	}
	return true
}
