package heif

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func testPattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i * 31)
	}
	return data
}

func TestStreamReaderReadAcrossChunks(t *testing.T) {
	const size = 10_000_000 // far beyond one staging chunk
	data := testPattern(size)
	r, err := newStreamReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if r.size != size {
		t.Fatalf("size = %d, want %d", r.size, size)
	}

	dst := make([]byte, size)
	if !r.readInto(dst) {
		t.Fatalf("readInto failed: %v", r.err)
	}
	if !bytes.Equal(dst, data) {
		t.Fatal("read data does not match source")
	}
	pos, ok := r.position()
	if !ok || pos != size {
		t.Fatalf("position = %d, %t, want %d, true", pos, ok, size)
	}
}

func TestStreamReaderSeekBounds(t *testing.T) {
	data := testPattern(1000)
	r, err := newStreamReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if !r.seekTo(500) {
		t.Fatal("seek to valid position failed")
	}
	if r.seekTo(-1) {
		t.Fatal("seek to negative position succeeded")
	}
	if r.seekTo(1001) {
		t.Fatal("seek beyond end succeeded")
	}
	// Failed seeks must not move the stream.
	if pos, _ := r.position(); pos != 500 {
		t.Fatalf("position after failed seeks = %d, want 500", pos)
	}
	// Seeking exactly to the end is allowed.
	if !r.seekTo(1000) {
		t.Fatal("seek to end failed")
	}
	if r.err != nil {
		t.Fatalf("unexpected captured error: %v", r.err)
	}
}

func TestStreamReaderWaitForSize(t *testing.T) {
	r, err := newStreamReader(bytes.NewReader(testPattern(100)))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.waitForSize(100); got != growSizeReached {
		t.Fatalf("waitForSize(100) = %v, want growSizeReached", got)
	}
	if got := r.waitForSize(101); got != growSizeBeyondEOF {
		t.Fatalf("waitForSize(101) = %v, want growSizeBeyondEOF", got)
	}
}

func TestStreamReaderShortRead(t *testing.T) {
	r, err := newStreamReader(bytes.NewReader(testPattern(100)))
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]byte, 200)
	if r.readInto(dst) {
		t.Fatal("short read reported success")
	}
	if r.err == nil {
		t.Fatal("short read captured no error")
	}
}

// flakyReadSeeker fails with err once failAt reads have happened.
type flakyReadSeeker struct {
	io.ReadSeeker
	reads  int
	failAt int
	err    error
}

func (f *flakyReadSeeker) Read(p []byte) (int, error) {
	f.reads++
	if f.reads >= f.failAt {
		return 0, f.err
	}
	return f.ReadSeeker.Read(p)
}

func TestStreamReaderFirstErrorWins(t *testing.T) {
	cause := errors.New("disk on fire")
	src := &flakyReadSeeker{
		ReadSeeker: bytes.NewReader(testPattern(4 * streamChunkSize)),
		failAt:     3,
		err:        cause,
	}
	r, err := newStreamReader(src)
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]byte, 4*streamChunkSize)
	if r.readInto(dst) {
		t.Fatal("read reported success")
	}
	if !errors.Is(r.err, cause) {
		t.Fatalf("captured error = %v, want %v", r.err, cause)
	}

	// Later failures must not displace the first captured error.
	if r.readInto(dst[:1]) {
		t.Fatal("read after failure reported success")
	}
	r.setErr(errors.New("later error"))
	if !errors.Is(r.err, cause) {
		t.Fatalf("first error was displaced: %v", r.err)
	}
}

// panicReadSeeker panics inside Read.
type panicReadSeeker struct {
	io.ReadSeeker
}

func (p *panicReadSeeker) Read([]byte) (int, error) {
	panic("broken stream implementation")
}

func TestStreamReaderPanicCapture(t *testing.T) {
	r, err := newStreamReader(&panicReadSeeker{bytes.NewReader(testPattern(100))})
	if err != nil {
		t.Fatal(err)
	}
	if r.readInto(make([]byte, 10)) {
		t.Fatal("read reported success")
	}
	if r.err == nil || !strings.Contains(r.err.Error(), "broken stream implementation") {
		t.Fatalf("captured error = %v, want panic message", r.err)
	}
}

func TestStreamReaderWrapPrefersCapturedError(t *testing.T) {
	cause := errors.New("root cause")
	r, err := newStreamReader(bytes.NewReader(testPattern(10)))
	if err != nil {
		t.Fatal(err)
	}
	generic := errors.New("generic library failure")
	if got := r.wrap(generic); got != generic {
		t.Fatalf("wrap without captured error = %v, want %v", got, generic)
	}
	r.setErr(cause)
	if got := r.wrap(generic); got != cause {
		t.Fatalf("wrap with captured error = %v, want %v", got, cause)
	}
}

func TestStreamWriterPush(t *testing.T) {
	var out bytes.Buffer
	w := newStreamWriter(&out)

	small := testPattern(100)
	large := testPattern(3*streamChunkSize + 17)
	if !w.push(small) {
		t.Fatalf("push failed: %v", w.err)
	}
	if !w.push(large) {
		t.Fatalf("push failed: %v", w.err)
	}

	want := append(append([]byte{}, small...), large...)
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatal("written data does not match pushes")
	}
}

type failingWriter struct {
	err error
}

func (f *failingWriter) Write(p []byte) (int, error) {
	return 0, f.err
}

func TestStreamWriterError(t *testing.T) {
	cause := errors.New("quota exceeded")
	w := newStreamWriter(&failingWriter{err: cause})

	if w.push(testPattern(10)) {
		t.Fatal("push reported success")
	}
	if !errors.Is(w.err, cause) {
		t.Fatalf("captured error = %v, want %v", w.err, cause)
	}
	if w.push(testPattern(10)) {
		t.Fatal("push after failure reported success")
	}
	if got := w.wrap(errors.New("generic write error")); got != cause {
		t.Fatalf("wrap = %v, want %v", got, cause)
	}
}

type panicWriter struct{}

func (panicWriter) Write([]byte) (int, error) {
	panic("writer gone")
}

func TestStreamWriterPanicCapture(t *testing.T) {
	w := newStreamWriter(panicWriter{})
	if w.push(testPattern(10)) {
		t.Fatal("push reported success")
	}
	if w.err == nil || !strings.Contains(w.err.Error(), "writer gone") {
		t.Fatalf("captured error = %v, want panic message", w.err)
	}
}
