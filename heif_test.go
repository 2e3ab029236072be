package heif_test

import (
	"bytes"
	"errors"
	"image"
	"io"
	"testing"

	heif "github.com/GreatValueCreamSoda/goheif"
)

func TestVersion(t *testing.T) {
	if heif.Version() == "" {
		t.Fatal("empty version string")
	}
	v := heif.GetLibraryVersion()
	if v.Major < 1 {
		t.Fatalf("implausible library version %+v", v)
	}
}

func TestCheckFiletype(t *testing.T) {
	if got := heif.CheckFiletype(nil); got != heif.FiletypeNo {
		t.Fatalf("CheckFiletype(nil) = %v, want FiletypeNo", got)
	}
	if got := heif.CheckFiletype([]byte("this is not an isobmff file, at all")); got == heif.FiletypeYesSupported {
		t.Fatalf("CheckFiletype(garbage) = %v", got)
	}
}

func TestReadFromMemoryGarbage(t *testing.T) {
	ctx, err := heif.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	err = ctx.ReadFromMemory([]byte("definitely not a heif file"))
	var heifErr *heif.Error
	if !errors.As(err, &heifErr) {
		t.Fatalf("error = %v, want *heif.Error", err)
	}
	if heifErr.Code == heif.ErrorCodeOK {
		t.Fatal("error carries the OK code")
	}
}

func TestReadFromMemoryEmpty(t *testing.T) {
	ctx, err := heif.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	var heifErr *heif.Error
	if err := ctx.ReadFromMemory(nil); !errors.As(err, &heifErr) || heifErr.Code != heif.ErrorCodeUsageError {
		t.Fatalf("error = %v, want usage error", err)
	}
}

// brokenReadSeeker reports a size but fails every read.
type brokenReadSeeker struct {
	size int64
	pos  int64
	err  error
}

func (b *brokenReadSeeker) Read([]byte) (int, error) {
	return 0, b.err
}

func (b *brokenReadSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		b.pos = offset
	case io.SeekCurrent:
		b.pos += offset
	case io.SeekEnd:
		b.pos = b.size + offset
	}
	return b.pos, nil
}

// A stream failure must surface as the stream's own error, not as the
// library's generic I/O error.
func TestReadFromReaderReplaysStreamError(t *testing.T) {
	cause := errors.New("backing store went away")
	ctx, err := heif.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	err = ctx.ReadFromReader(&brokenReadSeeker{size: 1 << 20, err: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("error = %v, want %v", err, cause)
	}
}

func gradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*img.Stride + x*4
			img.Pix[i+0] = byte(x)
			img.Pix[i+1] = byte(y)
			img.Pix[i+2] = byte(x + y)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func newHEVCEncoder(t *testing.T, ctx *heif.Context) *heif.Encoder {
	t.Helper()
	if len(ctx.GetEncoderDescriptors(heif.CompressionHEVC, "")) == 0 {
		t.Skip("no HEVC encoder plugin available")
	}
	enc, err := ctx.GetEncoderForFormat(heif.CompressionHEVC)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(enc.Close)
	return enc
}

func encodeTestFile(t *testing.T, width, height int) []byte {
	t.Helper()
	ctx, err := heif.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	enc := newHEVCEncoder(t, ctx)
	if err := enc.SetQuality(90); err != nil {
		t.Fatal(err)
	}
	handle, err := ctx.EncodeFromImage(gradientImage(width, height), enc, heif.DefaultEncodeOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer handle.Close()

	var buf bytes.Buffer
	if err := ctx.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const width, height = 96, 64
	data := encodeTestFile(t, width, height)

	if got := heif.CheckFiletype(data[:16]); got != heif.FiletypeYesSupported {
		t.Fatalf("CheckFiletype = %v, want FiletypeYesSupported", got)
	}

	ctx, err := heif.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()
	if err := ctx.ReadFromReader(bytes.NewReader(data)); err != nil {
		t.Fatal(err)
	}

	handle, err := ctx.GetPrimaryImageHandle()
	if err != nil {
		t.Fatal(err)
	}
	defer handle.Close()
	if handle.GetWidth() != width || handle.GetHeight() != height {
		t.Fatalf("decoded size = %dx%d, want %dx%d",
			handle.GetWidth(), handle.GetHeight(), width, height)
	}
	if !handle.IsPrimaryImage() {
		t.Fatal("primary handle does not report as primary")
	}

	img, err := handle.Decode(heif.ColorspaceRGB, heif.ChromaInterleavedRGBA, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer img.Close()
	if img.GetColorspace() != heif.ColorspaceRGB {
		t.Fatalf("colorspace = %v, want RGB", img.GetColorspace())
	}
	plane := img.GetPlane(heif.ChannelInterleaved)
	if plane == nil {
		t.Fatal("no interleaved plane")
	}
	if plane.Width != width || plane.Height != height {
		t.Fatalf("plane size = %dx%d, want %dx%d", plane.Width, plane.Height, width, height)
	}
}

func TestImageDecodeRegistration(t *testing.T) {
	const width, height = 96, 64
	data := encodeTestFile(t, width, height)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if format != "heif" {
		t.Fatalf("format = %q, want heif", format)
	}
	if cfg.Width != width || cfg.Height != height {
		t.Fatalf("config = %dx%d, want %dx%d", cfg.Width, cfg.Height, width, height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Fatalf("decoded bounds = %v", b)
	}
}

type failAfterWriter struct {
	n   int
	err error
}

func (f *failAfterWriter) Write(p []byte) (int, error) {
	if f.n <= 0 {
		return 0, f.err
	}
	f.n--
	return len(p), nil
}

// A write failure must surface as the destination's own error, not as the
// library's generic encoding error.
func TestWriteReplaysStreamError(t *testing.T) {
	cause := errors.New("no space left")
	ctx, err := heif.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	enc := newHEVCEncoder(t, ctx)
	handle, err := ctx.EncodeFromImage(gradientImage(64, 64), enc, heif.DefaultEncodeOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer handle.Close()

	if err := ctx.Write(&failAfterWriter{err: cause}); !errors.Is(err, cause) {
		t.Fatalf("error = %v, want %v", err, cause)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	ctx, err := heif.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	enc := newHEVCEncoder(t, ctx)
	handle, err := ctx.EncodeFromImage(gradientImage(64, 64), enc, heif.DefaultEncodeOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer handle.Close()

	// Minimal EXIF payload: TIFF header preceded by the offset field.
	exif := []byte{0, 0, 0, 0, 'M', 'M', 0, 42, 0, 0, 0, 8, 0, 0}
	if err := ctx.AddExifMetadata(handle, exif); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ctx.Write(&buf); err != nil {
		t.Fatal(err)
	}

	read, err := heif.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	defer read.Close()
	if err := read.ReadFromReader(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	h, err := read.GetPrimaryImageHandle()
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	blocks := h.GetMetadataBlocks("Exif")
	if len(blocks) != 1 {
		t.Fatalf("metadata blocks = %d, want 1", len(blocks))
	}
	data, err := h.GetMetadata(blocks[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, exif) {
		t.Fatalf("metadata payload = %v, want %v", data, exif)
	}
}

func TestNewImagePlanes(t *testing.T) {
	img, err := heif.NewImage(32, 16, heif.ColorspaceRGB, heif.ChromaInterleavedRGBA)
	if err != nil {
		t.Fatal(err)
	}
	defer img.Close()

	if err := img.AddPlane(heif.ChannelInterleaved, 32, 16, 8); err != nil {
		t.Fatal(err)
	}
	if !img.HasChannel(heif.ChannelInterleaved) {
		t.Fatal("interleaved channel missing after AddPlane")
	}
	plane := img.GetPlane(heif.ChannelInterleaved)
	if plane == nil {
		t.Fatal("no plane view")
	}
	if plane.Width != 32 || plane.Height != 16 {
		t.Fatalf("plane size = %dx%d", plane.Width, plane.Height)
	}
	if plane.Stride < 32*4 {
		t.Fatalf("stride = %d, want >= %d", plane.Stride, 32*4)
	}
	if img.GetPlane(heif.ChannelAlpha) != nil {
		t.Fatal("got a plane for a channel that was never added")
	}
}
