package heif

/*
#include <stdlib.h>
#include "goheif.h"
#include "goheif_bridge.h"
*/
import "C"
import (
	"io"
	"runtime"
	"runtime/cgo"
	"unsafe"
)

// ItemID identifies an item (image, metadata block, region item) inside a
// HEIF file.
type ItemID uint32

// Context represents a HEIF file: either one parsed from a file, memory
// block or stream, or one being assembled for writing.
//
// A Context is freed by Close or, failing that, by a finalizer. It is not
// safe for concurrent use.
type Context struct {
	ctx *C.struct_heif_context

	// Set while a stream source is registered. libheif keeps the reader
	// callbacks live for lazy access during decode, so the handle has to
	// survive until the context is closed or re-pointed at another
	// source, not just until ReadFromReader returns.
	reader       *streamReader
	readerHandle cgo.Handle
}

// NewContext allocates an empty Context.
func NewContext() (*Context, error) {
	ctx := C.heif_context_alloc()
	if ctx == nil {
		return nil, &Error{
			Code:    ErrorCodeMemoryAllocation,
			Message: "heif: cannot allocate heif_context",
		}
	}
	c := &Context{ctx: ctx}
	runtime.SetFinalizer(c, (*Context).Close)
	return c, nil
}

// Close releases the native context. Safe to call more than once.
func (c *Context) Close() {
	if c.ctx != nil {
		C.heif_context_free(c.ctx)
		c.ctx = nil
	}
	c.dropReader()
	runtime.SetFinalizer(c, nil)
}

func (c *Context) dropReader() {
	if c.reader != nil {
		c.readerHandle.Delete()
		c.reader = nil
	}
}

// convertError translates a native error, replaying a captured stream
// error in place of the library's generic I/O failure when the context is
// backed by a stream.
func (c *Context) convertError(cerr C.struct_heif_error) error {
	err := convertError(cerr)
	if err != nil && c.reader != nil {
		return c.reader.wrap(err)
	}
	return err
}

// ReadFromFile parses the HEIF file at the given path into the context.
func (c *Context) ReadFromFile(filename string) error {
	defer runtime.KeepAlive(c)
	cname := C.CString(filename)
	defer C.free(unsafe.Pointer(cname))
	return convertError(C.heif_context_read_from_file(c.ctx, cname, nil))
}

// ReadFromMemory parses a HEIF file held in memory. The data is copied, so
// the slice may be reused once ReadFromMemory returns.
func (c *Context) ReadFromMemory(data []byte) error {
	defer runtime.KeepAlive(c)
	if len(data) == 0 {
		return &Error{
			Code:    ErrorCodeUsageError,
			Subcode: SuberrorNullPointerArgument,
			Message: "heif: empty input",
		}
	}
	err := convertError(C.heif_context_read_from_memory(
		c.ctx, bytesPtr(data), C.size_t(len(data)), nil))
	runtime.KeepAlive(data)
	return err
}

// ReadFromReader parses a HEIF file from a seekable stream. The stream is
// read lazily: decoding an image later may pull further data, so r must
// stay usable (and must not be used by anything else) until the context is
// closed. Errors returned by r, including panics inside its methods, are
// captured at the callback boundary and returned from the failing context
// operation in place of the library's own error.
func (c *Context) ReadFromReader(r io.ReadSeeker) error {
	defer runtime.KeepAlive(c)
	sr, err := newStreamReader(r)
	if err != nil {
		return err
	}
	c.dropReader()
	c.reader = sr
	c.readerHandle = cgo.NewHandle(sr)
	cerr := C.goheif_read_from_reader(c.ctx, C.uintptr_t(c.readerHandle))
	if err := c.convertError(cerr); err != nil {
		c.dropReader()
		return err
	}
	return nil
}

// WriteToFile writes the assembled HEIF file to the given path.
func (c *Context) WriteToFile(filename string) error {
	defer runtime.KeepAlive(c)
	cname := C.CString(filename)
	defer C.free(unsafe.Pointer(cname))
	return convertError(C.heif_context_write_to_file(c.ctx, cname))
}

// Write serializes the assembled HEIF file to w. Errors returned by w,
// including panics inside Write, are captured at the callback boundary and
// returned here in place of the library's generic write error.
func (c *Context) Write(w io.Writer) error {
	defer runtime.KeepAlive(c)
	sw := newStreamWriter(w)
	h := cgo.NewHandle(sw)
	cerr := C.goheif_write(c.ctx, C.uintptr_t(h))
	h.Delete()
	return sw.wrap(convertError(cerr))
}

// GetNumberOfTopLevelImages returns how many top-level images the file
// contains.
func (c *Context) GetNumberOfTopLevelImages() int {
	defer runtime.KeepAlive(c)
	return int(C.heif_context_get_number_of_top_level_images(c.ctx))
}

// IsTopLevelImageID reports whether id names a top-level image.
func (c *Context) IsTopLevelImageID(id ItemID) bool {
	defer runtime.KeepAlive(c)
	return goBool(C.heif_context_is_top_level_image_ID(c.ctx, C.heif_item_id(id)))
}

// GetListOfTopLevelImageIDs returns the item ids of all top-level images.
func (c *Context) GetListOfTopLevelImageIDs() []ItemID {
	defer runtime.KeepAlive(c)
	n := int(C.heif_context_get_number_of_top_level_images(c.ctx))
	if n == 0 {
		return nil
	}
	ids := make([]ItemID, n)
	n = int(C.heif_context_get_list_of_top_level_image_IDs(
		c.ctx, (*C.heif_item_id)(unsafe.Pointer(&ids[0])), C.int(n)))
	return ids[:n]
}

// GetPrimaryImageID returns the item id of the primary image.
func (c *Context) GetPrimaryImageID() (ItemID, error) {
	defer runtime.KeepAlive(c)
	var id C.heif_item_id
	if err := convertError(C.heif_context_get_primary_image_ID(c.ctx, &id)); err != nil {
		return 0, err
	}
	return ItemID(id), nil
}

// GetPrimaryImageHandle returns a handle to the primary image.
func (c *Context) GetPrimaryImageHandle() (*ImageHandle, error) {
	defer runtime.KeepAlive(c)
	var handle *C.struct_heif_image_handle
	if err := c.convertError(C.heif_context_get_primary_image_handle(c.ctx, &handle)); err != nil {
		return nil, err
	}
	return newImageHandle(handle, c), nil
}

// GetImageHandle returns a handle to the top-level image with the given
// item id.
func (c *Context) GetImageHandle(id ItemID) (*ImageHandle, error) {
	defer runtime.KeepAlive(c)
	var handle *C.struct_heif_image_handle
	if err := c.convertError(C.heif_context_get_image_handle(c.ctx, C.heif_item_id(id), &handle)); err != nil {
		return nil, err
	}
	return newImageHandle(handle, c), nil
}

// SetPrimaryImage marks handle as the file's primary image.
func (c *Context) SetPrimaryImage(handle *ImageHandle) error {
	defer runtime.KeepAlive(c)
	defer runtime.KeepAlive(handle)
	return convertError(C.heif_context_set_primary_image(c.ctx, handle.handle))
}

// SetMaxDecodingThreads limits the number of threads the decoder may
// spawn. Zero disables multi-threaded decoding.
func (c *Context) SetMaxDecodingThreads(n int) {
	defer runtime.KeepAlive(c)
	C.heif_context_set_max_decoding_threads(c.ctx, C.int(n))
}

// EncodeImage compresses img with the given encoder and adds it to the
// context. options may be nil for the library defaults; the returned
// handle refers to the newly added image.
func (c *Context) EncodeImage(img *Image, enc *Encoder, options *EncodeOptions) (*ImageHandle, error) {
	defer runtime.KeepAlive(c)
	defer runtime.KeepAlive(img)
	defer runtime.KeepAlive(enc)
	native := newNativeEncodeOptions(options)
	defer native.free()
	var handle *C.struct_heif_image_handle
	cerr := C.heif_context_encode_image(c.ctx, img.image, enc.encoder, native.options(), &handle)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newImageHandle(handle, c), nil
}

// EncodeThumbnail compresses img as a thumbnail of master, scaled to fit
// into a bboxSize x bboxSize box. The returned handle is nil when the
// image is already smaller than the bounding box and no thumbnail was
// added.
func (c *Context) EncodeThumbnail(img *Image, master *ImageHandle, enc *Encoder, options *EncodeOptions, bboxSize int) (*ImageHandle, error) {
	defer runtime.KeepAlive(c)
	defer runtime.KeepAlive(img)
	defer runtime.KeepAlive(master)
	defer runtime.KeepAlive(enc)
	native := newNativeEncodeOptions(options)
	defer native.free()
	var handle *C.struct_heif_image_handle
	cerr := C.heif_context_encode_thumbnail(c.ctx, img.image, master.handle, enc.encoder,
		native.options(), C.int(bboxSize), &handle)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	return newImageHandle(handle, c), nil
}

// AddExifMetadata attaches an EXIF block to the given image.
func (c *Context) AddExifMetadata(handle *ImageHandle, data []byte) error {
	defer runtime.KeepAlive(c)
	defer runtime.KeepAlive(handle)
	err := convertError(C.heif_context_add_exif_metadata(
		c.ctx, handle.handle, bytesPtr(data), C.int(len(data))))
	runtime.KeepAlive(data)
	return err
}

// AddXMPMetadata attaches an XMP block to the given image.
func (c *Context) AddXMPMetadata(handle *ImageHandle, data []byte) error {
	defer runtime.KeepAlive(c)
	defer runtime.KeepAlive(handle)
	err := convertError(C.heif_context_add_XMP_metadata(
		c.ctx, handle.handle, bytesPtr(data), C.int(len(data))))
	runtime.KeepAlive(data)
	return err
}
