package heif

/*
#include <stdlib.h>
#include "goheif.h"
*/
import "C"
import (
	"runtime"
	"unsafe"
)

// ImageHandle refers to one coded image inside a Context without decoding
// it. It exposes the properties stored in the file (dimensions, bit
// depths, thumbnails, metadata) and produces a decoded Image on demand.
//
// A handle keeps its Context reachable: the underlying context must stay
// alive while handles into it are used, and closing a stream-backed
// context also invalidates lazy decoding through its handles.
type ImageHandle struct {
	handle *C.struct_heif_image_handle
	ctx    *Context
}

func newImageHandle(handle *C.struct_heif_image_handle, ctx *Context) *ImageHandle {
	h := &ImageHandle{handle: handle, ctx: ctx}
	runtime.SetFinalizer(h, (*ImageHandle).Close)
	return h
}

// Close releases the native handle. Safe to call more than once.
func (h *ImageHandle) Close() {
	if h.handle != nil {
		C.heif_image_handle_release(h.handle)
		h.handle = nil
	}
	runtime.SetFinalizer(h, nil)
}

// GetWidth returns the image width in pixels, after transformations.
func (h *ImageHandle) GetWidth() int {
	defer runtime.KeepAlive(h)
	return int(C.heif_image_handle_get_width(h.handle))
}

// GetHeight returns the image height in pixels, after transformations.
func (h *ImageHandle) GetHeight() int {
	defer runtime.KeepAlive(h)
	return int(C.heif_image_handle_get_height(h.handle))
}

// HasAlphaChannel reports whether the image carries an alpha plane or
// auxiliary alpha image.
func (h *ImageHandle) HasAlphaChannel() bool {
	defer runtime.KeepAlive(h)
	return goBool(C.heif_image_handle_has_alpha_channel(h.handle))
}

// IsPremultipliedAlpha reports whether the color channels are stored
// premultiplied with alpha.
func (h *ImageHandle) IsPremultipliedAlpha() bool {
	defer runtime.KeepAlive(h)
	return goBool(C.heif_image_handle_is_premultiplied_alpha(h.handle))
}

// GetLumaBitsPerPixel returns the bit depth of the luma channel, or -1 if
// undefined.
func (h *ImageHandle) GetLumaBitsPerPixel() int {
	defer runtime.KeepAlive(h)
	return int(C.heif_image_handle_get_luma_bits_per_pixel(h.handle))
}

// GetChromaBitsPerPixel returns the bit depth of the chroma channels, or
// -1 if undefined.
func (h *ImageHandle) GetChromaBitsPerPixel() int {
	defer runtime.KeepAlive(h)
	return int(C.heif_image_handle_get_chroma_bits_per_pixel(h.handle))
}

// IsPrimaryImage reports whether this is the file's primary image.
func (h *ImageHandle) IsPrimaryImage() bool {
	defer runtime.KeepAlive(h)
	return goBool(C.heif_image_handle_is_primary_image(h.handle))
}

// GetNumberOfThumbnails returns how many thumbnails are attached to this
// image.
func (h *ImageHandle) GetNumberOfThumbnails() int {
	defer runtime.KeepAlive(h)
	return int(C.heif_image_handle_get_number_of_thumbnails(h.handle))
}

// GetListOfThumbnailIDs returns the item ids of the attached thumbnails.
func (h *ImageHandle) GetListOfThumbnailIDs() []ItemID {
	defer runtime.KeepAlive(h)
	n := int(C.heif_image_handle_get_number_of_thumbnails(h.handle))
	if n == 0 {
		return nil
	}
	ids := make([]ItemID, n)
	n = int(C.heif_image_handle_get_list_of_thumbnail_IDs(
		h.handle, (*C.heif_item_id)(unsafe.Pointer(&ids[0])), C.int(n)))
	return ids[:n]
}

// GetThumbnail returns a handle to the thumbnail with the given item id.
func (h *ImageHandle) GetThumbnail(id ItemID) (*ImageHandle, error) {
	defer runtime.KeepAlive(h)
	var thumb *C.struct_heif_image_handle
	if err := convertError(C.heif_image_handle_get_thumbnail(h.handle, C.heif_item_id(id), &thumb)); err != nil {
		return nil, err
	}
	return newImageHandle(thumb, h.ctx), nil
}

// HasDepthImage reports whether a depth channel is attached to this
// image.
func (h *ImageHandle) HasDepthImage() bool {
	defer runtime.KeepAlive(h)
	return goBool(C.heif_image_handle_has_depth_image(h.handle))
}

// GetNumberOfDepthImages returns how many depth images are attached.
func (h *ImageHandle) GetNumberOfDepthImages() int {
	defer runtime.KeepAlive(h)
	return int(C.heif_image_handle_get_number_of_depth_images(h.handle))
}

// GetListOfDepthImageIDs returns the item ids of the attached depth
// images.
func (h *ImageHandle) GetListOfDepthImageIDs() []ItemID {
	defer runtime.KeepAlive(h)
	n := int(C.heif_image_handle_get_number_of_depth_images(h.handle))
	if n == 0 {
		return nil
	}
	ids := make([]ItemID, n)
	n = int(C.heif_image_handle_get_list_of_depth_image_IDs(
		h.handle, (*C.heif_item_id)(unsafe.Pointer(&ids[0])), C.int(n)))
	return ids[:n]
}

// GetDepthImageHandle returns a handle to the depth image with the given
// item id.
func (h *ImageHandle) GetDepthImageHandle(id ItemID) (*ImageHandle, error) {
	defer runtime.KeepAlive(h)
	var depth *C.struct_heif_image_handle
	if err := convertError(C.heif_image_handle_get_depth_image_handle(h.handle, C.heif_item_id(id), &depth)); err != nil {
		return nil, err
	}
	return newImageHandle(depth, h.ctx), nil
}

// MetadataBlock describes one metadata item attached to an image, e.g. an
// EXIF or XMP block.
type MetadataBlock struct {
	ID ItemID

	// Type is the item type fourcc, e.g. "Exif" or "mime".
	Type string

	// ContentType is the content type of "mime" items, e.g.
	// "application/rdf+xml" for XMP.
	ContentType string
}

// GetMetadataBlocks lists the metadata items attached to this image.
// typeFilter restricts the result to items of one fourcc type ("Exif",
// "mime", ...); empty returns all.
func (h *ImageHandle) GetMetadataBlocks(typeFilter string) []MetadataBlock {
	defer runtime.KeepAlive(h)
	var cfilter *C.char
	if typeFilter != "" {
		cfilter = C.CString(typeFilter)
		defer C.free(unsafe.Pointer(cfilter))
	}
	n := int(C.heif_image_handle_get_number_of_metadata_blocks(h.handle, cfilter))
	if n == 0 {
		return nil
	}
	ids := make([]ItemID, n)
	n = int(C.heif_image_handle_get_list_of_metadata_block_IDs(
		h.handle, cfilter, (*C.heif_item_id)(unsafe.Pointer(&ids[0])), C.int(n)))
	blocks := make([]MetadataBlock, 0, n)
	for _, id := range ids[:n] {
		blocks = append(blocks, MetadataBlock{
			ID:          id,
			Type:        C.GoString(C.heif_image_handle_get_metadata_type(h.handle, C.heif_item_id(id))),
			ContentType: C.GoString(C.heif_image_handle_get_metadata_content_type(h.handle, C.heif_item_id(id))),
		})
	}
	return blocks
}

// GetMetadata returns the raw payload of the metadata item with the given
// id. For stream-backed contexts the bytes may be pulled lazily from the
// source stream.
func (h *ImageHandle) GetMetadata(id ItemID) ([]byte, error) {
	defer runtime.KeepAlive(h)
	size := C.heif_image_handle_get_metadata_size(h.handle, C.heif_item_id(id))
	if size == 0 {
		return nil, nil
	}
	data := make([]byte, int(size))
	if err := h.ctx.convertError(C.heif_image_handle_get_metadata(
		h.handle, C.heif_item_id(id), bytesPtr(data))); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode decodes the image into pixels with the given target colorspace
// and chroma. ColorspaceUndefined/ChromaUndefined keep the coded format.
// options may be nil.
func (h *ImageHandle) Decode(colorspace Colorspace, chroma Chroma, options *DecodeOptions) (*Image, error) {
	defer runtime.KeepAlive(h)
	native := newNativeDecodeOptions(options)
	defer native.free()
	var img *C.struct_heif_image
	cerr := C.heif_decode_image(h.handle, &img,
		C.enum_heif_colorspace(colorspace), C.enum_heif_chroma(chroma), native.options())
	if err := h.ctx.convertError(cerr); err != nil {
		return nil, err
	}
	return newImage(img), nil
}
