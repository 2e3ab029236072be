package heif

/*
#include "goheif.h"
*/
import "C"
import (
	"runtime"
	"unsafe"
)

// Image holds decoded (or to-be-encoded) pixel data. Planes live in
// memory owned by the native library; PlaneData views that memory
// directly and is only valid while the Image is alive.
type Image struct {
	image *C.struct_heif_image
}

func newImage(image *C.struct_heif_image) *Image {
	img := &Image{image: image}
	runtime.SetFinalizer(img, (*Image).Close)
	return img
}

// NewImage allocates an empty image with the given dimensions and pixel
// format. Planes have to be added with AddPlane before pixel data can be
// stored.
func NewImage(width, height int, colorspace Colorspace, chroma Chroma) (*Image, error) {
	var image *C.struct_heif_image
	cerr := C.heif_image_create(C.int(width), C.int(height),
		C.enum_heif_colorspace(colorspace), C.enum_heif_chroma(chroma), &image)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newImage(image), nil
}

// Close releases the native image and with it all plane memory. Safe to
// call more than once.
func (img *Image) Close() {
	if img.image != nil {
		C.heif_image_release(img.image)
		img.image = nil
	}
	runtime.SetFinalizer(img, nil)
}

// GetColorspace returns the image's color model.
func (img *Image) GetColorspace() Colorspace {
	defer runtime.KeepAlive(img)
	return Colorspace(C.heif_image_get_colorspace(img.image))
}

// GetChromaFormat returns the image's chroma sampling or interleaving.
func (img *Image) GetChromaFormat() Chroma {
	defer runtime.KeepAlive(img)
	return Chroma(C.heif_image_get_chroma_format(img.image))
}

// GetWidth returns the width of the given channel in pixels, or -1 when
// the channel does not exist.
func (img *Image) GetWidth(channel Channel) int {
	defer runtime.KeepAlive(img)
	return int(C.heif_image_get_width(img.image, C.enum_heif_channel(channel)))
}

// GetHeight returns the height of the given channel in pixels, or -1 when
// the channel does not exist.
func (img *Image) GetHeight(channel Channel) int {
	defer runtime.KeepAlive(img)
	return int(C.heif_image_get_height(img.image, C.enum_heif_channel(channel)))
}

// GetPrimaryWidth returns the width of the main image area.
func (img *Image) GetPrimaryWidth() int {
	defer runtime.KeepAlive(img)
	return int(C.heif_image_get_primary_width(img.image))
}

// GetPrimaryHeight returns the height of the main image area.
func (img *Image) GetPrimaryHeight() int {
	defer runtime.KeepAlive(img)
	return int(C.heif_image_get_primary_height(img.image))
}

// GetBitsPerPixel returns the number of bits used for storage of one
// pixel in the given channel. Interleaved formats report the sum over all
// interleaved channels.
func (img *Image) GetBitsPerPixel(channel Channel) int {
	defer runtime.KeepAlive(img)
	return int(C.heif_image_get_bits_per_pixel(img.image, C.enum_heif_channel(channel)))
}

// GetBitsPerPixelRange returns the number of significant bits per pixel
// in the given channel, which may be less than the storage size.
func (img *Image) GetBitsPerPixelRange(channel Channel) int {
	defer runtime.KeepAlive(img)
	return int(C.heif_image_get_bits_per_pixel_range(img.image, C.enum_heif_channel(channel)))
}

// HasChannel reports whether the image contains the given channel.
func (img *Image) HasChannel(channel Channel) bool {
	defer runtime.KeepAlive(img)
	return goBool(C.heif_image_has_channel(img.image, C.enum_heif_channel(channel)))
}

// AddPlane allocates a plane for the given channel.
func (img *Image) AddPlane(channel Channel, width, height, bitDepth int) error {
	defer runtime.KeepAlive(img)
	return convertError(C.heif_image_add_plane(img.image,
		C.enum_heif_channel(channel), C.int(width), C.int(height), C.int(bitDepth)))
}

// PlaneData exposes one plane of an Image. Data views native memory: rows
// are Stride bytes apart, which may be more than the row's pixel data,
// and the view becomes invalid when the Image is closed.
type PlaneData struct {
	Data   []byte
	Stride int
	Width  int
	Height int
}

// GetPlane returns a writable view of the given channel's plane, or nil
// when the channel does not exist.
func (img *Image) GetPlane(channel Channel) *PlaneData {
	defer runtime.KeepAlive(img)
	if !goBool(C.heif_image_has_channel(img.image, C.enum_heif_channel(channel))) {
		return nil
	}
	height := int(C.heif_image_get_height(img.image, C.enum_heif_channel(channel)))
	var stride C.int
	plane := C.heif_image_get_plane(img.image, C.enum_heif_channel(channel), &stride)
	if plane == nil {
		return nil
	}
	return &PlaneData{
		Data:   unsafe.Slice((*byte)(plane), height*int(stride)),
		Stride: int(stride),
		Width:  int(C.heif_image_get_width(img.image, C.enum_heif_channel(channel))),
		Height: height,
	}
}

// SetData copies pixel rows into the plane. data holds Height rows that
// are srcStride bytes apart; srcStride may differ from the plane's own
// stride.
func (p *PlaneData) SetData(data []byte, srcStride int) {
	rowLen := srcStride
	if p.Stride < rowLen {
		rowLen = p.Stride
	}
	for y := 0; y < p.Height; y++ {
		copy(p.Data[y*p.Stride:y*p.Stride+rowLen], data[y*srcStride:])
	}
}

// ScaleImage returns a copy of the image scaled to the given dimensions.
func (img *Image) ScaleImage(width, height int) (*Image, error) {
	defer runtime.KeepAlive(img)
	var scaled *C.struct_heif_image
	cerr := C.heif_image_scale_image(img.image, &scaled, C.int(width), C.int(height), nil)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newImage(scaled), nil
}

// SetPremultipliedAlpha marks the color channels as stored premultiplied
// with alpha.
func (img *Image) SetPremultipliedAlpha(premultiplied bool) {
	defer runtime.KeepAlive(img)
	C.heif_image_set_premultiplied_alpha(img.image, cint(premultiplied))
}

// IsPremultipliedAlpha reports whether the color channels are stored
// premultiplied with alpha.
func (img *Image) IsPremultipliedAlpha() bool {
	defer runtime.KeepAlive(img)
	return goBool(C.heif_image_is_premultiplied_alpha(img.image))
}
