package heif

/*
#include <stdlib.h>
#include "goheif.h"
*/
import "C"
import "unsafe"

// ColorConversionOptions expresses a preference for the chroma sampling
// algorithms used during decode and encode. The zero value keeps the
// library defaults.
type ColorConversionOptions struct {
	PreferredDownsampling ChromaDownsamplingAlgorithm
	PreferredUpsampling   ChromaUpsamplingAlgorithm

	// OnlyUsePreferred fails the conversion instead of falling back when
	// the preferred algorithm cannot be used.
	OnlyUsePreferred bool
}

func (o *ColorConversionOptions) apply(dst *C.struct_heif_color_conversion_options) {
	if o.PreferredDownsampling != 0 {
		dst.preferred_chroma_downsampling_algorithm = C.enum_heif_chroma_downsampling_algorithm(o.PreferredDownsampling)
	}
	if o.PreferredUpsampling != 0 {
		dst.preferred_chroma_upsampling_algorithm = C.enum_heif_chroma_upsampling_algorithm(o.PreferredUpsampling)
	}
	dst.only_use_preferred_chroma_algorithm = cbool(o.OnlyUsePreferred)
}

// DecodeOptions controls how an image handle is decoded into pixels.
//
// The native options block is allocated by the runtime library, which
// stamps it with the struct version that library was built with. Fields
// below that the runtime's version does not define are silently skipped,
// so a DecodeOptions value is safe to use against any supported libheif
// release; requests the runtime cannot honor simply have no effect.
type DecodeOptions struct {
	// IgnoreTransformations decodes the raw coded image, skipping the
	// rotation/mirroring/cropping transformations stored alongside it.
	IgnoreTransformations bool

	// ConvertHDRToEightBit converts images with more than 8 bits per
	// channel down to 8 bits during decode.
	ConvertHDRToEightBit bool

	// Strict makes the decoder reject files with structural errors that
	// it would otherwise work around.
	Strict bool

	// DecoderID selects a specific decoder plugin by its id name (see
	// DecoderDescriptor.IDName). Empty selects automatically.
	DecoderID string

	ColorConversion ColorConversionOptions
}

// applyDecodeOptions overlays o onto a native options block, honoring the
// version tag stamped into the block. decoderID may be nil.
func applyDecodeOptions(block *C.struct_heif_decoding_options, o *DecodeOptions, decoderID *C.char) {
	v := uint8(block.version)
	if v >= 1 {
		block.ignore_transformations = cbool(o.IgnoreTransformations)
	}
	if v >= 2 {
		block.convert_hdr_to_8bit = cbool(o.ConvertHDRToEightBit)
	}
	if v >= 3 {
		block.strict_decoding = cbool(o.Strict)
	}
	if v >= 4 {
		block.decoder_id = decoderID
	}
	if v >= 5 {
		o.ColorConversion.apply(&block.color_conversion_options)
	}
}

// nativeDecodeOptions pairs a library-allocated options block with the C
// string it may point into. The string must outlive the native call that
// consumes the block, so both are released together afterwards.
type nativeDecodeOptions struct {
	ptr       *C.struct_heif_decoding_options
	decoderID *C.char
}

func newNativeDecodeOptions(o *DecodeOptions) *nativeDecodeOptions {
	if o == nil {
		return nil
	}
	block := C.heif_decoding_options_alloc()
	if block == nil {
		return nil
	}
	n := &nativeDecodeOptions{ptr: block}
	if o.DecoderID != "" {
		n.decoderID = C.CString(o.DecoderID)
	}
	applyDecodeOptions(block, o, n.decoderID)
	return n
}

func (n *nativeDecodeOptions) options() *C.struct_heif_decoding_options {
	if n == nil {
		return nil
	}
	return n.ptr
}

func (n *nativeDecodeOptions) free() {
	if n == nil {
		return
	}
	C.heif_decoding_options_free(n.ptr)
	if n.decoderID != nil {
		C.free(unsafe.Pointer(n.decoderID))
	}
}

// EncodeOptions controls how an image is encoded into a context. Use
// DefaultEncodeOptions for a value with the library defaults; the plain
// zero value would drop the alpha channel.
//
// Versioning works as for DecodeOptions: fields the runtime's options
// struct does not define are skipped.
type EncodeOptions struct {
	SaveAlphaChannel bool

	// MacOSCompatibilityWorkaround inserts a dummy value into the iref
	// box so that old macOS releases accept files with alpha channels.
	MacOSCompatibilityWorkaround bool

	// SaveTwoColrBoxes writes both colr boxes when ICC and nclx profiles
	// are available instead of picking one.
	SaveTwoColrBoxes bool

	// OutputNclx, when set, overrides the nclx color profile written for
	// the encoded image.
	OutputNclx *NclxColorProfile

	// MacOSCompatibilityWorkaroundNoNclx suppresses the nclx box
	// entirely for compatibility with old macOS releases.
	MacOSCompatibilityWorkaroundNoNclx bool

	// ImageOrientation stores the given orientation with the encoded
	// image instead of baking it into the pixels. Zero keeps the normal
	// orientation.
	ImageOrientation Orientation

	ColorConversion ColorConversionOptions

	// PreferUncCShortForm writes the abbreviated uncC box for
	// uncompressed images when the pixel format allows it.
	PreferUncCShortForm bool
}

// DefaultEncodeOptions returns an EncodeOptions with the library's
// default behavior.
func DefaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{SaveAlphaChannel: true}
}

// applyEncodeOptions overlays o onto a native options block, honoring the
// version tag stamped into the block. nclx may be nil.
func applyEncodeOptions(block *C.struct_heif_encoding_options, o *EncodeOptions, nclx *C.struct_heif_color_profile_nclx) {
	v := uint8(block.version)
	if v >= 1 {
		block.save_alpha_channel = cbool(o.SaveAlphaChannel)
	}
	if v >= 2 {
		block.macOS_compatibility_workaround = cbool(o.MacOSCompatibilityWorkaround)
	}
	if v >= 3 {
		block.save_two_colr_boxes_when_ICC_and_nclx_available = cbool(o.SaveTwoColrBoxes)
	}
	if v >= 4 {
		if nclx != nil {
			block.output_nclx_profile = nclx
		}
		block.macOS_compatibility_workaround_no_nclx_profile = cbool(o.MacOSCompatibilityWorkaroundNoNclx)
	}
	if v >= 5 && o.ImageOrientation != 0 {
		block.image_orientation = C.enum_heif_orientation(o.ImageOrientation)
	}
	if v >= 6 {
		o.ColorConversion.apply(&block.color_conversion_options)
	}
	if v >= 7 {
		block.prefer_uncC_short_form = cbool(o.PreferUncCShortForm)
	}
}

type nativeEncodeOptions struct {
	ptr  *C.struct_heif_encoding_options
	nclx *C.struct_heif_color_profile_nclx
}

func newNativeEncodeOptions(o *EncodeOptions) *nativeEncodeOptions {
	if o == nil {
		return nil
	}
	block := C.heif_encoding_options_alloc()
	if block == nil {
		return nil
	}
	n := &nativeEncodeOptions{ptr: block}
	if o.OutputNclx != nil {
		n.nclx = C.heif_nclx_color_profile_alloc()
		if n.nclx != nil {
			o.OutputNclx.fillNative(n.nclx)
		}
	}
	applyEncodeOptions(block, o, n.nclx)
	return n
}

func (n *nativeEncodeOptions) options() *C.struct_heif_encoding_options {
	if n == nil {
		return nil
	}
	return n.ptr
}

func (n *nativeEncodeOptions) free() {
	if n == nil {
		return
	}
	C.heif_encoding_options_free(n.ptr)
	if n.nclx != nil {
		C.heif_nclx_color_profile_free(n.nclx)
	}
}
