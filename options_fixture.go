package heif

/*
#include <stdlib.h>
#include "goheif.h"
*/
import "C"
import "unsafe"

// Fixtures for exercising the version overlay against fabricated option
// blocks. Production code always receives blocks allocated by the runtime
// library, whose version tag is fixed by the linked release; fabricating
// the block lets the overlay be driven across every version. Test files
// cannot use cgo, so these live here instead of options_test.go.

type decodeOptionsSnapshot struct {
	IgnoreTransformations bool
	ConvertHDRToEightBit  bool
	Strict                bool
	DecoderID             string
	HasDecoderID          bool
	Downsampling          ChromaDownsamplingAlgorithm
	Upsampling            ChromaUpsamplingAlgorithm
	OnlyUsePreferred      bool
}

type decodeOptionsFixture struct {
	block     *C.struct_heif_decoding_options
	decoderID *C.char
}

func newDecodeOptionsFixture(version uint8) *decodeOptionsFixture {
	block := safeMalloc[C.struct_heif_decoding_options](1)
	block.version = C.uint8_t(version)
	if version >= 5 {
		block.color_conversion_options.version = 1
	}
	return &decodeOptionsFixture{block: block}
}

func (f *decodeOptionsFixture) apply(o *DecodeOptions) {
	if o.DecoderID != "" {
		f.decoderID = C.CString(o.DecoderID)
	}
	applyDecodeOptions(f.block, o, f.decoderID)
}

func (f *decodeOptionsFixture) snapshot() decodeOptionsSnapshot {
	s := decodeOptionsSnapshot{
		IgnoreTransformations: f.block.ignore_transformations != 0,
		ConvertHDRToEightBit:  f.block.convert_hdr_to_8bit != 0,
		Strict:                f.block.strict_decoding != 0,
		HasDecoderID:          f.block.decoder_id != nil,
		Downsampling:          ChromaDownsamplingAlgorithm(f.block.color_conversion_options.preferred_chroma_downsampling_algorithm),
		Upsampling:            ChromaUpsamplingAlgorithm(f.block.color_conversion_options.preferred_chroma_upsampling_algorithm),
		OnlyUsePreferred:      f.block.color_conversion_options.only_use_preferred_chroma_algorithm != 0,
	}
	if s.HasDecoderID {
		s.DecoderID = C.GoString(f.block.decoder_id)
	}
	return s
}

func (f *decodeOptionsFixture) free() {
	C.free(unsafe.Pointer(f.block))
	if f.decoderID != nil {
		C.free(unsafe.Pointer(f.decoderID))
	}
}

type encodeOptionsSnapshot struct {
	SaveAlphaChannel                   bool
	MacOSCompatibilityWorkaround       bool
	SaveTwoColrBoxes                   bool
	HasOutputNclx                      bool
	MacOSCompatibilityWorkaroundNoNclx bool
	ImageOrientation                   Orientation
	Downsampling                       ChromaDownsamplingAlgorithm
	Upsampling                         ChromaUpsamplingAlgorithm
	OnlyUsePreferred                   bool
	PreferUncCShortForm                bool
}

type encodeOptionsFixture struct {
	block *C.struct_heif_encoding_options
	nclx  *C.struct_heif_color_profile_nclx
}

func newEncodeOptionsFixture(version uint8) *encodeOptionsFixture {
	block := safeMalloc[C.struct_heif_encoding_options](1)
	block.version = C.uint8_t(version)
	block.image_orientation = C.heif_orientation_normal
	if version >= 6 {
		block.color_conversion_options.version = 1
	}
	return &encodeOptionsFixture{block: block}
}

func (f *encodeOptionsFixture) apply(o *EncodeOptions) {
	if o.OutputNclx != nil {
		f.nclx = safeMalloc[C.struct_heif_color_profile_nclx](1)
		f.nclx.version = 1
		o.OutputNclx.fillNative(f.nclx)
	}
	applyEncodeOptions(f.block, o, f.nclx)
}

func (f *encodeOptionsFixture) snapshot() encodeOptionsSnapshot {
	return encodeOptionsSnapshot{
		SaveAlphaChannel:                   f.block.save_alpha_channel != 0,
		MacOSCompatibilityWorkaround:       f.block.macOS_compatibility_workaround != 0,
		SaveTwoColrBoxes:                   f.block.save_two_colr_boxes_when_ICC_and_nclx_available != 0,
		HasOutputNclx:                      f.block.output_nclx_profile != nil,
		MacOSCompatibilityWorkaroundNoNclx: f.block.macOS_compatibility_workaround_no_nclx_profile != 0,
		ImageOrientation:                   Orientation(f.block.image_orientation),
		Downsampling:                       ChromaDownsamplingAlgorithm(f.block.color_conversion_options.preferred_chroma_downsampling_algorithm),
		Upsampling:                         ChromaUpsamplingAlgorithm(f.block.color_conversion_options.preferred_chroma_upsampling_algorithm),
		OnlyUsePreferred:                   f.block.color_conversion_options.only_use_preferred_chroma_algorithm != 0,
		PreferUncCShortForm:                f.block.prefer_uncC_short_form != 0,
	}
}

func (f *encodeOptionsFixture) free() {
	C.free(unsafe.Pointer(f.block))
	if f.nclx != nil {
		C.free(unsafe.Pointer(f.nclx))
	}
}
