package heif

/*
#include "goheif.h"
*/
import "C"

// DecoderDescriptor describes one decoder plugin known to the library.
// Descriptors are static data owned by the library and need no release.
type DecoderDescriptor struct {
	descriptor *C.struct_heif_decoder_descriptor
}

// GetDecoderDescriptors lists the decoder plugins available for the given
// compression format, best first. CompressionUndefined lists all formats.
//
// Decoder enumeration requires libheif 1.15; on older runtimes an
// UnsupportedVersionError is returned.
func GetDecoderDescriptors(format Compression) ([]*DecoderDescriptor, error) {
	if err := requireVersion("decoder enumeration", 1, 15); err != nil {
		return nil, err
	}
	const maxDescriptors = 32
	descriptors := make([]*C.struct_heif_decoder_descriptor, maxDescriptors)
	n := int(C.heif_get_decoder_descriptors(
		C.enum_heif_compression_format(format), &descriptors[0], maxDescriptors))
	out := make([]*DecoderDescriptor, 0, n)
	for _, d := range descriptors[:n] {
		out = append(out, &DecoderDescriptor{descriptor: d})
	}
	return out, nil
}

// GetName returns the human-readable name of the decoder plugin.
func (d *DecoderDescriptor) GetName() string {
	return C.GoString(C.heif_decoder_descriptor_get_name(d.descriptor))
}

// GetIDName returns the short machine name of the decoder plugin. The
// value is what DecodeOptions.DecoderID matches against.
func (d *DecoderDescriptor) GetIDName() string {
	return C.GoString(C.heif_decoder_descriptor_get_id_name(d.descriptor))
}
