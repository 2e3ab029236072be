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

// EncoderDescriptor describes one encoder plugin known to the library.
// Descriptors are static data owned by the library and need no release.
type EncoderDescriptor struct {
	descriptor *C.struct_heif_encoder_descriptor
}

// GetEncoderDescriptors lists the encoder plugins available for the given
// compression format, best first. CompressionUndefined lists all formats;
// a non-empty nameFilter restricts the result to matching plugin names.
func (c *Context) GetEncoderDescriptors(format Compression, nameFilter string) []*EncoderDescriptor {
	defer runtime.KeepAlive(c)
	var cfilter *C.char
	if nameFilter != "" {
		cfilter = C.CString(nameFilter)
		defer C.free(unsafe.Pointer(cfilter))
	}
	const maxDescriptors = 32
	descriptors := make([]*C.struct_heif_encoder_descriptor, maxDescriptors)
	n := int(C.heif_context_get_encoder_descriptors(c.ctx,
		C.enum_heif_compression_format(format), cfilter, &descriptors[0], maxDescriptors))
	out := make([]*EncoderDescriptor, 0, n)
	for _, d := range descriptors[:n] {
		out = append(out, &EncoderDescriptor{descriptor: d})
	}
	return out
}

// GetName returns the human-readable name of the encoder plugin.
func (d *EncoderDescriptor) GetName() string {
	return C.GoString(C.heif_encoder_descriptor_get_name(d.descriptor))
}

// GetIDName returns the short machine name of the encoder plugin, e.g.
// "x265" or "aom".
func (d *EncoderDescriptor) GetIDName() string {
	return C.GoString(C.heif_encoder_descriptor_get_id_name(d.descriptor))
}

// GetCompressionFormat returns the codec the plugin produces.
func (d *EncoderDescriptor) GetCompressionFormat() Compression {
	return Compression(C.heif_encoder_descriptor_get_compression_format(d.descriptor))
}

// SupportsLossyCompression reports whether the plugin can encode lossily.
func (d *EncoderDescriptor) SupportsLossyCompression() bool {
	return goBool(C.heif_encoder_descriptor_supports_lossy_compression(d.descriptor))
}

// SupportsLosslessCompression reports whether the plugin can encode
// losslessly.
func (d *EncoderDescriptor) SupportsLosslessCompression() bool {
	return goBool(C.heif_encoder_descriptor_supports_lossless_compression(d.descriptor))
}

// Encoder is an instantiated encoder plugin with its own parameter set.
type Encoder struct {
	encoder *C.struct_heif_encoder
}

func newEncoder(encoder *C.struct_heif_encoder) *Encoder {
	e := &Encoder{encoder: encoder}
	runtime.SetFinalizer(e, (*Encoder).Close)
	return e
}

// GetEncoder instantiates the encoder plugin the descriptor refers to.
func (c *Context) GetEncoder(d *EncoderDescriptor) (*Encoder, error) {
	defer runtime.KeepAlive(c)
	var encoder *C.struct_heif_encoder
	if err := convertError(C.heif_context_get_encoder(c.ctx, d.descriptor, &encoder)); err != nil {
		return nil, err
	}
	return newEncoder(encoder), nil
}

// GetEncoderForFormat instantiates the library's preferred encoder plugin
// for the given codec.
func (c *Context) GetEncoderForFormat(format Compression) (*Encoder, error) {
	defer runtime.KeepAlive(c)
	var encoder *C.struct_heif_encoder
	cerr := C.heif_context_get_encoder_for_format(c.ctx,
		C.enum_heif_compression_format(format), &encoder)
	if err := convertError(cerr); err != nil {
		return nil, err
	}
	return newEncoder(encoder), nil
}

// Close releases the encoder instance. Safe to call more than once.
func (e *Encoder) Close() {
	if e.encoder != nil {
		C.heif_encoder_release(e.encoder)
		e.encoder = nil
	}
	runtime.SetFinalizer(e, nil)
}

// GetName returns the name of the underlying encoder plugin.
func (e *Encoder) GetName() string {
	defer runtime.KeepAlive(e)
	return C.GoString(C.heif_encoder_get_name(e.encoder))
}

// SetQuality sets the lossy quality in the range 0-100.
func (e *Encoder) SetQuality(quality int) error {
	defer runtime.KeepAlive(e)
	return convertError(C.heif_encoder_set_lossy_quality(e.encoder, C.int(quality)))
}

// SetLossless switches the encoder between lossy and lossless operation.
// Not every plugin supports lossless encoding; see
// EncoderDescriptor.SupportsLosslessCompression.
func (e *Encoder) SetLossless(mode LosslessMode) error {
	defer runtime.KeepAlive(e)
	return convertError(C.heif_encoder_set_lossless(e.encoder, C.int(mode)))
}

// SetLoggingLevel sets how verbose the encoder plugin is.
func (e *Encoder) SetLoggingLevel(level LoggingLevel) error {
	defer runtime.KeepAlive(e)
	return convertError(C.heif_encoder_set_logging_level(e.encoder, C.int(level)))
}

// EncoderParameterType distinguishes the value types an encoder parameter
// can take.
type EncoderParameterType int

const (
	EncoderParameterTypeInteger EncoderParameterType = C.heif_encoder_parameter_type_integer
	EncoderParameterTypeBoolean EncoderParameterType = C.heif_encoder_parameter_type_boolean
	EncoderParameterTypeString  EncoderParameterType = C.heif_encoder_parameter_type_string
)

// EncoderParameter describes one tunable parameter of an encoder plugin.
type EncoderParameter struct {
	parameter *C.struct_heif_encoder_parameter
	encoder   *Encoder
}

// ListParameters enumerates the parameters the encoder plugin exposes.
func (e *Encoder) ListParameters() []*EncoderParameter {
	defer runtime.KeepAlive(e)
	params := C.heif_encoder_list_parameters(e.encoder)
	if params == nil {
		return nil
	}
	var out []*EncoderParameter
	for p := params; *p != nil; p = (**C.struct_heif_encoder_parameter)(unsafe.Add(unsafe.Pointer(p), unsafe.Sizeof(*p))) {
		out = append(out, &EncoderParameter{parameter: *p, encoder: e})
	}
	return out
}

// GetName returns the parameter name, e.g. "preset" or "quality".
func (p *EncoderParameter) GetName() string {
	return C.GoString(C.heif_encoder_parameter_get_name(p.parameter))
}

// GetType returns the parameter's value type.
func (p *EncoderParameter) GetType() EncoderParameterType {
	return EncoderParameterType(C.heif_encoder_parameter_get_type(p.parameter))
}

// GetValidIntegerRange returns the allowed range of an integer parameter.
func (p *EncoderParameter) GetValidIntegerRange() (minimum, maximum int, err error) {
	var cmin, cmax C.int
	if err := convertError(C.heif_encoder_parameter_get_valid_integer_range(p.parameter, &cmin, &cmax)); err != nil {
		return 0, 0, err
	}
	return int(cmin), int(cmax), nil
}

// GetValidStringValues returns the allowed values of a string parameter,
// or nil when the parameter is free-form.
func (p *EncoderParameter) GetValidStringValues() ([]string, error) {
	var values **C.char
	if err := convertError(C.heif_encoder_parameter_get_valid_string_values(p.parameter, &values)); err != nil {
		return nil, err
	}
	if values == nil {
		return nil, nil
	}
	var out []string
	for v := values; *v != nil; v = (**C.char)(unsafe.Add(unsafe.Pointer(v), unsafe.Sizeof(*v))) {
		out = append(out, C.GoString(*v))
	}
	return out, nil
}

// SetParameterInteger sets an integer parameter by name.
func (e *Encoder) SetParameterInteger(name string, value int) error {
	defer runtime.KeepAlive(e)
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return convertError(C.heif_encoder_set_parameter_integer(e.encoder, cname, C.int(value)))
}

// GetParameterInteger reads an integer parameter by name.
func (e *Encoder) GetParameterInteger(name string) (int, error) {
	defer runtime.KeepAlive(e)
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var value C.int
	if err := convertError(C.heif_encoder_get_parameter_integer(e.encoder, cname, &value)); err != nil {
		return 0, err
	}
	return int(value), nil
}

// SetParameterBoolean sets a boolean parameter by name.
func (e *Encoder) SetParameterBoolean(name string, value bool) error {
	defer runtime.KeepAlive(e)
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return convertError(C.heif_encoder_set_parameter_boolean(e.encoder, cname, cint(value)))
}

// GetParameterBoolean reads a boolean parameter by name.
func (e *Encoder) GetParameterBoolean(name string) (bool, error) {
	defer runtime.KeepAlive(e)
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var value C.int
	if err := convertError(C.heif_encoder_get_parameter_boolean(e.encoder, cname, &value)); err != nil {
		return false, err
	}
	return goBool(value), nil
}

// SetParameterString sets a string parameter by name.
func (e *Encoder) SetParameterString(name, value string) error {
	defer runtime.KeepAlive(e)
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cvalue := C.CString(value)
	defer C.free(unsafe.Pointer(cvalue))
	return convertError(C.heif_encoder_set_parameter_string(e.encoder, cname, cvalue))
}

// GetParameterString reads a string parameter by name.
func (e *Encoder) GetParameterString(name string) (string, error) {
	defer runtime.KeepAlive(e)
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	const bufSize = 256
	buf := (*C.char)(unsafe.Pointer(safeMalloc[[bufSize]C.char](1)))
	defer C.free(unsafe.Pointer(buf))
	if err := convertError(C.heif_encoder_get_parameter_string(e.encoder, cname, buf, bufSize)); err != nil {
		return "", err
	}
	return C.GoString(buf), nil
}
