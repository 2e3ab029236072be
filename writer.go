package heif

/*
#include <stdlib.h>
#include "goheif.h"
#include "goheif_bridge.h"
*/
import "C"
import (
	"runtime/cgo"
	"unsafe"
)

// Messages placed into heif_error results returned from the write
// callback. libheif may hold on to the pointer, so these are allocated
// once and never freed.
var (
	writerOKMessage     = C.CString("Success")
	writerFailedMessage = C.CString("Error writing output data")
)

func writerFromUserdata(userdata unsafe.Pointer) *streamWriter {
	return cgo.Handle(uintptr(userdata)).Value().(*streamWriter)
}

func writerResult(ok bool) C.struct_heif_error {
	if ok {
		return C.struct_heif_error{
			code:    C.heif_error_Ok,
			subcode: C.heif_suberror_Unspecified,
			message: writerOKMessage,
		}
	}
	return C.struct_heif_error{
		code:    C.heif_error_Encoding_error,
		subcode: C.heif_suberror_Cannot_write_output_data,
		message: writerFailedMessage,
	}
}

//export goheifWriterWrite
func goheifWriterWrite(ctx *C.struct_heif_context, data unsafe.Pointer, size C.size_t, userdata unsafe.Pointer) C.struct_heif_error {
	w := writerFromUserdata(userdata)
	if size == 0 {
		return writerResult(true)
	}
	src := unsafe.Slice((*byte)(data), int(size))
	return writerResult(w.push(src))
}
