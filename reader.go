package heif

/*
#include "goheif.h"
#include "goheif_bridge.h"
*/
import "C"
import (
	"runtime/cgo"
	"unsafe"
)

// The reader callbacks below implement the slots of the heif_reader vtable
// defined in goheif_bridge.c. userdata is a runtime/cgo handle to the
// streamReader for the operation; the vtable itself is a static C struct,
// so the only lifetime the Go side manages is the handle, which the owner
// releases strictly after the native call that used it has returned.

const (
	readerSuccess = C.int(0)
	readerFailure = C.int(1)
)

func readerFromUserdata(userdata unsafe.Pointer) *streamReader {
	return cgo.Handle(uintptr(userdata)).Value().(*streamReader)
}

//export goheifReaderGetPosition
func goheifReaderGetPosition(userdata unsafe.Pointer) C.int64_t {
	pos, _ := readerFromUserdata(userdata).position()
	return C.int64_t(pos)
}

//export goheifReaderRead
func goheifReaderRead(data unsafe.Pointer, size C.size_t, userdata unsafe.Pointer) C.int {
	if size == 0 {
		return readerSuccess
	}
	r := readerFromUserdata(userdata)
	dst := unsafe.Slice((*byte)(data), int(size))
	if !r.readInto(dst) {
		return readerFailure
	}
	return readerSuccess
}

//export goheifReaderSeek
func goheifReaderSeek(position C.int64_t, userdata unsafe.Pointer) C.int {
	if !readerFromUserdata(userdata).seekTo(int64(position)) {
		return readerFailure
	}
	return readerSuccess
}

//export goheifReaderWaitForFileSize
func goheifReaderWaitForFileSize(targetSize C.int64_t, userdata unsafe.Pointer) C.enum_heif_reader_grow_status {
	switch readerFromUserdata(userdata).waitForSize(int64(targetSize)) {
	case growSizeBeyondEOF:
		return C.heif_reader_grow_status_size_beyond_eof
	case growTimeout:
		return C.heif_reader_grow_status_timeout
	default:
		return C.heif_reader_grow_status_size_reached
	}
}
