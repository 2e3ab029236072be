package heif

/*
#include <stdlib.h>
#include "goheif.h"
*/
import "C"
import "unsafe"

// safeMalloc is a wrapper around the C-level calloc function.
// The size of element to allocate is passed as type T and numElements
// represents the number of elements of size T to allocate. The block is
// zeroed; the caller must release it with C.free.
func safeMalloc[T any](numElements uint) *T {
	var size T
	var ptr unsafe.Pointer = C.calloc(C.size_t(numElements), C.size_t(unsafe.Sizeof(size)))
	return (*T)(ptr)
}

func cbool(b bool) C.uint8_t {
	if b {
		return 1
	}
	return 0
}

func cint(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func goBool(v C.int) bool {
	return v != 0
}

// helper to get a C pointer for a byte buffer (or nil)
func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}
